// Package diagnostics checks, phase by phase, that the configured node and the registration
// contract are reachable. A check whose prerequisite did not pass is skipped, not failed.
package diagnostics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime"
	"strings"
	"time"

	"github.com/erth-network/anml-cli/cli/service"
	"github.com/erth-network/anml-cli/common/concurrent"
	"github.com/erth-network/anml-cli/common/logging"
	"github.com/erth-network/anml-cli/common/version"
	"github.com/erth-network/anml-cli/contracts"
	"github.com/erth-network/anml-cli/core/msg"
	"github.com/erth-network/anml-cli/core/wallet"
	"github.com/rs/zerolog"
)

const (
	CheckEnvironment  = "Environment Variables"
	CheckDNS          = "DNS Resolution"
	CheckHTTP         = "HTTP Connectivity"
	CheckClient       = "Client Initialization"
	CheckNodeInfo     = "Node Info Query"
	CheckLatestBlock  = "Latest Block Query"
	CheckRegistration = "Registration Contract Query"
)

const (
	DefaultCheckTimeout    = 10 * time.Second
	DefaultHTTPTimeout     = 5 * time.Second
	DefaultContractTimeout = concurrent.QueryTimeout
)

var errHTTPStatus = errors.New("HTTP request failed")

// Resolver is satisfied by *net.Resolver.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

type Runner struct {
	cfg        service.Config
	dial       service.Dialer
	dir        *contracts.Directory
	resolver   Resolver
	httpClient *http.Client
	out        printer
	logger     zerolog.Logger

	checkTimeout    time.Duration
	httpTimeout     time.Duration
	contractTimeout time.Duration
}

type Option func(*Runner)

func WithResolver(r Resolver) Option {
	return func(rn *Runner) { rn.resolver = r }
}

func WithHTTPClient(c *http.Client) Option {
	return func(rn *Runner) { rn.httpClient = c }
}

func WithTimeouts(check, httpRequest, contract time.Duration) Option {
	return func(rn *Runner) {
		rn.checkTimeout = check
		rn.httpTimeout = httpRequest
		rn.contractTimeout = contract
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(rn *Runner) { rn.logger = logger }
}

func NewRunner(
	cfg service.Config, dial service.Dialer, dir *contracts.Directory, resolver Resolver, out io.Writer, opts ...Option,
) *Runner {
	r := &Runner{
		cfg:             cfg,
		dial:            dial,
		dir:             dir,
		resolver:        resolver,
		httpClient:      http.DefaultClient,
		out:             printer{out: out},
		logger:          logging.NewLogger("diagnostics"),
		checkTimeout:    DefaultCheckTimeout,
		httpTimeout:     DefaultHTTPTimeout,
		contractTimeout: DefaultContractTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) endpoint() string {
	if r.cfg.URL != "" {
		return r.cfg.URL
	}
	return service.DefaultURL
}

// Run executes every phase and returns the collected results. Failures are recorded, not returned.
func (r *Runner) Run(ctx context.Context) *Report {
	report := &Report{Started: time.Now()}

	fmt.Fprintln(r.out.out)
	headColor.Fprintln(r.out.out, "Starting ANML Registration Contract Network Diagnostics Tool")
	r.out.rule()
	fmt.Fprintf(r.out.out, "Date: %s\n", report.Started.UTC().Format(time.RFC3339Nano))
	fmt.Fprintf(r.out.out, "Go: %s\n", runtime.Version())
	fmt.Fprintf(r.out.out, "Client: %s\n", version.UserAgent())
	r.out.rule()

	const phase1 = "PHASE 1: Environment Configuration Check"
	r.out.phase(phase1)
	r.check(ctx, report, phase1, CheckEnvironment, r.checkTimeout, r.checkEnvironment)

	const phase2 = "PHASE 2: Network Connectivity Tests"
	r.out.phase(phase2)
	dnsOk := r.check(ctx, report, phase2, CheckDNS, r.checkTimeout, r.checkDNS)
	httpOk := r.checkIf(ctx, report, dnsOk, "DNS resolution failed", phase2, CheckHTTP, r.checkTimeout, r.checkHTTP)

	const phase3 = "PHASE 3: Secret Network Client Tests"
	r.out.phase(phase3)
	var sess *service.Session
	clientOk := r.checkIf(ctx, report, httpOk, "HTTP connectivity failed", phase3, CheckClient, r.checkTimeout,
		func(ctx context.Context) (any, error) {
			var err error
			sess, err = service.Connect(ctx, r.cfg, r.dial, r.out.out)
			if err != nil {
				return nil, err
			}
			return map[string]string{
				"address": sess.Wallet.Address().String(),
				"url":     sess.Endpoint,
				"chainId": sess.ChainID,
			}, nil
		})

	const phase4 = "PHASE 4: Node Status Tests"
	r.out.phase(phase4)
	if !clientOk {
		fmt.Fprintln(r.out.out, "Skipping node queries due to client initialization failure")
	}
	r.checkIf(ctx, report, clientOk, "client initialization failed", phase4, CheckNodeInfo, r.checkTimeout,
		func(ctx context.Context) (any, error) { return r.queryNodeInfo(ctx, sess) })
	r.checkIf(ctx, report, clientOk, "client initialization failed", phase4, CheckLatestBlock, r.checkTimeout,
		func(ctx context.Context) (any, error) { return r.queryLatestBlock(ctx, sess) })

	const phase5 = "PHASE 5: Contract Query Tests"
	r.out.phase(phase5)
	if !clientOk {
		fmt.Fprintln(r.out.out, "Skipping contract queries due to client initialization failure")
	}
	r.checkIf(ctx, report, clientOk, "client initialization failed", phase5, CheckRegistration, r.contractTimeout,
		func(ctx context.Context) (any, error) { return r.queryRegistration(ctx, sess) })

	report.Finished = time.Now()
	r.out.summary(report)
	return report
}

// check runs fn under timeout, prints and records its outcome. It reports whether fn passed.
func (r *Runner) check(
	ctx context.Context, report *Report, phase, name string, timeout time.Duration,
	fn func(context.Context) (any, error),
) bool {
	r.out.running(name)
	start := time.Now()
	details, err := concurrent.ExecuteWithTimeout(ctx, timeout, fn)

	res := Result{Phase: phase, Name: name, Elapsed: time.Since(start), Details: details, Err: err}
	if err != nil {
		res.Status = StatusFailed
		res.Details = nil
	}
	r.record(report, res)
	return err == nil
}

// checkIf runs the check only when ok is set and records it as skipped otherwise.
func (r *Runner) checkIf(
	ctx context.Context, report *Report, ok bool, reason, phase, name string, timeout time.Duration,
	fn func(context.Context) (any, error),
) bool {
	if ok {
		return r.check(ctx, report, phase, name, timeout, fn)
	}
	r.record(report, Result{Phase: phase, Name: name, Status: StatusSkipped, Reason: "Skipped: " + reason})
	return false
}

func (r *Runner) record(report *Report, res Result) {
	report.Results = append(report.Results, res)
	r.out.result(res)

	level := zerolog.DebugLevel
	if res.Status == StatusFailed {
		level = zerolog.WarnLevel
	}
	r.logger.WithLevel(level).Err(res.Err).
		Str(logging.FieldPhase, res.Phase).
		Str(logging.FieldCheck, res.Name).
		Stringer(logging.FieldStatus, res.Status).
		Dur(logging.FieldDuration, res.Elapsed).
		Msg("Diagnostic check finished")
}

func (r *Runner) checkEnvironment(context.Context) (any, error) {
	results := map[string]any{}

	if strings.TrimSpace(r.cfg.Mnemonic) == "" {
		results["mnemonic"] = "Missing MNEMONIC in environment variables"
	} else if w, err := wallet.FromMnemonic(r.cfg.Mnemonic); err != nil {
		results["wallet"] = map[string]string{"error": "Invalid mnemonic", "details": err.Error()}
	} else {
		results["wallet"] = map[string]string{"address": w.Address().String(), "status": "Valid"}
	}

	results["url"] = orDefault(r.cfg.URL, service.DefaultURL)
	results["chainId"] = orDefault(r.cfg.ChainID, service.DefaultChainID)
	return results, nil
}

func orDefault(value, def string) string {
	if value != "" && value != def {
		return value
	}
	return "Using default: " + def
}

func (r *Runner) checkDNS(ctx context.Context) (any, error) {
	u, err := url.Parse(r.endpoint())
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", r.endpoint(), err)
	}
	host := u.Hostname()
	addrs, err := r.resolver.LookupHost(ctx, host)
	if err != nil {
		return nil, fmt.Errorf("DNS resolution failed for %s: %w", host, err)
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("DNS resolution failed for %s: no addresses", host)
	}
	return map[string]string{"hostname": host, "ipAddress": addrs[0]}, nil
}

func (r *Runner) checkHTTP(ctx context.Context) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, r.httpTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSuffix(r.endpoint(), "/")+"/node_info", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := r.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, errors.New("HTTP request timed out")
		}
		return nil, fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("HTTP request error: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w with status code: %d", errHTTPStatus, resp.StatusCode)
	}

	var nodeInfo any
	if err := json.Unmarshal(body, &nodeInfo); err != nil {
		return nil, fmt.Errorf("invalid JSON response: %w", err)
	}
	return map[string]any{"statusCode": resp.StatusCode, "nodeInfo": nodeInfo}, nil
}

func (r *Runner) queryNodeInfo(ctx context.Context, sess *service.Session) (any, error) {
	info, err := sess.Client.NodeInfo(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]string{"network": info.Network, "version": info.AppVersion, "moniker": info.Moniker}, nil
}

func (r *Runner) queryLatestBlock(ctx context.Context, sess *service.Session) (any, error) {
	block, err := sess.Client.LatestBlock(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"height": block.Height,
		"time":   block.Time.Format(time.RFC3339Nano),
		"numTxs": block.NumTxs,
	}, nil
}

func (r *Runner) queryRegistration(ctx context.Context, sess *service.Session) (any, error) {
	reg := r.dir.MustLookup(contracts.Registration)
	q, err := msg.Marshal(&msg.QueryState{})
	if err != nil {
		return nil, err
	}
	return sess.Client.QueryContract(ctx, reg.Address, reg.CodeHash, q)
}
