package diagnostics

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/erth-network/anml-cli/cli/service"
	"github.com/erth-network/anml-cli/client"
	"github.com/erth-network/anml-cli/client/mock"
	"github.com/erth-network/anml-cli/common/concurrent"
	"github.com/erth-network/anml-cli/contracts"
	"github.com/erth-network/anml-cli/core/types"
	"github.com/erth-network/anml-cli/core/wallet"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

type fakeResolver struct {
	addrs []string
	err   error
}

func (f fakeResolver) LookupHost(context.Context, string) ([]string, error) {
	return f.addrs, f.err
}

type countingDialer struct {
	client client.Client
	calls  atomic.Int32
}

func (d *countingDialer) dial(string, string, *wallet.Wallet) client.Client {
	d.calls.Add(1)
	return d.client
}

func nodeServer(t *testing.T, status int) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/node_info" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"node_info":{"network":"secret-4"}}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestRunner(
	t *testing.T, url string, resolver Resolver, d *countingDialer, opts ...Option,
) (*Runner, *bytes.Buffer) {
	t.Helper()

	cfg := service.DefaultConfig()
	cfg.Mnemonic = testMnemonic
	cfg.URL = url

	var out bytes.Buffer
	opts = append([]Option{WithLogger(zerolog.Nop())}, opts...)
	return NewRunner(cfg, d.dial, contracts.Default(), resolver, &out, opts...), &out
}

func requireStatus(t *testing.T, report *Report, name string, status Status) Result {
	t.Helper()

	res, ok := report.Result(name)
	require.True(t, ok, "no result for %s", name)
	require.Equal(t, status, res.Status, "check %s: %v", name, res.Err)
	return res
}

// TestRun_Successfully tests that every check passes against a healthy node
func TestRun_Successfully(t *testing.T) {
	t.Parallel()

	srv := nodeServer(t, http.StatusOK)
	d := &countingDialer{client: &mock.MockClient{
		Node:        &types.NodeInfo{Network: "secret-4", Moniker: "erth", AppVersion: "v1.15.0"},
		Block:       &types.Block{Height: 42, NumTxs: 3},
		QueryResult: json.RawMessage(`{"registrations":1}`),
	}}
	r, out := newTestRunner(t, srv.URL, fakeResolver{addrs: []string{"127.0.0.1"}}, d)

	report := r.Run(context.Background())

	for _, name := range []string{
		CheckEnvironment, CheckDNS, CheckHTTP, CheckClient, CheckNodeInfo, CheckLatestBlock, CheckRegistration,
	} {
		requireStatus(t, report, name, StatusPassed)
	}
	assert.Equal(t, 0, report.Count(StatusFailed))
	assert.EqualValues(t, 1, d.calls.Load())

	res := requireStatus(t, report, CheckNodeInfo, StatusPassed)
	assert.Equal(t, map[string]string{"network": "secret-4", "version": "v1.15.0", "moniker": "erth"}, res.Details)

	assert.Contains(t, out.String(), "Starting ANML Registration Contract Network Diagnostics Tool")
	assert.Contains(t, out.String(), "PHASE 5: Contract Query Tests")
	assert.Contains(t, out.String(), "Diagnostics completed!")
}

// TestRun_DNSFailureSkipsDownstream tests that nothing after a failed DNS lookup is attempted
func TestRun_DNSFailureSkipsDownstream(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { hits.Add(1) }))
	t.Cleanup(srv.Close)

	d := &countingDialer{client: &mock.MockClient{}}
	r, out := newTestRunner(t, srv.URL, fakeResolver{err: errors.New("no such host")}, d)

	report := r.Run(context.Background())

	requireStatus(t, report, CheckEnvironment, StatusPassed)
	res := requireStatus(t, report, CheckDNS, StatusFailed)
	assert.Contains(t, res.Err.Error(), "DNS resolution failed for 127.0.0.1")
	for _, name := range []string{CheckHTTP, CheckClient, CheckNodeInfo, CheckLatestBlock, CheckRegistration} {
		requireStatus(t, report, name, StatusSkipped)
	}

	assert.Zero(t, d.calls.Load())
	assert.Zero(t, hits.Load())
	assert.Equal(t, 1, report.Count(StatusFailed))
	assert.Contains(t, out.String(), "Skipping node queries due to client initialization failure")
	assert.Contains(t, out.String(), "Skipping contract queries due to client initialization failure")
}

func TestRun_HTTPStatusFailure(t *testing.T) {
	t.Parallel()

	srv := nodeServer(t, http.StatusBadGateway)
	d := &countingDialer{client: &mock.MockClient{}}
	r, _ := newTestRunner(t, srv.URL, fakeResolver{addrs: []string{"127.0.0.1"}}, d)

	report := r.Run(context.Background())

	res := requireStatus(t, report, CheckHTTP, StatusFailed)
	require.ErrorIs(t, res.Err, errHTTPStatus)
	assert.Contains(t, res.Err.Error(), "502")
	requireStatus(t, report, CheckClient, StatusSkipped)
	assert.Zero(t, d.calls.Load())
}

func TestRun_MissingMnemonic(t *testing.T) {
	t.Parallel()

	srv := nodeServer(t, http.StatusOK)
	d := &countingDialer{client: &mock.MockClient{}}
	r, _ := newTestRunner(t, srv.URL, fakeResolver{addrs: []string{"127.0.0.1"}}, d)
	r.cfg.Mnemonic = ""

	report := r.Run(context.Background())

	env := requireStatus(t, report, CheckEnvironment, StatusPassed)
	assert.Equal(t, "Missing MNEMONIC in environment variables", env.Details.(map[string]any)["mnemonic"])

	res := requireStatus(t, report, CheckClient, StatusFailed)
	require.ErrorIs(t, res.Err, service.ErrConfiguration)
	requireStatus(t, report, CheckNodeInfo, StatusSkipped)
	requireStatus(t, report, CheckRegistration, StatusSkipped)
}

func TestRun_ContractQueryTimeout(t *testing.T) {
	t.Parallel()

	srv := nodeServer(t, http.StatusOK)
	d := &countingDialer{client: &mock.MockClient{
		QueryFn: func(string, string, []byte) (json.RawMessage, error) {
			time.Sleep(200 * time.Millisecond)
			return nil, nil
		},
	}}
	r, _ := newTestRunner(t, srv.URL, fakeResolver{addrs: []string{"127.0.0.1"}}, d,
		WithTimeouts(time.Second, time.Second, 10*time.Millisecond))

	report := r.Run(context.Background())

	res := requireStatus(t, report, CheckRegistration, StatusFailed)
	require.ErrorIs(t, res.Err, concurrent.ErrTimeout)
	requireStatus(t, report, CheckLatestBlock, StatusPassed)
}

func TestOrDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Using default: secret-4", orDefault("", "secret-4"))
	assert.Equal(t, "Using default: secret-4", orDefault("secret-4", "secret-4"))
	assert.Equal(t, "pulsar-3", orDefault("pulsar-3", "secret-4"))
}
