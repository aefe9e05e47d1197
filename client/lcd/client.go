package lcd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/erth-network/anml-cli/client"
	"github.com/erth-network/anml-cli/common/concurrent"
	"github.com/erth-network/anml-cli/common/logging"
	"github.com/erth-network/anml-cli/common/version"
	"github.com/erth-network/anml-cli/core/encryption"
	"github.com/erth-network/anml-cli/core/wallet"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrFailedToMarshalRequest    = errors.New("failed to marshal request")
	ErrFailedToSendRequest       = errors.New("failed to send request")
	ErrUnexpectedStatusCode      = errors.New("unexpected status code")
	ErrFailedToReadResponse      = errors.New("failed to read response")
	ErrFailedToUnmarshalResponse = errors.New("failed to unmarshal response")
	ErrNotFound                  = errors.New("not found")
	ErrTxNotFound                = errors.New("transaction not found")
	ErrNoWallet                  = errors.New("client has no wallet")
)

const (
	pathNodeInfo        = "/cosmos/base/tendermint/v1beta1/node_info"
	pathLatestBlock     = "/cosmos/base/tendermint/v1beta1/blocks/latest"
	pathContractInfo    = "/compute/v1beta1/info/"
	pathCodeHashByAddr  = "/compute/v1beta1/code_hash/by_contract_address/"
	pathCodeHashByID    = "/compute/v1beta1/code_hash/by_code_id/"
	pathContractQuery   = "/compute/v1beta1/query/"
	pathTxKey           = "/registration/v1beta1/tx-key"
	pathAccount         = "/cosmos/auth/v1beta1/accounts/"
	pathTxs             = "/cosmos/tx/v1beta1/txs"
	headerRequestId     = "X-Request-Id"
	DefaultPollInterval = 5 * time.Second

	// DefaultPollTimeout leaves a third of the broadcast budget for signing, the POST
	// and the last GetTx.
	DefaultPollTimeout = concurrent.BroadcastTimeout * 2 / 3
)

type Client struct {
	endpoint string
	chainID  string
	wallet   *wallet.Wallet
	client   http.Client
	headers  map[string]string
	logger   zerolog.Logger

	pollInterval time.Duration
	pollTimeout  time.Duration

	encMu sync.Mutex
	enc   *encryption.Utils
}

var _ client.Client = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(hc http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithPolling sets how often and how long Broadcast waits for inclusion.
func WithPolling(interval, timeout time.Duration) Option {
	return func(c *Client) {
		c.pollInterval = interval
		c.pollTimeout = timeout
	}
}

func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// NewClient creates a client for the LCD endpoint. w may be nil for read-only use;
// Broadcast then fails with ErrNoWallet.
func NewClient(endpoint, chainID string, w *wallet.Wallet, logger zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		endpoint:     strings.TrimRight(endpoint, "/"),
		chainID:      chainID,
		wallet:       w,
		headers:      map[string]string{"User-Agent": version.UserAgent()},
		logger:       logger,
		pollInterval: DefaultPollInterval,
		pollTimeout:  DefaultPollTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}


func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	target := c.endpoint + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	body, err := c.do(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	return c.decode(body, out)
}

func (c *Client) post(ctx context.Context, path string, request, out any) error {
	requestBody, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToMarshalRequest, err)
	}
	body, err := c.do(ctx, http.MethodPost, c.endpoint+path, requestBody)
	if err != nil {
		return err
	}
	return c.decode(body, out)
}

func (c *Client) decode(body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Debug().Str("response", string(body)).Msg("failed to unmarshal response")
		return fmt.Errorf("%w: %w", ErrFailedToUnmarshalResponse, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, target string, requestBody []byte) ([]byte, error) {
	reqId := uuid.NewString()
	logger := c.logger.With().Str(logging.FieldReqId, reqId).Str(logging.FieldUrl, target).Logger()
	if len(requestBody) > 0 {
		logger.Trace().RawJSON("request", requestBody).Send()
	}

	var reader io.Reader
	if requestBody != nil {
		reader = bytes.NewReader(requestBody)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if requestBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(headerRequestId, reqId)
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToSendRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToReadResponse, err)
	}
	logger.Trace().Int(logging.FieldStatus, resp.StatusCode).Dur(logging.FieldDuration, time.Since(start)).
		RawJSON("response", jsonOrString(body)).Send()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := errorMessage(body)
		if resp.StatusCode == http.StatusNotFound || strings.Contains(strings.ToLower(msg), "not found") {
			return nil, fmt.Errorf("%w: %w: %d: %s", ErrUnexpectedStatusCode, ErrNotFound, resp.StatusCode, msg)
		}
		return nil, fmt.Errorf("%w: %d: %s", ErrUnexpectedStatusCode, resp.StatusCode, msg)
	}
	return body, nil
}

// errorMessage extracts the message of a grpc-gateway error body.
func errorMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return strings.TrimSpace(string(body))
}

func jsonOrString(body []byte) []byte {
	if json.Valid(body) {
		return body
	}
	quoted, _ := json.Marshal(string(body))
	return quoted
}

// uint64String accepts both JSON numbers and decimal strings.
type uint64String uint64

func (u *uint64String) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*u = 0
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}
	*u = uint64String(v)
	return nil
}

// NewDialer returns a constructor of wallet-bound clients sharing logger and options.
func NewDialer(logger zerolog.Logger, opts ...Option) func(endpoint, chainID string, w *wallet.Wallet) client.Client {
	return func(endpoint, chainID string, w *wallet.Wallet) client.Client {
		return NewClient(endpoint, chainID, w, logger, opts...)
	}
}
