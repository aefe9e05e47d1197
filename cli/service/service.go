package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/erth-network/anml-cli/common/concurrent"
	"github.com/erth-network/anml-cli/common/logging"
	"github.com/erth-network/anml-cli/contracts"
	"github.com/erth-network/anml-cli/core/msg"
	"github.com/erth-network/anml-cli/core/types"
	"github.com/rs/zerolog"
)

const (
	UploadGasLimit      = 4_000_000
	InstantiateGasLimit = 6_000_000
	MigrateGasLimit     = 2_000_000
	ExecuteGasLimit     = 1_000_000
)

// Service implements the contract operations. Every method opens its own Session.
type Service struct {
	cfg    Config
	dial   Dialer
	dir    *contracts.Directory
	out    io.Writer
	logger zerolog.Logger

	queryTimeout     time.Duration
	broadcastTimeout time.Duration
}

type Option func(*Service)

func WithTimeouts(query, broadcast time.Duration) Option {
	return func(s *Service) {
		s.queryTimeout = query
		s.broadcastTimeout = broadcast
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService initializes a new Service. Results are printed to out.
func NewService(cfg Config, dial Dialer, dir *contracts.Directory, out io.Writer, opts ...Option) *Service {
	s := &Service{
		cfg:              cfg,
		dial:             dial,
		dir:              dir,
		out:              out,
		logger:           logging.NewLogger("service"),
		queryTimeout:     concurrent.QueryTimeout,
		broadcastTimeout: concurrent.BroadcastTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Target is a resolved contract address and code hash.
type Target struct {
	Address  string
	CodeHash string
}

// resolve fills an omitted address or hash from the directory entry of name.
func (s *Service) resolve(address, codeHash string, name contracts.Name) (Target, error) {
	def, _ := s.dir.Lookup(name)
	t := Target{Address: address, CodeHash: codeHash}
	if t.Address == "" {
		t.Address = def.Address
	}
	if t.CodeHash == "" {
		t.CodeHash = def.CodeHash
	}
	if t.Address == "" || t.CodeHash == "" {
		return Target{}, fmt.Errorf("%w: no address or code hash for %s", ErrMissingTarget, name)
	}
	if _, err := types.ParseAddress(t.Address); err != nil {
		return Target{}, err
	}
	return t, nil
}

func (s *Service) connect(ctx context.Context) (*Session, error) {
	return Connect(ctx, s.cfg, s.dial, s.out)
}

func (s *Service) txParams(gasLimit uint64) types.TxParams {
	p := types.NewTxParams(gasLimit)
	if !s.cfg.GasPrice.IsZero() {
		p.GasPrice = s.cfg.GasPrice
	}
	if s.cfg.FeeDenom != "" {
		p.FeeDenom = s.cfg.FeeDenom
	}
	return p
}

func (s *Service) query(ctx context.Context, sess *Session, target Target, payload msg.Payload) (json.RawMessage, error) {
	q, err := msg.Marshal(payload)
	if err != nil {
		return nil, err
	}
	result, err := concurrent.ExecuteWithTimeout(ctx, s.queryTimeout, func(ctx context.Context) (json.RawMessage, error) {
		return sess.Client.QueryContract(ctx, target.Address, target.CodeHash, q)
	})
	if err != nil {
		s.logger.Error().Err(err).
			Str(logging.FieldContract, target.Address).
			Str(logging.FieldOperation, payload.Tag()).
			Msg("Contract query failed")
		return nil, withTimeoutHint(err)
	}
	return result, nil
}

func (s *Service) execute(
	ctx context.Context, sess *Session, target Target, payload msg.Payload,
) (*types.TxResponse, error) {
	if err := payload.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", msg.ErrInvalidPayload, err)
	}
	data, err := msg.Marshal(payload)
	if err != nil {
		return nil, err
	}
	contract, err := types.ParseAddress(target.Address)
	if err != nil {
		return nil, err
	}
	return s.broadcast(ctx, sess, ExecuteGasLimit, types.MsgExecuteContract{
		Sender:   sess.Wallet.Address(),
		Contract: contract,
		CodeHash: target.CodeHash,
		Msg:      data,
	})
}

// broadcast signs msgs into one transaction. A non-zero result code is an ErrTransactionFailed.
func (s *Service) broadcast(ctx context.Context, sess *Session, gasLimit uint64, msgs ...types.Msg) (*types.TxResponse, error) {
	params := s.txParams(gasLimit)
	resp, err := concurrent.ExecuteWithTimeout(ctx, s.broadcastTimeout, func(ctx context.Context) (*types.TxResponse, error) {
		return sess.Client.Broadcast(ctx, msgs, params)
	})
	if err != nil {
		s.logger.Error().Err(err).Uint64(logging.FieldGasLimit, gasLimit).Msg("Failed to broadcast transaction")
		return nil, err
	}
	if resp.Failed() {
		s.logger.Error().
			Str(logging.FieldTxHash, resp.TxHash).
			Uint32(logging.FieldTxCode, resp.Code).
			Msg("Transaction failed")
		return resp, fmt.Errorf("%w: %s", ErrTransactionFailed, resp.RawLog)
	}
	s.logger.Debug().Str(logging.FieldTxHash, resp.TxHash).Int64(logging.FieldBlockHeight, resp.Height).Send()
	return resp, nil
}

func (s *Service) printJSON(label string, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(s.out, "%s %v\n", label, v)
		return
	}
	fmt.Fprintf(s.out, "%s %s\n", label, data)
}

func withTimeoutHint(err error) error {
	if errors.Is(err, concurrent.ErrTimeout) {
		return fmt.Errorf("%w. %s", err, TimeoutHint)
	}
	return err
}
