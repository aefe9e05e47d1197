package lcd

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/erth-network/anml-cli/common"
	"github.com/erth-network/anml-cli/common/logging"
	"github.com/erth-network/anml-cli/core/tx"
	"github.com/erth-network/anml-cli/core/types"
)

const broadcastModeSync = "BROADCAST_MODE_SYNC"

var ErrUnsupportedMsg = errors.New("unsupported message type")

type txResponseJSON struct {
	Height    string             `json:"height"`
	TxHash    string             `json:"txhash"`
	Codespace string             `json:"codespace"`
	Code      uint32             `json:"code"`
	RawLog    string             `json:"raw_log"`
	Logs      []types.MessageLog `json:"logs"`
	GasWanted string             `json:"gas_wanted"`
	GasUsed   string             `json:"gas_used"`
	Events    []types.Event      `json:"events"`
}

func (r *txResponseJSON) toTxResponse() *types.TxResponse {
	height, _ := strconv.ParseInt(r.Height, 10, 64)
	wanted, _ := strconv.ParseInt(r.GasWanted, 10, 64)
	used, _ := strconv.ParseInt(r.GasUsed, 10, 64)
	return &types.TxResponse{
		TxHash:    r.TxHash,
		Code:      r.Code,
		Codespace: r.Codespace,
		RawLog:    r.RawLog,
		Height:    height,
		GasWanted: wanted,
		GasUsed:   used,
		ArrayLog:  types.NewArrayLog(r.Logs, r.Events),
	}
}

func (c *Client) Broadcast(ctx context.Context, msgs []types.Msg, params types.TxParams) (*types.TxResponse, error) {
	if c.wallet == nil {
		return nil, ErrNoWallet
	}

	encoded, err := c.encodeMsgs(ctx, msgs)
	if err != nil {
		return nil, err
	}

	account, err := c.account(ctx)
	if err != nil {
		return nil, err
	}

	feeCoin, err := params.Fee()
	if err != nil {
		return nil, err
	}
	fee := tx.Fee{Amount: []types.Coin{feeCoin}, GasLimit: params.GasLimit}

	raw, err := tx.Build(encoded, "", fee, tx.SignerData{
		ChainID:       c.chainID,
		AccountNumber: account.number,
		Sequence:      account.sequence,
	}, c.wallet)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Uint64(logging.FieldAccountNumber, account.number).
		Uint64(logging.FieldAccountSeqno, account.sequence).
		Uint64(logging.FieldGasLimit, params.GasLimit).
		Stringer(logging.FieldFee, feeCoin).
		Msg("broadcasting transaction")

	var resp struct {
		TxResponse txResponseJSON `json:"tx_response"`
	}
	request := map[string]string{
		"tx_bytes": base64.StdEncoding.EncodeToString(raw),
		"mode":     broadcastModeSync,
	}
	if err := c.post(ctx, pathTxs, request, &resp); err != nil {
		return nil, err
	}

	// rejected by CheckTx: it never makes it into a block
	if resp.TxResponse.Code != 0 {
		return resp.TxResponse.toTxResponse(), nil
	}

	return c.waitForTx(ctx, resp.TxResponse.TxHash)
}

// GetTx returns the included transaction or ErrTxNotFound.
func (c *Client) GetTx(ctx context.Context, hash string) (*types.TxResponse, error) {
	var resp struct {
		TxResponse txResponseJSON `json:"tx_response"`
	}
	if err := c.get(ctx, pathTxs+"/"+url.PathEscape(hash), nil, &resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTxNotFound, hash)
		}
		return nil, err
	}
	return resp.TxResponse.toTxResponse(), nil
}

func (c *Client) waitForTx(ctx context.Context, hash string) (*types.TxResponse, error) {
	attempts := uint32(1)
	if c.pollInterval > 0 {
		attempts += uint32(c.pollTimeout / c.pollInterval)
	}
	runner := common.NewRetryRunner(common.RetryConfig{
		ShouldRetry: common.RetryOn(attempts, func(err error) bool { return errors.Is(err, ErrTxNotFound) }),
		NextDelay:   common.FixedDelay(c.pollInterval),
	}, c.logger.With().Str(logging.FieldTxHash, hash).Logger())

	var result *types.TxResponse
	err := runner.Do(ctx, func(ctx context.Context) error {
		r, err := c.GetTx(ctx, hash)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type accountInfo struct {
	number   uint64
	sequence uint64
}

func (c *Client) account(ctx context.Context) (*accountInfo, error) {
	var resp struct {
		Account struct {
			AccountNumber uint64String `json:"account_number"`
			Sequence      uint64String `json:"sequence"`
		} `json:"account"`
	}
	addr := c.wallet.Address().String()
	if err := c.get(ctx, pathAccount+addr, nil, &resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("account %s does not exist on chain, fund it first: %w", addr, err)
		}
		return nil, err
	}
	return &accountInfo{
		number:   uint64(resp.Account.AccountNumber),
		sequence: uint64(resp.Account.Sequence),
	}, nil
}

func (c *Client) encodeMsgs(ctx context.Context, msgs []types.Msg) ([]tx.Any, error) {
	out := make([]tx.Any, 0, len(msgs))
	for _, m := range msgs {
		a, err := c.encodeMsg(ctx, m)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (c *Client) encodeMsg(ctx context.Context, m types.Msg) (tx.Any, error) {
	switch m := m.(type) {
	case types.MsgStoreCode:
		return tx.StoreCode(m.Sender, m.WASMByteCode, m.Source, m.Builder), nil
	case types.MsgInstantiateContract:
		enc, err := c.encryptPayload(ctx, m.CodeHash, m.InitMsg)
		if err != nil {
			return tx.Any{}, err
		}
		return tx.InstantiateContract(m.Sender, m.CodeID, m.Label, enc, m.Funds, m.Admin), nil
	case types.MsgExecuteContract:
		enc, err := c.encryptPayload(ctx, m.CodeHash, m.Msg)
		if err != nil {
			return tx.Any{}, err
		}
		return tx.ExecuteContract(m.Sender, m.Contract, enc, m.Funds), nil
	case types.MsgMigrateContract:
		enc, err := c.encryptPayload(ctx, m.CodeHash, m.Msg)
		if err != nil {
			return tx.Any{}, err
		}
		return tx.MigrateContract(m.Sender, m.Contract, m.CodeID, enc), nil
	default:
		return tx.Any{}, fmt.Errorf("%w: %T", ErrUnsupportedMsg, m)
	}
}

func (c *Client) encryptPayload(ctx context.Context, codeHash string, payload []byte) ([]byte, error) {
	enc, err := c.encryptionUtils(ctx)
	if err != nil {
		return nil, err
	}
	out, err := enc.Encrypt(codeHash, payload)
	if err != nil {
		return nil, fmt.Errorf("encrypt message: %w", err)
	}
	return out, nil
}
