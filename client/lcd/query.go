package lcd

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/erth-network/anml-cli/common/logging"
	"github.com/erth-network/anml-cli/core/encryption"
	"github.com/erth-network/anml-cli/core/types"
)

var ErrContractQuery = errors.New("contract query failed")

// matches the encrypted error payload a contract returns on a failed query
var encryptedErrorRe = regexp.MustCompile(`encrypted: ([A-Za-z0-9+/=]+)`)

func (c *Client) NodeInfo(ctx context.Context) (*types.NodeInfo, error) {
	var resp struct {
		DefaultNodeInfo struct {
			Network string `json:"network"`
			Version string `json:"version"`
			Moniker string `json:"moniker"`
		} `json:"default_node_info"`
		ApplicationVersion struct {
			AppName string `json:"app_name"`
			Version string `json:"version"`
		} `json:"application_version"`
	}
	if err := c.get(ctx, pathNodeInfo, nil, &resp); err != nil {
		return nil, err
	}
	return &types.NodeInfo{
		Network:    resp.DefaultNodeInfo.Network,
		Moniker:    resp.DefaultNodeInfo.Moniker,
		Version:    resp.DefaultNodeInfo.Version,
		AppName:    resp.ApplicationVersion.AppName,
		AppVersion: resp.ApplicationVersion.Version,
	}, nil
}

func (c *Client) LatestBlock(ctx context.Context) (*types.Block, error) {
	var resp struct {
		Block struct {
			Header struct {
				ChainID string    `json:"chain_id"`
				Height  string    `json:"height"`
				Time    time.Time `json:"time"`
			} `json:"header"`
			Data struct {
				Txs []string `json:"txs"`
			} `json:"data"`
		} `json:"block"`
	}
	if err := c.get(ctx, pathLatestBlock, nil, &resp); err != nil {
		return nil, err
	}
	height, err := strconv.ParseInt(resp.Block.Header.Height, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: block height %q: %w", ErrFailedToUnmarshalResponse, resp.Block.Header.Height, err)
	}
	return &types.Block{
		Height:  height,
		Time:    resp.Block.Header.Time,
		ChainID: resp.Block.Header.ChainID,
		NumTxs:  len(resp.Block.Data.Txs),
	}, nil
}

func (c *Client) ContractInfo(ctx context.Context, contract string) (*types.ContractInfo, error) {
	var resp struct {
		ContractAddress string `json:"contract_address"`
		ContractInfo    struct {
			CodeID  uint64String `json:"code_id"`
			Creator string       `json:"creator"`
			Label   string       `json:"label"`
			Admin   string       `json:"admin"`
		} `json:"contract_info"`
	}
	if err := c.get(ctx, pathContractInfo+url.PathEscape(contract), nil, &resp); err != nil {
		return nil, err
	}
	addr := resp.ContractAddress
	if addr == "" {
		addr = contract
	}
	return &types.ContractInfo{
		Address: addr,
		CodeID:  uint64(resp.ContractInfo.CodeID),
		Creator: resp.ContractInfo.Creator,
		Label:   resp.ContractInfo.Label,
		Admin:   resp.ContractInfo.Admin,
	}, nil
}

type codeHashResponse struct {
	CodeHash string `json:"code_hash"`
}

func (c *Client) CodeHashByContractAddress(ctx context.Context, contract string) (string, error) {
	var resp codeHashResponse
	if err := c.get(ctx, pathCodeHashByAddr+url.PathEscape(contract), nil, &resp); err != nil {
		return "", err
	}
	return resp.CodeHash, nil
}

func (c *Client) CodeHashByCodeID(ctx context.Context, codeID uint64) (string, error) {
	var resp codeHashResponse
	if err := c.get(ctx, pathCodeHashByID+strconv.FormatUint(codeID, 10), nil, &resp); err != nil {
		return "", err
	}
	return resp.CodeHash, nil
}

func (c *Client) QueryContract(ctx context.Context, contract, codeHash string, query []byte) (json.RawMessage, error) {
	enc, err := c.encryptionUtils(ctx)
	if err != nil {
		return nil, err
	}
	encrypted, err := enc.Encrypt(codeHash, query)
	if err != nil {
		return nil, fmt.Errorf("encrypt query: %w", err)
	}
	nonce := encrypted[:encryption.NonceSize]

	c.logger.Debug().Str(logging.FieldContract, contract).RawJSON("query", query).Msg("querying contract")

	var resp struct {
		Data string `json:"data"`
	}
	params := url.Values{"query": {base64.StdEncoding.EncodeToString(encrypted)}}
	if err := c.get(ctx, pathContractQuery+url.PathEscape(contract), params, &resp); err != nil {
		return nil, c.decryptError(err, enc, nonce)
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: data is not base64: %w", ErrFailedToUnmarshalResponse, err)
	}
	return enc.DecryptQueryResult(data, nonce)
}

// decryptError replaces an encrypted contract error with its plaintext when possible.
func (c *Client) decryptError(err error, enc *encryption.Utils, nonce []byte) error {
	m := encryptedErrorRe.FindStringSubmatch(err.Error())
	if m == nil {
		return err
	}
	ciphertext, decodeErr := base64.StdEncoding.DecodeString(m[1])
	if decodeErr != nil {
		return err
	}
	plain, decErr := enc.Decrypt(ciphertext, nonce)
	if decErr != nil {
		c.logger.Debug().Err(decErr).Msg("failed to decrypt contract error")
		return err
	}
	return fmt.Errorf("%w: %s", ErrContractQuery, plain)
}

// encryptionUtils fetches the consensus IO key once per client.
func (c *Client) encryptionUtils(ctx context.Context) (*encryption.Utils, error) {
	c.encMu.Lock()
	defer c.encMu.Unlock()

	if c.enc != nil {
		return c.enc, nil
	}

	var resp struct {
		Key string `json:"key"`
	}
	if err := c.get(ctx, pathTxKey, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch consensus io key: %w", err)
	}
	key, err := base64.StdEncoding.DecodeString(resp.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: consensus io key is not base64: %w", ErrFailedToUnmarshalResponse, err)
	}
	enc, err := encryption.New(key)
	if err != nil {
		return nil, err
	}
	c.enc = enc
	return enc, nil
}
