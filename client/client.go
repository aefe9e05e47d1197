package client

import (
	"context"
	"encoding/json"

	"github.com/erth-network/anml-cli/core/types"
)

// Client defines the interface for interacting with a Secret Network node.
type Client interface {
	// NodeInfo returns the network id and version of the node.
	NodeInfo(ctx context.Context) (*types.NodeInfo, error)

	// LatestBlock returns the header summary of the most recent block.
	LatestBlock(ctx context.Context) (*types.Block, error)

	ContractInfo(ctx context.Context, contract string) (*types.ContractInfo, error)

	CodeHashByContractAddress(ctx context.Context, contract string) (string, error)

	CodeHashByCodeID(ctx context.Context, codeID uint64) (string, error)

	// QueryContract sends an encrypted read-only query and returns the decrypted JSON answer.
	QueryContract(ctx context.Context, contract, codeHash string, query []byte) (json.RawMessage, error)

	// Broadcast signs msgs into one transaction, broadcasts it and waits until it is included.
	// A response with a non-zero code is returned without an error.
	Broadcast(ctx context.Context, msgs []types.Msg, params types.TxParams) (*types.TxResponse, error)
}
