package mock

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/erth-network/anml-cli/client"
	"github.com/erth-network/anml-cli/core/types"
)

type QueryCall struct {
	Contract string
	CodeHash string
	Query    json.RawMessage
}

type BroadcastCall struct {
	Msgs   []types.Msg
	Params types.TxParams
}

// MockClient returns the configured results. Err, when set, is returned by every method.
// Per-method hooks override the static results.
type MockClient struct {
	Node         *types.NodeInfo
	Block        *types.Block
	Info         *types.ContractInfo
	CodeHash     string
	QueryResult  json.RawMessage
	TxResponse   *types.TxResponse
	Err          error
	NodeInfoErr  error
	QueryFn      func(contract, codeHash string, query []byte) (json.RawMessage, error)
	BroadcastFn  func(msgs []types.Msg, params types.TxParams) (*types.TxResponse, error)
	NodeInfoHook func(ctx context.Context) error

	mu         sync.Mutex
	queries    []QueryCall
	broadcasts []BroadcastCall
	nodeInfos  int
}

var _ client.Client = (*MockClient)(nil)

func (m *MockClient) NodeInfo(ctx context.Context) (*types.NodeInfo, error) {
	m.mu.Lock()
	m.nodeInfos++
	m.mu.Unlock()

	if m.NodeInfoHook != nil {
		if err := m.NodeInfoHook(ctx); err != nil {
			return nil, err
		}
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.NodeInfoErr != nil {
		return nil, m.NodeInfoErr
	}
	if m.Node != nil {
		return m.Node, nil
	}
	return &types.NodeInfo{Network: "secret-4"}, nil
}

func (m *MockClient) LatestBlock(context.Context) (*types.Block, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Block != nil {
		return m.Block, nil
	}
	return &types.Block{}, nil
}

func (m *MockClient) ContractInfo(_ context.Context, contract string) (*types.ContractInfo, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Info != nil {
		return m.Info, nil
	}
	return &types.ContractInfo{Address: contract}, nil
}

func (m *MockClient) CodeHashByContractAddress(context.Context, string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.CodeHash, nil
}

func (m *MockClient) CodeHashByCodeID(context.Context, uint64) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.CodeHash, nil
}

func (m *MockClient) QueryContract(_ context.Context, contract, codeHash string, query []byte) (json.RawMessage, error) {
	m.mu.Lock()
	m.queries = append(m.queries, QueryCall{Contract: contract, CodeHash: codeHash, Query: query})
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if m.QueryFn != nil {
		return m.QueryFn(contract, codeHash, query)
	}
	if m.QueryResult != nil {
		return m.QueryResult, nil
	}
	return json.RawMessage(`{}`), nil
}

func (m *MockClient) Broadcast(_ context.Context, msgs []types.Msg, params types.TxParams) (*types.TxResponse, error) {
	m.mu.Lock()
	m.broadcasts = append(m.broadcasts, BroadcastCall{Msgs: msgs, Params: params})
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if m.BroadcastFn != nil {
		return m.BroadcastFn(msgs, params)
	}
	if m.TxResponse != nil {
		return m.TxResponse, nil
	}
	return &types.TxResponse{TxHash: "MOCKHASH"}, nil
}

func (m *MockClient) Queries() []QueryCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]QueryCall(nil), m.queries...)
}

func (m *MockClient) Broadcasts() []BroadcastCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]BroadcastCall(nil), m.broadcasts...)
}

func (m *MockClient) NodeInfoCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nodeInfos
}
