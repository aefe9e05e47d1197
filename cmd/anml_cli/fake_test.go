package main

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/erth-network/anml-cli/cli/service"
	"github.com/erth-network/anml-cli/cmd/anml_cli/common"
	"github.com/erth-network/anml-cli/core/msg"
	"github.com/erth-network/anml-cli/core/types"
)

type call struct {
	Name string
	Args []any
}

// fakeOps records every operation. Operations listed in fail return err.
type fakeOps struct {
	mu    sync.Mutex
	calls []call
	fail  map[string]error
}

var _ common.Operations = (*fakeOps)(nil)

func (f *fakeOps) record(name string, args ...any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{Name: name, Args: args})
	return f.fail[name]
}

func (f *fakeOps) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func (f *fakeOps) Names() []string {
	var names []string
	for _, c := range f.Calls() {
		names = append(names, c.Name)
	}
	return names
}

func tx(err error) (*types.TxResponse, error) {
	if err != nil {
		return nil, err
	}
	return &types.TxResponse{TxHash: "FAKEHASH"}, nil
}

func (f *fakeOps) Upload(context.Context) (*service.UploadResult, error) {
	if err := f.record("Upload"); err != nil {
		return nil, err
	}
	return &service.UploadResult{CodeID: 7, CodeHash: "abc", TxHash: "FAKEHASH"}, nil
}

func (f *fakeOps) Instantiate(_ context.Context, codeID uint64, codeHash string) (*service.InstantiateResult, error) {
	if err := f.record("Instantiate", codeID, codeHash); err != nil {
		return nil, err
	}
	return &service.InstantiateResult{ContractAddress: "secret1new", TxHash: "FAKEHASH"}, nil
}

func (f *fakeOps) Migrate(_ context.Context, address string, codeID uint64, codeHash string) (*types.TxResponse, error) {
	return tx(f.record("Migrate", address, codeID, codeHash))
}

func (f *fakeOps) QueryState(_ context.Context, address, codeHash string) (json.RawMessage, error) {
	return json.RawMessage(`{}`), f.record("QueryState", address, codeHash)
}

func (f *fakeOps) QueryConfig(_ context.Context, address, codeHash string) (json.RawMessage, error) {
	return json.RawMessage(`{}`), f.record("QueryConfig", address, codeHash)
}

func (f *fakeOps) QueryAllocationOptions(_ context.Context, address, codeHash string) (json.RawMessage, error) {
	return json.RawMessage(`{}`), f.record("QueryAllocationOptions", address, codeHash)
}

func (f *fakeOps) QueryUserAllocations(_ context.Context, user, address, codeHash string) (json.RawMessage, error) {
	return json.RawMessage(`{}`), f.record("QueryUserAllocations", user, address, codeHash)
}

func (f *fakeOps) QueryRegistrationStatus(_ context.Context, user, address, codeHash string) (json.RawMessage, error) {
	return json.RawMessage(`{}`), f.record("QueryRegistrationStatus", user, address, codeHash)
}

func (f *fakeOps) QueryContractInfo(_ context.Context, address string) (*types.ContractInfo, error) {
	if err := f.record("QueryContractInfo", address); err != nil {
		return nil, err
	}
	return &types.ContractInfo{Address: address, CodeID: 2211}, nil
}

func (f *fakeOps) QueryNodeStatus(context.Context) (*types.Block, error) {
	if err := f.record("QueryNodeStatus"); err != nil {
		return nil, err
	}
	return &types.Block{Height: 100}, nil
}

func (f *fakeOps) GetCodeHash(_ context.Context, address string) (string, error) {
	return "c0ffee", f.record("GetCodeHash", address)
}

func (f *fakeOps) UpdateConfig(_ context.Context, address, codeHash string, opts service.ConfigOptions) (*types.TxResponse, error) {
	return tx(f.record("UpdateConfig", address, codeHash, opts))
}

func (f *fakeOps) AddAllocation(
	_ context.Context, address, codeHash string, opts service.AllocationOptions,
) (*types.TxResponse, error) {
	return tx(f.record("AddAllocation", address, codeHash, opts))
}

func (f *fakeOps) ClaimAllocation(_ context.Context, address, codeHash string, id uint32) (*types.TxResponse, error) {
	return tx(f.record("ClaimAllocation", address, codeHash, id))
}

func (f *fakeOps) SetAllocationPercentages(
	_ context.Context, address, codeHash string, percentages []msg.AllocationPercentage,
) (*types.TxResponse, error) {
	return tx(f.record("SetAllocationPercentages", address, codeHash, percentages))
}

func (f *fakeOps) EditAllocation(
	_ context.Context, address, codeHash string, id uint32, opts service.AllocationOptions,
) (*types.TxResponse, error) {
	return tx(f.record("EditAllocation", address, codeHash, id, opts))
}

func (f *fakeOps) AddMinter(_ context.Context, minter string) (*types.TxResponse, error) {
	return tx(f.record("AddMinter", minter))
}

// recordingFactory counts how often Operations were requested.
type recordingFactory struct {
	ops   *fakeOps
	err   error
	mu    sync.Mutex
	calls int
}

func (r *recordingFactory) build(service.Config, io.Writer) (common.Operations, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.ops, nil
}

func (r *recordingFactory) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}
