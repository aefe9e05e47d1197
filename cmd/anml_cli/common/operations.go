package common

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/erth-network/anml-cli/cli/service"
	"github.com/erth-network/anml-cli/client/lcd"
	"github.com/erth-network/anml-cli/common/concurrent"
	"github.com/erth-network/anml-cli/common/logging"
	"github.com/erth-network/anml-cli/contracts"
	"github.com/erth-network/anml-cli/core/msg"
	"github.com/erth-network/anml-cli/core/types"
)

// Operations is the set of contract operations the commands dispatch to.
type Operations interface {
	Upload(ctx context.Context) (*service.UploadResult, error)
	Instantiate(ctx context.Context, codeID uint64, codeHash string) (*service.InstantiateResult, error)
	Migrate(ctx context.Context, address string, codeID uint64, codeHash string) (*types.TxResponse, error)

	QueryState(ctx context.Context, address, codeHash string) (json.RawMessage, error)
	QueryConfig(ctx context.Context, address, codeHash string) (json.RawMessage, error)
	QueryAllocationOptions(ctx context.Context, address, codeHash string) (json.RawMessage, error)
	QueryUserAllocations(ctx context.Context, user, address, codeHash string) (json.RawMessage, error)
	QueryRegistrationStatus(ctx context.Context, user, address, codeHash string) (json.RawMessage, error)
	QueryContractInfo(ctx context.Context, address string) (*types.ContractInfo, error)
	QueryNodeStatus(ctx context.Context) (*types.Block, error)
	GetCodeHash(ctx context.Context, address string) (string, error)

	UpdateConfig(ctx context.Context, address, codeHash string, opts service.ConfigOptions) (*types.TxResponse, error)
	AddAllocation(ctx context.Context, address, codeHash string, opts service.AllocationOptions) (*types.TxResponse, error)
	ClaimAllocation(ctx context.Context, address, codeHash string, allocationID uint32) (*types.TxResponse, error)
	SetAllocationPercentages(
		ctx context.Context, address, codeHash string, percentages []msg.AllocationPercentage,
	) (*types.TxResponse, error)
	EditAllocation(
		ctx context.Context, address, codeHash string, allocationID uint32, opts service.AllocationOptions,
	) (*types.TxResponse, error)
	AddMinter(ctx context.Context, minter string) (*types.TxResponse, error)
}

var _ Operations = (*service.Service)(nil)

// OperationsFactory builds the Operations for a loaded configuration. Results are printed to out.
type OperationsFactory func(cfg service.Config, out io.Writer) (Operations, error)

// ServiceFactory talks to the node over its LCD REST API.
func ServiceFactory(cfg service.Config, out io.Writer) (Operations, error) {
	dial := lcd.NewDialer(logging.NewLogger("lcd"),
		lcd.WithHTTPClient(http.Client{Timeout: concurrent.QueryTimeout}))
	return service.NewService(cfg, dial, contracts.Default(), out), nil
}
