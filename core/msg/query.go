package msg

import (
	"errors"

	"github.com/erth-network/anml-cli/core/types"
)

type QueryState struct{}

func (*QueryState) Tag() string     { return "query_state" }
func (*QueryState) Validate() error { return nil }

type QueryConfig struct{}

func (*QueryConfig) Tag() string     { return "query_config" }
func (*QueryConfig) Validate() error { return nil }

type QueryAllocationOptions struct{}

func (*QueryAllocationOptions) Tag() string     { return "query_allocation_options" }
func (*QueryAllocationOptions) Validate() error { return nil }

type QueryRegistrationStatus struct {
	Address string `json:"address"`
}

func (*QueryRegistrationStatus) Tag() string { return "query_registration_status" }

func (q *QueryRegistrationStatus) Validate() error { return validateUser(q.Address) }

type QueryUserAllocations struct {
	Address string `json:"address"`
}

func (*QueryUserAllocations) Tag() string { return "query_user_allocations" }

func (q *QueryUserAllocations) Validate() error { return validateUser(q.Address) }

func validateUser(addr string) error {
	if addr == "" {
		return errors.New("address is required")
	}
	_, err := types.ParseAddress(addr)
	return err
}
