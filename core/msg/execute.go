package msg

import (
	"errors"
	"fmt"

	"github.com/erth-network/anml-cli/core/types"
)

// DefaultRegistrationValiditySeconds is one year.
const DefaultRegistrationValiditySeconds uint64 = 365 * 24 * 60 * 60

// Config is the registration contract configuration. MaxRegistrations is only understood
// by older contract versions and is sent only when set.
type Config struct {
	RegistrationAddress         string  `json:"registration_address"`
	RegistrationWallet          string  `json:"registration_wallet"`
	ContractManager             string  `json:"contract_manager"`
	MaxRegistrations            *uint32 `json:"max_registrations,omitempty"`
	RegistrationValiditySeconds uint64  `json:"registration_validity_seconds"`
	AnmlTokenContract           string  `json:"anml_token_contract"`
	AnmlTokenHash               string  `json:"anml_token_hash"`
	ErthTokenContract           string  `json:"erth_token_contract"`
	ErthTokenHash               string  `json:"erth_token_hash"`
	AnmlPoolContract            string  `json:"anml_pool_contract"`
	AnmlPoolHash                string  `json:"anml_pool_hash"`
}

func (c *Config) Validate() error {
	if c.RegistrationValiditySeconds == 0 {
		return errors.New("registration_validity_seconds must be positive")
	}
	return validateAddresses(map[string]string{
		"registration_address": c.RegistrationAddress,
		"registration_wallet":  c.RegistrationWallet,
		"contract_manager":     c.ContractManager,
		"anml_token_contract":  c.AnmlTokenContract,
		"erth_token_contract":  c.ErthTokenContract,
		"anml_pool_contract":   c.AnmlPoolContract,
	})
}

type UpdateConfig struct {
	Config Config `json:"config"`
}

func (*UpdateConfig) Tag() string { return "update_config" }

func (m *UpdateConfig) Validate() error { return m.Config.Validate() }

// AllocationConfig describes where an allocation's rewards go and who controls it.
// Nil optional fields are sent as null.
type AllocationConfig struct {
	ReceiveAddr string  `json:"receive_addr"`
	ReceiveHash *string `json:"receive_hash"`
	ManagerAddr *string `json:"manager_addr"`
	ClaimerAddr *string `json:"claimer_addr"`
	UseSend     bool    `json:"use_send"`
}

func (c *AllocationConfig) Validate() error {
	if _, err := types.ParseAddress(c.ReceiveAddr); err != nil {
		return fmt.Errorf("receive_addr: %w", err)
	}
	for name, addr := range map[string]*string{"manager_addr": c.ManagerAddr, "claimer_addr": c.ClaimerAddr} {
		if addr == nil {
			continue
		}
		if _, err := types.ParseAddress(*addr); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

type AddAllocation AllocationConfig

func (*AddAllocation) Tag() string { return "add_allocation" }

func (m *AddAllocation) Validate() error { return (*AllocationConfig)(m).Validate() }

type ClaimAllocation struct {
	AllocationID uint32 `json:"allocation_id"`
}

func (*ClaimAllocation) Tag() string { return "claim_allocation" }

func (*ClaimAllocation) Validate() error { return nil }

type AllocationPercentage struct {
	AllocationID uint32  `json:"allocation_id"`
	Percentage   Uint128 `json:"percentage"`
}

// DefaultPercentages routes everything to allocation 1.
func DefaultPercentages() []AllocationPercentage {
	return []AllocationPercentage{{AllocationID: 1, Percentage: NewUint128(100)}}
}

type SetAllocation struct {
	Percentages []AllocationPercentage `json:"percentages"`
}

func (*SetAllocation) Tag() string { return "set_allocation" }

func (m *SetAllocation) Validate() error {
	if len(m.Percentages) == 0 {
		return errors.New("percentages must not be empty")
	}
	seen := make(map[uint32]struct{}, len(m.Percentages))
	for _, p := range m.Percentages {
		if _, ok := seen[p.AllocationID]; ok {
			return fmt.Errorf("duplicate allocation_id %d", p.AllocationID)
		}
		seen[p.AllocationID] = struct{}{}
	}
	return nil
}

type EditAllocation struct {
	AllocationID uint32           `json:"allocation_id"`
	Config       AllocationConfig `json:"config"`
}

func (*EditAllocation) Tag() string { return "edit_allocation" }

func (m *EditAllocation) Validate() error { return m.Config.Validate() }

// SetMinters is executed on the ANML token contract.
type SetMinters struct {
	Minters []string `json:"minters"`
}

func (*SetMinters) Tag() string { return "set_minters" }

func (m *SetMinters) Validate() error {
	if len(m.Minters) == 0 {
		return errors.New("minters must not be empty")
	}
	for _, addr := range m.Minters {
		if _, err := types.ParseAddress(addr); err != nil {
			return err
		}
	}
	return nil
}

func validateAddresses(fields map[string]string) error {
	for name, addr := range fields {
		if _, err := types.ParseAddress(addr); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
