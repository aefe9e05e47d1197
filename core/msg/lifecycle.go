package msg

import (
	"encoding/json"
	"fmt"
)

// InstantiateMsg is sent untagged as the contract's init message.
type InstantiateMsg struct {
	RegistrationAddress string `json:"registration_address"`
	RegistrationWallet  string `json:"registration_wallet"`
	ContractManager     string `json:"contract_manager"`
	AnmlTokenContract   string `json:"anml_token_contract"`
	AnmlTokenHash       string `json:"anml_token_hash"`
	ErthTokenContract   string `json:"erth_token_contract"`
	ErthTokenHash       string `json:"erth_token_hash"`
	AnmlPoolContract    string `json:"anml_pool_contract"`
	AnmlPoolHash        string `json:"anml_pool_hash"`
}

func (m *InstantiateMsg) Validate() error {
	return validateAddresses(map[string]string{
		"registration_address": m.RegistrationAddress,
		"registration_wallet":  m.RegistrationWallet,
		"contract_manager":     m.ContractManager,
		"anml_token_contract":  m.AnmlTokenContract,
		"erth_token_contract":  m.ErthTokenContract,
		"anml_pool_contract":   m.AnmlPoolContract,
	})
}

func MarshalInit(m *InstantiateMsg) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: instantiate: %w", ErrInvalidPayload, err)
	}
	return json.Marshal(m)
}

type Migrate struct{}

func (*Migrate) Tag() string     { return "migrate" }
func (*Migrate) Validate() error { return nil }
