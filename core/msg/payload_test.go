package msg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	registration = "secret12q72eas34u8fyg68k6wnerk2nd6l5gaqppld6p"
	anml         = "secret14p6dhjznntlzw0yysl7p6z069nk0skv5e9qjut"
)

func ptr[T any](v T) *T { return &v }

func TestMarshal_TaggedEmptyVariants(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		p    Payload
		want string
	}{
		{&QueryState{}, `{"query_state":{}}`},
		{&QueryConfig{}, `{"query_config":{}}`},
		{&QueryAllocationOptions{}, `{"query_allocation_options":{}}`},
		{&Migrate{}, `{"migrate":{}}`},
		{&ClaimAllocation{AllocationID: 3}, `{"claim_allocation":{"allocation_id":3}}`},
	} {
		data, err := Marshal(tc.p)
		require.NoError(t, err)
		assert.JSONEq(t, tc.want, string(data))
	}
}

func TestMarshal_AddAllocationUsesReceiveFields(t *testing.T) {
	t.Parallel()

	data, err := Marshal(&AddAllocation{
		ReceiveAddr: registration,
		ReceiveHash: ptr("abc"),
		ManagerAddr: ptr(anml),
		UseSend:     true,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"add_allocation":{
		"receive_addr":"`+registration+`",
		"receive_hash":"abc",
		"manager_addr":"`+anml+`",
		"claimer_addr":null,
		"use_send":true}}`, string(data))
}

func TestMarshal_SetAllocationDefault(t *testing.T) {
	t.Parallel()

	data, err := Marshal(&SetAllocation{Percentages: DefaultPercentages()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"set_allocation":{"percentages":[{"allocation_id":1,"percentage":"100"}]}}`, string(data))
}

func TestMarshal_RejectsInvalid(t *testing.T) {
	t.Parallel()

	for _, p := range []Payload{
		&SetAllocation{},
		&SetAllocation{Percentages: []AllocationPercentage{{AllocationID: 1}, {AllocationID: 1}}},
		&AddAllocation{ReceiveAddr: "not-an-address"},
		&SetMinters{},
		&SetMinters{Minters: []string{"cosmos1xyz"}},
		&QueryUserAllocations{},
		&UpdateConfig{},
	} {
		_, err := Marshal(p)
		require.ErrorIs(t, err, ErrInvalidPayload, p.Tag())
	}
}

func TestMarshal_UpdateConfigValidity(t *testing.T) {
	t.Parallel()

	cfg := Config{
		RegistrationAddress:         registration,
		RegistrationWallet:          registration,
		ContractManager:             registration,
		RegistrationValiditySeconds: DefaultRegistrationValiditySeconds,
		AnmlTokenContract:           anml,
		ErthTokenContract:           anml,
		AnmlPoolContract:            anml,
	}
	data, err := Marshal(&UpdateConfig{Config: cfg})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"registration_validity_seconds":31536000`)
	assert.NotContains(t, string(data), "max_registrations")

	cfg.MaxRegistrations = ptr(uint32(50))
	data, err = Marshal(&UpdateConfig{Config: cfg})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"max_registrations":50`)

	cfg.RegistrationValiditySeconds = 0
	_, err = Marshal(&UpdateConfig{Config: cfg})
	require.ErrorIs(t, err, ErrInvalidPayload)
}

func TestUint128(t *testing.T) {
	t.Parallel()

	limit := "340282366920938463463374607431768211455"
	u, err := ParseUint128(limit)
	require.NoError(t, err)
	assert.Equal(t, limit, u.String())

	_, err = ParseUint128("340282366920938463463374607431768211456")
	require.Error(t, err)

	_, err = ParseUint128("-1")
	require.Error(t, err)

	var decoded Uint128
	require.NoError(t, decoded.UnmarshalJSON([]byte(`"42"`)))
	assert.Equal(t, "42", decoded.String())
}
