package service

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/erth-network/anml-cli/client"
	"github.com/erth-network/anml-cli/client/mock"
	"github.com/erth-network/anml-cli/contracts"
	"github.com/erth-network/anml-cli/core/types"
	"github.com/erth-network/anml-cli/core/wallet"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

var (
	registration = contracts.Default().MustLookup(contracts.Registration)
	anml         = contracts.Default().MustLookup(contracts.Anml)
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Mnemonic = testMnemonic
	return cfg
}

func testWalletAddress(t *testing.T) string {
	t.Helper()

	w, err := wallet.FromMnemonic(testMnemonic)
	require.NoError(t, err)
	return w.Address().String()
}

func mockDialer(c client.Client) Dialer {
	return func(string, string, *wallet.Wallet) client.Client {
		return c
	}
}

func newTestService(t *testing.T, mc *mock.MockClient, opts ...Option) (*Service, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer
	opts = append([]Option{WithLogger(zerolog.Nop())}, opts...)
	return NewService(testConfig(), mockDialer(mc), contracts.Default(), &out, opts...), &out
}

// executed returns the single execute message broadcast through mc and its decoded payload.
func executed(t *testing.T, mc *mock.MockClient) (types.MsgExecuteContract, map[string]any) {
	t.Helper()

	calls := mc.Broadcasts()
	require.Len(t, calls, 1)
	require.Len(t, calls[0].Msgs, 1)
	m, ok := calls[0].Msgs[0].(types.MsgExecuteContract)
	require.True(t, ok, "unexpected message %T", calls[0].Msgs[0])

	var payload map[string]any
	require.NoError(t, json.Unmarshal(m.Msg, &payload))
	return m, payload
}
