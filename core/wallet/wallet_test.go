package wallet

import (
	"strings"
	"testing"

	"github.com/erth-network/anml-cli/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestFromMnemonic_Deterministic(t *testing.T) {
	t.Parallel()

	w1, err := FromMnemonic(testMnemonic)
	require.NoError(t, err)
	w2, err := FromMnemonic("  " + strings.ReplaceAll(testMnemonic, " ", "  ") + "\n")
	require.NoError(t, err)

	addr := w1.Address().String()
	assert.True(t, strings.HasPrefix(addr, "secret1"), addr)
	assert.Len(t, addr, 45)
	assert.Equal(t, addr, w2.Address().String())
	assert.Len(t, w1.PubKey(), 33)

	parsed, err := types.ParseAddress(addr)
	require.NoError(t, err)
	assert.Equal(t, w1.Address(), parsed)
}

func TestFromMnemonic_Invalid(t *testing.T) {
	t.Parallel()

	_, err := FromMnemonic("abandon abandon abandon")
	require.ErrorIs(t, err, ErrInvalidMnemonic)

	_, err = FromMnemonic("")
	require.ErrorIs(t, err, ErrInvalidMnemonic)
}

func TestSign_Verifies(t *testing.T) {
	t.Parallel()

	w, err := FromMnemonic(testMnemonic)
	require.NoError(t, err)

	msg := []byte("sign doc bytes")
	sig, err := w.Sign(msg)
	require.NoError(t, err)
	require.Len(t, sig, 64)

	assert.True(t, Verify(w.PubKey(), msg, sig))
	assert.False(t, Verify(w.PubKey(), []byte("other"), sig))

	again, err := w.Sign(msg)
	require.NoError(t, err)
	assert.Equal(t, sig, again)
}

func TestFromPrivateKey_RejectsBadLength(t *testing.T) {
	t.Parallel()

	_, err := FromPrivateKey(make([]byte, 31))
	require.Error(t, err)
}
