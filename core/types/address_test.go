package types

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBech32_Vector(t *testing.T) {
	t.Parallel()

	hrp, data, err := Bech32Decode("A12UEL5L")
	require.NoError(t, err)
	assert.Equal(t, "a", hrp)
	assert.Empty(t, data)

	_, _, err = Bech32Decode("a12uel5m")
	require.ErrorIs(t, err, ErrBech32Checksum)

	_, _, err = Bech32Decode("A12uEL5L")
	require.ErrorIs(t, err, ErrBech32Format)
}

func TestParseAddress_KnownContracts(t *testing.T) {
	t.Parallel()

	for _, s := range []string{
		"secret12q72eas34u8fyg68k6wnerk2nd6l5gaqppld6p",
		"secret16snu3lt8k9u0xr54j2hqyhvwnx9my7kq7ay8lp",
		"secret14p6dhjznntlzw0yysl7p6z069nk0skv5e9qjut",
		"secret1rj2phrf6x3v7526jrz60m2dcq58slyq2269kra",
	} {
		addr, err := ParseAddress(s)
		require.NoError(t, err, s)
		assert.Len(t, addr, 20)
		assert.Equal(t, s, addr.String())
	}
}

func TestParseAddress_WrongPrefix(t *testing.T) {
	t.Parallel()

	s, err := Bech32Encode("cosmos", bytes.Repeat([]byte{1}, 20))
	require.NoError(t, err)

	_, err = ParseAddress(s)
	require.ErrorIs(t, err, ErrInvalidAddress)
}

func TestAddressFromPubKey(t *testing.T) {
	t.Parallel()

	pub := append([]byte{0x02}, bytes.Repeat([]byte{0xab}, 32)...)
	a := AddressFromPubKey(pub)
	require.Len(t, a, 20)
	assert.Equal(t, a, AddressFromPubKey(pub))

	parsed, err := ParseAddress(a.String())
	require.NoError(t, err)
	assert.Equal(t, a, parsed)
}
