package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	d := Default()
	assert.Equal(t, uint64(2211), d.CodeID())
	assert.Equal(t, "secret1ktpxcznqcls64t8tjyv3atwhndscgw08yp2jas", d.RegistrationAddress())

	reg := d.MustLookup(Registration)
	assert.Equal(t, "secret12q72eas34u8fyg68k6wnerk2nd6l5gaqppld6p", reg.Address)
	assert.Equal(t, "32cd885fe0753693d976ae405c1f098a1bacc49b6eceb7251fb31bacecfe5eb9", reg.CodeHash)

	assert.Equal(t, []Name{Anml, AnmlPool, Erth, Registration}, d.Names())

	_, ok := d.Lookup("UNKNOWN")
	assert.False(t, ok)
}

func TestLookup_ReturnsCopy(t *testing.T) {
	t.Parallel()

	c := Default().MustLookup(Anml)
	c.Address = "changed"
	assert.NotEqual(t, "changed", Default().MustLookup(Anml).Address)
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	for _, data := range []string{
		"not: [yaml",
		"defaults: {code_id: 0}",
		`defaults: {code_id: 1, registration_address: secret1ktpxcznqcls64t8tjyv3atwhndscgw08yp2jas}
contracts: {}`,
	} {
		_, err := Parse([]byte(data))
		require.ErrorIs(t, err, ErrInvalidDirectory)
	}
}
