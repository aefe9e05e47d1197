package tx

import (
	"testing"

	"github.com/erth-network/anml-cli/core/types"
	"github.com/erth-network/anml-cli/core/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

// fields decodes one level of a protobuf message into number -> raw values.
func fields(t *testing.T, b []byte) map[protowire.Number][][]byte {
	t.Helper()

	out := make(map[protowire.Number][][]byte)
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		require.GreaterOrEqual(t, n, 0)
		b = b[n:]
		switch typ {
		case protowire.BytesType:
			v, m := protowire.ConsumeBytes(b)
			require.GreaterOrEqual(t, m, 0)
			out[num] = append(out[num], v)
			b = b[m:]
		case protowire.VarintType:
			v, m := protowire.ConsumeVarint(b)
			require.GreaterOrEqual(t, m, 0)
			out[num] = append(out[num], protowire.AppendVarint(nil, v))
			b = b[m:]
		default:
			t.Fatalf("unexpected wire type %d", typ)
		}
	}
	return out
}

func varint(t *testing.T, b []byte) uint64 {
	t.Helper()

	v, n := protowire.ConsumeVarint(b)
	require.Equal(t, len(b), n)
	return v
}

func TestExecuteContract_Fields(t *testing.T) {
	t.Parallel()

	sender := types.MustParseAddress("secret12q72eas34u8fyg68k6wnerk2nd6l5gaqppld6p")
	contract := types.MustParseAddress("secret14p6dhjznntlzw0yysl7p6z069nk0skv5e9qjut")

	msg := ExecuteContract(sender, contract, []byte("enc"), []types.Coin{{Denom: "uscrt", Amount: "1"}})
	assert.Equal(t, "/secret.compute.v1beta1.MsgExecuteContract", msg.TypeURL)

	f := fields(t, msg.Value)
	assert.Equal(t, []byte(sender), f[1][0])
	assert.Equal(t, []byte(contract), f[2][0])
	assert.Equal(t, []byte("enc"), f[3][0])
	require.Len(t, f[5], 1)
	assert.Equal(t, "uscrt", string(fields(t, f[5][0])[1][0]))
}

func TestMigrateContract_UsesBech32Strings(t *testing.T) {
	t.Parallel()

	sender := types.MustParseAddress("secret12q72eas34u8fyg68k6wnerk2nd6l5gaqppld6p")
	msg := MigrateContract(sender, sender, 2211, []byte("enc"))

	f := fields(t, msg.Value)
	assert.Equal(t, sender.String(), string(f[1][0]))
	assert.Equal(t, uint64(2211), varint(t, f[3][0]))
}

func TestBuild_SignatureVerifies(t *testing.T) {
	t.Parallel()

	w, err := wallet.FromMnemonic(testMnemonic)
	require.NoError(t, err)

	msgs := []Any{StoreCode(w.Address(), []byte{0, 'a', 's', 'm'}, "", "")}
	fee := Fee{Amount: []types.Coin{{Denom: "uscrt", Amount: "400000"}}, GasLimit: 4_000_000}
	data := SignerData{ChainID: "secret-4", AccountNumber: 12, Sequence: 3}

	raw, err := Build(msgs, "", fee, data, w)
	require.NoError(t, err)

	again, err := Build(msgs, "", fee, data, w)
	require.NoError(t, err)
	assert.Equal(t, raw, again)

	f := fields(t, raw)
	require.Len(t, f[3], 1)
	body, authInfo, sig := f[1][0], f[2][0], f[3][0]

	assert.True(t, wallet.Verify(w.PubKey(), SignDocBytes(body, authInfo, "secret-4", 12), sig))
	assert.False(t, wallet.Verify(w.PubKey(), SignDocBytes(body, authInfo, "secret-4", 13), sig))

	anyMsg := fields(t, fields(t, body)[1][0])
	assert.Equal(t, "/secret.compute.v1beta1.MsgStoreCode", string(anyMsg[1][0]))

	auth := fields(t, authInfo)
	signer := fields(t, auth[1][0])
	assert.Equal(t, uint64(3), varint(t, signer[3][0]))
	feeFields := fields(t, auth[2][0])
	assert.Equal(t, uint64(4_000_000), varint(t, feeFields[2][0]))
}

func TestBuild_NoMessages(t *testing.T) {
	t.Parallel()

	w, err := wallet.FromMnemonic(testMnemonic)
	require.NoError(t, err)

	_, err = Build(nil, "", Fee{}, SignerData{}, w)
	require.ErrorIs(t, err, ErrNoMessages)
}
