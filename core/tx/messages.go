// Package tx encodes Secret compute messages and cosmos SIGN_MODE_DIRECT transactions
// with protowire. Only the fields this client sends are encoded; zero values are
// omitted as proto3 requires.
package tx

import (
	"github.com/erth-network/anml-cli/core/types"
	"google.golang.org/protobuf/encoding/protowire"
)

// Any mirrors google.protobuf.Any.
type Any struct {
	TypeURL string
	Value   []byte
}

func (a Any) marshal() []byte {
	var b []byte
	b = appendString(b, 1, a.TypeURL)
	return appendBytes(b, 2, a.Value)
}

// StoreCode encodes MsgStoreCode.
func StoreCode(sender types.Address, wasm []byte, source, builder string) Any {
	var b []byte
	b = appendBytes(b, 1, sender)
	b = appendBytes(b, 2, wasm)
	b = appendString(b, 3, source)
	b = appendString(b, 4, builder)
	return Any{TypeURL: types.MsgStoreCode{}.TypeURL(), Value: b}
}

// InstantiateContract encodes MsgInstantiateContract. initMsg must already be encrypted.
func InstantiateContract(sender types.Address, codeID uint64, label string, initMsg []byte, funds []types.Coin, admin string) Any {
	var b []byte
	b = appendBytes(b, 1, sender)
	b = appendVarint(b, 3, codeID)
	b = appendString(b, 4, label)
	b = appendBytes(b, 5, initMsg)
	for _, c := range funds {
		b = appendMessage(b, 6, coin(c))
	}
	b = appendString(b, 8, admin)
	return Any{TypeURL: types.MsgInstantiateContract{}.TypeURL(), Value: b}
}

// ExecuteContract encodes MsgExecuteContract. msg must already be encrypted.
func ExecuteContract(sender, contract types.Address, msg []byte, funds []types.Coin) Any {
	var b []byte
	b = appendBytes(b, 1, sender)
	b = appendBytes(b, 2, contract)
	b = appendBytes(b, 3, msg)
	for _, c := range funds {
		b = appendMessage(b, 5, coin(c))
	}
	return Any{TypeURL: types.MsgExecuteContract{}.TypeURL(), Value: b}
}

// MigrateContract encodes MsgMigrateContract; addresses are bech32 strings in this message.
func MigrateContract(sender, contract types.Address, codeID uint64, msg []byte) Any {
	var b []byte
	b = appendString(b, 1, sender.String())
	b = appendString(b, 2, contract.String())
	b = appendVarint(b, 3, codeID)
	b = appendBytes(b, 4, msg)
	return Any{TypeURL: types.MsgMigrateContract{}.TypeURL(), Value: b}
}

func coin(c types.Coin) []byte {
	var b []byte
	b = appendString(b, 1, c.Denom)
	return appendString(b, 2, c.Amount)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

// appendMessage always emits the field, even for an empty embedded message.
func appendMessage(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}
