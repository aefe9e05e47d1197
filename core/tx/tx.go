package tx

import (
	"errors"
	"fmt"

	"github.com/erth-network/anml-cli/core/types"
)

const (
	pubKeyTypeURL  = "/cosmos.crypto.secp256k1.PubKey"
	signModeDirect = 1
)

var ErrNoMessages = errors.New("transaction has no messages")

type Signer interface {
	PubKey() []byte
	Sign(msg []byte) ([]byte, error)
}

// SignerData is the account state the signature commits to.
type SignerData struct {
	ChainID       string
	AccountNumber uint64
	Sequence      uint64
}

type Fee struct {
	Amount   []types.Coin
	GasLimit uint64
}

func BodyBytes(msgs []Any, memo string) []byte {
	var b []byte
	for _, m := range msgs {
		b = appendMessage(b, 1, m.marshal())
	}
	return appendString(b, 2, memo)
}

func AuthInfoBytes(pubKey []byte, sequence uint64, fee Fee) []byte {
	pk := Any{TypeURL: pubKeyTypeURL, Value: appendBytes(nil, 1, pubKey)}

	single := appendVarint(nil, 1, signModeDirect)
	modeInfo := appendMessage(nil, 1, single)

	var signer []byte
	signer = appendMessage(signer, 1, pk.marshal())
	signer = appendMessage(signer, 2, modeInfo)
	signer = appendVarint(signer, 3, sequence)

	var feeBytes []byte
	for _, c := range fee.Amount {
		feeBytes = appendMessage(feeBytes, 1, coin(c))
	}
	feeBytes = appendVarint(feeBytes, 2, fee.GasLimit)

	var b []byte
	b = appendMessage(b, 1, signer)
	return appendMessage(b, 2, feeBytes)
}

func SignDocBytes(body, authInfo []byte, chainID string, accountNumber uint64) []byte {
	var b []byte
	b = appendBytes(b, 1, body)
	b = appendBytes(b, 2, authInfo)
	b = appendString(b, 3, chainID)
	return appendVarint(b, 4, accountNumber)
}

func RawBytes(body, authInfo []byte, signatures ...[]byte) []byte {
	var b []byte
	b = appendBytes(b, 1, body)
	b = appendBytes(b, 2, authInfo)
	for _, s := range signatures {
		b = appendMessage(b, 3, s)
	}
	return b
}

// Build encodes, signs and wraps msgs into TxRaw bytes ready for broadcast.
func Build(msgs []Any, memo string, fee Fee, data SignerData, signer Signer) ([]byte, error) {
	if len(msgs) == 0 {
		return nil, ErrNoMessages
	}
	body := BodyBytes(msgs, memo)
	authInfo := AuthInfoBytes(signer.PubKey(), data.Sequence, fee)

	sig, err := signer.Sign(SignDocBytes(body, authInfo, data.ChainID, data.AccountNumber))
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}
	return RawBytes(body, authInfo, sig), nil
}
