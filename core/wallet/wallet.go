// Package wallet derives the signing account from a BIP-39 mnemonic.
package wallet

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/erth-network/anml-cli/core/types"
	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"
)

// m/44'/529'/0'/0/0
const (
	PurposeBIP44 = bip32.FirstHardenedChild + 44
	CoinType     = bip32.FirstHardenedChild + 529
	Account      = bip32.FirstHardenedChild + 0
	Change       = 0
	Index        = 0
)

var ErrInvalidMnemonic = errors.New("invalid mnemonic")

type Wallet struct {
	key     *secp256k1.PrivateKey
	pubKey  []byte
	address types.Address
}

func FromMnemonic(mnemonic string) (*Wallet, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMnemonic, err)
	}

	key, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("create master key: %w", err)
	}
	for _, idx := range []uint32{PurposeBIP44, CoinType, Account, Change, Index} {
		if key, err = key.NewChildKey(idx); err != nil {
			return nil, fmt.Errorf("derive child %d: %w", idx, err)
		}
	}

	return FromPrivateKey(key.Key)
}

// FromPrivateKey wraps a raw 32-byte secp256k1 key. A 33-byte key with a leading zero is accepted.
func FromPrivateKey(raw []byte) (*Wallet, error) {
	if len(raw) == 33 && raw[0] == 0 {
		raw = raw[1:]
	}
	if len(raw) != 32 {
		return nil, fmt.Errorf("private key must be 32 bytes, got %d", len(raw))
	}
	priv := secp256k1.PrivKeyFromBytes(raw)
	pub := priv.PubKey().SerializeCompressed()
	return &Wallet{
		key:     priv,
		pubKey:  pub,
		address: types.AddressFromPubKey(pub),
	}, nil
}

func (w *Wallet) Address() types.Address {
	return w.address
}

// PubKey returns the 33-byte compressed public key.
func (w *Wallet) PubKey() []byte {
	return w.pubKey
}

// Sign returns the 64-byte R||S signature over sha256(msg).
func (w *Wallet) Sign(msg []byte) ([]byte, error) {
	hash := sha256.Sum256(msg)
	sig := ecdsa.SignCompact(w.key, hash[:], true)
	if len(sig) != 65 {
		return nil, fmt.Errorf("unexpected signature length %d", len(sig))
	}
	// drop the recovery byte
	return sig[1:], nil
}

// Verify checks a signature produced by Sign against pub.
func Verify(pub, msg, sig []byte) bool {
	if len(sig) != 64 {
		return false
	}
	key, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return false
	}
	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(sig[:32]); overflow {
		return false
	}
	if overflow := s.SetByteSlice(sig[32:]); overflow {
		return false
	}
	hash := sha256.Sum256(msg)
	return ecdsa.NewSignature(&r, &s).Verify(hash[:], key)
}
