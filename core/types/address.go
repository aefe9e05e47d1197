package types

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck
)

// AddressPrefix is the bech32 human-readable part of account and contract addresses.
const AddressPrefix = "secret"

var ErrInvalidAddress = errors.New("invalid address")

// Address is the raw byte form of a bech32 account or contract address.
type Address []byte

func ParseAddress(s string) (Address, error) {
	hrp, data, err := Bech32Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidAddress, s, err)
	}
	if hrp != AddressPrefix {
		return nil, fmt.Errorf("%w %q: prefix %q, expected %q", ErrInvalidAddress, s, hrp, AddressPrefix)
	}
	if len(data) != 20 && len(data) != 32 {
		return nil, fmt.Errorf("%w %q: length %d", ErrInvalidAddress, s, len(data))
	}
	return Address(data), nil
}

func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// AddressFromPubKey hashes a compressed secp256k1 public key: ripemd160(sha256(pub)).
func AddressFromPubKey(pub []byte) Address {
	sha := sha256.Sum256(pub)
	h := ripemd160.New()
	h.Write(sha[:])
	return Address(h.Sum(nil))
}

func (a Address) String() string {
	if len(a) == 0 {
		return ""
	}
	s, err := Bech32Encode(AddressPrefix, a)
	if err != nil {
		// byte input always regroups cleanly
		panic(err)
	}
	return s
}
