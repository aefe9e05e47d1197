package msg

import (
	"encoding/json"
	"fmt"

	"github.com/holiman/uint256"
)

// Uint128 is an unsigned 128-bit integer serialized as a decimal string.
type Uint128 struct {
	v uint256.Int
}

func NewUint128(n uint64) Uint128 {
	var u Uint128
	u.v.SetUint64(n)
	return u
}

func ParseUint128(s string) (Uint128, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return Uint128{}, fmt.Errorf("parse %q as Uint128: %w", s, err)
	}
	if v.BitLen() > 128 {
		return Uint128{}, fmt.Errorf("%q overflows Uint128", s)
	}
	return Uint128{v: *v}, nil
}

func (u Uint128) String() string {
	return u.v.Dec()
}

func (u Uint128) IsZero() bool {
	return u.v.IsZero()
}

func (u Uint128) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

func (u *Uint128) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseUint128(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
