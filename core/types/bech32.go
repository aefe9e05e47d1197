package types

import (
	"errors"
	"fmt"
	"strings"
)

const bech32Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

var (
	ErrBech32Checksum = errors.New("bech32: invalid checksum")
	ErrBech32Format   = errors.New("bech32: malformed string")
)

// -1 marks characters outside the charset
var bech32CharsetRev [128]int8

func init() {
	for i := range bech32CharsetRev {
		bech32CharsetRev[i] = -1
	}
	for i, c := range bech32Charset {
		bech32CharsetRev[c] = int8(i)
	}
}

// Bech32Encode encodes data under the human-readable part hrp (BIP-173).
func Bech32Encode(hrp string, data []byte) (string, error) {
	if hrp == "" {
		return "", fmt.Errorf("%w: empty hrp", ErrBech32Format)
	}
	for _, c := range hrp {
		if c < 33 || c > 126 {
			return "", fmt.Errorf("%w: invalid hrp character %q", ErrBech32Format, c)
		}
	}

	groups, err := regroupBits(data, 8, 5, true)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(len(hrp) + 1 + len(groups) + 6)
	sb.WriteString(hrp)
	sb.WriteByte('1')
	for _, g := range groups {
		sb.WriteByte(bech32Charset[g])
	}
	for _, g := range bech32Checksum(hrp, groups) {
		sb.WriteByte(bech32Charset[g])
	}
	return sb.String(), nil
}

// Bech32Decode returns the human-readable part and the payload bytes of s.
func Bech32Decode(s string) (string, []byte, error) {
	if strings.ToLower(s) != s && strings.ToUpper(s) != s {
		return "", nil, fmt.Errorf("%w: mixed case", ErrBech32Format)
	}
	s = strings.ToLower(s)

	sep := strings.LastIndexByte(s, '1')
	if sep < 1 || sep+7 > len(s) {
		return "", nil, fmt.Errorf("%w: bad separator position", ErrBech32Format)
	}

	hrp, payload := s[:sep], s[sep+1:]
	groups := make([]byte, len(payload))
	for i := range len(payload) {
		c := payload[i]
		if c >= 128 || bech32CharsetRev[c] < 0 {
			return "", nil, fmt.Errorf("%w: invalid character %q", ErrBech32Format, c)
		}
		groups[i] = byte(bech32CharsetRev[c])
	}

	if bech32Polymod(append(bech32ExpandHrp(hrp), groups...)) != 1 {
		return "", nil, ErrBech32Checksum
	}

	data, err := regroupBits(groups[:len(groups)-6], 5, 8, false)
	if err != nil {
		return "", nil, err
	}
	return hrp, data, nil
}

func bech32Polymod(values []byte) uint32 {
	gen := [5]uint32{0x3b6a57b2, 0x26508e6d, 0x1ea119fa, 0x3d4233dd, 0x2a1462b3}
	chk := uint32(1)
	for _, v := range values {
		top := chk >> 25
		chk = (chk&0x1ffffff)<<5 ^ uint32(v)
		for i := range 5 {
			if (top>>uint(i))&1 == 1 {
				chk ^= gen[i]
			}
		}
	}
	return chk
}

func bech32ExpandHrp(hrp string) []byte {
	out := make([]byte, 0, len(hrp)*2+1)
	for i := range len(hrp) {
		out = append(out, hrp[i]>>5)
	}
	out = append(out, 0)
	for i := range len(hrp) {
		out = append(out, hrp[i]&31)
	}
	return out
}

func bech32Checksum(hrp string, groups []byte) []byte {
	values := append(bech32ExpandHrp(hrp), groups...)
	values = append(values, 0, 0, 0, 0, 0, 0)
	mod := bech32Polymod(values) ^ 1
	out := make([]byte, 6)
	for i := range out {
		out[i] = byte((mod >> uint(5*(5-i))) & 31)
	}
	return out
}

func regroupBits(data []byte, fromBits, toBits uint, pad bool) ([]byte, error) {
	var (
		acc  uint32
		bits uint
		out  []byte
	)
	maxv := uint32(1)<<toBits - 1

	for _, b := range data {
		if uint32(b)>>fromBits != 0 {
			return nil, fmt.Errorf("%w: value %d out of range", ErrBech32Format, b)
		}
		acc = acc<<fromBits | uint32(b)
		bits += fromBits
		for bits >= toBits {
			bits -= toBits
			out = append(out, byte((acc>>bits)&maxv))
		}
	}

	switch {
	case pad && bits > 0:
		out = append(out, byte((acc<<(toBits-bits))&maxv))
	case !pad && (bits >= fromBits || (acc<<(toBits-bits))&maxv != 0):
		return nil, fmt.Errorf("%w: non-zero padding", ErrBech32Format)
	}
	return out, nil
}
