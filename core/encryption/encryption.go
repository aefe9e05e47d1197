// Package encryption implements contract message encryption for Secret compute:
// an x25519 shared secret with the chain's consensus IO key, HKDF-SHA256 key
// derivation per nonce, and AES-SIV sealing.
package encryption

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/miscreant/miscreant.go"
	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"
)

const (
	NonceSize = 32
	KeySize   = 32

	// HeaderSize is the nonce plus the sender's public key that prefix every ciphertext.
	HeaderSize = NonceSize + curve25519.PointSize
)

var hkdfSalt, _ = hex.DecodeString("000000000000000000024bead8df69990852c202db0e0097c1a12ea637d7e96d")

var (
	ErrInvalidKey        = errors.New("invalid key")
	ErrDecryptionFailed  = errors.New("decryption failed")
	ErrMalformedEnvelope = errors.New("malformed encrypted message")
)

type Utils struct {
	privKey         []byte
	pubKey          []byte
	consensusPubKey []byte
}

// New creates a fresh ephemeral key pair for talking to the chain with the given
// consensus IO public key.
func New(consensusPubKey []byte) (*Utils, error) {
	seed := make([]byte, curve25519.ScalarSize)
	if _, err := io.ReadFull(rand.Reader, seed); err != nil {
		return nil, err
	}
	return NewFromSeed(seed, consensusPubKey)
}

func NewFromSeed(seed, consensusPubKey []byte) (*Utils, error) {
	if len(seed) != curve25519.ScalarSize {
		return nil, fmt.Errorf("%w: seed must be %d bytes", ErrInvalidKey, curve25519.ScalarSize)
	}
	if len(consensusPubKey) != curve25519.PointSize {
		return nil, fmt.Errorf("%w: consensus key must be %d bytes, got %d",
			ErrInvalidKey, curve25519.PointSize, len(consensusPubKey))
	}
	pub, err := curve25519.X25519(seed, curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	return &Utils{
		privKey:         append([]byte(nil), seed...),
		pubKey:          pub,
		consensusPubKey: append([]byte(nil), consensusPubKey...),
	}, nil
}

func (u *Utils) PubKey() []byte {
	return u.pubKey
}

// Encrypt seals codeHash+JSON(msg) under a random nonce. The result is nonce||pubkey||ciphertext.
func (u *Utils) Encrypt(codeHash string, msg []byte) ([]byte, error) {
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return u.EncryptWithNonce(nonce, codeHash, msg)
}

func (u *Utils) EncryptWithNonce(nonce []byte, codeHash string, msg []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("nonce must be %d bytes", NonceSize)
	}
	key, err := u.key(nonce)
	if err != nil {
		return nil, err
	}
	sealed, err := Seal(key, append([]byte(codeHash), msg...))
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, HeaderSize+len(sealed))
	out = append(out, nonce...)
	out = append(out, u.pubKey...)
	return append(out, sealed...), nil
}

// Decrypt opens a chain response sealed with the key of the request's nonce.
func (u *Utils) Decrypt(ciphertext, nonce []byte) ([]byte, error) {
	if len(ciphertext) == 0 {
		return nil, nil
	}
	key, err := u.key(nonce)
	if err != nil {
		return nil, err
	}
	return Open(key, ciphertext)
}

// DecryptQueryResult decodes a query response: the plaintext is itself base64-encoded JSON.
func (u *Utils) DecryptQueryResult(data, nonce []byte) (json.RawMessage, error) {
	plain, err := u.Decrypt(data, nonce)
	if err != nil {
		return nil, err
	}
	decoded, err := base64.StdEncoding.DecodeString(string(plain))
	if err != nil {
		return nil, fmt.Errorf("%w: result is not base64: %w", ErrDecryptionFailed, err)
	}
	if !json.Valid(decoded) {
		return nil, fmt.Errorf("%w: result is not JSON", ErrDecryptionFailed)
	}
	return json.RawMessage(decoded), nil
}

func (u *Utils) key(nonce []byte) ([]byte, error) {
	shared, err := curve25519.X25519(u.privKey, u.consensusPubKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	return DeriveKey(shared, nonce)
}

// DeriveKey expands an x25519 shared secret and a nonce into an AES-SIV key.
func DeriveKey(shared, nonce []byte) ([]byte, error) {
	ikm := make([]byte, 0, len(shared)+len(nonce))
	ikm = append(ikm, shared...)
	ikm = append(ikm, nonce...)

	key := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, ikm, hkdfSalt, nil), key); err != nil {
		return nil, err
	}
	return key, nil
}

// Seal encrypts with AES-SIV and a single empty associated-data header.
func Seal(key, plaintext []byte) ([]byte, error) {
	c, err := miscreant.NewAESCMACSIV(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	return c.Seal(nil, plaintext, []byte{})
}

func Open(key, ciphertext []byte) ([]byte, error) {
	c, err := miscreant.NewAESCMACSIV(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	plain, err := c.Open(nil, ciphertext, []byte{})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}
	return plain, nil
}

// Envelope is the parsed form of an encrypted contract message.
type Envelope struct {
	Nonce      []byte
	PubKey     []byte
	Ciphertext []byte
}

func ParseEnvelope(data []byte) (*Envelope, error) {
	if len(data) <= HeaderSize {
		return nil, ErrMalformedEnvelope
	}
	return &Envelope{
		Nonce:      data[:NonceSize],
		PubKey:     data[NonceSize:HeaderSize],
		Ciphertext: data[HeaderSize:],
	}, nil
}
