// Package msg defines the JSON payloads accepted by the registration contract and the
// token contracts it talks to. Every payload is a tagged variant: {"<tag>": {...}}.
package msg

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInvalidPayload = errors.New("invalid payload")

type Payload interface {
	Tag() string
	Validate() error
}

// Marshal validates p and encodes it as {"<tag>": p}.
func Marshal(p Payload) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPayload, p.Tag(), err)
	}
	return json.Marshal(map[string]Payload{p.Tag(): p})
}
