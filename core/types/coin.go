package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const DefaultFeeDenom = "uscrt"

var DefaultGasPrice = decimal.RequireFromString("0.1")

type Coin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

func (c Coin) String() string {
	return c.Amount + c.Denom
}

// TxParams are the fee parameters of a single transaction.
type TxParams struct {
	GasLimit uint64
	GasPrice decimal.Decimal
	FeeDenom string
}

func NewTxParams(gasLimit uint64) TxParams {
	return TxParams{GasLimit: gasLimit, GasPrice: DefaultGasPrice, FeeDenom: DefaultFeeDenom}
}

// Fee is ceil(gasLimit * gasPrice) in FeeDenom.
func (p TxParams) Fee() (Coin, error) {
	if p.GasLimit == 0 {
		return Coin{}, fmt.Errorf("gas limit must be positive")
	}
	if p.GasPrice.IsNegative() {
		return Coin{}, fmt.Errorf("gas price must not be negative: %s", p.GasPrice)
	}
	denom := p.FeeDenom
	if denom == "" {
		denom = DefaultFeeDenom
	}
	amount := decimal.NewFromInt(int64(p.GasLimit)).Mul(p.GasPrice).Ceil()
	return Coin{Denom: denom, Amount: amount.String()}, nil
}
