package types

// TxResponse is the settled result of a broadcast transaction.
type TxResponse struct {
	TxHash    string
	Code      uint32
	Codespace string
	RawLog    string
	Height    int64
	GasWanted int64
	GasUsed   int64
	ArrayLog  ArrayLog
}

func (r *TxResponse) Failed() bool {
	return r.Code != 0
}
