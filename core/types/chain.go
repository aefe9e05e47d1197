package types

import "time"

type NodeInfo struct {
	Network    string `json:"network"`
	Moniker    string `json:"moniker"`
	Version    string `json:"version"`
	AppName    string `json:"app_name,omitempty"`
	AppVersion string `json:"app_version,omitempty"`
}

type Block struct {
	Height  int64     `json:"height"`
	Time    time.Time `json:"time"`
	ChainID string    `json:"chain_id"`
	NumTxs  int       `json:"num_txs"`
}

type ContractInfo struct {
	Address string `json:"contract_address"`
	CodeID  uint64 `json:"code_id"`
	Creator string `json:"creator"`
	Label   string `json:"label"`
	Admin   string `json:"admin,omitempty"`
}
