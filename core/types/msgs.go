package types

// Msg is a plaintext compute message. The SDK adapter encrypts contract payloads
// and encodes the message into the transaction.
type Msg interface {
	TypeURL() string
}

type MsgStoreCode struct {
	Sender       Address
	WASMByteCode []byte
	Source       string
	Builder      string
}

type MsgInstantiateContract struct {
	Sender   Address
	CodeID   uint64
	CodeHash string
	Label    string
	InitMsg  []byte
	Funds    []Coin
	Admin    string
}

type MsgExecuteContract struct {
	Sender   Address
	Contract Address
	CodeHash string
	Msg      []byte
	Funds    []Coin
}

type MsgMigrateContract struct {
	Sender   Address
	Contract Address
	CodeID   uint64
	CodeHash string
	Msg      []byte
}

func (MsgStoreCode) TypeURL() string           { return "/secret.compute.v1beta1.MsgStoreCode" }
func (MsgInstantiateContract) TypeURL() string { return "/secret.compute.v1beta1.MsgInstantiateContract" }
func (MsgExecuteContract) TypeURL() string     { return "/secret.compute.v1beta1.MsgExecuteContract" }
func (MsgMigrateContract) TypeURL() string     { return "/secret.compute.v1beta1.MsgMigrateContract" }
