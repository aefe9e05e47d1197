package logging

const (
	// FieldError can be used instead of Err(err) if you have only the error message string.
	FieldError = "err"

	FieldComponent = "component"
	FieldChainId   = "chainId"

	FieldDuration = "duration"
	FieldTimeout  = "timeout"
	FieldUrl      = "url"
	FieldReqId    = "reqId"
	FieldStatus   = "status"

	FieldLcdPath   = "lcdPath"
	FieldOperation = "operation"

	FieldContract     = "contract"
	FieldCodeHash     = "codeHash"
	FieldCodeId       = "codeId"
	FieldWallet       = "wallet"
	FieldAllocationId = "allocationId"

	FieldTxHash   = "txHash"
	FieldTxCode   = "txCode"
	FieldGasLimit = "gasLimit"
	FieldFee      = "fee"

	FieldAccountNumber = "accountNumber"
	FieldAccountSeqno  = "accountSeqno"

	FieldBlockHeight = "blockHeight"

	FieldCheck = "check"
	FieldPhase = "phase"
)
