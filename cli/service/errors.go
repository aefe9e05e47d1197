package service

import "errors"

var (
	ErrConfiguration     = errors.New("configuration error")
	ErrConnection        = errors.New("failed to connect to the network")
	ErrTransactionFailed = errors.New("transaction failed")
	ErrMissingTarget     = errors.New("missing target contract")
)

// TimeoutHint is appended to query errors caused by the executor timeout.
const TimeoutHint = "The query timed out. This could indicate network issues or contract problems."
