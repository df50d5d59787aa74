package payment

import "errors"

var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInvalidPercentage = errors.New("requested percentage outside configured bounds")
)
