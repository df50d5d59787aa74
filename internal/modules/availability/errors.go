package availability

import "errors"

var (
	ErrValidation = errors.New("validation error")
)
