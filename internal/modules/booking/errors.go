package booking

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrNotFound                = errors.New("booking not found")
	ErrForbidden               = errors.New("forbidden")
	ErrNotAvailable            = errors.New("no availability for the requested dates")
	ErrOverbooking             = errors.New("overbooking constraint violation")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrRefundPolicy            = errors.New("refund request violates cancellation policy")
	ErrAlreadyCollected        = errors.New("hotel payment already collected")
	ErrNotPartialPayment       = errors.New("booking has no at-property balance")
)
