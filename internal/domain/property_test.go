package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentSettings_Validate(t *testing.T) {
	assert.NoError(t, DefaultPaymentSettings().Validate())

	s := DefaultPaymentSettings()
	s.MinPercent = 60
	s.DefaultPercent = 50
	assert.ErrorIs(t, s.Validate(), ErrInvalidPaymentSettings)

	s = DefaultPaymentSettings()
	s.MaxPercent = 120
	assert.ErrorIs(t, s.Validate(), ErrInvalidPaymentSettings)

	s = DefaultPaymentSettings()
	s.DefaultPercent = 90
	s.MaxPercent = 80
	assert.ErrorIs(t, s.Validate(), ErrInvalidPaymentSettings)
}

func TestCancellationPolicy_Validate(t *testing.T) {
	assert.NoError(t, DefaultCancellationPolicy().Validate())

	p := DefaultCancellationPolicy()
	p.NoRefundDays = 5 // above PartialRefundDays, staircase broken
	assert.ErrorIs(t, p.Validate(), ErrInvalidCancellationPolicy)

	p = DefaultCancellationPolicy()
	p.PartialRefundPercent = 130
	assert.ErrorIs(t, p.Validate(), ErrInvalidCancellationPolicy)

	p = DefaultCancellationPolicy()
	p.FullRefundDays = 2 // below PartialRefundDays
	assert.ErrorIs(t, p.Validate(), ErrInvalidCancellationPolicy)
}

func TestBookingStatus_Transitions(t *testing.T) {
	assert.True(t, BookingPending.IsLive())
	assert.True(t, BookingConfirmed.IsLive())
	assert.False(t, BookingCancelled.IsLive())
	assert.False(t, BookingCompleted.IsLive())

	assert.True(t, BookingCancelled.IsTerminal())
	assert.True(t, BookingCompleted.IsTerminal())
	assert.False(t, BookingPending.IsTerminal())
}
