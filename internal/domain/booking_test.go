package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayhub/StayHub-BookingService/pkg/types"
)

func TestCanTransitionTo_AllowedTransitions(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusPending, StatusAwaitingPayment, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusConfirmed, false},
		{StatusPending, StatusCompleted, false},

		{StatusAwaitingPayment, StatusAwaitingConfirmation, true},
		{StatusAwaitingPayment, StatusExpired, true},
		{StatusAwaitingPayment, StatusCancelled, true},
		{StatusAwaitingPayment, StatusConfirmed, false},

		{StatusAwaitingConfirmation, StatusConfirmed, true},
		{StatusAwaitingConfirmation, StatusPaymentFailed, true},
		{StatusAwaitingConfirmation, StatusCancelled, false},
		{StatusAwaitingConfirmation, StatusExpired, false},

		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusExpired, false},

		{StatusPaymentFailed, StatusAwaitingPayment, true},
		{StatusPaymentFailed, StatusCancelled, false},
		{StatusPaymentFailed, StatusConfirmed, false},

		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusAwaitingPayment, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusExpired, StatusAwaitingPayment, false},
		{StatusExpired, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			booking := &Booking{Status: tt.from}
			assert.Equal(t, tt.allowed, booking.CanTransitionTo(tt.to))
		})
	}
}

func TestValidateTransition_ReturnsTypedError(t *testing.T) {
	booking := &Booking{Status: StatusExpired}

	err := booking.ValidateTransition(StatusConfirmed)
	require.Error(t, err)

	var transitionErr *InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, StatusExpired, transitionErr.From)
	assert.Equal(t, StatusConfirmed, transitionErr.To)
}

func TestValidateTransition_AllowedReturnsNil(t *testing.T) {
	booking := &Booking{Status: StatusAwaitingConfirmation}

	assert.NoError(t, booking.ValidateTransition(StatusConfirmed))
	assert.NoError(t, booking.ValidateTransition(StatusPaymentFailed))
}

func TestIsActive(t *testing.T) {
	active := []BookingStatus{
		StatusPending, StatusAwaitingPayment, StatusAwaitingConfirmation,
		StatusConfirmed, StatusCompleted,
	}
	inactive := []BookingStatus{StatusCancelled, StatusExpired, StatusPaymentFailed}

	for _, status := range active {
		booking := &Booking{Status: status}
		assert.True(t, booking.IsActive(), "status %s must block dates", status)
	}
	for _, status := range inactive {
		booking := &Booking{Status: status}
		assert.False(t, booking.IsActive(), "status %s must release dates", status)
	}
}

func TestIsValidStatus(t *testing.T) {
	for status := range allowedTransitions {
		assert.True(t, IsValidStatus(status))
	}
	assert.False(t, IsValidStatus("unknown"))
	assert.False(t, IsValidStatus(""))
}

func TestCanBeCancelled(t *testing.T) {
	cancellable := []BookingStatus{StatusPending, StatusAwaitingPayment, StatusConfirmed}
	notCancellable := []BookingStatus{
		StatusAwaitingConfirmation, StatusPaymentFailed,
		StatusCancelled, StatusCompleted, StatusExpired,
	}

	for _, status := range cancellable {
		booking := &Booking{Status: status}
		assert.True(t, booking.CanBeCancelled(), "status %s", status)
	}
	for _, status := range notCancellable {
		booking := &Booking{Status: status}
		assert.False(t, booking.CanBeCancelled(), "status %s", status)
	}
}

func TestPaymentDeadlinePassed(t *testing.T) {
	now := time.Date(2026, 7, 14, 12, 0, 0, 0, time.UTC)

	noDeadline := &Booking{Status: StatusPending}
	assert.False(t, noDeadline.PaymentDeadlinePassed(now))

	future := now.Add(time.Hour)
	notYet := &Booking{Status: StatusAwaitingPayment, PaymentExpiresAt: &future}
	assert.False(t, notYet.PaymentDeadlinePassed(now))

	past := now.Add(-time.Minute)
	overdue := &Booking{Status: StatusAwaitingPayment, PaymentExpiresAt: &past}
	assert.True(t, overdue.PaymentDeadlinePassed(now))

	// Дедлайн ровно в now уже считается истекшим
	exact := now
	boundary := &Booking{Status: StatusAwaitingPayment, PaymentExpiresAt: &exact}
	assert.True(t, boundary.PaymentDeadlinePassed(now))
}

func TestDatesOverlap(t *testing.T) {
	tests := []struct {
		name                   string
		aIn, aOut, bIn, bOut   string
		overlap                bool
	}{
		{"identical ranges", "2026-01-10", "2026-01-15", "2026-01-10", "2026-01-15", true},
		{"contained range", "2026-01-10", "2026-01-16", "2026-01-12", "2026-01-14", true},
		{"partial overlap", "2026-01-10", "2026-01-15", "2026-01-13", "2026-01-20", true},
		{"checkout equals checkin", "2026-01-10", "2026-01-15", "2026-01-15", "2026-01-20", false},
		{"checkin equals checkout", "2026-01-15", "2026-01-20", "2026-01-10", "2026-01-15", false},
		{"disjoint before", "2026-01-01", "2026-01-05", "2026-01-10", "2026-01-15", false},
		{"disjoint after", "2026-01-20", "2026-01-25", "2026-01-10", "2026-01-15", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DatesOverlap(
				types.DateString(tt.aIn), types.DateString(tt.aOut),
				types.DateString(tt.bIn), types.DateString(tt.bOut),
			)
			assert.Equal(t, tt.overlap, result)
		})
	}
}

func TestNights(t *testing.T) {
	booking := &Booking{
		CheckInDate:  "2026-07-14",
		CheckOutDate: "2026-07-19",
	}

	nights, err := booking.Nights()
	require.NoError(t, err)
	assert.Equal(t, 5, nights)
}

func TestPaymentMethodIsValid(t *testing.T) {
	assert.True(t, PaymentMethodBankTransfer.IsValid())
	assert.True(t, PaymentMethodCreditCard.IsValid())
	assert.True(t, PaymentMethodEWallet.IsValid())
	assert.False(t, PaymentMethod("cash").IsValid())
	assert.False(t, PaymentMethod("").IsValid())
}
