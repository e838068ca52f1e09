package domain

import (
	"fmt"
	"time"

	"github.com/stayhub/StayHub-BookingService/pkg/types"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending              BookingStatus = "pending"
	StatusAwaitingPayment      BookingStatus = "awaiting_payment"
	StatusAwaitingConfirmation BookingStatus = "awaiting_confirmation"
	StatusConfirmed            BookingStatus = "confirmed"
	StatusPaymentFailed        BookingStatus = "payment_failed"
	StatusCancelled            BookingStatus = "cancelled"
	StatusCompleted            BookingStatus = "completed"
	StatusExpired              BookingStatus = "expired"
)

// PaymentMethod represents how the guest pays for a booking
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodEWallet      PaymentMethod = "e_wallet"
)

// IsValid reports whether the payment method is one of the known values
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodBankTransfer, PaymentMethodCreditCard, PaymentMethodEWallet:
		return true
	default:
		return false
	}
}

// InvalidTransitionError is returned when a status transition is not allowed.
// It names the current state and the attempted target so the caller can
// reconcile its view of the booking.
type InvalidTransitionError struct {
	From BookingStatus
	To   BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid booking transition from %q to %q", e.From, e.To)
}

// allowedTransitions is the single source of truth for the booking state
// machine. Every status mutation in the service goes through
// ValidateTransition before the repository applies the compare-and-set update.
//
// payment_failed -> awaiting_payment is the support escape hatch, not a
// normal guest-facing transition.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:              {StatusAwaitingPayment, StatusCancelled},
	StatusAwaitingPayment:      {StatusAwaitingConfirmation, StatusExpired, StatusCancelled},
	StatusAwaitingConfirmation: {StatusConfirmed, StatusPaymentFailed},
	StatusConfirmed:            {StatusCompleted, StatusCancelled},
	StatusPaymentFailed:        {StatusAwaitingPayment},
	StatusCancelled:            {},
	StatusCompleted:            {},
	StatusExpired:              {},
}

// Booking represents a priced reservation of a property for a date range.
// The pricing snapshot fields are computed once at creation and never
// recalculated afterwards.
type Booking struct {
	ID         int64
	PropertyID int64
	GuestID    int64

	CheckInDate  types.DateString
	CheckOutDate types.DateString
	GuestsCount  int

	// Pricing snapshot, minor currency units. Taxes stores the combined
	// service fee + tax amount (the quoted breakdown keeps them separate,
	// the persisted snapshot does not). SecurityDeposit is informational
	// and never part of TotalAmount.
	BasePrice       int64
	CleaningFee     int64
	SecurityDeposit int64
	Taxes           int64
	TotalAmount     int64
	Currency        string

	Status BookingStatus

	PaymentMethod    *PaymentMethod
	PaymentReference *string
	PaymentProofURL  *string
	PaymentExpiresAt *time.Time

	SpecialRequest     *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValidStatus reports whether s is one of the eight persisted status values
func IsValidStatus(s BookingStatus) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransitionTo reports whether the state machine allows moving to target
func (b *Booking) CanTransitionTo(target BookingStatus) bool {
	for _, next := range allowedTransitions[b.Status] {
		if next == target {
			return true
		}
	}
	return false
}

// ValidateTransition returns an InvalidTransitionError when the move to
// target is not allowed from the booking's current status
func (b *Booking) ValidateTransition(target BookingStatus) error {
	if !b.CanTransitionTo(target) {
		return &InvalidTransitionError{From: b.Status, To: target}
	}
	return nil
}

// IsActive returns true if the booking blocks its dates for other guests
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled &&
		b.Status != StatusExpired &&
		b.Status != StatusPaymentFailed
}

// IsTerminal returns true if the booking accepts no further transitions
// (ignoring the payment_failed support escape hatch)
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled ||
		b.Status == StatusCompleted ||
		b.Status == StatusExpired ||
		b.Status == StatusPaymentFailed
}

// CanBeCancelled returns true if a cancellation request is allowed
func (b *Booking) CanBeCancelled() bool {
	return b.CanTransitionTo(StatusCancelled)
}

// PaymentDeadlinePassed reports whether the payment window has elapsed.
// Bookings without a deadline (pending approval) never pass it.
func (b *Booking) PaymentDeadlinePassed(now time.Time) bool {
	return b.PaymentExpiresAt != nil && !now.Before(*b.PaymentExpiresAt)
}

// Nights returns the stay length in nights
func (b *Booking) Nights() (int, error) {
	return b.CheckInDate.DaysUntil(b.CheckOutDate)
}

// DatesOverlap reports whether two half-open stay ranges [aIn, aOut) and
// [bIn, bOut) collide. A check-out equal to another booking's check-in is
// not a conflict.
func DatesOverlap(aIn, aOut, bIn, bOut types.DateString) bool {
	return aIn.Before(bOut) && bIn.Before(aOut)
}

// PropertyBookingsFilter фильтр для получения бронирований объекта размещения
type PropertyBookingsFilter struct {
	PropertyID      int64             // Обязательный параметр
	StartDate       *types.DateString // Начало периода (опционально)
	EndDate         *types.DateString // Конец периода (опционально)
	Status          *BookingStatus    // Фильтр по статусу (опционально)
	IncludeInactive bool              // Включать ли неактивные бронирования (отмененные, истекшие, отклоненные)
}
