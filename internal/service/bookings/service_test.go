package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayhub/StayHub-BookingService/internal/domain"
	bookingRepo "github.com/stayhub/StayHub-BookingService/internal/infra/storage/booking"
	"github.com/stayhub/StayHub-BookingService/internal/integrations/propertyservice"
	"github.com/stayhub/StayHub-BookingService/internal/service/bookings/models"
)

type fakeRepo struct {
	bookings map[int64]*domain.Booking

	statusUpdateErr error

	lastCAS struct {
		id        int64
		from, to  domain.BookingStatus
		expiresAt time.Time
		method    domain.PaymentMethod
		reference string
		reason    string
	}
}

func newFakeRepo(bookings ...*domain.Booking) *fakeRepo {
	repo := &fakeRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeRepo) GetByGuestID(_ context.Context, guestID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.GuestID != guestID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeRepo) GetByPropertyWithFilter(_ context.Context, filter domain.PropertyBookingsFilter) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.PropertyID == filter.PropertyID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeRepo) UpdateStatusIf(_ context.Context, id int64, from, to domain.BookingStatus) error {
	if f.statusUpdateErr != nil {
		return f.statusUpdateErr
	}
	f.lastCAS.id, f.lastCAS.from, f.lastCAS.to = id, from, to
	f.bookings[id].Status = to
	return nil
}

func (f *fakeRepo) SetAwaitingPayment(_ context.Context, id int64, from domain.BookingStatus, expiresAt time.Time) error {
	if f.statusUpdateErr != nil {
		return f.statusUpdateErr
	}
	f.lastCAS.id, f.lastCAS.from, f.lastCAS.expiresAt = id, from, expiresAt
	f.bookings[id].Status = domain.StatusAwaitingPayment
	f.bookings[id].PaymentExpiresAt = &expiresAt
	return nil
}

func (f *fakeRepo) SubmitPayment(_ context.Context, id int64, method domain.PaymentMethod, reference string, _ *string) error {
	if f.statusUpdateErr != nil {
		return f.statusUpdateErr
	}
	f.lastCAS.id, f.lastCAS.method, f.lastCAS.reference = id, method, reference
	f.bookings[id].Status = domain.StatusAwaitingConfirmation
	return nil
}

func (f *fakeRepo) Cancel(_ context.Context, id int64, from domain.BookingStatus, reason string) error {
	if f.statusUpdateErr != nil {
		return f.statusUpdateErr
	}
	f.lastCAS.id, f.lastCAS.from, f.lastCAS.reason = id, from, reason
	f.bookings[id].Status = domain.StatusCancelled
	return nil
}

type fakePropertyClient struct {
	property *propertyservice.Property
	err      error
}

func (f *fakePropertyClient) GetProperty(_ context.Context, _ int64) (*propertyservice.Property, error) {
	return f.property, f.err
}

type fakeTime struct {
	now time.Time
}

func (f *fakeTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const (
	guestID   = int64(7)
	hostID    = int64(100)
	managerID = int64(101)
	otherID   = int64(999)
)

var testNow = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

func testProperty() *propertyservice.Property {
	return &propertyservice.Property{
		ID:         1,
		HostID:     hostID,
		ManagerIDs: []int64{managerID},
		IsActive:   true,
	}
}

func testBooking(status domain.BookingStatus) *domain.Booking {
	deadline := testNow.Add(time.Hour)
	return &domain.Booking{
		ID:               10,
		PropertyID:       1,
		GuestID:          guestID,
		CheckInDate:      "2026-07-14",
		CheckOutDate:     "2026-07-19",
		Status:           status,
		PaymentExpiresAt: &deadline,
	}
}

func newTestService(repo *fakeRepo) *Service {
	return NewService(
		repo,
		&fakePropertyClient{property: testProperty()},
		&fakeTime{now: testNow},
		24*time.Hour,
		nopLogger{},
	)
}

func TestGetByID_AccessControl(t *testing.T) {
	repo := newFakeRepo(testBooking(domain.StatusConfirmed))
	svc := newTestService(repo)

	t.Run("guest sees own booking", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 10, guestID)
		require.NoError(t, err)
		assert.Equal(t, int64(10), resp.ID)
	})

	t.Run("host sees property booking", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 10, hostID)
		assert.NoError(t, err)
	})

	t.Run("manager sees property booking", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 10, managerID)
		assert.NoError(t, err)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 10, otherID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 404, guestID)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestApprove(t *testing.T) {
	t.Run("pending becomes awaiting_payment with deadline", func(t *testing.T) {
		repo := newFakeRepo(testBooking(domain.StatusPending))
		svc := newTestService(repo)

		err := svc.Approve(context.Background(), 10, &models.ApproveBookingRequest{UserID: hostID})
		require.NoError(t, err)

		assert.Equal(t, domain.StatusAwaitingPayment, repo.bookings[10].Status)
		assert.Equal(t, testNow.Add(24*time.Hour), repo.lastCAS.expiresAt)
		assert.Equal(t, domain.StatusPending, repo.lastCAS.from)
	})

	t.Run("guest cannot approve", func(t *testing.T) {
		repo := newFakeRepo(testBooking(domain.StatusPending))
		svc := newTestService(repo)

		err := svc.Approve(context.Background(), 10, &models.ApproveBookingRequest{UserID: guestID})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("non-pending rejected", func(t *testing.T) {
		for _, status := range []domain.BookingStatus{
			domain.StatusAwaitingPayment, domain.StatusAwaitingConfirmation, domain.StatusConfirmed,
			domain.StatusCancelled, domain.StatusCompleted, domain.StatusExpired,
		} {
			repo := newFakeRepo(testBooking(status))
			svc := newTestService(repo)

			err := svc.Approve(context.Background(), 10, &models.ApproveBookingRequest{UserID: hostID})
			assert.ErrorIs(t, err, ErrInvalidState, "status %s", status)
		}
	})
}

func TestSubmitPayment(t *testing.T) {
	validReq := func() *models.SubmitPaymentRequest {
		return &models.SubmitPaymentRequest{
			UserID:           guestID,
			PaymentMethod:    "bank_transfer",
			PaymentReference: "TX-123",
		}
	}

	t.Run("success", func(t *testing.T) {
		repo := newFakeRepo(testBooking(domain.StatusAwaitingPayment))
		svc := newTestService(repo)

		err := svc.SubmitPayment(context.Background(), 10, validReq())
		require.NoError(t, err)

		assert.Equal(t, domain.StatusAwaitingConfirmation, repo.bookings[10].Status)
		assert.Equal(t, domain.PaymentMethodBankTransfer, repo.lastCAS.method)
		assert.Equal(t, "TX-123", repo.lastCAS.reference)
	})

	t.Run("deadline passed", func(t *testing.T) {
		booking := testBooking(domain.StatusAwaitingPayment)
		past := testNow.Add(-time.Minute)
		booking.PaymentExpiresAt = &past
		repo := newFakeRepo(booking)
		svc := newTestService(repo)

		err := svc.SubmitPayment(context.Background(), 10, validReq())
		assert.ErrorIs(t, err, ErrPaymentDeadlinePassed)
	})

	t.Run("only guest can pay", func(t *testing.T) {
		repo := newFakeRepo(testBooking(domain.StatusAwaitingPayment))
		svc := newTestService(repo)

		req := validReq()
		req.UserID = hostID
		err := svc.SubmitPayment(context.Background(), 10, req)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("invalid method", func(t *testing.T) {
		repo := newFakeRepo(testBooking(domain.StatusAwaitingPayment))
		svc := newTestService(repo)

		req := validReq()
		req.PaymentMethod = "cash"
		err := svc.SubmitPayment(context.Background(), 10, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("missing reference", func(t *testing.T) {
		repo := newFakeRepo(testBooking(domain.StatusAwaitingPayment))
		svc := newTestService(repo)

		req := validReq()
		req.PaymentReference = ""
		err := svc.SubmitPayment(context.Background(), 10, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("wrong state", func(t *testing.T) {
		for _, status := range []domain.BookingStatus{
			domain.StatusPending, domain.StatusAwaitingConfirmation, domain.StatusConfirmed,
			domain.StatusPaymentFailed, domain.StatusCancelled, domain.StatusCompleted, domain.StatusExpired,
		} {
			repo := newFakeRepo(testBooking(status))
			svc := newTestService(repo)

			err := svc.SubmitPayment(context.Background(), 10, validReq())
			assert.ErrorIs(t, err, ErrInvalidState, "status %s", status)
		}
	})
}

func TestVerifyPayment(t *testing.T) {
	t.Run("approved confirms booking", func(t *testing.T) {
		repo := newFakeRepo(testBooking(domain.StatusAwaitingConfirmation))
		svc := newTestService(repo)

		err := svc.VerifyPayment(context.Background(), 10, &models.VerifyPaymentRequest{UserID: hostID, Approved: true})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusConfirmed, repo.bookings[10].Status)
	})

	t.Run("rejected marks payment failed", func(t *testing.T) {
		repo := newFakeRepo(testBooking(domain.StatusAwaitingConfirmation))
		svc := newTestService(repo)

		err := svc.VerifyPayment(context.Background(), 10, &models.VerifyPaymentRequest{UserID: hostID, Approved: false})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPaymentFailed, repo.bookings[10].Status)
	})

	t.Run("guest cannot verify", func(t *testing.T) {
		repo := newFakeRepo(testBooking(domain.StatusAwaitingConfirmation))
		svc := newTestService(repo)

		err := svc.VerifyPayment(context.Background(), 10, &models.VerifyPaymentRequest{UserID: guestID, Approved: true})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("wrong state", func(t *testing.T) {
		for _, status := range []domain.BookingStatus{
			domain.StatusPending, domain.StatusAwaitingPayment, domain.StatusConfirmed,
			domain.StatusPaymentFailed, domain.StatusCancelled, domain.StatusCompleted, domain.StatusExpired,
		} {
			repo := newFakeRepo(testBooking(status))
			svc := newTestService(repo)

			err := svc.VerifyPayment(context.Background(), 10, &models.VerifyPaymentRequest{UserID: hostID, Approved: true})
			assert.ErrorIs(t, err, ErrInvalidState, "status %s", status)
		}
	})

	t.Run("concurrent status change", func(t *testing.T) {
		repo := newFakeRepo(testBooking(domain.StatusAwaitingConfirmation))
		repo.statusUpdateErr = bookingRepo.ErrStatusConflict
		svc := newTestService(repo)

		err := svc.VerifyPayment(context.Background(), 10, &models.VerifyPaymentRequest{UserID: hostID, Approved: true})
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestReopenPayment(t *testing.T) {
	t.Run("payment_failed reopens with new deadline", func(t *testing.T) {
		repo := newFakeRepo(testBooking(domain.StatusPaymentFailed))
		svc := newTestService(repo)

		err := svc.ReopenPayment(context.Background(), 10, &models.ReopenPaymentRequest{UserID: hostID})
		require.NoError(t, err)

		assert.Equal(t, domain.StatusAwaitingPayment, repo.bookings[10].Status)
		assert.Equal(t, testNow.Add(24*time.Hour), repo.lastCAS.expiresAt)
	})

	t.Run("only payment_failed can reopen", func(t *testing.T) {
		for _, status := range []domain.BookingStatus{
			domain.StatusPending, domain.StatusAwaitingPayment, domain.StatusAwaitingConfirmation,
			domain.StatusConfirmed, domain.StatusCancelled, domain.StatusCompleted, domain.StatusExpired,
		} {
			repo := newFakeRepo(testBooking(status))
			svc := newTestService(repo)

			err := svc.ReopenPayment(context.Background(), 10, &models.ReopenPaymentRequest{UserID: hostID})
			assert.ErrorIs(t, err, ErrInvalidState, "status %s", status)
		}
	})
}

func TestCancel(t *testing.T) {
	t.Run("guest cancels own booking", func(t *testing.T) {
		repo := newFakeRepo(testBooking(domain.StatusAwaitingPayment))
		svc := newTestService(repo)

		err := svc.Cancel(context.Background(), 10, &models.CancelBookingRequest{
			UserID:             guestID,
			CancellationReason: "план изменился",
		})
		require.NoError(t, err)

		assert.Equal(t, domain.StatusCancelled, repo.bookings[10].Status)
		assert.Equal(t, "план изменился", repo.lastCAS.reason)
	})

	t.Run("host cancels property booking", func(t *testing.T) {
		repo := newFakeRepo(testBooking(domain.StatusConfirmed))
		svc := newTestService(repo)

		err := svc.Cancel(context.Background(), 10, &models.CancelBookingRequest{UserID: hostID})
		assert.NoError(t, err)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		repo := newFakeRepo(testBooking(domain.StatusConfirmed))
		svc := newTestService(repo)

		err := svc.Cancel(context.Background(), 10, &models.CancelBookingRequest{UserID: otherID})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("non-cancellable states", func(t *testing.T) {
		for _, status := range []domain.BookingStatus{
			domain.StatusAwaitingConfirmation, domain.StatusPaymentFailed,
			domain.StatusCancelled, domain.StatusCompleted, domain.StatusExpired,
		} {
			repo := newFakeRepo(testBooking(status))
			svc := newTestService(repo)

			err := svc.Cancel(context.Background(), 10, &models.CancelBookingRequest{UserID: guestID})
			assert.ErrorIs(t, err, ErrCannotCancel, "status %s", status)
		}
	})
}

func TestGetGuestBookings(t *testing.T) {
	confirmed := testBooking(domain.StatusConfirmed)
	cancelled := testBooking(domain.StatusCancelled)
	cancelled.ID = 11
	foreign := testBooking(domain.StatusConfirmed)
	foreign.ID = 12
	foreign.GuestID = otherID

	repo := newFakeRepo(confirmed, cancelled, foreign)
	svc := newTestService(repo)

	t.Run("all statuses", func(t *testing.T) {
		resp, err := svc.GetGuestBookings(context.Background(), &models.GetGuestBookingsRequest{GuestID: guestID})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 2)
	})

	t.Run("filter by status", func(t *testing.T) {
		status := "confirmed"
		resp, err := svc.GetGuestBookings(context.Background(), &models.GetGuestBookingsRequest{
			GuestID: guestID,
			Status:  &status,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 1)
	})

	t.Run("invalid status", func(t *testing.T) {
		status := "nonsense"
		_, err := svc.GetGuestBookings(context.Background(), &models.GetGuestBookingsRequest{
			GuestID: guestID,
			Status:  &status,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
