package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayhub/StayHub-BookingService/internal/domain"
	"github.com/stayhub/StayHub-BookingService/internal/integrations/guestservice"
	"github.com/stayhub/StayHub-BookingService/internal/integrations/propertyservice"
	"github.com/stayhub/StayHub-BookingService/pkg/types"
)

type fakeRepo struct {
	overlapping []*domain.Booking
	overlapErr  error
	created     *domain.Booking
	createErr   error
}

func (f *fakeRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *booking
	created.ID = 42
	created.CreatedAt = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

func (f *fakeRepo) GetOverlapping(_ context.Context, _ int64, _, _ types.DateString) ([]*domain.Booking, error) {
	return f.overlapping, f.overlapErr
}

type fakePropertyClient struct {
	property *propertyservice.Property
	err      error
}

func (f *fakePropertyClient) GetProperty(_ context.Context, _ int64) (*propertyservice.Property, error) {
	return f.property, f.err
}

type fakeGuestClient struct {
	guest *guestservice.Guest
	err   error
}

func (f *fakeGuestClient) GetGuest(_ context.Context, _ int64) (*guestservice.Guest, error) {
	return f.guest, f.err
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

func activeProperty() *propertyservice.Property {
	return &propertyservice.Property{
		ID:              1,
		HostID:          100,
		PricePerNight:   10000,
		CleaningFee:     5000,
		SecurityDeposit: 20000,
		MinNights:       2,
		MaxNights:       30,
		MaxGuests:       4,
		IsActive:        true,
	}
}

func activeGuest() *guestservice.Guest {
	return &guestservice.Guest{ID: 7, FullName: "Jane Roe", IsActive: true}
}

func validRequest() *Request {
	return &Request{
		PropertyID:   1,
		GuestID:      7,
		CheckInDate:  "2026-07-14",
		CheckOutDate: "2026-07-17",
		GuestsCount:  2,
	}
}

func newTestUseCase(repo *fakeRepo, property *propertyservice.Property, guest *guestservice.Guest, now time.Time) *UseCase {
	return New(
		repo,
		&fakePropertyClient{property: property},
		&fakeGuestClient{guest: guest},
		&fakeTxManager{},
		&fakeTime{now: now},
		24*time.Hour,
		"USD",
		nopLogger{},
	)
}

func TestExecute_InstantBooking(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	repo := &fakeRepo{}
	uc := newTestUseCase(repo, activeProperty(), activeGuest(), now)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, domain.StatusAwaitingPayment, resp.Status)
	assert.Equal(t, 3, resp.Nights)
	assert.Equal(t, int64(30000), resp.BasePrice)
	assert.Equal(t, int64(3600), resp.ServiceFee)
	assert.Equal(t, int64(3088), resp.Taxes)
	assert.Equal(t, int64(41688), resp.TotalAmount)
	require.NotNil(t, resp.PaymentExpiresAt)
	assert.Equal(t, now.Add(24*time.Hour), *resp.PaymentExpiresAt)

	// Сохранённый снимок объединяет сервисный сбор и налоги
	assert.Equal(t, int64(6688), repo.created.Taxes)
	assert.Equal(t, int64(41688), repo.created.TotalAmount)
}

func TestExecute_RequiresApproval(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	property := activeProperty()
	property.RequiresApproval = true
	repo := &fakeRepo{}
	uc := newTestUseCase(repo, property, activeGuest(), now)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.Nil(t, resp.PaymentExpiresAt)
}

func TestExecute_DatesConflict(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	repo := &fakeRepo{
		overlapping: []*domain.Booking{
			{ID: 5, Status: domain.StatusConfirmed, CheckInDate: "2026-07-15", CheckOutDate: "2026-07-20"},
		},
	}
	uc := newTestUseCase(repo, activeProperty(), activeGuest(), now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDatesNotAvailable)
}

func TestExecute_InactiveOverlapIgnored(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	repo := &fakeRepo{
		overlapping: []*domain.Booking{
			{ID: 5, Status: domain.StatusCancelled, CheckInDate: "2026-07-15", CheckOutDate: "2026-07-20"},
			{ID: 6, Status: domain.StatusExpired, CheckInDate: "2026-07-14", CheckOutDate: "2026-07-16"},
		},
	}
	uc := newTestUseCase(repo, activeProperty(), activeGuest(), now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_PriceChanged(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeRepo{}, activeProperty(), activeGuest(), now)

	req := validRequest()
	req.Pricing = &PricingSnapshot{
		BasePrice:   30000,
		CleaningFee: 5000,
		ServiceFee:  3600,
		Taxes:       3088,
		TotalAmount: 40000, // устаревшая котировка
	}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPriceChanged)
}

func TestExecute_MatchingQuoteAccepted(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeRepo{}, activeProperty(), activeGuest(), now)

	req := validRequest()
	req.Pricing = &PricingSnapshot{
		BasePrice:       30000,
		CleaningFee:     5000,
		SecurityDeposit: 20000,
		ServiceFee:      3600,
		Taxes:           3088,
		TotalAmount:     41688,
	}

	_, err := uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_StayRules(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("too short", func(t *testing.T) {
		uc := newTestUseCase(&fakeRepo{}, activeProperty(), activeGuest(), now)
		req := validRequest()
		req.CheckOutDate = "2026-07-15"

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrStayTooShort)
	})

	t.Run("too long", func(t *testing.T) {
		property := activeProperty()
		property.MaxNights = 5
		uc := newTestUseCase(&fakeRepo{}, property, activeGuest(), now)
		req := validRequest()
		req.CheckOutDate = "2026-07-25"

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrStayTooLong)
	})

	t.Run("unlimited max nights", func(t *testing.T) {
		property := activeProperty()
		property.MaxNights = 0
		uc := newTestUseCase(&fakeRepo{}, property, activeGuest(), now)
		req := validRequest()
		req.CheckOutDate = "2026-09-14"

		_, err := uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("too many guests", func(t *testing.T) {
		uc := newTestUseCase(&fakeRepo{}, activeProperty(), activeGuest(), now)
		req := validRequest()
		req.GuestsCount = 5

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrTooManyGuests)
	})
}

func TestExecute_LookupFailures(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("property not found", func(t *testing.T) {
		uc := New(
			&fakeRepo{},
			&fakePropertyClient{err: propertyservice.ErrPropertyNotFound},
			&fakeGuestClient{guest: activeGuest()},
			&fakeTxManager{},
			&fakeTime{now: now},
			24*time.Hour,
			"USD",
			nopLogger{},
		)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrPropertyNotFound)
	})

	t.Run("property inactive", func(t *testing.T) {
		property := activeProperty()
		property.IsActive = false
		uc := newTestUseCase(&fakeRepo{}, property, activeGuest(), now)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrPropertyInactive)
	})

	t.Run("guest not found", func(t *testing.T) {
		uc := New(
			&fakeRepo{},
			&fakePropertyClient{property: activeProperty()},
			&fakeGuestClient{err: guestservice.ErrGuestNotFound},
			&fakeTxManager{},
			&fakeTime{now: now},
			24*time.Hour,
			"USD",
			nopLogger{},
		)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrGuestNotFound)
	})

	t.Run("guest inactive", func(t *testing.T) {
		guest := activeGuest()
		guest.IsActive = false
		uc := newTestUseCase(&fakeRepo{}, activeProperty(), guest, now)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrGuestInactive)
	})
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"nil dates equal", func(r *Request) { r.CheckOutDate = r.CheckInDate }, ErrInvalidDates},
		{"checkout before checkin", func(r *Request) { r.CheckOutDate = "2026-07-10" }, ErrInvalidDates},
		{"zero property", func(r *Request) { r.PropertyID = 0 }, ErrInvalidInput},
		{"zero guest", func(r *Request) { r.GuestID = 0 }, ErrInvalidInput},
		{"zero guests count", func(r *Request) { r.GuestsCount = 0 }, ErrInvalidInput},
		{"bad date format", func(r *Request) { r.CheckInDate = "14.07.2026" }, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			assert.ErrorIs(t, validateRequest(req), tt.wantErr)
		})
	}
}
