package check_availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayhub/StayHub-BookingService/internal/domain"
	"github.com/stayhub/StayHub-BookingService/internal/integrations/propertyservice"
	"github.com/stayhub/StayHub-BookingService/pkg/types"
)

type fakeRepo struct {
	overlapping []*domain.Booking
	err         error
}

func (f *fakeRepo) GetOverlapping(_ context.Context, _ int64, _, _ types.DateString) ([]*domain.Booking, error) {
	return f.overlapping, f.err
}

type fakePropertyClient struct {
	property *propertyservice.Property
	err      error
}

func (f *fakePropertyClient) GetProperty(_ context.Context, _ int64) (*propertyservice.Property, error) {
	return f.property, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validRequest() *Request {
	return &Request{
		PropertyID:   1,
		CheckInDate:  "2026-07-14",
		CheckOutDate: "2026-07-19",
	}
}

func newTestUseCase(repo *fakeRepo) *UseCase {
	return NewUseCase(repo, &fakePropertyClient{property: &propertyservice.Property{ID: 1}}, nopLogger{})
}

func TestExecute_Available(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, resp.Available)
	assert.Empty(t, resp.Conflicts)
	assert.Equal(t, int64(1), resp.PropertyID)
	assert.Equal(t, types.DateString("2026-07-14"), resp.CheckInDate)
	assert.Equal(t, types.DateString("2026-07-19"), resp.CheckOutDate)
}

func TestExecute_ConflictsReported(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{
		overlapping: []*domain.Booking{
			{ID: 5, Status: domain.StatusConfirmed, CheckInDate: "2026-07-15", CheckOutDate: "2026-07-17"},
			{ID: 6, Status: domain.StatusAwaitingPayment, CheckInDate: "2026-07-18", CheckOutDate: "2026-07-21"},
		},
	})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.Available)
	require.Len(t, resp.Conflicts, 2)
	assert.Equal(t, types.DateString("2026-07-15"), resp.Conflicts[0].CheckInDate)
	assert.Equal(t, types.DateString("2026-07-17"), resp.Conflicts[0].CheckOutDate)
}

func TestExecute_InactiveBookingsIgnored(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{
		overlapping: []*domain.Booking{
			{ID: 5, Status: domain.StatusCancelled, CheckInDate: "2026-07-15", CheckOutDate: "2026-07-17"},
			{ID: 6, Status: domain.StatusExpired, CheckInDate: "2026-07-14", CheckOutDate: "2026-07-16"},
			{ID: 7, Status: domain.StatusPaymentFailed, CheckInDate: "2026-07-16", CheckOutDate: "2026-07-18"},
		},
	})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, resp.Available)
	assert.Empty(t, resp.Conflicts)
}

func TestExecute_PropertyNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeRepo{},
		&fakePropertyClient{err: propertyservice.ErrPropertyNotFound},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{})

	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"zero property", func(r *Request) { r.PropertyID = 0 }, ErrInvalidInput},
		{"bad date format", func(r *Request) { r.CheckInDate = "14.07.2026" }, ErrInvalidInput},
		{"equal dates", func(r *Request) { r.CheckOutDate = r.CheckInDate }, ErrInvalidDates},
		{"checkout before checkin", func(r *Request) { r.CheckOutDate = "2026-07-10" }, ErrInvalidDates},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
