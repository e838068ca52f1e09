package bookings

import (
	"context"
	"time"

	"github.com/stayhub/StayHub-BookingService/internal/domain"
	"github.com/stayhub/StayHub-BookingService/internal/integrations/propertyservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByGuestID(ctx context.Context, guestID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByPropertyWithFilter(ctx context.Context, filter domain.PropertyBookingsFilter) ([]*domain.Booking, error)
	UpdateStatusIf(ctx context.Context, id int64, from, to domain.BookingStatus) error
	SetAwaitingPayment(ctx context.Context, id int64, from domain.BookingStatus, expiresAt time.Time) error
	SubmitPayment(ctx context.Context, id int64, method domain.PaymentMethod, reference string, proofURL *string) error
	Cancel(ctx context.Context, id int64, from domain.BookingStatus, reason string) error
}

// PropertyServiceClient интерфейс клиента для PropertyService
type PropertyServiceClient interface {
	GetProperty(ctx context.Context, propertyID int64) (*propertyservice.Property, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
