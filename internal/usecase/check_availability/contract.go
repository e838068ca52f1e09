package check_availability

import (
	"context"

	"github.com/stayhub/StayHub-BookingService/internal/domain"
	"github.com/stayhub/StayHub-BookingService/internal/integrations/propertyservice"
	"github.com/stayhub/StayHub-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetOverlapping(ctx context.Context, propertyID int64, checkIn, checkOut types.DateString) ([]*domain.Booking, error)
}

// PropertyServiceClient интерфейс клиента для PropertyService
type PropertyServiceClient interface {
	GetProperty(ctx context.Context, propertyID int64) (*propertyservice.Property, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
