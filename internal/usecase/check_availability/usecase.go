package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/stayhub/StayHub-BookingService/internal/integrations/propertyservice"
)

// UseCase проверка доступности дат для объекта размещения.
// Read-only операция: результат является снимком на момент запроса и не
// резервирует даты, финальная проверка выполняется при создании бронирования.
type UseCase struct {
	bookingRepo  BookingRepository
	propertyClnt PropertyServiceClient
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	propertyClnt PropertyServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		propertyClnt: propertyClnt,
		logger:       logger,
	}
}

// Execute выполняет проверку доступности дат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	if _, err := uc.propertyClnt.GetProperty(ctx, req.PropertyID); err != nil {
		if errors.Is(err, propertyservice.ErrPropertyNotFound) {
			uc.logger.Warn("CheckAvailability: property id=%d not found", req.PropertyID)
			return nil, fmt.Errorf("%w: property_id=%d", ErrPropertyNotFound, req.PropertyID)
		}
		uc.logger.Error("CheckAvailability: failed to get property id=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to get property: %v", ErrInternal, err)
	}

	overlapping, err := uc.bookingRepo.GetOverlapping(ctx, req.PropertyID, req.CheckInDate, req.CheckOutDate)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get overlapping bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	conflicts := make([]ConflictingRange, 0, len(overlapping))
	for _, booking := range overlapping {
		if !booking.IsActive() {
			continue
		}
		conflicts = append(conflicts, ConflictingRange{
			CheckInDate:  booking.CheckInDate,
			CheckOutDate: booking.CheckOutDate,
		})
	}

	uc.logger.Info("CheckAvailability: property=%d, %s .. %s, available=%t, conflicts=%d",
		req.PropertyID, req.CheckInDate, req.CheckOutDate, len(conflicts) == 0, len(conflicts))

	return &Response{
		PropertyID:   req.PropertyID,
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
		Available:    len(conflicts) == 0,
		Conflicts:    conflicts,
	}, nil
}
