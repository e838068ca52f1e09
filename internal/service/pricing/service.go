package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/stayhub/StayHub-BookingService/internal/domain"
	propertyClient "github.com/stayhub/StayHub-BookingService/internal/integrations/propertyservice"
	"github.com/stayhub/StayHub-BookingService/internal/service/pricing/models"
)

// Service расчёт стоимости проживания по текущим тарифам объекта размещения.
// Квота не резервирует ни даты, ни цену: при создании бронирования расчёт
// повторяется и сверяется с котировкой клиента.
type Service struct {
	propertyClnt PropertyServiceClient
	currency     string
	logger       Logger
}

// NewService создает новый экземпляр сервиса расчёта стоимости
func NewService(propertyClnt PropertyServiceClient, currency string, logger Logger) *Service {
	return &Service{
		propertyClnt: propertyClnt,
		currency:     currency,
		logger:       logger,
	}
}

// Quote рассчитывает детализированную стоимость проживания
func (s *Service) Quote(ctx context.Context, req *models.QuoteRequest) (*models.QuoteResponse, error) {
	if err := validateRequest(req); err != nil {
		s.logger.Warn("Quote: validation failed: %v", err)
		return nil, err
	}

	property, err := s.propertyClnt.GetProperty(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, propertyClient.ErrPropertyNotFound) {
			s.logger.Warn("Quote: property id=%d not found", req.PropertyID)
			return nil, fmt.Errorf("%w: property_id=%d", ErrPropertyNotFound, req.PropertyID)
		}
		s.logger.Error("Quote: failed to get property id=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to get property: %v", ErrInternal, err)
	}

	nights, err := req.CheckInDate.DaysUntil(req.CheckOutDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	breakdown := domain.ComputePricing(
		property.PricePerNight,
		nights,
		property.CleaningFee,
		property.SecurityDeposit,
		s.currency,
	)

	s.logger.Info("Quote: property=%d, %d nights, total=%d %s",
		req.PropertyID, nights, breakdown.TotalAmount, breakdown.Currency)

	return models.FromBreakdown(req, property.PricePerNight, nights, breakdown), nil
}

// validateRequest проверяет корректность входных данных запроса
func validateRequest(req *models.QuoteRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.PropertyID <= 0 {
		return fmt.Errorf("%w: property_id must be positive", ErrInvalidInput)
	}

	if err := req.CheckInDate.Validate(); err != nil {
		return fmt.Errorf("%w: check_in_date: %v", ErrInvalidInput, err)
	}

	if err := req.CheckOutDate.Validate(); err != nil {
		return fmt.Errorf("%w: check_out_date: %v", ErrInvalidInput, err)
	}

	if !req.CheckInDate.Before(req.CheckOutDate) {
		return fmt.Errorf("%w: %s .. %s", ErrInvalidDates, req.CheckInDate, req.CheckOutDate)
	}

	return nil
}
