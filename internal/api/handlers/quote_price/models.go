package quote_price

import (
	"github.com/stayhub/StayHub-BookingService/internal/service/pricing/models"
	"github.com/stayhub/StayHub-BookingService/pkg/types"
)

// QuotePriceRequest HTTP request model
type QuotePriceRequest struct {
	PropertyID   int64  `json:"propertyId"`
	CheckInDate  string `json:"checkInDate"`  // "2026-07-14"
	CheckOutDate string `json:"checkOutDate"` // "2026-07-19"
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *QuotePriceRequest) ToServiceRequest() (*models.QuoteRequest, error) {
	checkIn, err := types.NewDateStringFromString(r.CheckInDate)
	if err != nil {
		return nil, err
	}

	checkOut, err := types.NewDateStringFromString(r.CheckOutDate)
	if err != nil {
		return nil, err
	}

	return &models.QuoteRequest{
		PropertyID:   r.PropertyID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
	}, nil
}
