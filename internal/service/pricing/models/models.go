package models

import (
	"github.com/stayhub/StayHub-BookingService/internal/domain"
	"github.com/stayhub/StayHub-BookingService/pkg/types"
)

// QuoteRequest запрос на расчёт стоимости проживания
type QuoteRequest struct {
	PropertyID   int64            `json:"propertyId"`
	CheckInDate  types.DateString `json:"checkInDate"`
	CheckOutDate types.DateString `json:"checkOutDate"`
}

// QuoteResponse детализированный расчёт стоимости.
// Все суммы в минорных единицах валюты. SecurityDeposit справочный
// и не входит в TotalAmount.
type QuoteResponse struct {
	PropertyID   int64  `json:"propertyId"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
	Nights       int    `json:"nights"`

	PricePerNight   int64  `json:"pricePerNight"`
	BasePrice       int64  `json:"basePrice"`
	CleaningFee     int64  `json:"cleaningFee"`
	ServiceFee      int64  `json:"serviceFee"`
	Taxes           int64  `json:"taxes"`
	SecurityDeposit int64  `json:"securityDeposit"`
	TotalAmount     int64  `json:"totalAmount"`
	Currency        string `json:"currency"`
}

// FromBreakdown собирает ответ из доменного расчёта
func FromBreakdown(req *QuoteRequest, pricePerNight int64, nights int, breakdown domain.PriceBreakdown) *QuoteResponse {
	return &QuoteResponse{
		PropertyID:      req.PropertyID,
		CheckInDate:     req.CheckInDate.String(),
		CheckOutDate:    req.CheckOutDate.String(),
		Nights:          nights,
		PricePerNight:   pricePerNight,
		BasePrice:       breakdown.BasePrice,
		CleaningFee:     breakdown.CleaningFee,
		ServiceFee:      breakdown.ServiceFee,
		Taxes:           breakdown.Taxes,
		SecurityDeposit: breakdown.SecurityDeposit,
		TotalAmount:     breakdown.TotalAmount,
		Currency:        breakdown.Currency,
	}
}
