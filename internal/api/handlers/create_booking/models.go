package create_booking

import (
	"time"

	createBooking "github.com/stayhub/StayHub-BookingService/internal/usecase/create_booking"
	"github.com/stayhub/StayHub-BookingService/pkg/types"
)

// PricingSnapshotRequest котировка, полученная клиентом через quote
type PricingSnapshotRequest struct {
	BasePrice       int64 `json:"basePrice"`
	CleaningFee     int64 `json:"cleaningFee"`
	SecurityDeposit int64 `json:"securityDeposit"`
	ServiceFee      int64 `json:"serviceFee"`
	Taxes           int64 `json:"taxes"`
	TotalAmount     int64 `json:"totalAmount"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	PropertyID     int64                   `json:"propertyId"`
	CheckInDate    string                  `json:"checkInDate"`  // "2026-07-14"
	CheckOutDate   string                  `json:"checkOutDate"` // "2026-07-19"
	GuestsCount    int                     `json:"guestsCount"`
	Pricing        *PricingSnapshotRequest `json:"pricing,omitempty"`
	SpecialRequest *string                 `json:"specialRequest,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               int64   `json:"id"`
	PropertyID       int64   `json:"propertyId"`
	GuestID          int64   `json:"guestId"`
	CheckInDate      string  `json:"checkInDate"`
	CheckOutDate     string  `json:"checkOutDate"`
	GuestsCount      int     `json:"guestsCount"`
	Nights           int     `json:"nights"`
	BasePrice        int64   `json:"basePrice"`
	CleaningFee      int64   `json:"cleaningFee"`
	SecurityDeposit  int64   `json:"securityDeposit"`
	ServiceFee       int64   `json:"serviceFee"`
	Taxes            int64   `json:"taxes"`
	TotalAmount      int64   `json:"totalAmount"`
	Currency         string  `json:"currency"`
	Status           string  `json:"status"`
	PaymentExpiresAt *string `json:"paymentExpiresAt,omitempty"` // ISO 8601 format
	SpecialRequest   *string `json:"specialRequest,omitempty"`
	CreatedAt        string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(guestID int64) (*createBooking.Request, error) {
	checkIn, err := types.NewDateStringFromString(r.CheckInDate)
	if err != nil {
		return nil, err
	}

	checkOut, err := types.NewDateStringFromString(r.CheckOutDate)
	if err != nil {
		return nil, err
	}

	req := &createBooking.Request{
		PropertyID:     r.PropertyID,
		GuestID:        guestID,
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
		GuestsCount:    r.GuestsCount,
		SpecialRequest: r.SpecialRequest,
	}

	if r.Pricing != nil {
		req.Pricing = &createBooking.PricingSnapshot{
			BasePrice:       r.Pricing.BasePrice,
			CleaningFee:     r.Pricing.CleaningFee,
			SecurityDeposit: r.Pricing.SecurityDeposit,
			ServiceFee:      r.Pricing.ServiceFee,
			Taxes:           r.Pricing.Taxes,
			TotalAmount:     r.Pricing.TotalAmount,
		}
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	httpResp := &BookingResponse{
		ID:              resp.ID,
		PropertyID:      resp.PropertyID,
		GuestID:         resp.GuestID,
		CheckInDate:     resp.CheckInDate.String(),
		CheckOutDate:    resp.CheckOutDate.String(),
		GuestsCount:     resp.GuestsCount,
		Nights:          resp.Nights,
		BasePrice:       resp.BasePrice,
		CleaningFee:     resp.CleaningFee,
		SecurityDeposit: resp.SecurityDeposit,
		ServiceFee:      resp.ServiceFee,
		Taxes:           resp.Taxes,
		TotalAmount:     resp.TotalAmount,
		Currency:        resp.Currency,
		Status:          string(resp.Status),
		SpecialRequest:  resp.SpecialRequest,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}

	if resp.PaymentExpiresAt != nil {
		expiresStr := resp.PaymentExpiresAt.Format(time.RFC3339)
		httpResp.PaymentExpiresAt = &expiresStr
	}

	return httpResp
}
