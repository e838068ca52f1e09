package create_booking

import (
	"time"

	"github.com/stayhub/StayHub-BookingService/internal/domain"
	"github.com/stayhub/StayHub-BookingService/pkg/types"
)

// PricingSnapshot котировка цены, полученная клиентом через quote.
// Передаётся при создании бронирования для защиты от изменения тарифов.
type PricingSnapshot struct {
	BasePrice       int64
	CleaningFee     int64
	SecurityDeposit int64
	ServiceFee      int64
	Taxes           int64
	TotalAmount     int64
}

// Request модель запроса на создание бронирования
type Request struct {
	PropertyID     int64
	GuestID        int64
	CheckInDate    types.DateString
	CheckOutDate   types.DateString
	GuestsCount    int
	Pricing        *PricingSnapshot
	SpecialRequest *string
}

// Response модель ответа с данными созданного бронирования
type Response struct {
	ID               int64
	PropertyID       int64
	GuestID          int64
	CheckInDate      types.DateString
	CheckOutDate     types.DateString
	GuestsCount      int
	Nights           int
	BasePrice        int64
	CleaningFee      int64
	SecurityDeposit  int64
	ServiceFee       int64
	Taxes            int64
	TotalAmount      int64
	Currency         string
	Status           domain.BookingStatus
	PaymentExpiresAt *time.Time
	SpecialRequest   *string
	CreatedAt        time.Time
}

func buildResponse(booking *domain.Booking, pricing domain.PriceBreakdown, nights int) *Response {
	return &Response{
		ID:               booking.ID,
		PropertyID:       booking.PropertyID,
		GuestID:          booking.GuestID,
		CheckInDate:      booking.CheckInDate,
		CheckOutDate:     booking.CheckOutDate,
		GuestsCount:      booking.GuestsCount,
		Nights:           nights,
		BasePrice:        pricing.BasePrice,
		CleaningFee:      pricing.CleaningFee,
		SecurityDeposit:  pricing.SecurityDeposit,
		ServiceFee:       pricing.ServiceFee,
		Taxes:            pricing.Taxes,
		TotalAmount:      pricing.TotalAmount,
		Currency:         booking.Currency,
		Status:           booking.Status,
		PaymentExpiresAt: booking.PaymentExpiresAt,
		SpecialRequest:   booking.SpecialRequest,
		CreatedAt:        booking.CreatedAt,
	}
}
