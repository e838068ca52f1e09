package models

import (
	"errors"
	"time"

	"github.com/stayhub/StayHub-BookingService/internal/domain"
	"github.com/stayhub/StayHub-BookingService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidPaymentMethod возвращается при неизвестном способе оплаты
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// Request модели

// GetGuestBookingsRequest запрос на получение бронирований гостя
type GetGuestBookingsRequest struct {
	GuestID int64   `json:"guestId"`
	Status  *string `json:"status,omitempty"`
}

// GetPropertyBookingsRequest запрос на получение бронирований объекта размещения
type GetPropertyBookingsRequest struct {
	UserID          int64   `json:"userId"`
	PropertyID      int64   `json:"propertyId"`
	StartDate       *string `json:"startDate,omitempty"`       // Начало периода, YYYY-MM-DD (опционально)
	EndDate         *string `json:"endDate,omitempty"`         // Конец периода, YYYY-MM-DD (опционально)
	Status          *string `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool    `json:"includeInactive,omitempty"` // Включить отменённые и истекшие бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetPropertyBookingsRequest) ToDomainFilter() (domain.PropertyBookingsFilter, error) {
	filter := domain.PropertyBookingsFilter{
		PropertyID:      r.PropertyID,
		IncludeInactive: r.IncludeInactive,
	}

	if r.StartDate != nil {
		date, err := types.NewDateStringFromString(*r.StartDate)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &date
	}

	if r.EndDate != nil {
		date, err := types.NewDateStringFromString(*r.EndDate)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &date
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// ApproveBookingRequest запрос хоста на подтверждение бронирования
type ApproveBookingRequest struct {
	UserID int64 `json:"userId"`
}

// SubmitPaymentRequest запрос гостя на регистрацию оплаты
type SubmitPaymentRequest struct {
	UserID           int64   `json:"userId"`
	PaymentMethod    string  `json:"paymentMethod"`
	PaymentReference string  `json:"paymentReference"`
	PaymentProofURL  *string `json:"paymentProofUrl,omitempty"`
}

// VerifyPaymentRequest запрос хоста на проверку оплаты
type VerifyPaymentRequest struct {
	UserID   int64 `json:"userId"`
	Approved bool  `json:"approved"`
}

// ReopenPaymentRequest запрос на повторное открытие окна оплаты
type ReopenPaymentRequest struct {
	UserID int64 `json:"userId"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           int64  `json:"id"`
	PropertyID   int64  `json:"propertyId"`
	GuestID      int64  `json:"guestId"`
	CheckInDate  string `json:"checkInDate"`  // "2026-07-14"
	CheckOutDate string `json:"checkOutDate"` // "2026-07-19"
	GuestsCount  int    `json:"guestsCount"`

	// Ценовой снимок в минорных единицах валюты
	BasePrice       int64  `json:"basePrice"`
	CleaningFee     int64  `json:"cleaningFee"`
	SecurityDeposit int64  `json:"securityDeposit"`
	Taxes           int64  `json:"taxes"`
	TotalAmount     int64  `json:"totalAmount"`
	Currency        string `json:"currency"`

	Status string `json:"status"`

	PaymentMethod    *string `json:"paymentMethod,omitempty"`
	PaymentReference *string `json:"paymentReference,omitempty"`
	PaymentProofURL  *string `json:"paymentProofUrl,omitempty"`
	PaymentExpiresAt *string `json:"paymentExpiresAt,omitempty"` // ISO 8601 format

	SpecialRequest     *string `json:"specialRequest,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		PropertyID:         b.PropertyID,
		GuestID:            b.GuestID,
		CheckInDate:        b.CheckInDate.String(),
		CheckOutDate:       b.CheckOutDate.String(),
		GuestsCount:        b.GuestsCount,
		BasePrice:          b.BasePrice,
		CleaningFee:        b.CleaningFee,
		SecurityDeposit:    b.SecurityDeposit,
		Taxes:              b.Taxes,
		TotalAmount:        b.TotalAmount,
		Currency:           b.Currency,
		Status:             string(b.Status),
		PaymentReference:   b.PaymentReference,
		PaymentProofURL:    b.PaymentProofURL,
		SpecialRequest:     b.SpecialRequest,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.PaymentMethod != nil {
		method := string(*b.PaymentMethod)
		resp.PaymentMethod = &method
	}

	if b.PaymentExpiresAt != nil {
		expiresStr := b.PaymentExpiresAt.Format(time.RFC3339)
		resp.PaymentExpiresAt = &expiresStr
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !domain.IsValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ToDomainPaymentMethod конвертирует строку в domain.PaymentMethod с валидацией
func ToDomainPaymentMethod(method string) (domain.PaymentMethod, error) {
	m := domain.PaymentMethod(method)
	if !m.IsValid() {
		return "", ErrInvalidPaymentMethod
	}
	return m, nil
}
