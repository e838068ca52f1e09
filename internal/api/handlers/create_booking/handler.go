package create_booking

import (
	"errors"
	"net/http"

	"github.com/stayhub/StayHub-BookingService/internal/api/handlers"
	"github.com/stayhub/StayHub-BookingService/internal/api/middleware"
	createBooking "github.com/stayhub/StayHub-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные параметры бронирования"
	msgPropertyNotFound   = "объект размещения не найден"
	msgPropertyInactive   = "объект размещения недоступен для бронирования"
	msgGuestNotFound      = "гость не найден"
	msgGuestInactive      = "аккаунт гостя заблокирован"
	msgDatesNotAvailable  = "выбранные даты недоступны"
	msgPriceChanged       = "стоимость изменилась, запросите новый расчёт"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrDatesNotAvailable):
			h.logger.Warn("POST /bookings - Dates not available: guest_id=%d, property_id=%d", userID, req.PropertyID)
			handlers.RespondConflict(w, msgDatesNotAvailable)

		case errors.Is(err, createBooking.ErrPriceChanged):
			h.logger.Warn("POST /bookings - Price changed: guest_id=%d, property_id=%d", userID, req.PropertyID)
			handlers.RespondConflict(w, msgPriceChanged)

		case errors.Is(err, createBooking.ErrPropertyNotFound):
			h.logger.Warn("POST /bookings - Property not found: property_id=%d", req.PropertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, createBooking.ErrGuestNotFound):
			h.logger.Warn("POST /bookings - Guest not found: guest_id=%d", userID)
			handlers.RespondNotFound(w, msgGuestNotFound)

		case errors.Is(err, createBooking.ErrPropertyInactive):
			h.logger.Warn("POST /bookings - Property inactive: property_id=%d", req.PropertyID)
			handlers.RespondBadRequest(w, msgPropertyInactive)

		case errors.Is(err, createBooking.ErrGuestInactive):
			h.logger.Warn("POST /bookings - Guest inactive: guest_id=%d", userID)
			handlers.RespondForbidden(w, msgGuestInactive)

		case errors.Is(err, createBooking.ErrInvalidInput),
			errors.Is(err, createBooking.ErrInvalidDates),
			errors.Is(err, createBooking.ErrStayTooShort),
			errors.Is(err, createBooking.ErrStayTooLong),
			errors.Is(err, createBooking.ErrTooManyGuests):
			h.logger.Warn("POST /bookings - Invalid input: guest_id=%d, property_id=%d, error=%v",
				userID, req.PropertyID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: guest_id=%d, property_id=%d, error=%v",
				userID, req.PropertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, guest_id=%d, property_id=%d, status=%s",
		result.ID, userID, req.PropertyID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
