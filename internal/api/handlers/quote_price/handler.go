package quote_price

import (
	"errors"
	"net/http"

	"github.com/stayhub/StayHub-BookingService/internal/api/handlers"
	"github.com/stayhub/StayHub-BookingService/internal/service/pricing"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные параметры запроса"
	msgPropertyNotFound   = "объект размещения не найден"
)

type Handler struct {
	service PricingService
	logger  Logger
}

func NewHandler(service PricingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/quote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req QuotePriceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /bookings/quote - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	quote, err := h.service.Quote(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrInvalidInput), errors.Is(err, pricing.ErrInvalidDates):
			h.logger.Warn("POST /bookings/quote - Invalid input: property_id=%d, error=%v", req.PropertyID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, pricing.ErrPropertyNotFound):
			h.logger.Warn("POST /bookings/quote - Property not found: property_id=%d", req.PropertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		default:
			h.logger.Error("POST /bookings/quote - Failed to quote: property_id=%d, error=%v", req.PropertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/quote - Quote calculated: property_id=%d, total=%d %s",
		quote.PropertyID, quote.TotalAmount, quote.Currency)
	handlers.RespondJSON(w, http.StatusOK, quote)
}
