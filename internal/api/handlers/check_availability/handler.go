package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/stayhub/StayHub-BookingService/internal/api/handlers"
	checkAvailability "github.com/stayhub/StayHub-BookingService/internal/usecase/check_availability"
	"github.com/stayhub/StayHub-BookingService/pkg/types"
)

const (
	msgInvalidPropertyID = "некорректный ID объекта размещения"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDates      = "параметры checkIn и checkOut обязательны"
	msgInvalidInput      = "некорректные параметры запроса"
	msgPropertyNotFound  = "объект размещения не найден"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/properties/{propertyId}/availability?checkIn=...&checkOut=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	propertyID, err := strconv.ParseInt(vars["propertyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /properties/{id}/availability - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	checkInRaw := r.URL.Query().Get("checkIn")
	checkOutRaw := r.URL.Query().Get("checkOut")
	if checkInRaw == "" || checkOutRaw == "" {
		h.logger.Warn("GET /properties/{id}/availability - Missing date params: property_id=%d", propertyID)
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	checkIn, err := types.NewDateStringFromString(checkInRaw)
	if err != nil {
		h.logger.Warn("GET /properties/{id}/availability - Invalid checkIn: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	checkOut, err := types.NewDateStringFromString(checkOutRaw)
	if err != nil {
		h.logger.Warn("GET /properties/{id}/availability - Invalid checkOut: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkAvailability.Request{
		PropertyID:   propertyID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput), errors.Is(err, checkAvailability.ErrInvalidDates):
			h.logger.Warn("GET /properties/{id}/availability - Invalid input: property_id=%d, error=%v", propertyID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, checkAvailability.ErrPropertyNotFound):
			h.logger.Warn("GET /properties/{id}/availability - Property not found: property_id=%d", propertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		default:
			h.logger.Error("GET /properties/{id}/availability - Failed: property_id=%d, error=%v", propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /properties/{id}/availability - Checked: property_id=%d, available=%t",
		propertyID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
