package get_property_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/stayhub/StayHub-BookingService/internal/api/handlers"
	"github.com/stayhub/StayHub-BookingService/internal/api/middleware"
	"github.com/stayhub/StayHub-BookingService/internal/service/bookings"
	"github.com/stayhub/StayHub-BookingService/internal/service/bookings/models"
	"github.com/stayhub/StayHub-BookingService/pkg/ptr"
)

const (
	msgInvalidPropertyID = "некорректный ID объекта размещения"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgForbidden         = "доступ запрещен"
	msgPropertyNotFound  = "объект размещения не найден"
	msgInvalidFilter     = "некорректные параметры фильтрации"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/properties/{propertyId}/bookings?startDate=...&endDate=...&status=...&includeInactive=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	propertyID, err := strconv.ParseInt(vars["propertyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /properties/{id}/bookings - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /properties/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetPropertyBookingsRequest{
		UserID:     userID,
		PropertyID: propertyID,
	}

	query := r.URL.Query()
	if startDate := query.Get("startDate"); startDate != "" {
		req.StartDate = ptr.Ptr(startDate)
	}
	if endDate := query.Get("endDate"); endDate != "" {
		req.EndDate = ptr.Ptr(endDate)
	}
	if status := query.Get("status"); status != "" {
		req.Status = ptr.Ptr(status)
	}
	if includeInactive := query.Get("includeInactive"); includeInactive == "true" {
		req.IncludeInactive = true
	}

	result, err := h.service.GetPropertyBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrPropertyNotFound):
			h.logger.Warn("GET /properties/{id}/bookings - Property not found: property_id=%d", propertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /properties/{id}/bookings - Access denied: property_id=%d, user_id=%d",
				propertyID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /properties/{id}/bookings - Invalid filter: property_id=%d", propertyID)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /properties/{id}/bookings - Failed: property_id=%d, error=%v", propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /properties/{id}/bookings - Retrieved %d bookings: property_id=%d, user_id=%d",
		len(result.Bookings), propertyID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
