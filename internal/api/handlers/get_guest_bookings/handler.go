package get_guest_bookings

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
	msgInvalidGuestID = "некорректный ID гостя"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgForbidden      = "доступ запрещен"
	msgInvalidStatus  = "некорректный статус бронирования"
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

// Handle GET /api/v1/guests/{guestId}/bookings?status=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	guestID, err := strconv.ParseInt(vars["guestId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /guests/{id}/bookings - Invalid guest ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGuestID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /guests/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Гость видит только собственную историю бронирований
	if userID != guestID {
		h.logger.Warn("GET /guests/{id}/bookings - Access denied: guest_id=%d, user_id=%d", guestID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	req := &models.GetGuestBookingsRequest{GuestID: guestID}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = ptr.Ptr(status)
	}

	result, err := h.service.GetGuestBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /guests/{id}/bookings - Invalid status: guest_id=%d", guestID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /guests/{id}/bookings - Failed: guest_id=%d, error=%v", guestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /guests/{id}/bookings - Retrieved %d bookings: guest_id=%d", len(result.Bookings), guestID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
