package run_sweeps

import (
	"net/http"
	"time"

	"github.com/stayhub/StayHub-BookingService/internal/api/handlers"
)

// SweepResponse HTTP response model
type SweepResponse struct {
	RanAt        string  `json:"ranAt"` // ISO 8601 format
	ExpiredIDs   []int64 `json:"expiredIds"`
	CompletedIDs []int64 `json:"completedIds"`
}

type Handler struct {
	useCase RunSweepsUseCase
	logger  Logger
}

func NewHandler(useCase RunSweepsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /internal/sweeps
// Служебный эндпоинт для принудительного запуска фоновых переходов,
// используется в тестовых окружениях и при отключенном планировщике.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("POST /internal/sweeps - Sweep failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	response := &SweepResponse{
		RanAt:        result.RanAt.Format(time.RFC3339),
		ExpiredIDs:   result.ExpiredIDs,
		CompletedIDs: result.CompletedIDs,
	}
	if response.ExpiredIDs == nil {
		response.ExpiredIDs = []int64{}
	}
	if response.CompletedIDs == nil {
		response.CompletedIDs = []int64{}
	}

	h.logger.Info("POST /internal/sweeps - Sweep completed: expired=%d, completed=%d",
		len(result.ExpiredIDs), len(result.CompletedIDs))
	handlers.RespondJSON(w, http.StatusOK, response)
}
