package run_sweeps

import "time"

// Метки переходов для метрик sweep'а
const (
	TransitionExpired   = "awaiting_payment_to_expired"
	TransitionCompleted = "confirmed_to_completed"
)

// Result итог одного прохода фоновых переходов
type Result struct {
	RanAt        time.Time
	ExpiredIDs   []int64
	CompletedIDs []int64
}
