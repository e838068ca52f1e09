package run_sweeps

import (
	"context"
	"time"

	"github.com/stayhub/StayHub-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ExpireDue(ctx context.Context, now time.Time) ([]int64, error)
	CompleteDue(ctx context.Context, today types.DateString) ([]int64, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// MetricsRecorder интерфейс для записи метрик переходов
type MetricsRecorder interface {
	ObserveSweepTransition(transition string, count int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
