package scheduler

import (
	"context"
	"time"

	"github.com/stayhub/StayHub-BookingService/internal/usecase/run_sweeps"
)

// SweepRunner интерфейс usecase фоновых переходов
type SweepRunner interface {
	Execute(ctx context.Context) (*run_sweeps.Result, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler периодически запускает фоновые переходы статусов.
// Переходы идемпотентны, поэтому потерянный или дублирующий тик не ломает
// состояние: следующий проход доберет все просроченные бронирования.
type Scheduler struct {
	runner   SweepRunner
	interval time.Duration
	logger   Logger
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// New создает новый планировщик фоновых переходов
func New(runner SweepRunner, interval time.Duration, logger Logger) *Scheduler {
	return &Scheduler{
		runner:   runner,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start запускает фоновый цикл. Первый проход выполняется сразу,
// не дожидаясь первого тика.
func (s *Scheduler) Start() {
	go s.run()
}

// Stop останавливает цикл и дожидается завершения текущего прохода
func (s *Scheduler) Stop() {
	close(s.stopCh)
	<-s.doneCh
}

func (s *Scheduler) run() {
	defer close(s.doneCh)

	s.logger.Info("scheduler: started, interval=%s", s.interval)

	s.sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			s.logger.Info("scheduler: stopped")
			return
		}
	}
}

func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	if _, err := s.runner.Execute(ctx); err != nil {
		s.logger.Error("scheduler: sweep failed: %v", err)
	}
}
