package run_sweeps

import (
	"context"
	"fmt"

	"github.com/stayhub/StayHub-BookingService/pkg/types"
)

// UseCase фоновые переходы статусов: просрочка неоплаченных бронирований и
// завершение прошедших. Оба перехода выполняются одним UPDATE с условием на
// текущий статус, поэтому проход идемпотентен и безопасен при параллельном
// запуске нескольких экземпляров сервиса.
type UseCase struct {
	repo         BookingRepository
	timeProvider TimeProvider
	metrics      MetricsRecorder
	logger       Logger
}

func New(repo BookingRepository, timeProvider TimeProvider, metrics MetricsRecorder, logger Logger) *UseCase {
	return &UseCase{
		repo:         repo,
		timeProvider: timeProvider,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет один проход: awaiting_payment с истекшим дедлайном
// переводится в expired, confirmed с наступившей датой выезда в completed.
func (uc *UseCase) Execute(ctx context.Context) (*Result, error) {
	now := uc.timeProvider.Now()

	expiredIDs, err := uc.repo.ExpireDue(ctx, now)
	if err != nil {
		uc.logger.Error("RunSweeps: failed to expire overdue bookings: %v", err)
		return nil, fmt.Errorf("%w: expire due: %v", ErrInternal, err)
	}

	completedIDs, err := uc.repo.CompleteDue(ctx, types.NewDateString(now))
	if err != nil {
		uc.logger.Error("RunSweeps: failed to complete past bookings: %v", err)
		return nil, fmt.Errorf("%w: complete due: %v", ErrInternal, err)
	}

	if uc.metrics != nil {
		uc.metrics.ObserveSweepTransition(TransitionExpired, len(expiredIDs))
		uc.metrics.ObserveSweepTransition(TransitionCompleted, len(completedIDs))
	}

	if len(expiredIDs) > 0 || len(completedIDs) > 0 {
		uc.logger.Info("RunSweeps: expired=%v, completed=%v", expiredIDs, completedIDs)
	}

	return &Result{
		RanAt:        now,
		ExpiredIDs:   expiredIDs,
		CompletedIDs: completedIDs,
	}, nil
}
