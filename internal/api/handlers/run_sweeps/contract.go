package run_sweeps

import (
	"context"

	runSweeps "github.com/stayhub/StayHub-BookingService/internal/usecase/run_sweeps"
)

type RunSweepsUseCase interface {
	Execute(ctx context.Context) (*runSweeps.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
