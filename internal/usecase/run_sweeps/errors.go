package run_sweeps

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("run_sweeps: internal error")
)
