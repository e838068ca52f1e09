package run_sweeps

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayhub/StayHub-BookingService/pkg/types"
)

type fakeRepo struct {
	expiredIDs   []int64
	completedIDs []int64
	expireErr    error
	completeErr  error

	expireCalledWith   time.Time
	completeCalledWith types.DateString
}

func (f *fakeRepo) ExpireDue(_ context.Context, now time.Time) ([]int64, error) {
	f.expireCalledWith = now
	return f.expiredIDs, f.expireErr
}

func (f *fakeRepo) CompleteDue(_ context.Context, today types.DateString) ([]int64, error) {
	f.completeCalledWith = today
	return f.completedIDs, f.completeErr
}

type fakeMetrics struct {
	observed map[string]int
}

func (f *fakeMetrics) ObserveSweepTransition(transition string, count int) {
	if f.observed == nil {
		f.observed = make(map[string]int)
	}
	f.observed[transition] += count
}

type fakeTime struct {
	now time.Time
}

func (f *fakeTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestExecute_TransitionsAndMetrics(t *testing.T) {
	now := time.Date(2026, 7, 14, 3, 0, 0, 0, time.UTC)
	repo := &fakeRepo{
		expiredIDs:   []int64{1, 2},
		completedIDs: []int64{3},
	}
	metrics := &fakeMetrics{}
	uc := New(repo, &fakeTime{now: now}, metrics, nopLogger{})

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, now, result.RanAt)
	assert.Equal(t, []int64{1, 2}, result.ExpiredIDs)
	assert.Equal(t, []int64{3}, result.CompletedIDs)

	assert.Equal(t, now, repo.expireCalledWith)
	assert.Equal(t, types.DateString("2026-07-14"), repo.completeCalledWith)

	assert.Equal(t, 2, metrics.observed[TransitionExpired])
	assert.Equal(t, 1, metrics.observed[TransitionCompleted])
}

func TestExecute_NothingDue(t *testing.T) {
	now := time.Date(2026, 7, 14, 3, 0, 0, 0, time.UTC)
	repo := &fakeRepo{}
	uc := New(repo, &fakeTime{now: now}, &fakeMetrics{}, nopLogger{})

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Empty(t, result.ExpiredIDs)
	assert.Empty(t, result.CompletedIDs)
}

func TestExecute_NilMetrics(t *testing.T) {
	now := time.Date(2026, 7, 14, 3, 0, 0, 0, time.UTC)
	repo := &fakeRepo{expiredIDs: []int64{1}}
	uc := New(repo, &fakeTime{now: now}, nil, nopLogger{})

	_, err := uc.Execute(context.Background())
	assert.NoError(t, err)
}

func TestExecute_RepositoryErrors(t *testing.T) {
	now := time.Date(2026, 7, 14, 3, 0, 0, 0, time.UTC)

	t.Run("expire fails", func(t *testing.T) {
		repo := &fakeRepo{expireErr: errors.New("db down")}
		uc := New(repo, &fakeTime{now: now}, nil, nopLogger{})

		_, err := uc.Execute(context.Background())
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("complete fails", func(t *testing.T) {
		repo := &fakeRepo{completeErr: errors.New("db down")}
		uc := New(repo, &fakeTime{now: now}, nil, nopLogger{})

		_, err := uc.Execute(context.Background())
		assert.ErrorIs(t, err, ErrInternal)
	})
}
