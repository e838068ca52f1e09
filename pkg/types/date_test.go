package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDateStringFromString(t *testing.T) {
	date, err := NewDateStringFromString("2026-07-14")
	require.NoError(t, err)
	assert.Equal(t, "2026-07-14", date.String())

	invalid := []string{"", "2026-7-14", "14-07-2026", "2026-13-01", "2026-02-30", "not-a-date"}
	for _, raw := range invalid {
		_, err := NewDateStringFromString(raw)
		assert.ErrorIs(t, err, ErrInvalidDateFormat, "input %q", raw)
	}
}

func TestDateString_Compare(t *testing.T) {
	a := DateString("2026-01-10")
	b := DateString("2026-01-15")

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.True(t, b.After(a))
	assert.False(t, a.Before(a))
	assert.False(t, a.After(a))
}

func TestDateString_DaysUntil(t *testing.T) {
	a := DateString("2026-07-14")
	b := DateString("2026-07-19")

	days, err := a.DaysUntil(b)
	require.NoError(t, err)
	assert.Equal(t, 5, days)

	days, err = b.DaysUntil(a)
	require.NoError(t, err)
	assert.Equal(t, -5, days)
}

func TestDateString_AddDays(t *testing.T) {
	date := DateString("2026-01-30")

	shifted, err := date.AddDays(3)
	require.NoError(t, err)
	assert.Equal(t, DateString("2026-02-02"), shifted)
}

func TestDateString_ScanAndValue(t *testing.T) {
	var date DateString
	require.NoError(t, date.Scan(time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, DateString("2026-07-14"), date)

	require.NoError(t, date.Scan("2026-07-15"))
	assert.Equal(t, DateString("2026-07-15"), date)

	require.NoError(t, date.Scan([]byte("2026-07-16")))
	assert.Equal(t, DateString("2026-07-16"), date)

	require.NoError(t, date.Scan(nil))
	assert.True(t, date.IsZero())

	value, err := DateString("2026-07-14").Value()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC), value)

	value, err = DateString("").Value()
	require.NoError(t, err)
	assert.Nil(t, value)
}
