package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// DateFormat layout for calendar dates on the wire and in the database.
const DateFormat = "2006-01-02"

var (
	// ErrInvalidDateFormat is returned when a string is not a YYYY-MM-DD date.
	ErrInvalidDateFormat = errors.New("types: invalid date format, expected YYYY-MM-DD")
)

// DateString is a calendar date without a time component ("2026-07-14").
// Stay boundaries are calendar dates: a booking occupies the half-open
// range [check_in, check_out) measured in nights, never in hours.
type DateString string

// NewDateString truncates t to its calendar date.
func NewDateString(t time.Time) DateString {
	return DateString(t.Format(DateFormat))
}

// NewDateStringFromString parses and validates a YYYY-MM-DD string.
func NewDateStringFromString(s string) (DateString, error) {
	if _, err := time.Parse(DateFormat, s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return DateString(s), nil
}

// String returns the date in YYYY-MM-DD form.
func (d DateString) String() string {
	return string(d)
}

// IsZero reports whether the date is empty.
func (d DateString) IsZero() bool {
	return d == ""
}

// Validate checks the YYYY-MM-DD format.
func (d DateString) Validate() error {
	_, err := d.Time()
	return err
}

// Time converts the date to a time.Time at midnight UTC.
func (d DateString) Time() (time.Time, error) {
	t, err := time.Parse(DateFormat, string(d))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, string(d))
	}
	return t, nil
}

// Before reports whether d is strictly earlier than other.
// Lexicographic comparison is correct for valid YYYY-MM-DD values.
func (d DateString) Before(other DateString) bool {
	return string(d) < string(other)
}

// After reports whether d is strictly later than other.
func (d DateString) After(other DateString) bool {
	return string(d) > string(other)
}

// DaysUntil returns the number of days from d to other (other - d).
func (d DateString) DaysUntil(other DateString) (int, error) {
	from, err := d.Time()
	if err != nil {
		return 0, err
	}
	to, err := other.Time()
	if err != nil {
		return 0, err
	}
	return int(to.Sub(from) / (24 * time.Hour)), nil
}

// AddDays returns the date shifted by the given number of days.
func (d DateString) AddDays(days int) (DateString, error) {
	t, err := d.Time()
	if err != nil {
		return "", err
	}
	return NewDateString(t.AddDate(0, 0, days)), nil
}

// Value implements driver.Valuer so DateString binds as a DATE column.
func (d DateString) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	t, err := d.Time()
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Scan implements sql.Scanner for DATE columns.
func (d *DateString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = ""
		return nil
	case time.Time:
		*d = NewDateString(v)
		return nil
	case string:
		parsed, err := NewDateStringFromString(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := NewDateStringFromString(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("types: cannot scan %T into DateString", src)
	}
}
