package types

import (
	"errors"
	"fmt"
	"time"
)

// TimeFormat layout used for parsing and formatting time-of-day values
const TimeFormat = "15:04"

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format, expected HH:MM")

	// ErrTimeOutOfRange возвращается, когда результат операции выходит за пределы суток
	ErrTimeOutOfRange = errors.New("time is out of day range")
)

// TimeString represents a time-of-day value in "HH:MM" form.
// It is stored and serialized as a plain string and compared by minute offset.
type TimeString string

// NewTimeString creates a TimeString from the time-of-day part of t
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeFormat))
}

// NewTimeStringFromString parses and validates an "HH:MM" string
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate checks that the value is a well-formed "HH:MM" time
func (ts TimeString) Validate() error {
	// time.Parse принимает "9:00", поэтому формат проверяется до парсинга
	if len(ts) != 5 || ts[2] != ':' {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	if _, err := time.Parse(TimeFormat, string(ts)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return nil
}

// IsZero returns true when the value is empty
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// String returns the "HH:MM" representation
func (ts TimeString) String() string {
	return string(ts)
}

// Minutes returns the offset from midnight in minutes.
// Invalid values are treated as 00:00.
func (ts TimeString) Minutes() int {
	t, err := time.Parse(TimeFormat, string(ts))
	if err != nil {
		return 0
	}
	return t.Hour()*60 + t.Minute()
}

// IsBefore reports whether ts is strictly earlier in the day than other
func (ts TimeString) IsBefore(other TimeString) bool {
	return ts.Minutes() < other.Minutes()
}

// IsAfter reports whether ts is strictly later in the day than other
func (ts TimeString) IsAfter(other TimeString) bool {
	return ts.Minutes() > other.Minutes()
}

// AddMinutes returns a new TimeString shifted forward by the given number
// of minutes. Crossing midnight is not allowed and returns ErrTimeOutOfRange.
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	if err := ts.Validate(); err != nil {
		return "", err
	}

	total := ts.Minutes() + minutes
	if total < 0 || total >= 24*60 {
		return "", fmt.Errorf("%w: %s + %d minutes", ErrTimeOutOfRange, ts, minutes)
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// At returns the instant of this time-of-day on the given calendar date,
// in the date's location
func (ts TimeString) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), ts.Minutes()/60, ts.Minutes()%60, 0, 0, date.Location())
}
