package domain

import (
	"fmt"
	"time"
)

// calendarYear is the leap year used for date key validation and arithmetic.
const calendarYear = 2024

// DateKey is a validated "MM-DD" calendar day.
type DateKey struct {
	Month time.Month
	Day   int
}

// ParseDateKey validates s as an "MM-DD" key. Impossible combinations such as
// "02-30" are rejected, never rolled forward.
func ParseDateKey(s string) (DateKey, error) {
	if len(s) != 5 || s[2] != '-' {
		return DateKey{}, fmt.Errorf("%w: %q is not MM-DD", ErrInvalidDate, s)
	}
	month, ok := parseTwoDigits(s[0:2])
	if !ok {
		return DateKey{}, fmt.Errorf("%w: %q has a non-numeric month", ErrInvalidDate, s)
	}
	day, ok := parseTwoDigits(s[3:5])
	if !ok {
		return DateKey{}, fmt.Errorf("%w: %q has a non-numeric day", ErrInvalidDate, s)
	}
	k, err := NewDateKey(time.Month(month), day)
	if err != nil {
		return DateKey{}, err
	}
	return k, nil
}

// NewDateKey builds a key from components.
func NewDateKey(month time.Month, day int) (DateKey, error) {
	if month < time.January || month > time.December {
		return DateKey{}, fmt.Errorf("%w: month %d out of range", ErrInvalidDate, month)
	}
	if day < 1 || day > DaysIn(month) {
		return DateKey{}, fmt.Errorf("%w: %s has no day %d", ErrInvalidDate, month, day)
	}
	return DateKey{Month: month, Day: day}, nil
}

// MustDateKey is ParseDateKey for literals. It panics on invalid input.
func MustDateKey(s string) DateKey {
	k, err := ParseDateKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

// DaysIn returns the number of days in month on the leap-year calendar.
func DaysIn(month time.Month) int {
	return time.Date(calendarYear, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// String formats the key as "MM-DD".
func (k DateKey) String() string {
	return fmt.Sprintf("%02d-%02d", int(k.Month), k.Day)
}

// Time returns midnight UTC of the key on the reference calendar.
func (k DateKey) Time() time.Time {
	return time.Date(calendarYear, k.Month, k.Day, 0, 0, 0, 0, time.UTC)
}

// Shift moves the key by n days, wrapping across the year boundary.
func (k DateKey) Shift(n int) DateKey {
	t := k.Time().AddDate(0, 0, n)
	// Bring the result back onto the reference year so 12-31 + 1 is 01-01.
	t = time.Date(calendarYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return DateKey{Month: t.Month(), Day: t.Day()}
}

// IsZero reports whether k is the zero value.
func (k DateKey) IsZero() bool { return k.Month == 0 && k.Day == 0 }

// MarshalText implements encoding.TextMarshaler.
func (k DateKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *DateKey) UnmarshalText(b []byte) error {
	parsed, err := ParseDateKey(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// AllDateKeys returns every key of the leap-year calendar in order.
func AllDateKeys() []DateKey {
	keys := make([]DateKey, 0, 366)
	for m := time.January; m <= time.December; m++ {
		for d := 1; d <= DaysIn(m); d++ {
			keys = append(keys, DateKey{Month: m, Day: d})
		}
	}
	return keys
}

func parseTwoDigits(s string) (int, bool) {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}
