package domain

import (
	"fmt"
	"time"

	dErrors "messhall/pkg/domain-errors"
)

// Date is a calendar date with no time component. Registrations apply to a
// Date; the creation timestamp is a separate concern. The zero value is
// "no date".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

const dateLayout = "2006-01-02"

// ParseDate constructs a Date from an external "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, dErrors.Newf(dErrors.CodeInvalidInput, "date %q is not in YYYY-MM-DD form", s)
	}
	return DateOf(t, time.UTC), nil
}

// DateOf returns the calendar date of the instant t in the given location.
func DateOf(t time.Time, loc *time.Location) Date {
	y, m, d := t.In(loc).Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) String() string {
	return d.Time(time.UTC).Format(dateLayout)
}

// Time returns midnight of the date in the given location. Used when handing
// the date to storage.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Before(other Date) bool {
	return d.Time(time.UTC).Before(other.Time(time.UTC))
}

func (d Date) After(other Date) bool {
	return other.Before(d)
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time(time.UTC).AddDate(0, 0, n), time.UTC)
}

// TimeOfDay is a wall-clock time with minute precision, e.g. the daily
// registration deadline. The zero value is midnight.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay constructs a TimeOfDay from an external "HH:MM" string.
// "HH:MM:SS" is accepted and truncated to the minute.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m int
	var sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
			return TimeOfDay{}, dErrors.Newf(dErrors.CodeInvalidInput, "time of day %q is not in HH:MM form", s)
		}
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return TimeOfDay{}, dErrors.Newf(dErrors.CodeInvalidInput, "time of day %q out of range", s)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

// TimeOfDayOf returns the wall-clock time of the instant t in the given
// location, truncated to the minute.
func TimeOfDayOf(t time.Time, loc *time.Location) TimeOfDay {
	lt := t.In(loc)
	return TimeOfDay{Hour: lt.Hour(), Minute: lt.Minute()}
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) minutes() int {
	return t.Hour*60 + t.Minute
}

// After reports whether t is strictly later in the day than other. The
// deadline rule rejects registrations only when the current time is strictly
// after the deadline, so 18:00 itself still passes an 18:00 deadline.
func (t TimeOfDay) After(other TimeOfDay) bool {
	return t.minutes() > other.minutes()
}
