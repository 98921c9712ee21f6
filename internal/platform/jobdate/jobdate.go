package jobdate

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidFormat = errors.New("invalid date format, use YYYY-MM-DD or MM-DD")

// Parse resolves the date argument the job CLIs accept. Accepted forms are
// "YYYY-MM-DD" and "MM-DD" (current year assumed). With no argument the
// fallback date is used: the price job prepares tomorrow's rows in advance,
// while the snapshot job closes out a day only after it has ended.
func Parse(args []string, now, fallback time.Time) (time.Time, error) {
	if len(args) == 0 {
		return Truncate(fallback), nil
	}
	arg := args[0]
	if len(arg) == 5 {
		d, err := time.Parse("2006-01-02", fmt.Sprintf("%d-%s", now.Year(), arg))
		if err != nil {
			return time.Time{}, ErrInvalidFormat
		}
		return d, nil
	}
	d, err := time.Parse("2006-01-02", arg)
	if err != nil {
		return time.Time{}, ErrInvalidFormat
	}
	return d, nil
}

// Truncate drops the time-of-day component. All price, snapshot and order
// rows are keyed by calendar date in UTC.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
