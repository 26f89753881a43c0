package domain

import (
	"fmt"
	"time"
)

// Period is an optional rolling time window for history and report queries.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// Since returns the start of the window counting back from now.
func (p Period) Since(now time.Time) (time.Time, error) {
	switch p {
	case PeriodWeek:
		return now.AddDate(0, 0, -7), nil
	case PeriodMonth:
		return now.AddDate(0, 0, -30), nil
	case PeriodYear:
		return now.AddDate(0, 0, -365), nil
	default:
		return time.Time{}, fmt.Errorf("unknown period %q", string(p))
	}
}
