package helpers

import (
	"context"
	"time"
)

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

// DaysBetween - количество календарных дней в периоде, включая границы
func DaysBetween(from, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	if toDay.Before(fromDay) {
		return 0
	}
	return int(toDay.Sub(fromDay).Hours()/24) + 1
}

func DateOnly(value time.Time) string {
	return value.Format("02.01.2006")
}
