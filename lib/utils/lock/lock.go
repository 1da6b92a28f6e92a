package lock

import (
	"context"
	"sync"
	"time"
)

var lockMap sync.Map

const pollInterval = 50 * time.Millisecond

// WithDelay выполняет safeCode под внутрипроцессной блокировкой по ключу.
// Если блокировка не взята за wait, возвращает success=false без ошибки.
func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	isTimeout := time.After(wait)
	for {
		if _, loaded := lockMap.LoadOrStore(key, true); !loaded {
			defer lockMap.Delete(key)
			return true, safeCode()
		}
		select {
		case <-isTimeout:
			return false, nil
		case <-ctx.Done():
			return false, nil
		default:
			time.Sleep(pollInterval)
		}
	}
}
