package review

import (
	"sync"
	"time"
)

// CancelFunc stops a scheduled callback. It is safe to call more than
// once and after the callback has fired.
type CancelFunc func()

// Scheduler abstracts the session's timers so that tests can drive
// time deterministically. Callbacks may fire on another goroutine;
// the session guards against stale fires internally.
type Scheduler interface {
	// AfterFunc runs f once after d.
	AfterFunc(d time.Duration, f func()) CancelFunc
	// Every runs f repeatedly with period d until canceled.
	Every(d time.Duration, f func()) CancelFunc
}

// NewScheduler returns the wall-clock scheduler.
func NewScheduler() Scheduler {
	return clockScheduler{}
}

type clockScheduler struct{}

func (clockScheduler) AfterFunc(d time.Duration, f func()) CancelFunc {
	timer := time.AfterFunc(d, f)
	return func() {
		timer.Stop()
	}
}

func (clockScheduler) Every(d time.Duration, f func()) CancelFunc {
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	var once sync.Once

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				f()
			}
		}
	}()

	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}
