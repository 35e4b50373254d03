package game

import (
	"errors"
	"time"
)

var errLockTimeout = errors.New("session lock acquisition timed out")

// timedLock is the session's asynchronous mutual-exclusion region. Both
// inbound message handling and engine callbacks go through it, so the two
// sources of concurrency never interleave their mutations. Acquisition is
// bounded: a timeout means a stuck handler and is a fatal session error.
type timedLock struct {
	ch chan struct{}
}

func newTimedLock() *timedLock {
	return &timedLock{ch: make(chan struct{}, 1)}
}

func (l *timedLock) acquire(timeout time.Duration) error {
	select {
	case l.ch <- struct{}{}:
		return nil
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case l.ch <- struct{}{}:
		return nil
	case <-timer.C:
		return errLockTimeout
	}
}

func (l *timedLock) release() {
	<-l.ch
}
