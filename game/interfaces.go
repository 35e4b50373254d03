package game

import "time"

// Engine is the turn/task scheduler the session delegates to. The session
// never drives rounds itself: it parks on decisions, asks the engine to
// stop or resume, and reacts to task callbacks.
type Engine interface {
	// Stop asks the engine to stop at the next safe point. It reports
	// whether the request was accepted (false when another stop is already
	// pending). Stops are advisory and cancelable until confirmed.
	Stop(reason StopReason) bool
	CancelStop()
	StopReason() StopReason
	IsRunning() bool

	ScheduleExecution(task Task, arg int, delay time.Duration, force bool)
	UpdatePausedTask(task Task, arg int, remaining time.Duration)
	ExecuteImmediate()

	PauseExecution()
	// ResumeExecution rearms the paused task and returns its remaining time.
	ResumeExecution() time.Duration

	CurrentTask() Task
	NextTask() Task

	CanMoveBack() bool
	CanMoveBackRound() bool
	CanMoveNextRound() bool
	MoveNextRound() bool
	MoveToAnswer()
	SkipQuestion()
	IsFinalRound() bool
	RoundIndex() int
	RoundCount() int
}

// ContentShare publishes small blobs under stable URIs, shared across all
// sessions. Publication is at-most-once per key.
type ContentShare interface {
	ContainsUri(key string) bool
	CreateUri(key string, data []byte) string
	MakeUri(key string) string
}

// ErrorSink receives session faults. Error is handler-local (the session
// continues), Fatal means state consistency can no longer be guaranteed.
type ErrorSink interface {
	Error(err error)
	Fatal(err error)
}

// Sender delivers one outbound protocol line to a participant.
type Sender interface {
	Send(text string)
}

// PasswordChecker verifies the session password against its stored hash.
type PasswordChecker interface {
	Compare(hash, password string) (bool, error)
}
