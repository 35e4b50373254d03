package game

import (
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// scheduledTask records one ScheduleExecution or UpdatePausedTask call.
type scheduledTask struct {
	task  Task
	arg   int
	delay time.Duration
	force bool
}

// fakeEngine records every call the session makes; tests configure its
// answers through the public fields.
type fakeEngine struct {
	stopReason StopReason
	stops      []StopReason
	scheduled  []scheduledTask
	pausedTask []scheduledTask
	immediate  int

	paused          bool
	resumeRemaining time.Duration

	currentTask Task
	nextTask    Task

	finalRound     bool
	canBack        bool
	canBackRound   bool
	canNextRound   bool
	roundIndex     int
	roundCount     int
	movedNextRound bool
	movedToAnswer  bool
	skipped        bool
}

func (e *fakeEngine) Stop(reason StopReason) bool {
	if e.stopReason != StopNone {
		return false
	}
	e.stopReason = reason
	e.stops = append(e.stops, reason)
	return true
}

func (e *fakeEngine) CancelStop()            { e.stopReason = StopNone }
func (e *fakeEngine) StopReason() StopReason { return e.stopReason }
func (e *fakeEngine) IsRunning() bool        { return true }

func (e *fakeEngine) ScheduleExecution(task Task, arg int, delay time.Duration, force bool) {
	e.scheduled = append(e.scheduled, scheduledTask{task, arg, delay, force})
}

func (e *fakeEngine) UpdatePausedTask(task Task, arg int, remaining time.Duration) {
	e.pausedTask = append(e.pausedTask, scheduledTask{task, arg, remaining, false})
}

func (e *fakeEngine) ExecuteImmediate() { e.immediate++ }

// PauseExecution parks the engine and, like the real runner, consumes the
// pause stop: parking is its stop point.
func (e *fakeEngine) PauseExecution() {
	e.paused = true
	if e.stopReason == StopPause {
		e.stopReason = StopNone
	}
}

func (e *fakeEngine) ResumeExecution() time.Duration {
	e.paused = false
	return e.resumeRemaining
}

func (e *fakeEngine) CurrentTask() Task { return e.currentTask }
func (e *fakeEngine) NextTask() Task    { return e.nextTask }

func (e *fakeEngine) CanMoveBack() bool      { return e.canBack }
func (e *fakeEngine) CanMoveBackRound() bool { return e.canBackRound }
func (e *fakeEngine) CanMoveNextRound() bool { return e.canNextRound }

func (e *fakeEngine) MoveNextRound() bool {
	e.movedNextRound = true
	return true
}

func (e *fakeEngine) MoveToAnswer()      { e.movedToAnswer = true }
func (e *fakeEngine) SkipQuestion()      { e.skipped = true }
func (e *fakeEngine) IsFinalRound() bool { return e.finalRound }
func (e *fakeEngine) RoundIndex() int    { return e.roundIndex }
func (e *fakeEngine) RoundCount() int    { return e.roundCount }

func (e *fakeEngine) lastScheduled() scheduledTask {
	if len(e.scheduled) == 0 {
		return scheduledTask{}
	}
	return e.scheduled[len(e.scheduled)-1]
}

// recordingSink collects session faults.
type recordingSink struct {
	mu     sync.Mutex
	errors []error
	fatals []error
}

func (r *recordingSink) Error(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, err)
}

func (r *recordingSink) Fatal(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fatals = append(r.fatals, err)
}

// recordingSender keeps every outbound line for inspection.
type recordingSender struct {
	lines []string
}

func (r *recordingSender) Send(text string) { r.lines = append(r.lines, text) }

// contains reports whether any line starts with the given command.
func (r *recordingSender) contains(command string) bool {
	for _, line := range r.lines {
		if line == command || strings.HasPrefix(line, command+ArgsSeparator) {
			return true
		}
	}
	return false
}

type fakeShare struct {
	blobs map[string][]byte
}

func (f *fakeShare) ContainsUri(key string) bool {
	_, ok := f.blobs[key]
	return ok
}

func (f *fakeShare) CreateUri(key string, data []byte) string {
	if f.blobs == nil {
		f.blobs = make(map[string][]byte)
	}
	f.blobs[key] = data
	return "http://share.test/" + key
}

func (f *fakeShare) MakeUri(key string) string { return "http://share.test/" + key }

// plainPasswords compares hashes as plain strings.
type plainPasswords struct{}

func (plainPasswords) Compare(hash, password string) (bool, error) {
	return hash == password, nil
}

// testClock is a manually advanced clock for deterministic timer math.
type testClock struct {
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time          { return c.now }
func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestSession(tb testing.TB, mutate func(*Settings)) (*Session, *fakeEngine, *recordingSink, *testClock) {
	tb.Helper()

	settings := Settings{
		Name:           "test game",
		Tables:         3,
		MinPlayers:     2,
		MaxPlayers:     6,
		ButtonBlocking: 3 * time.Second,
		Thinking:       5 * time.Second,
		ReadingSpeed:   20,
	}

	if mutate != nil {
		mutate(&settings)
	}

	engine := &fakeEngine{}
	sink := &recordingSink{}
	clock := newTestClock()

	s := NewSession("s-test", settings, Dependencies{
		Engine:    engine,
		Share:     &fakeShare{},
		Errors:    sink,
		Passwords: plainPasswords{},
		Rand:      rand.New(rand.NewSource(42)),
		Clock:     clock.Now,
		Log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return s, engine, sink, clock
}

// joinAs seats a participant and attaches a recording outbox.
func joinAs(tb testing.TB, s *Session, name string, role Role) *recordingSender {
	tb.Helper()

	sender := &recordingSender{}
	s.Attach(name, sender)
	require.NoError(tb, s.Join(name, true, role, ""))
	return sender
}
