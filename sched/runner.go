// Package sched implements the delayed-task half of the game engine
// contract: one pending task at a time, stoppable at safe points,
// pausable with exact remaining-time accounting.
package sched

import (
	"sync"
	"time"

	"quizapi/game"
)

// Runner executes at most one scheduled task. A stop request does not
// interrupt anything by itself: it is stored and the pending task is
// brought forward to the next safe point. Delivering the task (or
// parking it, for a pause) consumes the stop; an undelivered stop can
// still be withdrawn with CancelStop.
type Runner struct {
	mu    sync.Mutex
	clock func() time.Time

	exec func(task game.Task, arg int)

	timer *time.Timer

	currentTask game.Task
	currentArg  int
	finishTime  time.Time
	running     bool

	paused          bool
	pausedTask      game.Task
	pausedRemaining time.Duration

	stopReason game.StopReason
}

func NewRunner() *Runner {
	return &Runner{clock: time.Now}
}

// SetExec installs the task executor. The executor runs on the timer
// goroutine with no Runner locks held, so it may call back into the
// Runner freely.
func (r *Runner) SetExec(exec func(task game.Task, arg int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exec = exec
}

func (r *Runner) Stop(reason game.StopReason) bool {
	r.mu.Lock()

	if r.stopReason != game.StopNone {
		r.mu.Unlock()
		return false
	}

	r.stopReason = reason
	r.mu.Unlock()

	// A pause parks the pending task where it is; bringing it forward
	// would burn its remaining delay. Every other stop is observed
	// promptly by firing the pending task now.
	if reason != game.StopPause {
		r.ExecuteImmediate()
	}
	return true
}

func (r *Runner) CancelStop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopReason = game.StopNone
}

func (r *Runner) StopReason() game.StopReason {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopReason
}

func (r *Runner) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// ScheduleExecution arms the runner with a task. Without force a pending
// stop leaves the schedule untouched: the stop handler decides what runs
// next.
func (r *Runner) ScheduleExecution(task game.Task, arg int, delay time.Duration, force bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !force && r.stopReason != game.StopNone {
		return
	}

	r.scheduleLocked(task, arg, delay)
}

func (r *Runner) scheduleLocked(task game.Task, arg int, delay time.Duration) {
	if r.timer != nil {
		r.timer.Stop()
	}

	r.currentTask = task
	r.currentArg = arg
	r.finishTime = r.clock().Add(delay)
	r.running = true

	r.timer = time.AfterFunc(delay, r.fire)
}

func (r *Runner) fire() {
	r.mu.Lock()

	if r.paused {
		r.mu.Unlock()
		return
	}

	task := r.currentTask
	arg := r.currentArg
	exec := r.exec
	r.running = false

	// The stop is delivered together with the task: once the executor
	// runs, the reason has done its job and must not block later stops
	// or schedules.
	r.stopReason = game.StopNone

	r.mu.Unlock()

	if exec != nil {
		exec(task, arg)
	}
}

// ExecuteImmediate fires the pending task now instead of at its deadline.
func (r *Runner) ExecuteImmediate() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running || r.paused {
		return
	}

	if r.timer != nil {
		r.timer.Stop()
	}

	r.finishTime = r.clock()
	r.timer = time.AfterFunc(0, r.fire)
}

// PauseExecution parks the pending task, remembering how much of its
// delay was left.
func (r *Runner) PauseExecution() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.paused {
		return
	}

	r.paused = true
	r.pausedTask = r.currentTask

	// Parking the task is the pause's stop point; the stop is hereby
	// delivered.
	if r.stopReason == game.StopPause {
		r.stopReason = game.StopNone
	}

	remaining := r.finishTime.Sub(r.clock())
	if remaining < 0 {
		remaining = 0
	}
	r.pausedRemaining = remaining

	if r.timer != nil {
		r.timer.Stop()
	}
}

// ResumeExecution rearms the parked task and returns the time it still
// has to wait.
func (r *Runner) ResumeExecution() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.paused {
		return 0
	}

	r.paused = false
	remaining := r.pausedRemaining

	r.scheduleLocked(r.currentTask, r.currentArg, remaining)
	return remaining
}

// UpdatePausedTask replaces the parked task while the game is paused.
func (r *Runner) UpdatePausedTask(task game.Task, arg int, remaining time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.paused {
		return
	}

	r.currentTask = task
	r.currentArg = arg
	r.pausedRemaining = remaining
}

func (r *Runner) CurrentTask() game.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentTask
}

// NextTask is the task parked by the last pause.
func (r *Runner) NextTask() game.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pausedTask
}
