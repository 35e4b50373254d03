package sched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizapi/game"
)

type firedTask struct {
	task game.Task
	arg  int
}

// collectExec funnels fired tasks into a channel for the test to await.
func collectExec(r *Runner) chan firedTask {
	fired := make(chan firedTask, 16)
	r.SetExec(func(task game.Task, arg int) {
		fired <- firedTask{task, arg}
	})
	return fired
}

func awaitTask(t *testing.T, fired chan firedTask) firedTask {
	t.Helper()

	select {
	case f := <-fired:
		return f
	case <-time.After(2 * time.Second):
		t.Fatal("task did not fire")
		return firedTask{}
	}
}

func TestRunner(t *testing.T) {
	t.Run("ScheduledTaskFires", func(t *testing.T) {
		r := NewRunner()
		fired := collectExec(r)

		r.ScheduleExecution(game.TaskStartGame, 7, 10*time.Millisecond, false)

		f := awaitTask(t, fired)
		assert.Equal(t, game.TaskStartGame, f.task)
		assert.Equal(t, 7, f.arg)
		assert.False(t, r.IsRunning())
	})

	t.Run("RescheduleReplacesPendingTask", func(t *testing.T) {
		r := NewRunner()
		fired := collectExec(r)

		r.ScheduleExecution(game.TaskStartGame, 0, time.Hour, false)
		r.ScheduleExecution(game.TaskWinner, 1, 10*time.Millisecond, false)

		f := awaitTask(t, fired)
		assert.Equal(t, game.TaskWinner, f.task)

		select {
		case extra := <-fired:
			t.Fatalf("unexpected second task: %v", extra)
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("StopBringsTaskForward", func(t *testing.T) {
		r := NewRunner()
		fired := collectExec(r)

		r.ScheduleExecution(game.TaskMoveNext, 0, time.Hour, false)

		require.True(t, r.Stop(game.StopDecision))
		f := awaitTask(t, fired)

		assert.Equal(t, game.TaskMoveNext, f.task)

		// Delivering the task consumed the stop.
		assert.Equal(t, game.StopNone, r.StopReason())
	})

	t.Run("DeliveredStopUnblocksTheRunner", func(t *testing.T) {
		r := NewRunner()
		fired := collectExec(r)

		r.ScheduleExecution(game.TaskMoveNext, 0, time.Hour, false)
		require.True(t, r.Stop(game.StopDecision))
		awaitTask(t, fired)

		// Later stops must not be blocked by the already-delivered stop.
		assert.True(t, r.Stop(game.StopAnswer))
		r.CancelStop()

		// Nor are plain schedules.
		r.ScheduleExecution(game.TaskStartGame, 0, 10*time.Millisecond, false)
		awaitTask(t, fired)
	})

	t.Run("PauseStopLeavesTaskInPlace", func(t *testing.T) {
		r := NewRunner()
		fired := collectExec(r)

		r.ScheduleExecution(game.TaskMoveNext, 0, time.Hour, false)
		require.True(t, r.Stop(game.StopPause))

		// A pause stop does not bring the task forward.
		select {
		case f := <-fired:
			t.Fatalf("unexpected task: %v", f)
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("PauseConsumesThePauseStop", func(t *testing.T) {
		r := NewRunner()
		fired := collectExec(r)

		r.ScheduleExecution(game.TaskMoveNext, 0, time.Hour, false)
		require.True(t, r.Stop(game.StopPause))
		r.PauseExecution()

		// Parking the task is the stop point; the runner is free again.
		assert.Equal(t, game.StopNone, r.StopReason())

		remaining := r.ResumeExecution()
		assert.Greater(t, remaining, 30*time.Minute)

		r.ScheduleExecution(game.TaskStartGame, 0, 10*time.Millisecond, false)
		awaitTask(t, fired)
	})

	t.Run("SecondStopRejected", func(t *testing.T) {
		r := NewRunner()

		require.True(t, r.Stop(game.StopPause))
		assert.False(t, r.Stop(game.StopDecision))
		assert.Equal(t, game.StopPause, r.StopReason())
	})

	t.Run("CancelStopClearsReason", func(t *testing.T) {
		r := NewRunner()

		require.True(t, r.Stop(game.StopPause))
		r.CancelStop()

		assert.Equal(t, game.StopNone, r.StopReason())
		assert.True(t, r.Stop(game.StopDecision))
	})

	t.Run("PendingStopBlocksNewSchedules", func(t *testing.T) {
		r := NewRunner()
		fired := collectExec(r)

		require.True(t, r.Stop(game.StopDecision))
		r.ScheduleExecution(game.TaskStartGame, 0, 10*time.Millisecond, false)

		select {
		case f := <-fired:
			t.Fatalf("unexpected task: %v", f)
		case <-time.After(50 * time.Millisecond):
		}

		// The stop handler schedules with force.
		r.ScheduleExecution(game.TaskStartGame, 0, 10*time.Millisecond, true)
		awaitTask(t, fired)
	})

	t.Run("PauseHoldsTheTask", func(t *testing.T) {
		r := NewRunner()
		fired := collectExec(r)

		r.ScheduleExecution(game.TaskMoveNext, 0, 200*time.Millisecond, false)
		r.PauseExecution()

		select {
		case f := <-fired:
			t.Fatalf("task fired while paused: %v", f)
		case <-time.After(300 * time.Millisecond):
		}

		remaining := r.ResumeExecution()
		assert.LessOrEqual(t, remaining, 200*time.Millisecond)

		awaitTask(t, fired)
	})

	t.Run("UpdatePausedTaskReplacesParkedTask", func(t *testing.T) {
		r := NewRunner()
		fired := collectExec(r)

		r.ScheduleExecution(game.TaskMoveNext, 0, time.Hour, false)
		r.PauseExecution()

		assert.Equal(t, game.TaskMoveNext, r.NextTask())

		r.UpdatePausedTask(game.TaskAskFirst, 3, 10*time.Millisecond)
		r.ResumeExecution()

		f := awaitTask(t, fired)
		assert.Equal(t, game.TaskAskFirst, f.task)
		assert.Equal(t, 3, f.arg)
	})

	t.Run("ExecuteImmediateOutsideScheduleIsNoOp", func(t *testing.T) {
		r := NewRunner()
		fired := collectExec(r)

		r.ExecuteImmediate()

		select {
		case f := <-fired:
			t.Fatalf("unexpected task: %v", f)
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("CurrentTaskTracksSchedule", func(t *testing.T) {
		r := NewRunner()

		r.ScheduleExecution(game.TaskAskStake, 0, time.Hour, false)
		assert.Equal(t, game.TaskAskStake, r.CurrentTask())
	})
}
