package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnMessage(t *testing.T) {
	t.Run("UnknownCommandIgnored", func(t *testing.T) {
		s, _, sink, _ := newTestSession(t, nil)
		joinAs(t, s, "p1", RolePlayer)

		s.OnMessage("p1", "NOSUCHCOMMAND")
		s.OnMessage("p1", "")

		assert.Empty(t, sink.errors)
	})

	t.Run("MalformedArgumentsIgnored", func(t *testing.T) {
		s, engine, sink, _ := newTestSession(t, nil)
		joinAs(t, s, "showman", RoleShowman)

		s.state.Decision = DecisionStarterChoosing
		s.state.IsWaiting = true

		s.OnMessage("showman", joinArgs(MsgFirst, "not-a-number"))
		s.OnMessage("showman", MsgFirst)

		assert.Empty(t, engine.stops)
		assert.Empty(t, sink.errors)
	})

	t.Run("PanicIsIsolated", func(t *testing.T) {
		s, _, sink, _ := newTestSession(t, nil)
		joinAs(t, s, "p1", RolePlayer)

		s.routes["BOOM"] = func(s *Session, sender string, args []string) {
			panic("handler exploded")
		}

		s.OnMessage("p1", "BOOM")

		assert.Len(t, sink.errors, 1)
		assert.Contains(t, sink.errors[0].Error(), "handler exploded")

		// The session keeps serving after the fault.
		s.OnMessage("p1", MsgInfo)
		assert.Len(t, sink.errors, 1)
	})

	t.Run("FailedSessionDropsMessages", func(t *testing.T) {
		s, engine, _, _ := newTestSession(t, nil)
		joinAs(t, s, "showman", RoleShowman)

		s.state.Decision = DecisionStarterChoosing
		s.state.IsWaiting = true
		s.state.Players[0].Flag = true
		s.failed = true

		s.OnMessage("showman", joinArgs(MsgFirst, "0"))

		assert.Empty(t, engine.stops)
	})
}

func TestOnTask(t *testing.T) {
	t.Run("PanicReported", func(t *testing.T) {
		s, _, sink, _ := newTestSession(t, nil)

		s.OnTask(func() { panic("task exploded") })

		assert.Len(t, sink.errors, 1)
		assert.Contains(t, sink.errors[0].Error(), "task exploded")
	})

	t.Run("RunsUnderSameStateAsHandlers", func(t *testing.T) {
		s, _, _, _ := newTestSession(t, nil)

		s.OnTask(func() { s.state.Stage = StageRound })

		assert.Equal(t, StageRound, s.state.Stage)
	})
}
