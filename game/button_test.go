package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOnI(t *testing.T) {
	setup := func(t *testing.T, mutate func(*Settings)) (*Session, *fakeEngine, *testClock) {
		s, engine, _, clock := newTestSession(t, mutate)
		seatPlayers(s, "a", "b", "c")

		s.state.Decision = DecisionPressing
		for _, p := range s.state.Players {
			p.CanPress = true
		}

		return s, engine, clock
	}

	t.Run("FirstPressWins", func(t *testing.T) {
		s, engine, _ := setup(t, nil)

		s.OnMessage("b", MsgI)

		assert.Equal(t, 1, s.state.PendingAnswererIndex)
		assert.Equal(t, []StopReason{StopAnswer}, engine.stops)
		assert.Equal(t, DecisionNone, s.state.Decision)
	})

	t.Run("MisfireBlocksTheButton", func(t *testing.T) {
		s, engine, clock := setup(t, nil)
		s.state.Decision = DecisionNone

		out := &recordingSender{}
		s.Attach("b", out)

		s.OnMessage("b", MsgI)

		assert.True(t, out.contains(MsgWrongTry))
		assert.Empty(t, engine.stops)

		// Within the blocking window the press is dead.
		s.state.Decision = DecisionPressing
		clock.Advance(time.Second)
		s.OnMessage("b", MsgI)
		assert.Empty(t, engine.stops)

		// After the window it works again.
		clock.Advance(3 * time.Second)
		s.OnMessage("b", MsgI)
		assert.Equal(t, []StopReason{StopAnswer}, engine.stops)
	})

	t.Run("PressWhilePausedIgnored", func(t *testing.T) {
		s, engine, _ := setup(t, nil)
		s.state.Pause = true

		s.OnMessage("b", MsgI)

		assert.Empty(t, engine.stops)
	})

	t.Run("BlockedPlayerCannotPress", func(t *testing.T) {
		s, engine, _ := setup(t, nil)
		s.state.Players[1].CanPress = false

		s.OnMessage("b", MsgI)

		assert.Equal(t, -1, s.state.PendingAnswererIndex)
		assert.Empty(t, engine.stops)
	})
}

func TestOnIWithPingPenalty(t *testing.T) {
	setup := func(t *testing.T) (*Session, *fakeEngine, *testClock) {
		s, engine, _, clock := newTestSession(t, func(cfg *Settings) {
			cfg.UsePingPenalty = true
		})
		seatPlayers(s, "a", "b", "c")

		s.state.Decision = DecisionPressing
		for _, p := range s.state.Players {
			p.CanPress = true
		}

		return s, engine, clock
	}

	t.Run("ZeroPenaltyResolvesImmediately", func(t *testing.T) {
		s, engine, _ := setup(t)

		s.OnMessage("a", MsgI)

		assert.Equal(t, 0, s.state.PendingAnswererIndex)
		assert.Equal(t, []StopReason{StopAnswer}, engine.stops)
	})

	t.Run("PenalizedPressIsDeferred", func(t *testing.T) {
		s, engine, _ := setup(t)
		s.state.Players[0].PingPenalty = 200 * time.Millisecond

		s.OnMessage("a", MsgI)

		assert.Equal(t, 0, s.state.PendingAnswererIndex)
		assert.Equal(t, 200*time.Millisecond, s.state.Penalty)
		assert.Equal(t, []StopReason{StopWait}, engine.stops)
	})

	t.Run("FasterCandidatePreempts", func(t *testing.T) {
		s, engine, clock := setup(t)
		s.state.Players[0].PingPenalty = 500 * time.Millisecond
		s.state.Players[1].PingPenalty = 100 * time.Millisecond

		s.OnMessage("a", MsgI)
		assert.Equal(t, 0, s.state.PendingAnswererIndex)

		s.state.IsDeferringAnswer = true
		clock.Advance(50 * time.Millisecond)

		// b's adjusted hit lands before a's pending one.
		s.OnMessage("b", MsgI)

		assert.Equal(t, 1, s.state.PendingAnswererIndex)
		assert.Equal(t, 100*time.Millisecond, s.state.Penalty)
		assert.Equal(t, []StopReason{StopWait}, engine.stops)
	})

	t.Run("SlowerCandidateLoses", func(t *testing.T) {
		s, _, clock := setup(t)
		s.state.Players[0].PingPenalty = 100 * time.Millisecond
		s.state.Players[1].PingPenalty = 500 * time.Millisecond

		s.OnMessage("a", MsgI)
		s.state.IsDeferringAnswer = true
		clock.Advance(50 * time.Millisecond)

		s.OnMessage("b", MsgI)

		assert.Equal(t, 0, s.state.PendingAnswererIndex)
		assert.Equal(t, 100*time.Millisecond, s.state.Penalty)
	})
}
