package game

import "fmt"

// onPause toggles the game pause. Host or showman only.
func (s *Session) onPause(sender string, args []string) {
	st := s.state

	if (sender != st.HostName && sender != st.ShowMan.Name) || len(args) < 1 {
		return
	}

	s.pauseCore(args[0] == "+")
}

// pauseCore performs the pause transition. Resuming shifts every timer's
// start by the pause duration so that elapsed time is measured as if the
// pause never happened.
func (s *Session) pauseCore(enable bool) {
	st := s.state

	if enable {
		if st.Pause {
			return
		}

		if s.engine.Stop(StopPause) {
			st.Pause = true
			st.PauseStartTime = s.now()
			s.engine.PauseExecution()

			s.trail.Add("Pause activated")
			s.specialReplic("Game paused")
			s.sendAllArgs(MsgPause, "+", 0, 0, 0)
		}

		return
	}

	if !st.Pause {
		// The pause never got established. An undelivered pause stop may
		// still be in flight; withdraw it.
		if s.engine.StopReason() == StopPause {
			s.trail.Add("Immediate pause resume")
			s.engine.CancelStop()
		}
		return
	}

	st.Pause = false

	pauseDuration := s.now().Sub(st.PauseStartTime)

	var times [TimersCount]int

	for i := 0; i < TimersCount; i++ {
		times[i] = int(st.PauseStartTime.Sub(st.TimerStartTime[i]).Milliseconds() / 100)
		st.TimerStartTime[i] = st.TimerStartTime[i].Add(pauseDuration)
	}

	if st.IsPlayingMediaPaused {
		st.IsPlayingMediaPaused = false
		st.IsPlayingMedia = true
	}

	if st.IsThinkingPaused {
		st.IsThinkingPaused = false
		st.IsThinking = true
	}

	s.trail.Add(fmt.Sprintf("Pause resumed (%v)", s.engine.StopReason()))

	func() {
		defer func() {
			if r := recover(); r != nil {
				s.errs.Fatal(fmt.Errorf("session %s: resume execution: %v\n%s", s.id, r, s.trail.Dump()))
			}
		}()

		maxPressingTime := int(s.settings.Thinking.Milliseconds() / 100)
		times[TimerThinking] = maxPressingTime - int(s.engine.ResumeExecution().Milliseconds()/100)
	}()

	if s.engine.StopReason() == StopDecision {
		// The decision may already be ready.
		s.engine.ExecuteImmediate()
	}

	s.specialReplic("Game resumed")
	s.sendAllArgs(MsgPause, "-", times[0], times[1], times[2])
}
