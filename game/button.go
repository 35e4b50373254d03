package game

// onI handles a button press. Outside the pressing window it only marks a
// misfire; inside it either resolves the race immediately or, with ping
// penalties enabled, defers the hit so a less penalized player can still
// preempt it.
func (s *Session) onI(sender string, _ []string) {
	st := s.state

	if st.Pause {
		return
	}

	if st.Decision != DecisionPressing {
		s.handleMisfire(sender)
		return
	}

	answererIndex := s.detectAnswererIndex(sender)
	if answererIndex == -1 {
		return
	}

	if !s.settings.UsePingPenalty {
		st.PendingAnswererIndex = answererIndex

		if s.engine.Stop(StopAnswer) {
			st.Decision = DecisionNone
		}

		return
	}

	s.processPenalizedAnswerer(answererIndex)
}

// processPenalizedAnswerer gives the press to the candidate whose
// penalty-adjusted hit time comes first. A deferred hit stays preemptable
// until its penalty elapses.
func (s *Session) processPenalizedAnswerer(answererIndex int) {
	st := s.state

	penalty := st.Players[answererIndex].PingPenalty
	penaltyStartTime := s.now()

	if st.IsDeferringAnswer {
		futureTime := penaltyStartTime.Add(penalty)
		currentFutureTime := st.PenaltyStartTime.Add(st.Penalty)

		if !futureTime.Before(currentFutureTime) {
			// The new candidate would answer later. They lose the hit.
			return
		}
	}

	st.PendingAnswererIndex = answererIndex

	if penalty == 0 {
		if s.engine.Stop(StopAnswer) {
			st.Decision = DecisionNone
		}
	} else {
		st.PenaltyStartTime = penaltyStartTime
		st.Penalty = penalty

		s.engine.Stop(StopWait)
	}
}

// detectAnswererIndex finds the presser's seat if they are still eligible:
// they may press and their blocking window after a misfire has passed.
func (s *Session) detectAnswererIndex(playerName string) int {
	st := s.state

	for i, player := range st.Players {
		if player.Name == playerName &&
			player.CanPress &&
			s.now().Sub(player.LastBadTry) >= s.settings.ButtonBlocking {
			return i
		}
	}

	return -1
}

// handleMisfire records a press outside the window. The presser alone is
// told; other players see nothing.
func (s *Session) handleMisfire(playerName string) {
	st := s.state

	for i, player := range st.Players {
		if player.Name != playerName {
			continue
		}

		if st.Answerer() != player {
			player.LastBadTry = s.now()
			s.sendToArgs(playerName, MsgWrongTry, i)
		}

		return
	}
}
