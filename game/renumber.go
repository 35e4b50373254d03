package game

import "time"

// dropPlayerIndex renumbers every player reference after the seat at
// playerIndex has been removed. References to later seats shift down by
// one; references to the removed seat itself get a semantic-specific
// replacement so the game can always continue.
func (s *Session) dropPlayerIndex(playerIndex int) {
	st := s.state

	if st.ChooserIndex > playerIndex {
		st.ChooserIndex--
	} else if st.ChooserIndex == playerIndex {
		// The right to choose goes to the poorest player.
		st.ChooserIndex = s.lowestSumIndex()
	}

	if st.AnswererIndex > playerIndex {
		st.AnswererIndex--
	} else if st.AnswererIndex == playerIndex {
		st.AnswererIndex = -1

		nextTask := s.engine.CurrentTask()
		if st.Pause {
			nextTask = s.engine.NextTask()
		}

		s.trail.Add("AnswererIndex dropped")

		switch {
		case (st.Decision == DecisionAnswering || st.Decision == DecisionAnswerValidating) &&
			!s.engine.IsFinalRound():
			s.stopWaiting()

			if st.IsOralNow {
				s.sendTo(st.ShowMan.Name, MsgCancel)
			}

			s.planExecution(TaskContinueQuestion, 100*time.Millisecond, 0)

		case nextTask == TaskAskRight:
			// Removed after answering but before the showman was asked.
			s.planExecution(TaskContinueQuestion, 100*time.Millisecond, 0)

		case nextTask == TaskCatInfo || nextTask == TaskAskCatCost || nextTask == TaskWaitCatCost:
			s.engine.SkipQuestion()
			s.planExecution(TaskMoveNext, 2*time.Second, 1)

		case nextTask == TaskAnnounceStake:
			s.planExecution(TaskAnnounce, 1500*time.Millisecond, 0)
		}
	}

	if st.AppelaerIndex > playerIndex {
		st.AppelaerIndex--
	} else if st.AppelaerIndex == playerIndex {
		st.AppelaerIndex = -1
		s.trail.Add("AppelaerIndex dropped")
	}

	if st.StakerIndex > playerIndex {
		st.StakerIndex--
	} else if st.StakerIndex == playerIndex {
		stakers := s.stakeMakingCount()

		if stakers == 1 {
			for i, p := range st.Players {
				if p.StakeMaking {
					st.StakerIndex = i
					break
				}
			}
		} else {
			st.StakerIndex = -1
			s.trail.Add("StakerIndex dropped")
		}
	}

	if len(st.Order) > 0 {
		s.dropFromOrder(playerIndex)
	}

	if s.engine.IsFinalRound() {
		s.dropFromFinal(playerIndex)
	}

	history := st.QuestionHistory[:0]
	for _, r := range st.QuestionHistory {
		if r.PlayerIndex == playerIndex {
			continue
		}
		if r.PlayerIndex > playerIndex {
			r.PlayerIndex--
		}
		history = append(history, r)
	}
	st.QuestionHistory = history

	if st.PendingAnswererIndex > playerIndex {
		st.PendingAnswererIndex--
	} else if st.PendingAnswererIndex == playerIndex {
		st.PendingAnswererIndex = -1
	}

	if !st.IsWaiting {
		return
	}

	if st.Decision == DecisionStarterChoosing {
		// The candidate set changed under the showman. Ask again.
		s.sendTo(st.ShowMan.Name, MsgCancel)
		s.stopWaiting()
		s.planExecution(TaskAskFirst, 2*time.Second, 0)
	}
}

// dropFromOrder compacts the auction order permutation after a seat
// removal and pushes the stake cycle forward when the removed player was
// up next.
func (s *Session) dropFromOrder(playerIndex int) {
	st := s.state
	current := st.Order
	next := make([]int, len(st.Players))

	for i, j := 0, 0; i < len(current); i++ {
		if current[i] == playerIndex {
			if st.OrderIndex >= i {
				st.OrderIndex-- // -1 is fine
			}
			continue
		}

		v := current[i]
		if v > playerIndex {
			v--
		}
		next[j] = v
		j++

		if j == len(next) {
			break
		}
	}

	if st.OrderIndex == len(current)-1 {
		st.OrderIndex = len(next) - 1
	}

	st.Order = next

	switch {
	case s.stakeMakingCount() == 0:
		s.trail.Add("Last staker dropped")
		s.engine.SkipQuestion()
		s.planExecution(TaskMoveNext, 2*time.Second, 1)

	case st.OrderIndex == -1 || st.Order[st.OrderIndex] == -1:
		s.trail.Add("Current staker dropped")

		if st.Decision == DecisionAuctionStakeMaking || st.Decision == DecisionNextPersonStakeMaking {
			oral := st.IsOralNow || st.Decision == DecisionNextPersonStakeMaking
			s.stopWaiting()

			if oral {
				s.sendTo(st.ShowMan.Name, MsgCancel)
			}

			s.continueMakingStakes()
		}

	case st.Decision == DecisionNextPersonStakeMaking:
		s.stopWaiting()
		s.sendTo(st.ShowMan.Name, MsgCancel)
		s.continueMakingStakes()
	}
}

// dropFromFinal keeps the final-round deleter queue consistent and closes
// the round (or the game) when nobody playable is left.
func (s *Session) dropFromFinal(playerIndex int) {
	st := s.state
	var noPlayersLeft bool

	if st.ThemeDeleters != nil {
		st.ThemeDeleters.RemoveAt(playerIndex)
		noPlayersLeft = st.ThemeDeleters.IsEmpty()
	} else {
		noPlayersLeft = true
		for _, p := range st.Players {
			if p.InGame {
				noPlayersLeft = false
				break
			}
		}
	}

	if noPlayersLeft {
		st.Decision = DecisionNone

		if s.engine.CanMoveNextRound() {
			s.engine.MoveNextRound()
		} else {
			s.planExecution(TaskWinner, time.Second, 0)
		}
		return
	}

	if st.Decision == DecisionNextPersonFinalThemeDeleting {
		possible := make(map[int]struct{})
		for _, idx := range st.ThemeDeleters.PossibleIndices() {
			possible[idx] = struct{}{}
		}

		for i, p := range st.Players {
			_, ok := possible[i]
			p.Flag = ok
		}
	}
}

// continueMakingStakes resumes the auction cycle after the current staker
// vanished. With a single stake maker left the auction resolves to them.
func (s *Session) continueMakingStakes() {
	st := s.state

	if s.stakeMakingCount() == 1 {
		for i, p := range st.Players {
			if p.StakeMaking {
				st.StakerIndex = i
			}
		}

		if st.Stake == -1 {
			st.Stake = st.CurPriceRight
		}

		s.planExecution(TaskAnnounceStakePlayer, time.Second, 0)
	} else {
		s.planExecution(TaskAskStake, 2*time.Second, 0)
	}
}

func (s *Session) stakeMakingCount() int {
	n := 0
	for _, p := range s.state.Players {
		if p.StakeMaking {
			n++
		}
	}
	return n
}

func (s *Session) lowestSumIndex() int {
	best := 0
	for i, p := range s.state.Players {
		if p.Sum < s.state.Players[best].Sum {
			best = i
		}
	}
	return best
}
