package game

import (
	"strconv"
	"time"

	"quizapi/domain"
)

// HandleTask is the engine's task callback, dispatched under the session
// lock. It covers the session-planned tasks; everything else the engine
// executor does with a question body stays on the engine side.
func (s *Session) HandleTask(task Task, arg int) {
	s.OnTask(func() {
		s.trail.Add("Task " + strconv.Itoa(int(task)) + " " + strconv.Itoa(arg))

		switch task {
		case TaskStartGame:
			s.beginRoundStage()

		case TaskAskFirst:
			s.askFirst()

		case TaskContinueQuestion:
			s.continueQuestion()

		case TaskAskStake:
			s.askStake()

		case TaskAnnounceStakePlayer:
			s.announceStakePlayer()

		case TaskAskRight:
			s.askRight()

		case TaskAskCatCost:
			s.askCatCost()

		case TaskWinner:
			s.announceWinner()
		}
	})
}

func (s *Session) beginRoundStage() {
	s.state.Stage = StageRound
	s.informStage()
	s.informSums()

	s.planExecution(TaskAskFirst, 2*time.Second, 0)
}

// askFirst parks the game on the showman's pick of who starts. Every
// player is a candidate.
func (s *Session) askFirst() {
	st := s.state

	for _, p := range st.Players {
		p.Flag = true
	}

	if len(st.Players) == 1 {
		st.ChooserIndex = 0
		s.engine.Stop(StopDecision)
		return
	}

	st.Decision = DecisionStarterChoosing
	st.IsWaiting = true

	s.sendTo(st.ShowMan.Name, joinArgs(MsgFirst))

	if !st.ShowMan.IsHuman {
		// A bot showman picks at random.
		st.ChooserIndex = s.rand.Intn(len(st.Players))
		s.stopWaiting()
		s.engine.Stop(StopDecision)
	}
}

// continueQuestion reopens the button race after the answerer vanished or
// answered.
func (s *Session) continueQuestion() {
	st := s.state

	st.AnswererIndex = -1
	st.Decision = DecisionPressing
	st.IsWaiting = true
	st.IsQuestionPlaying = true
}

// askStake asks the next player in the auction order for their stake.
func (s *Session) askStake() {
	st := s.state

	st.Decision = DecisionAuctionStakeMaking
	st.IsWaiting = true

	if active := st.ActivePlayer(); active != nil {
		s.sendTo(active.Name, joinArgs(MsgStake))

		if st.IsOralNow {
			s.sendTo(st.ShowMan.Name, joinArgs(MsgStake, active.Name))
		}
	}
}

// announceStakePlayer closes the auction: the staker becomes the answerer
// at the final stake price.
func (s *Session) announceStakePlayer() {
	st := s.state

	staker := st.Staker()
	if staker == nil {
		return
	}

	st.AnswererIndex = st.StakerIndex
	st.CurPriceRight = st.Stake

	s.specialReplic(staker.Name + " plays for " + strconv.Itoa(st.Stake))
}

func (s *Session) askRight() {
	st := s.state

	st.Decision = DecisionAnswerValidating
	st.IsWaiting = true
	st.ShowmanDecision = false

	if answerer := st.Answerer(); answerer != nil {
		s.sendTo(st.ShowMan.Name, joinArgs(MsgIsRight, answerer.Name, answerer.Answer))
	}
}

func (s *Session) askCatCost() {
	st := s.state

	st.Decision = DecisionCatCostSetting
	st.IsWaiting = true

	if answerer := st.Answerer(); answerer != nil {
		s.sendTo(answerer.Name, joinArgs(MsgCatCost, st.Cat.Minimum, st.Cat.Maximum, st.Cat.Step))
	}
}

// announceWinner ends the game and opens the reporting stage.
func (s *Session) announceWinner() {
	st := s.state

	best := -1
	for i, p := range st.Players {
		if best == -1 || p.Sum > st.Players[best].Sum {
			best = i
		}
	}

	if best >= 0 {
		s.specialReplic(st.Players[best].Name + " wins the game")
	}

	st.Stage = StageAfter
	s.informStage()
	s.informSums()

	st.Decision = DecisionReporting
	st.ReportsCount = 0

	for name, account := range st.AllPersons {
		if account.IsHuman && account.IsConnected {
			st.ReportsCount++
			s.sendTo(name, joinArgs(MsgReport))
		}
	}

	if st.ReportsCount == 0 {
		s.engine.ExecuteImmediate()
	}
}

// Report snapshots the final game record for persistence.
func (s *Session) Report() domain.GameReport {
	var report domain.GameReport

	_ = s.withLock(func() {
		marked := make([]domain.MarkedQuestion, 0, len(s.state.MarkedQuestions))
		for _, mq := range s.state.MarkedQuestions {
			marked = append(marked, domain.MarkedQuestion{
				Round:    mq.Round,
				Theme:    mq.Theme,
				Question: mq.Question,
			})
		}

		report = domain.GameReport{
			SessionId:       s.id,
			Name:            s.settings.Name,
			FinishedAt:      s.now(),
			Comments:        append([]string(nil), s.state.ReportComments...),
			MarkedQuestions: marked,
		}
	})

	return report
}
