package game

import (
	"strconv"
	"strings"
	"time"
)

// defaultWrongAnswers feed bot answers once a question's own wrong
// versions run out.
var defaultWrongAnswers = []string{"No idea", "Hard to say", "Who knows"}

const noAnswerText = "I don't know"

// onFirst is the showman's pick of the player who starts the game.
func (s *Session) onFirst(sender string, args []string) {
	st := s.state

	if !st.IsWaiting || st.Decision != DecisionStarterChoosing || sender != st.ShowMan.Name || len(args) < 1 {
		return
	}

	playerIndex, err := strconv.Atoi(args[0])
	if err != nil || !st.ValidPlayerIndex(playerIndex) || !st.Players[playerIndex].Flag {
		return
	}

	st.ChooserIndex = playerIndex
	s.engine.Stop(StopDecision)
}

// onChoice resolves the question pick. In oral mode the showman may pick
// for the chooser; whoever did not decide gets a CANCEL.
func (s *Session) onChoice(sender string, args []string) {
	st := s.state

	if !st.IsWaiting || st.Decision != DecisionQuestionChoosing || len(args) != 2 {
		return
	}

	chooser := st.Chooser()
	if chooser == nil {
		return
	}

	if sender != chooser.Name && !(st.IsOralNow && sender == st.ShowMan.Name) {
		return
	}

	i, err1 := strconv.Atoi(args[0])
	j, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		return
	}

	if i < 0 || i >= len(st.Table) || j < 0 || j >= len(st.Table[i].Questions) {
		return
	}

	if st.Table[i].Questions[j] < 0 {
		return
	}

	st.ThemeIndex = i
	st.QuestionIndex = j

	if st.IsOralNow {
		s.cancelOralCounterpart(sender, chooser.Name)
	}

	s.engine.Stop(StopDecision)
}

// cancelOralCounterpart tells the party who did not make the oral decision
// to stop waiting for input.
func (s *Session) cancelOralCounterpart(sender, playerName string) {
	if sender == s.state.ShowMan.Name {
		s.sendTo(playerName, MsgCancel)
	} else {
		s.sendTo(s.state.ShowMan.Name, MsgCancel)
	}
}

func (s *Session) onAnswer(sender string, args []string) {
	st := s.state

	if st.Decision != DecisionAnswering || len(args) < 1 {
		return
	}

	if s.engine.IsFinalRound() {
		st.AnswererIndex = -1

		for i, p := range st.Players {
			if p.Name == sender && p.InGame {
				st.AnswererIndex = i
				s.sendAllArgs(MsgPersonFinalAnswer, i)
				break
			}
		}

		if st.AnswererIndex == -1 {
			return
		}
	} else if !st.IsWaiting || (st.Answerer() != nil && st.Answerer().Name != sender) {
		return
	}

	answerer := st.Answerer()
	if answerer == nil {
		return
	}

	if !answerer.IsHuman {
		s.acceptBotAnswer(answerer, args)
	} else if args[0] != "" {
		answerer.Answer = args[0]
		answerer.AnswerIsWrong = false
	} else {
		answerer.Answer = noAnswerText
		answerer.AnswerIsWrong = true
	}

	if !s.engine.IsFinalRound() {
		s.engine.Stop(StopDecision)
	}
}

// acceptBotAnswer fills in a bot's answer template. A wrong answer draws
// from the question's unused wrong versions, falling back to stock
// phrases when they run out.
func (s *Session) acceptBotAnswer(answerer *PlayerAccount, args []string) {
	st := s.state

	template := ""
	if len(args) > 1 {
		template = args[1]
	}

	if args[0] == "+" {
		right := "(...)"
		if st.Question != nil && len(st.Question.Right) > 0 {
			right = st.Question.Right[0]
		}

		answerer.Answer = strings.ReplaceAll(template, "#", right)
		answerer.AnswerIsWrong = false
		return
	}

	answerer.AnswerIsWrong = true

	var rest []string

	if st.Question != nil {
		for _, wrong := range st.Question.Wrong {
			if _, used := st.UsedWrongVersions[wrong]; !used {
				rest = append(rest, wrong)
			}
		}
	}

	if len(rest) == 0 {
		for _, wrong := range defaultWrongAnswers {
			if _, used := st.UsedWrongVersions[wrong]; !used {
				rest = append(rest, wrong)
			}
		}

		if _, used := st.UsedWrongVersions[noAnswerText]; !used {
			rest = append(rest, noAnswerText)
		}
	}

	if len(rest) == 0 {
		rest = defaultWrongAnswers[:1]
	}

	pick := rest[s.rand.Intn(len(rest))]
	st.UsedWrongVersions[pick] = struct{}{}
	answerer.Answer = strings.ReplaceAll(template, "#", pick)
}

// onIsRight carries both the showman's answer verdict and the players'
// appellation votes.
func (s *Session) onIsRight(sender string, args []string) {
	st := s.state

	if !st.IsWaiting || len(args) < 1 {
		return
	}

	if sender == st.ShowMan.Name && st.Answerer() != nil &&
		(st.Decision == DecisionAnswerValidating || (st.IsOralNow && st.Decision == DecisionAnswering)) {
		st.Decision = DecisionAnswerValidating
		st.Answerer().AnswerIsRight = args[0] == "+"
		st.ShowmanDecision = true

		s.engine.Stop(StopDecision)
		return
	}

	if st.Decision == DecisionAppellationDecision {
		for i, p := range st.Players {
			if p.Flag && p.Name == sender {
				if args[0] == "+" {
					st.AppellationRightVotesCount++
				}

				p.Flag = false
				st.AppellationAnswersReceived++
				s.sendAllArgs(MsgPersonApellated, i)
			}
		}

		if st.AppellationAnswersReceived == len(st.Players)-1 {
			s.engine.Stop(StopDecision)
		}
	}
}

// onStake validates an auction stake from the active player (or from the
// showman speaking for them in oral mode).
func (s *Session) onStake(sender string, args []string) {
	st := s.state

	active := st.ActivePlayer()

	if !st.IsWaiting || st.Decision != DecisionAuctionStakeMaking || len(args) < 1 {
		return
	}

	if active == nil || (sender != active.Name && !(st.IsOralNow && sender == st.ShowMan.Name)) {
		return
	}

	stakeType, err := strconv.Atoi(args[0])
	if err != nil || stakeType < 0 || stakeType > 3 {
		return
	}

	st.StakeType = StakeMode(stakeType)

	if !st.StakeVariants[stakeType] {
		st.StakeType = StakeUnset
		return
	}

	if st.StakeType == StakeSum {
		minimum := st.CurPriceRight + 100
		if st.Stake != -1 {
			minimum = st.Stake + 100
		}

		for minimum%100 != 0 {
			minimum++
		}

		if len(args) < 2 {
			st.StakeType = StakeUnset
			return
		}

		stakeSum, err := strconv.Atoi(args[1])
		if err != nil || stakeSum < minimum || stakeSum > active.Sum || stakeSum%100 != 0 {
			st.StakeType = StakeUnset
			return
		}

		st.StakeSum = stakeSum
	}

	if st.IsOralNow {
		s.cancelOralCounterpart(sender, active.Name)
	}

	s.engine.Stop(StopDecision)
}

// onCatCost takes the answerer's price pick for a bagcat question. An
// out-of-range value keeps the previous price; the engine is stopped
// either way.
func (s *Session) onCatCost(sender string, args []string) {
	st := s.state

	if !st.IsWaiting || st.Decision != DecisionCatCostSetting || len(args) < 1 {
		return
	}

	answerer := st.Answerer()
	if (answerer == nil || sender != answerer.Name) && !(st.IsOralNow && sender == st.ShowMan.Name) {
		return
	}

	sum, err := strconv.Atoi(args[0])
	if err == nil &&
		sum >= st.Cat.Minimum &&
		sum <= st.Cat.Maximum &&
		st.Cat.Step > 0 &&
		(sum-st.Cat.Minimum)%st.Cat.Step == 0 {
		st.CurPriceRight = sum
	}

	s.engine.Stop(StopDecision)
}

// onCat is the chooser's pick of who receives the cat question.
func (s *Session) onCat(sender string, args []string) {
	st := s.state

	if !st.IsWaiting || st.Decision != DecisionCatGiving || len(args) < 1 {
		return
	}

	chooser := st.Chooser()
	if (chooser == nil || sender != chooser.Name) && !(st.IsOralNow && sender == st.ShowMan.Name) {
		return
	}

	index, err := strconv.Atoi(args[0])
	if err != nil || !st.ValidPlayerIndex(index) || !st.Players[index].Flag {
		return
	}

	st.AnswererIndex = index

	if st.IsOralNow && chooser != nil {
		s.cancelOralCounterpart(sender, chooser.Name)
	}

	s.engine.Stop(StopDecision)
}

// onDelete eliminates a final-round theme picked by the active player.
func (s *Session) onDelete(sender string, args []string) {
	st := s.state

	if !st.IsWaiting || st.Decision != DecisionFinalThemeDeleting || len(args) < 1 {
		return
	}

	active := st.ActivePlayer()
	if active == nil {
		return
	}

	if sender != active.Name && !(st.IsOralNow && sender == st.ShowMan.Name) {
		return
	}

	themeIndex, err := strconv.Atoi(args[0])
	if err != nil || themeIndex < 0 || themeIndex >= len(st.Table) {
		return
	}

	if st.Table[themeIndex].Name == "" {
		// Already deleted.
		return
	}

	st.ThemeIndexToDelete = themeIndex

	if st.IsOralNow {
		s.cancelOralCounterpart(sender, active.Name)
	}

	s.engine.Stop(StopDecision)
}

// onNextDelete is the showman's pick of who deletes the next theme when
// the order is ambiguous.
func (s *Session) onNextDelete(sender string, args []string) {
	st := s.state

	if !st.IsWaiting || st.Decision != DecisionNextPersonFinalThemeDeleting ||
		sender != st.ShowMan.Name || len(args) < 1 {
		return
	}

	playerIndex, err := strconv.Atoi(args[0])
	if err != nil || !st.ValidPlayerIndex(playerIndex) || !st.Players[playerIndex].Flag {
		return
	}

	if st.ThemeDeleters.SetCurrentIndex(playerIndex) {
		s.engine.Stop(StopDecision)
	}
}

// onNext is the showman's pick of the next staker when the order is
// ambiguous.
func (s *Session) onNext(sender string, args []string) {
	st := s.state

	if !st.IsWaiting || st.Decision != DecisionNextPersonStakeMaking || sender != st.ShowMan.Name || len(args) < 1 {
		return
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || !st.ValidPlayerIndex(n) || !st.Players[n].Flag {
		return
	}

	st.Order[st.OrderIndex] = n
	s.checkOrder(st.OrderIndex)
	s.engine.Stop(StopDecision)
}

// onFinalStake collects hidden final-round stakes, one per player still in
// the game.
func (s *Session) onFinalStake(sender string, args []string) {
	st := s.state

	if !st.IsWaiting || st.Decision != DecisionFinalStakeMaking || len(args) < 1 {
		return
	}

	for i, player := range st.Players {
		if !player.InGame || player.FinalStake != -1 || sender != player.Name {
			continue
		}

		finalStake, err := strconv.Atoi(args[0])
		if err == nil && finalStake >= 1 && finalStake <= player.Sum {
			player.FinalStake = finalStake
			st.NumOfStakers--

			s.sendAllArgs(MsgPersonFinalStake, i)
		}

		break
	}

	if st.NumOfStakers == 0 {
		s.engine.Stop(StopDecision)
	}
}

// onApellate starts an appellation. A "+" claim means the sender believes
// their rejected answer was right; a "-" claim disputes the last accepted
// answer.
func (s *Session) onApellate(sender string, args []string) {
	st := s.state

	if !st.AllowAppellation {
		return
	}

	st.IsAppellationForRightAnswer = len(args) == 0 || args[0] == "+"
	st.AppellationSource = sender
	st.AppelaerIndex = -1

	if st.IsAppellationForRightAnswer {
		if i := st.PlayerIndexByName(sender); i >= 0 {
			for _, r := range st.QuestionHistory {
				if r.PlayerIndex == i {
					if !r.IsRight {
						st.AppelaerIndex = i
					}
					break
				}
			}
		}
	} else {
		if st.PlayerIndexByName(sender) < 0 {
			// Only players may dispute an answer.
			return
		}

		if n := len(st.QuestionHistory); n > 0 && st.QuestionHistory[n-1].IsRight {
			st.AppelaerIndex = st.QuestionHistory[n-1].PlayerIndex
		}
	}

	if st.AppelaerIndex != -1 {
		st.AllowAppellation = false
		s.engine.Stop(StopAppellation)
	}
}

// onReport accepts one game report; the last outstanding report releases
// the engine immediately.
func (s *Session) onReport(_ string, args []string) {
	st := s.state

	if st.Decision != DecisionReporting {
		return
	}

	st.ReportsCount--

	if len(args) > 1 && args[1] != "" {
		st.ReportComments = append(st.ReportComments, args[1])
		st.AcceptedReports++
	}

	if st.ReportsCount == 0 {
		s.engine.ExecuteImmediate()
	}
}

// onChange lets the showman correct a player's score. The player index is
// 1-based on the wire.
func (s *Session) onChange(sender string, args []string) {
	st := s.state

	if sender != st.ShowMan.Name || len(args) != 2 {
		return
	}

	playerIndex, err1 := strconv.Atoi(args[0])
	sum, err2 := strconv.Atoi(args[1])

	if err1 != nil || err2 != nil || playerIndex < 1 || playerIndex > len(st.Players) {
		return
	}

	player := st.Players[playerIndex-1]
	player.Sum = sum

	s.specialReplic(st.ShowMan.Name + " changed the score of " + player.Name + " to " + strconv.Itoa(sum))
	s.informSums()

	s.trail.Add("Sum change: " + strconv.Itoa(playerIndex-1) + " = " + strconv.Itoa(sum))
}

// onMove lets the host or showman steer the game: forward, backward, or
// to a specific round. A move on a paused game resumes it instead.
func (s *Session) onMove(sender string, args []string) {
	st := s.state

	if (sender != st.HostName && sender != st.ShowMan.Name) || len(args) < 1 {
		return
	}

	direction, err := strconv.Atoi(args[0])
	if err != nil {
		return
	}

	moveDirection := MoveDirection(direction)

	switch moveDirection {
	case MoveRoundBack:
		if !s.engine.CanMoveBackRound() {
			return
		}

	case MoveBack:
		if !s.engine.CanMoveBack() {
			return
		}

	case MoveNext:

	case MoveRoundNext:
		if !s.engine.CanMoveNextRound() {
			return
		}

	case MoveRound:
		if !s.engine.CanMoveNextRound() && !s.engine.CanMoveBackRound() {
			return
		}

		if len(args) < 2 {
			return
		}

		roundIndex, err := strconv.Atoi(args[1])
		if err != nil || roundIndex < 0 || roundIndex >= s.engine.RoundCount() || roundIndex == s.engine.RoundIndex() {
			return
		}

		st.TargetRoundIndex = roundIndex

	default:
		return
	}

	if st.Pause {
		s.pauseCore(false)
		return
	}

	s.trail.Add("Move started")

	st.MoveDirection = moveDirection
	s.engine.Stop(StopMove)
}

// onPass withdraws the sender from the button race. When the last eligible
// player passes, the question skips straight to the answer.
func (s *Session) onPass(sender string, _ []string) {
	st := s.state

	if !st.IsQuestionPlaying {
		return
	}

	changed := false

	for i, player := range st.Players {
		if player.Name == sender && player.CanPress {
			player.CanPress = false
			s.sendAllArgs(MsgPass, i)
			changed = true
			break
		}
	}

	if !changed || st.Pause {
		return
	}

	for _, player := range st.Players {
		if player.CanPress {
			return
		}
	}

	if !st.IsAnswer {
		if !st.IsQuestionFinished {
			s.engine.MoveToAnswer()
		}

		s.engine.ExecuteImmediate()
	}
}

// onAtom acknowledges that the sender finished playing the current media.
// When everyone has, the game moves on without waiting out the timer.
func (s *Session) onAtom(_ string, _ []string) {
	st := s.state

	if !st.IsPlayingMedia || st.Pause {
		return
	}

	st.HaveViewedMedia--

	if st.HaveViewedMedia <= 0 {
		st.IsPlayingMedia = false
		s.engine.ExecuteImmediate()
	} else {
		// Stragglers must not hold the game for the full media timeout.
		s.engine.ScheduleExecution(TaskMoveNext, 0, 3*time.Second+s.settings.MediaDelay, true)
	}
}

// onMark flags the current question for the game report.
func (s *Session) onMark(_ string, _ []string) {
	st := s.state

	if !st.CanMarkQuestion {
		return
	}

	st.MarkedQuestions = append(st.MarkedQuestions, MarkedQuestion{
		Round:    s.engine.RoundIndex(),
		Theme:    st.ThemeIndex,
		Question: st.QuestionIndex,
	})
}
