package game

// DecisionType tags the input the game is currently parked on. At most one
// decision is pending at a time.
type DecisionType int

const (
	DecisionNone DecisionType = iota
	DecisionStarterChoosing
	DecisionQuestionChoosing
	DecisionPressing
	DecisionAnswering
	DecisionAnswerValidating
	DecisionAuctionStakeMaking
	DecisionCatCostSetting
	DecisionCatGiving
	DecisionNextPersonStakeMaking
	DecisionFinalStakeMaking
	DecisionFinalThemeDeleting
	DecisionNextPersonFinalThemeDeleting
	DecisionAppellationDecision
	DecisionReporting
)

func (d DecisionType) String() string {
	switch d {
	case DecisionNone:
		return "None"
	case DecisionStarterChoosing:
		return "StarterChoosing"
	case DecisionQuestionChoosing:
		return "QuestionChoosing"
	case DecisionPressing:
		return "Pressing"
	case DecisionAnswering:
		return "Answering"
	case DecisionAnswerValidating:
		return "AnswerValidating"
	case DecisionAuctionStakeMaking:
		return "AuctionStakeMaking"
	case DecisionCatCostSetting:
		return "CatCostSetting"
	case DecisionCatGiving:
		return "CatGiving"
	case DecisionNextPersonStakeMaking:
		return "NextPersonStakeMaking"
	case DecisionFinalStakeMaking:
		return "FinalStakeMaking"
	case DecisionFinalThemeDeleting:
		return "FinalThemeDeleting"
	case DecisionNextPersonFinalThemeDeleting:
		return "NextPersonFinalThemeDeleting"
	case DecisionAppellationDecision:
		return "AppellationDecision"
	case DecisionReporting:
		return "Reporting"
	}
	return "Unknown"
}

// StopReason tells the engine why the session wants it to stop at the next
// safe point.
type StopReason int

const (
	StopNone StopReason = iota
	StopDecision
	StopPause
	StopAnswer
	StopAppellation
	StopMove
	StopWait
)

// Task identifies a scheduled engine step. The session core only plans a
// small subset of tasks itself; the rest belong to the engine.
type Task int

const (
	TaskNone Task = iota
	TaskStartGame
	TaskMoveNext
	TaskContinueQuestion
	TaskAskFirst
	TaskAskStake
	TaskAnnounceStakePlayer
	TaskAnnounce
	TaskAskRight
	TaskCatInfo
	TaskAskCatCost
	TaskWaitCatCost
	TaskAnnounceStake
	TaskWinner
)

// MoveDirection is the argument of the Move command.
type MoveDirection int

const (
	MoveRoundBack MoveDirection = -2
	MoveBack      MoveDirection = -1
	MoveNext      MoveDirection = 1
	MoveRoundNext MoveDirection = 2
	MoveRound     MoveDirection = 3
)

// StakeMode is the kind of auction stake a player proposes.
type StakeMode int

const (
	StakeUnset   StakeMode = -1
	StakeNominal StakeMode = 0
	StakeSum     StakeMode = 1
	StakePass    StakeMode = 2
	StakeAllIn   StakeMode = 3
)
