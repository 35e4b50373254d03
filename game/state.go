package game

import (
	"time"

	"quizapi/pack"
)

type Stage int

const (
	StageBefore Stage = iota
	StageBegin
	StageRound
	StageAfter
)

func (s Stage) String() string {
	switch s {
	case StageBefore:
		return "Before"
	case StageBegin:
		return "Begin"
	case StageRound:
		return "Round"
	case StageAfter:
		return "After"
	}
	return "Unknown"
}

// Logical timer indices.
const (
	TimerMedia = iota
	TimerThinking
	TimerAutoStart
	TimersCount
)

// AnswerResult is one entry of the per-question history, consumed when an
// appeal is raised.
type AnswerResult struct {
	PlayerIndex int
	IsRight     bool
}

type CatInfo struct {
	Minimum int
	Maximum int
	Step    int
}

// TableTheme is a theme row on the game table. A played question keeps its
// cell but holds price -1.
type TableTheme struct {
	Name      string
	Questions []int
}

// State is the single mutable aggregate of one session. Only the session
// actor mutates it, and only while holding the session lock.
type State struct {
	Stage Stage

	ShowMan    *PersonAccount
	Players    []*PlayerAccount
	Viewers    []*Account
	AllPersons map[string]*Account
	HostName   string

	Decision  DecisionType
	IsWaiting bool

	// Oral mode: the showman may answer on behalf of the designated player.
	IsOral    bool
	IsOralNow bool

	ChooserIndex         int
	AnswererIndex        int
	PendingAnswererIndex int
	AppelaerIndex        int
	StakerIndex          int
	ThemeIndexToDelete   int

	Order      []int
	OrderIndex int

	QuestionHistory   []AnswerResult
	UsedWrongVersions map[string]struct{}

	Cat           CatInfo
	StakeVariants [4]bool
	Stake         int
	StakeSum      int
	StakeType     StakeMode
	NumOfStakers  int
	CurPriceRight int

	Table         []TableTheme
	ThemeIndex    int
	QuestionIndex int
	Question      *pack.Question

	ShowmanDecision bool

	ThemeDeleters *ThemeDeleters

	Pause          bool
	PauseStartTime time.Time
	TimerStartTime [TimersCount]time.Time

	IsThinking           bool
	IsThinkingPaused     bool
	IsPlayingMedia       bool
	IsPlayingMediaPaused bool

	IsQuestionPlaying  bool
	IsQuestionFinished bool
	IsAnswer           bool
	HaveViewedMedia    int

	MoveDirection    MoveDirection
	TargetRoundIndex int

	AllowAppellation             bool
	IsAppellationForRightAnswer  bool
	AppellationSource            string
	AppellationAnswersReceived   int
	AppellationRightVotesCount   int

	Penalty           time.Duration
	PenaltyStartTime  time.Time
	IsDeferringAnswer bool

	ReportsCount    int
	AcceptedReports int
	ReportComments  []string
	MarkedQuestions []MarkedQuestion
	CanMarkQuestion bool
}

// MarkedQuestion is a question a participant flagged for the game report.
type MarkedQuestion struct {
	Round    int
	Theme    int
	Question int
}

func newState(tables int) *State {
	st := &State{
		ShowMan:              newFreePerson(),
		AllPersons:           make(map[string]*Account),
		UsedWrongVersions:    make(map[string]struct{}),
		ChooserIndex:         -1,
		AnswererIndex:        -1,
		PendingAnswererIndex: -1,
		AppelaerIndex:        -1,
		StakerIndex:          -1,
		ThemeIndexToDelete:   -1,
		OrderIndex:           -1,
		Stake:                -1,
		StakeType:            StakeUnset,
		TargetRoundIndex:     -1,
	}

	for i := 0; i < tables; i++ {
		st.Players = append(st.Players, newFreePlayer())
	}

	st.refreshPersons()
	return st
}

// refreshPersons rebuilds the name index. Called after every structural
// change to the seats, so invariant 1 holds by construction.
func (st *State) refreshPersons() {
	persons := make(map[string]*Account, len(st.Players)+len(st.Viewers)+1)

	if st.ShowMan != nil && !st.ShowMan.IsFree() {
		persons[st.ShowMan.Name] = &st.ShowMan.Account
	}

	for _, p := range st.Players {
		if !p.IsFree() {
			persons[p.Name] = &p.Account
		}
	}

	for _, v := range st.Viewers {
		persons[v.Name] = v
	}

	st.AllPersons = persons
}

// MainPersons is the showman plus every player, in seat order.
func (st *State) MainPersons() []*PersonAccount {
	res := make([]*PersonAccount, 0, len(st.Players)+1)
	res = append(res, st.ShowMan)

	for _, p := range st.Players {
		res = append(res, &p.PersonAccount)
	}

	return res
}

func (st *State) ValidPlayerIndex(i int) bool {
	return i >= 0 && i < len(st.Players)
}

func (st *State) Chooser() *PlayerAccount  { return st.playerAt(st.ChooserIndex) }
func (st *State) Answerer() *PlayerAccount { return st.playerAt(st.AnswererIndex) }
func (st *State) Staker() *PlayerAccount   { return st.playerAt(st.StakerIndex) }

// ActivePlayer is the player whose turn it is in the current stake order.
func (st *State) ActivePlayer() *PlayerAccount {
	if st.OrderIndex < 0 || st.OrderIndex >= len(st.Order) {
		return nil
	}
	return st.playerAt(st.Order[st.OrderIndex])
}

func (st *State) playerAt(i int) *PlayerAccount {
	if !st.ValidPlayerIndex(i) {
		return nil
	}
	return st.Players[i]
}

func (st *State) PlayerIndexByName(name string) int {
	for i, p := range st.Players {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// ThemeDeleters tracks who may still eliminate a final-round theme, in
// turn order. A slot is either decided (one player index) or a set of
// possible indices the showman picks from.
type ThemeDeleters struct {
	slots []deleterSlot
	cur   int
}

type deleterSlot struct {
	playerIndex int
	possible    map[int]struct{}
}

func NewThemeDeleters(order []int) *ThemeDeleters {
	td := &ThemeDeleters{}
	for _, idx := range order {
		td.slots = append(td.slots, deleterSlot{playerIndex: idx})
	}
	return td
}

// AddUndecided appends a slot whose player the showman still has to pick.
func (td *ThemeDeleters) AddUndecided(possible []int) {
	set := make(map[int]struct{}, len(possible))
	for _, idx := range possible {
		set[idx] = struct{}{}
	}
	td.slots = append(td.slots, deleterSlot{playerIndex: -1, possible: set})
}

func (td *ThemeDeleters) IsEmpty() bool { return len(td.slots) == 0 }

func (td *ThemeDeleters) MoveNext() bool {
	if td.cur+1 >= len(td.slots) {
		return false
	}
	td.cur++
	return true
}

// CurrentIndex returns the decided player index of the current slot, or -1.
func (td *ThemeDeleters) CurrentIndex() int {
	if td.cur >= len(td.slots) {
		return -1
	}
	return td.slots[td.cur].playerIndex
}

// SetCurrentIndex decides the current slot. The index must be one of the
// slot's possible candidates.
func (td *ThemeDeleters) SetCurrentIndex(playerIndex int) bool {
	if td.cur >= len(td.slots) {
		return false
	}

	slot := &td.slots[td.cur]

	if slot.playerIndex != -1 {
		return false
	}

	if _, ok := slot.possible[playerIndex]; !ok {
		return false
	}

	slot.playerIndex = playerIndex
	return true
}

// PossibleIndices lists the candidates of the current slot.
func (td *ThemeDeleters) PossibleIndices() []int {
	if td.cur >= len(td.slots) || td.slots[td.cur].possible == nil {
		return nil
	}

	res := make([]int, 0, len(td.slots[td.cur].possible))
	for idx := range td.slots[td.cur].possible {
		res = append(res, idx)
	}

	return res
}

// RemoveAt drops every reference to the removed player and renumbers the
// remaining references, keeping slot order.
func (td *ThemeDeleters) RemoveAt(playerIndex int) {
	var kept []deleterSlot
	newCur := td.cur

	for i := range td.slots {
		slot := td.slots[i]
		remove := slot.playerIndex == playerIndex

		if !remove && slot.possible != nil {
			next := make(map[int]struct{}, len(slot.possible))

			for idx := range slot.possible {
				switch {
				case idx == playerIndex:
				case idx > playerIndex:
					next[idx-1] = struct{}{}
				default:
					next[idx] = struct{}{}
				}
			}

			slot.possible = next
			remove = len(next) == 0
		}

		if remove {
			if i < td.cur {
				newCur--
			}
			continue
		}

		if slot.playerIndex > playerIndex {
			slot.playerIndex--
		}

		kept = append(kept, slot)
	}

	td.slots = kept

	if newCur >= len(kept) {
		newCur = len(kept) - 1
	}
	if newCur < 0 {
		newCur = 0
	}
	td.cur = newCur
}
