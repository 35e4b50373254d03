package sched

import (
	"sync"

	"quizapi/pack"
)

// Engine couples the Runner with a round cursor over a question package.
// It satisfies the full engine contract the game session depends on; the
// dramaturgy of playing individual questions belongs to the executor
// installed with SetExec.
type Engine struct {
	*Runner

	mu  sync.Mutex
	pkg pack.Package

	roundIndex     int
	playedInRound  int
	toAnswer       bool
	questionActive bool
}

func NewEngine(pkg pack.Package) *Engine {
	return &Engine{Runner: NewRunner(), pkg: pkg}
}

func (e *Engine) RoundIndex() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.roundIndex
}

func (e *Engine) RoundCount() int {
	return len(e.pkg.Rounds)
}

func (e *Engine) IsFinalRound() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pkg.Rounds[e.roundIndex].Type == pack.RoundFinal
}

func (e *Engine) Round() *pack.Round {
	e.mu.Lock()
	defer e.mu.Unlock()
	return &e.pkg.Rounds[e.roundIndex]
}

func (e *Engine) CanMoveBack() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playedInRound > 0
}

func (e *Engine) CanMoveBackRound() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.roundIndex > 0
}

func (e *Engine) CanMoveNextRound() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.roundIndex+1 < len(e.pkg.Rounds)
}

// MoveNextRound advances the cursor and clears per-round progress.
func (e *Engine) MoveNextRound() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.roundIndex+1 >= len(e.pkg.Rounds) {
		return false
	}

	e.roundIndex++
	e.playedInRound = 0
	e.toAnswer = false
	e.questionActive = false
	return true
}

// MoveBackRound rewinds the cursor one round.
func (e *Engine) MoveBackRound() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.roundIndex == 0 {
		return false
	}

	e.roundIndex--
	e.playedInRound = 0
	e.toAnswer = false
	e.questionActive = false
	return true
}

// MoveToRound jumps directly to the given round.
func (e *Engine) MoveToRound(index int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.pkg.Rounds) || index == e.roundIndex {
		return false
	}

	e.roundIndex = index
	e.playedInRound = 0
	e.toAnswer = false
	e.questionActive = false
	return true
}

// BeginQuestion marks a question as being played.
func (e *Engine) BeginQuestion() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.questionActive = true
	e.toAnswer = false
}

// FinishQuestion records a completed question.
func (e *Engine) FinishQuestion() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.questionActive {
		e.playedInRound++
	}

	e.questionActive = false
	e.toAnswer = false
}

// MoveToAnswer skips the rest of the question body straight to its answer.
func (e *Engine) MoveToAnswer() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.toAnswer = true
}

// IsMovingToAnswer reports whether the current question was cut short.
func (e *Engine) IsMovingToAnswer() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.toAnswer
}

// SkipQuestion abandons the current question without playing its answer.
func (e *Engine) SkipQuestion() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.questionActive {
		e.playedInRound++
	}

	e.questionActive = false
	e.toAnswer = false
}
