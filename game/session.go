package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"
)

const lockTimeout = 5 * time.Second

// Settings fix the rules of one session. They never change after creation.
type Settings struct {
	Name         string
	PasswordHash string // argon2id; empty means an open game
	Tables       int
	MinPlayers   int
	MaxPlayers   int

	Oral             bool
	Managed          bool
	Automatic        bool
	UsePingPenalty   bool
	FalseStart       bool
	AllowAppellation bool

	ReadingSpeed   int
	ButtonBlocking time.Duration
	Thinking       time.Duration
	MediaDelay     time.Duration
	AutoStart      time.Duration

	// Bot roster the host can seat instead of humans.
	BotPlayerNames  []string
	BotShowmanNames []string
}

// Dependencies are the session's external collaborators.
type Dependencies struct {
	Engine    Engine
	Share     ContentShare
	Errors    ErrorSink
	Passwords PasswordChecker
	Rand      *rand.Rand
	Clock     func() time.Time
	Log       *slog.Logger

	// DisconnectRequested is invoked (outside game state) when a kick or
	// ban requires the transport to drop a connection.
	DisconnectRequested func(name string, ban bool)
}

// Session is the authoritative actor of one running game. Every mutation
// of its State happens under the session lock.
type Session struct {
	id       string
	settings Settings
	state    *State

	engine    Engine
	share     ContentShare
	errs      ErrorSink
	passwords PasswordChecker
	rand      *rand.Rand
	now       func() time.Time
	log       *slog.Logger

	lock   *timedLock
	trail  *diagTrail
	routes map[string]handlerFunc
	conns  map[string]Sender

	disconnectRequested func(name string, ban bool)
	personsChanged      func()
	failed              bool
}

type handlerFunc func(s *Session, sender string, args []string)

func NewSession(id string, settings Settings, deps Dependencies) *Session {
	if settings.Tables < settings.MinPlayers {
		settings.Tables = settings.MinPlayers
	}
	if settings.Tables > settings.MaxPlayers {
		settings.Tables = settings.MaxPlayers
	}

	s := &Session{
		id:        id,
		settings:  settings,
		state:     newState(settings.Tables),
		engine:    deps.Engine,
		share:     deps.Share,
		errs:      deps.Errors,
		passwords: deps.Passwords,
		rand:      deps.Rand,
		now:       deps.Clock,
		log:       deps.Log,
		lock:      newTimedLock(),
		trail:     newDiagTrail(),
		conns:     make(map[string]Sender),

		disconnectRequested: deps.DisconnectRequested,
	}

	if s.rand == nil {
		s.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.disconnectRequested == nil {
		s.disconnectRequested = func(string, bool) {}
	}

	s.state.AllowAppellation = settings.AllowAppellation
	s.routes = newRoutes()

	return s
}

func (s *Session) Id() string { return s.id }

// Description snapshots the session card for the lobby listing.
func (s *Session) Description() SessionDescription {
	var d SessionDescription

	_ = s.withLock(func() {
		d = SessionDescription{
			Id:          s.id,
			Name:        s.settings.Name,
			Stage:       s.state.Stage.String(),
			Persons:     len(s.state.AllPersons),
			HasPassword: s.settings.PasswordHash != "",
		}
	})

	return d
}

// withLock runs f inside the session's mutual-exclusion region. A lock
// timeout is fatal: retrying would double-apply effects.
func (s *Session) withLock(f func()) error {
	if err := s.lock.acquire(lockTimeout); err != nil {
		s.failed = true
		s.errs.Fatal(fmt.Errorf("session %s: %w", s.id, err))
		return err
	}
	defer s.lock.release()

	f()
	return nil
}

// Attach registers the outbound channel of a connected participant.
func (s *Session) Attach(name string, conn Sender) {
	_ = s.withLock(func() {
		s.conns[name] = conn
	})
}

func (s *Session) Detach(name string) {
	_ = s.withLock(func() {
		delete(s.conns, name)
	})
}

// --- Outbound helpers. Callers hold the session lock. ---

func (s *Session) sendTo(name, text string) {
	if conn, ok := s.conns[name]; ok {
		conn.Send(text)
	}
}

func (s *Session) sendToArgs(name string, args ...any) {
	s.sendTo(name, joinArgs(args...))
}

func (s *Session) sendAll(text string) {
	for name := range s.conns {
		s.conns[name].Send(text)
	}
}

func (s *Session) sendAllArgs(args ...any) {
	s.sendAll(joinArgs(args...))
}

// specialReplic announces a game event in the chat of every participant.
func (s *Session) specialReplic(text string) {
	s.sendAllArgs(MsgReplic, replicSpecial, text)
}

func (s *Session) informSums() {
	args := make([]any, 0, len(s.state.Players)+1)
	args = append(args, MsgSums)

	for _, p := range s.state.Players {
		args = append(args, p.Sum)
	}

	s.sendAllArgs(args...)
}

func (s *Session) informStage() {
	s.sendAllArgs(MsgStage, s.state.Stage.String())
}

func (s *Session) informHostname() {
	s.sendAllArgs(MsgHostname, s.state.HostName)
}

// inform sends the full roster and rule snapshot to one person, or to
// everyone when person is empty.
func (s *Session) inform(person string) {
	args := []any{MsgInfo2, len(s.state.Players)}
	args = appendAccount(args, s.state.ShowMan)

	for _, p := range s.state.Players {
		args = appendAccount(args, &p.PersonAccount)
	}

	for _, v := range s.state.Viewers {
		args = appendAccount(args, &PersonAccount{Account: *v})
	}

	text := joinArgs(args...)

	if person == "" {
		s.sendAll(text)
	} else {
		s.sendTo(person, text)
	}

	targets := []string{person}
	if person == "" {
		targets = targets[:0]
		for name := range s.state.AllPersons {
			targets = append(targets, name)
		}
	}

	for _, target := range targets {
		s.informPictureTo(&s.state.ShowMan.Account, target)

		for _, p := range s.state.Players {
			s.informPictureTo(&p.Account, target)
		}

		readingSpeed := s.settings.ReadingSpeed
		if s.settings.Managed {
			readingSpeed = 0
		}

		s.sendToArgs(target, MsgReadingSpeed, readingSpeed)
		s.sendToArgs(target, MsgFalseStart, plusMinus(s.settings.FalseStart))
		s.sendToArgs(target, MsgButtonBlocking, int(s.settings.ButtonBlocking.Seconds()))
		s.sendToArgs(target, MsgApellationEnabled, plusMinus(s.settings.AllowAppellation))
		s.sendToArgs(target, MsgHostname, s.state.HostName)

		if len(s.settings.BotPlayerNames) > 0 {
			botArgs := []any{MsgComputerAccounts}
			for _, n := range s.settings.BotPlayerNames {
				botArgs = append(botArgs, n)
			}
			s.sendToArgs(target, botArgs...)
		}
	}
}

func appendAccount(args []any, p *PersonAccount) []any {
	return append(args,
		p.Name,
		plusMinus(p.IsMale),
		plusMinus(p.IsConnected),
		plusMinus(p.IsHuman),
		plusMinus(p.Ready),
	)
}

// stopWaiting clears the pending decision without resolving it. Used when
// the designated person disappears.
func (s *Session) stopWaiting() {
	s.state.IsWaiting = false
	s.state.Decision = DecisionNone
}

// planExecution schedules an engine task, routing through the paused-task
// slot while the game is paused.
func (s *Session) planExecution(task Task, delay time.Duration, arg int) {
	s.trail.Add(fmt.Sprintf("PlanExecution %d %s %d (paused=%t)", task, delay, arg, s.state.Pause))

	if s.state.Pause {
		s.engine.UpdatePausedTask(task, arg, delay)
	} else {
		s.engine.ScheduleExecution(task, arg, delay, false)
	}
}

// checkOrder verifies that the freshly decided order entry does not repeat
// an earlier one; a repeat is an internal fault.
func (s *Session) checkOrder(orderIndex int) {
	chosen := s.state.Order[orderIndex]

	for i := 0; i < orderIndex; i++ {
		if s.state.Order[i] == chosen {
			s.errs.Error(fmt.Errorf("session %s: order entry %d duplicated at %d", s.id, chosen, orderIndex))
			return
		}
	}
}

// StartGame moves the session out of the lobby and hands control to the
// engine. Callers hold the session lock.
func (s *Session) startGame() {
	s.state.Stage = StageBegin
	s.informStage()

	s.state.IsOral = s.settings.Oral && s.state.ShowMan.IsHuman

	s.engine.ScheduleExecution(TaskStartGame, 1, 100*time.Millisecond, false)
}

// AutoGame fills unconnected seats with bots and starts the game.
func (s *Session) AutoGame() {
	_ = s.withLock(func() {
		if s.state.Stage != StageBefore {
			return
		}

		for i := 0; i < len(s.state.Players); i++ {
			if !s.state.Players[i].IsConnected {
				s.changePersonType("player", fmt.Sprint(i), nil)
			}
		}

		s.startGame()
	})
}
