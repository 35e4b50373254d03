package game

import (
	"fmt"
	"strings"
)

func newRoutes() map[string]handlerFunc {
	return map[string]handlerFunc{
		MsgGameInfo:   (*Session).onGameInfo,
		MsgInfo:       (*Session).onInfo,
		MsgConfig:     (*Session).onConfig,
		MsgFirst:      (*Session).onFirst,
		MsgPause:      (*Session).onPause,
		MsgStart:      (*Session).onStart,
		MsgReady:      (*Session).onReady,
		MsgPicture:    (*Session).onPicture,
		MsgChoice:     (*Session).onChoice,
		MsgI:          (*Session).onI,
		MsgPass:       (*Session).onPass,
		MsgAnswer:     (*Session).onAnswer,
		MsgAtom:       (*Session).onAtom,
		MsgReport:     (*Session).onReport,
		MsgIsRight:    (*Session).onIsRight,
		MsgNext:       (*Session).onNext,
		MsgCat:        (*Session).onCat,
		MsgCatCost:    (*Session).onCatCost,
		MsgStake:      (*Session).onStake,
		MsgNextDelete: (*Session).onNextDelete,
		MsgDelete:     (*Session).onDelete,
		MsgFinalStake: (*Session).onFinalStake,
		MsgApellate:   (*Session).onApellate,
		MsgChange:     (*Session).onChange,
		MsgMove:       (*Session).onMove,
		MsgKick:       (*Session).onKick,
		MsgBan:        (*Session).onBan,
		MsgMark:       (*Session).onMark,
	}
}

// OnMessage processes one inbound protocol line from a participant. It is
// safe to call from any goroutine: the whole dispatch runs under the
// session lock. Unknown commands and malformed arguments are ignored;
// clients cannot be trusted to send well-formed input and a bad line must
// not take the session down.
func (s *Session) OnMessage(sender, text string) {
	if s.failed || text == "" {
		return
	}

	_ = s.withLock(func() {
		s.trail.Add(fmt.Sprintf("[%s@%s]", text, sender))

		parts := strings.Split(text, ArgsSeparator)

		handler, ok := s.routes[parts[0]]
		if !ok {
			return
		}

		defer func() {
			if r := recover(); r != nil {
				s.errs.Error(fmt.Errorf("session %s: message %q from %s: %v", s.id, text, sender, r))
			}
		}()

		handler(s, sender, parts[1:])
	})
}

// OnTask is the engine's entry point back into the session: every task
// callback mutates state under the same lock the dispatcher uses.
func (s *Session) OnTask(f func()) {
	if s.failed {
		return
	}

	_ = s.withLock(func() {
		defer func() {
			if r := recover(); r != nil {
				s.errs.Error(fmt.Errorf("session %s: engine task: %v", s.id, r))
			}
		}()

		f()
	})
}
