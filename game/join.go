package game

import (
	"quizapi/domain"
)

// Join seats a participant. It checks the game password, enforces name
// uniqueness across the whole session and finds a place matching the
// requested role. A participant who lost connection rejoins their old
// seat by name.
func (s *Session) Join(name string, isMale bool, role Role, password string) error {
	var err error

	lockErr := s.withLock(func() {
		err = s.join(name, isMale, role, password)
	})
	if lockErr != nil {
		return domain.ErrSessionNotFound
	}

	return err
}

func (s *Session) join(name string, isMale bool, role Role, password string) error {
	if s.settings.PasswordHash != "" {
		ok, err := s.passwords.Compare(s.settings.PasswordHash, password)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrWrongPassword
		}
	}

	if occupant, ok := s.state.AllPersons[name]; ok {
		if occupant.IsConnected {
			return domain.ErrNameTaken
		}

		// Reconnection to the old seat.
		occupant.IsConnected = true
		s.afterJoin(name, role)
		return nil
	}

	switch role {
	case RoleShowman:
		if !s.state.ShowMan.IsFree() && s.state.ShowMan.IsConnected {
			return domain.ErrPlaceIsOccupied
		}

		s.state.ShowMan.Name = name
		s.state.ShowMan.IsMale = isMale
		s.state.ShowMan.IsHuman = true
		s.state.ShowMan.IsConnected = true
		s.state.ShowMan.Ready = false
		s.state.ShowMan.Picture = ""

	case RolePlayer:
		seat := -1
		for i, p := range s.state.Players {
			if p.IsFree() {
				seat = i
				break
			}
		}

		if seat < 0 {
			return domain.ErrNoFreePlace
		}

		p := s.state.Players[seat]
		p.Name = name
		p.IsMale = isMale
		p.IsHuman = true
		p.IsConnected = true
		p.Ready = false
		p.Picture = ""

	default:
		s.state.Viewers = append(s.state.Viewers, &Account{
			Name:        name,
			IsMale:      isMale,
			IsHuman:     true,
			IsConnected: true,
		})
	}

	s.state.refreshPersons()
	s.afterJoin(name, role)
	return nil
}

func (s *Session) afterJoin(name string, role Role) {
	if s.state.HostName == "" {
		s.state.HostName = name
	}

	s.sendAllArgs(MsgConnected, role.String(), name)
	s.inform(name)
	s.sendToArgs(name, MsgAccepted)
	s.informHostname()
	s.notifyPersonsChanged()
}

// Leave handles a dropped or closed connection. The vacated seat keeps
// its game state (score, stakes) but loses the person's name, so any
// other human can claim it.
func (s *Session) Leave(name string) {
	_ = s.withLock(func() {
		s.leave(name)
	})
}

func (s *Session) leave(name string) {
	account, ok := s.state.AllPersons[name]
	if !ok {
		return
	}

	delete(s.conns, name)

	if vi := s.viewerIndex(name); vi >= 0 {
		s.state.Viewers = append(s.state.Viewers[:vi], s.state.Viewers[vi+1:]...)
	} else {
		s.vacateSeat(account)
	}

	s.state.refreshPersons()
	s.sendAllArgs(MsgDisconnected, name)

	wasHost := s.state.HostName == name
	if wasHost {
		s.selectNewHost()
	}

	// In a managed game the host drives the progression; with the host
	// gone the session pushes itself forward so the game does not stall.
	if wasHost && s.settings.Managed && s.state.Stage != StageBefore && s.state.Stage != StageAfter {
		if s.state.Pause {
			s.pauseCore(false)
		} else if s.state.Decision == DecisionNone {
			s.state.MoveDirection = MoveNext
			s.engine.Stop(StopMove)
		}
	}

	s.notifyPersonsChanged()
}

func (s *Session) viewerIndex(name string) int {
	for i, v := range s.state.Viewers {
		if v.Name == name {
			return i
		}
	}
	return -1
}

// vacateSeat strips the departed person's identity from their seat at any
// stage. The ready flag only matters in the lobby and is left alone
// mid-game.
func (s *Session) vacateSeat(account *Account) {
	lobby := s.state.Stage == StageBefore

	account.Name = FreePlaceName
	account.Picture = ""
	account.IsConnected = false

	if !lobby {
		return
	}

	if account == &s.state.ShowMan.Account {
		s.state.ShowMan.Ready = false
		return
	}

	for _, p := range s.state.Players {
		if &p.Account == account {
			p.Ready = false
			return
		}
	}
}

// selectNewHost gives the host role to a random connected human, preferring
// the showman, then players, then viewers. With nobody eligible the game
// keeps running hostless.
func (s *Session) selectNewHost() {
	pick := func(candidates []string) bool {
		if len(candidates) == 0 {
			return false
		}
		s.state.HostName = candidates[s.rand.Intn(len(candidates))]
		return true
	}

	var candidates []string

	if s.state.ShowMan.IsHuman && s.state.ShowMan.IsConnected && !s.state.ShowMan.IsFree() {
		candidates = append(candidates, s.state.ShowMan.Name)
	}

	if !pick(candidates) {
		candidates = candidates[:0]
		for _, p := range s.state.Players {
			if p.IsHuman && p.IsConnected && !p.IsFree() {
				candidates = append(candidates, p.Name)
			}
		}

		if !pick(candidates) {
			candidates = candidates[:0]
			for _, v := range s.state.Viewers {
				if v.IsHuman && v.IsConnected {
					candidates = append(candidates, v.Name)
				}
			}

			if !pick(candidates) {
				s.state.HostName = ""
			}
		}
	}

	s.informHostname()
}

func (s *Session) notifyPersonsChanged() {
	if s.personsChanged != nil {
		s.personsChanged()
	}
}

// onGameInfo answers with the session card: name, password requirement,
// stage and the current roster.
func (s *Session) onGameInfo(sender string, _ []string) {
	args := []any{
		"GAMEINFO",
		s.settings.Name,
		plusMinus(s.settings.PasswordHash != ""),
		s.state.Stage.String(),
		len(s.state.Players),
	}

	for _, p := range s.state.MainPersons() {
		args = append(args, p.Name)
	}

	s.sendToArgs(sender, args...)
}

func (s *Session) onInfo(sender string, _ []string) {
	s.inform(sender)
}

// onKick removes another human participant at the host's request.
func (s *Session) onKick(sender string, args []string) {
	s.kickOrBan(sender, args, false)
}

func (s *Session) onBan(sender string, args []string) {
	s.kickOrBan(sender, args, true)
}

func (s *Session) kickOrBan(sender string, args []string, ban bool) {
	if sender != s.state.HostName || len(args) < 1 {
		return
	}

	target := args[0]
	if target == sender {
		return
	}

	account, ok := s.state.AllPersons[target]
	if !ok || !account.IsHuman {
		return
	}

	s.specialReplic(target + " was removed from the game by " + sender)
	s.disconnectRequested(target, ban)
	s.leave(target)
}
