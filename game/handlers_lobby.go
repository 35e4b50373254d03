package game

import (
	"fmt"
	"strconv"
)

// onReady toggles the sender's lobby ready flag. The game starts once
// every main person is ready.
func (s *Session) onReady(sender string, args []string) {
	if s.state.Stage != StageBefore {
		return
	}

	ready := true
	if len(args) > 0 {
		ready = args[0] != "-"
	}

	var person *PersonAccount
	for _, p := range s.state.MainPersons() {
		if p.Name == sender {
			person = p
			break
		}
	}

	if person == nil {
		return
	}

	person.Ready = ready
	s.sendAllArgs(MsgReady, sender, plusMinus(ready))

	if s.allReady() {
		s.startGame()
	}
}

func (s *Session) allReady() bool {
	for _, p := range s.state.MainPersons() {
		if !p.Ready {
			return false
		}
	}
	return true
}

// onStart lets the host start the game without waiting for ready flags.
func (s *Session) onStart(sender string, _ []string) {
	if sender != s.state.HostName || s.state.Stage != StageBefore {
		return
	}

	s.startGame()
}

// onConfig dispatches table management subcommands. Host only.
func (s *Session) onConfig(sender string, args []string) {
	if sender != s.state.HostName || len(args) < 1 {
		return
	}

	host, ok := s.state.AllPersons[s.state.HostName]
	if !ok {
		return
	}

	switch args[0] {
	case ConfigAddTable:
		s.addTable(host)
	case ConfigDeleteTable:
		s.deleteTable(args[1:])
	case ConfigFree:
		s.freeTable(args[1:])
	case ConfigSet:
		s.setPerson(args[1:])
	case ConfigChangeType:
		if s.state.Stage == StageBefore && len(args) > 1 {
			index := ""
			if len(args) > 2 {
				index = args[2]
			}
			s.changePersonType(args[1], index, host)
		}
	}
}

func (s *Session) addTable(host *Account) {
	if len(s.state.Players) >= s.settings.MaxPlayers {
		return
	}

	s.state.Players = append(s.state.Players, newFreePlayer())
	s.state.refreshPersons()
	s.trail.Add(fmt.Sprintf("Player added (total: %d)", len(s.state.Players)))

	seat := s.state.Players[len(s.state.Players)-1]

	s.sendAllArgs(MsgConfig, ConfigAddTable,
		seat.Name,
		plusMinus(seat.IsMale),
		plusMinus(seat.IsConnected),
		plusMinus(seat.IsHuman),
		plusMinus(seat.Ready))
	s.specialReplic(host.Name + " added a game table")
	s.notifyPersonsChanged()
}

// deleteTable removes a player seat entirely. Refused when only two seats
// would remain, or when a connected human occupies the seat mid-game.
func (s *Session) deleteTable(args []string) {
	if len(args) < 1 {
		return
	}

	index, err := strconv.Atoi(args[0])
	if err != nil || len(s.state.Players) <= 2 || index < 0 || index >= len(s.state.Players) {
		return
	}

	account := s.state.Players[index]
	wasOnline := account.IsConnected

	if s.state.Stage != StageBefore && account.IsHuman && wasOnline {
		return
	}

	s.state.Players = append(s.state.Players[:index], s.state.Players[index+1:]...)
	s.trail.Add(fmt.Sprintf("Player removed at %d", index))

	s.dropPlayerIndex(index)

	if wasOnline && account.IsHuman {
		s.state.Viewers = append(s.state.Viewers, &account.Account)
	}

	s.state.refreshPersons()

	s.sendAllArgs(MsgConfig, ConfigDeleteTable, index)
	s.specialReplic(fmt.Sprintf("%s removed game table %d", s.state.HostName, index+1))

	if s.state.Stage == StageBefore && s.allReady() {
		s.startGame()
	}

	s.notifyPersonsChanged()
}

// freeTable unseats a connected human back to the viewers. Lobby only.
func (s *Session) freeTable(args []string) {
	if s.state.Stage != StageBefore || len(args) < 1 {
		return
	}

	isPlayer := args[0] == "player"
	index := -1

	var account *PersonAccount

	if isPlayer {
		if len(args) < 2 {
			return
		}

		i, err := strconv.Atoi(args[1])
		if err != nil || !s.state.ValidPlayerIndex(i) {
			return
		}

		index = i
		account = &s.state.Players[i].PersonAccount
	} else {
		account = s.state.ShowMan
	}

	if !account.IsConnected || !account.IsHuman {
		return
	}

	freed := account.Account

	if isPlayer {
		s.state.Players[index] = newFreePlayer()
	} else {
		s.state.ShowMan = newFreePerson()
	}

	s.state.Viewers = append(s.state.Viewers, &freed)
	s.state.refreshPersons()

	s.sendAllArgs(MsgConfig, ConfigFree, args[0], index)
	s.specialReplic(fmt.Sprintf("%s freed %s from the table", s.state.HostName, freed.Name))
	s.notifyPersonsChanged()
}

// setPerson puts a named bot or an already-present viewer into a seat.
// Lobby only.
func (s *Session) setPerson(args []string) {
	if s.state.Stage != StageBefore || len(args) < 3 {
		return
	}

	isPlayer := args[0] == "player"
	replacer := args[2]

	index := -1
	var seat *PersonAccount

	if isPlayer {
		i, err := strconv.Atoi(args[1])
		if err != nil || !s.state.ValidPlayerIndex(i) {
			return
		}

		index = i
		seat = &s.state.Players[i].PersonAccount
	} else {
		seat = s.state.ShowMan
	}

	if _, taken := s.state.AllPersons[replacer]; taken {
		// Only a viewer may be promoted into a seat.
		vi := s.viewerIndex(replacer)
		if vi < 0 {
			return
		}

		old := seat.Account
		viewer := s.state.Viewers[vi]
		s.state.Viewers = append(s.state.Viewers[:vi], s.state.Viewers[vi+1:]...)

		seat.Account = *viewer
		seat.Ready = false

		if old.IsConnected && old.IsHuman {
			s.state.Viewers = append(s.state.Viewers, &old)
		}
	} else {
		// An unknown name becomes a bot occupant.
		old := seat.Account

		seat.Account = Account{Name: replacer, IsHuman: false, IsConnected: true}
		seat.Ready = true

		if old.IsConnected && old.IsHuman {
			s.state.Viewers = append(s.state.Viewers, &old)
		}
	}

	s.state.refreshPersons()

	s.sendAllArgs(MsgConfig, ConfigSet, args[0], index, replacer)
	s.notifyPersonsChanged()
}

// changePersonType swaps a seat between human and bot occupancy.
func (s *Session) changePersonType(personType, indexStr string, host *Account) {
	isPlayer := personType == "player"

	index := -1
	var seat *PersonAccount

	if isPlayer {
		i, err := strconv.Atoi(indexStr)
		if err != nil || !s.state.ValidPlayerIndex(i) {
			return
		}

		index = i
		seat = &s.state.Players[i].PersonAccount
	} else {
		seat = s.state.ShowMan
	}

	old := seat.Account

	if seat.IsHuman {
		name := s.pickBotName(isPlayer)

		seat.Account = Account{Name: name, IsHuman: false, IsConnected: true}
		seat.Ready = true

		if old.IsConnected && old.IsHuman {
			s.state.Viewers = append(s.state.Viewers, &old)
		}
	} else {
		seat.Account = Account{Name: FreePlaceName, IsHuman: true}
		seat.Ready = false
	}

	s.state.refreshPersons()

	s.sendAllArgs(MsgConfig, ConfigChangeType, personType, index, plusMinus(seat.IsHuman), seat.Name)

	if host != nil {
		s.specialReplic(fmt.Sprintf("%s changed the type of table %s", host.Name, seat.Name))
	}

	s.notifyPersonsChanged()
}

func (s *Session) pickBotName(player bool) string {
	roster := s.settings.BotShowmanNames
	if player {
		roster = s.settings.BotPlayerNames
	}

	for _, name := range roster {
		if _, taken := s.state.AllPersons[name]; !taken {
			return name
		}
	}

	for i := 1; ; i++ {
		name := fmt.Sprintf("Bot %d", i)
		if _, taken := s.state.AllPersons[name]; !taken {
			return name
		}
	}
}
