package game

import "time"

// FreePlaceName marks an unclaimed seat. Seats keep their index for the
// whole game; only the occupant changes.
const FreePlaceName = "(free)"

type Role int

const (
	RoleViewer Role = iota
	RolePlayer
	RoleShowman
)

func ParseRole(s string) (Role, bool) {
	switch s {
	case "viewer":
		return RoleViewer, true
	case "player":
		return RolePlayer, true
	case "showman":
		return RoleShowman, true
	}
	return RoleViewer, false
}

func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "player"
	case RoleShowman:
		return "showman"
	default:
		return "viewer"
	}
}

// Account is the base identity of anyone attached to the session.
type Account struct {
	Name        string
	IsMale      bool
	IsHuman     bool
	IsConnected bool
	Picture     string
}

func (a *Account) IsFree() bool {
	return !a.IsConnected && a.Name == FreePlaceName
}

// PersonAccount is a main participant (showman or player): someone who has
// a seat and a ready flag in the lobby.
type PersonAccount struct {
	Account
	Ready bool
}

// PlayerAccount carries the per-player game attributes on top of the seat.
type PlayerAccount struct {
	PersonAccount

	Sum         int
	Flag        bool // player belongs to the current selectable subset
	InGame      bool // false once eliminated from a final round
	FinalStake  int
	StakeMaking bool
	CanPress    bool
	LastBadTry  time.Time
	PingPenalty time.Duration

	Answer        string
	AnswerIsWrong bool
	AnswerIsRight bool
}

func newFreePerson() *PersonAccount {
	return &PersonAccount{Account: Account{Name: FreePlaceName, IsHuman: true}}
}

func newFreePlayer() *PlayerAccount {
	return &PlayerAccount{
		PersonAccount: *newFreePerson(),
		InGame:        true,
		FinalStake:    -1,
	}
}
