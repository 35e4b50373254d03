package domain

import "time"

// GameReport is the persisted record of one finished game session.
type GameReport struct {
	Id         string
	SessionId  string
	Name       string
	FinishedAt time.Time

	// Comments collected from the participants' reports.
	Comments []string

	// MarkedQuestions the participants flagged during the game.
	MarkedQuestions []MarkedQuestion
}

type MarkedQuestion struct {
	Round    int `json:"round"`
	Theme    int `json:"theme"`
	Question int `json:"question"`
}
