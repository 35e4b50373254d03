// Package pack holds the question package model the server plays through.
// It is the runtime shape only; authoring and the full package file format
// live outside this repository.
package pack

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const (
	RoundStandard = "standard"
	RoundFinal    = "final"
)

const (
	QuestionSimple  = "simple"
	QuestionAuction = "auction"
	QuestionCat     = "cat"
	QuestionBagCat  = "bagcat"
)

type Package struct {
	Name   string  `json:"name"`
	Rounds []Round `json:"rounds"`
}

type Round struct {
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Themes []Theme `json:"themes"`
}

type Theme struct {
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}

type Question struct {
	Price int      `json:"price"`
	Type  string   `json:"type,omitempty"`
	Text  string   `json:"text"`
	Right []string `json:"right"`
	Wrong []string `json:"wrong,omitempty"`
}

// IsActive reports whether the question is still playable. Played questions
// get their price set to -1 on the game table.
func (q *Question) IsActive() bool {
	return q.Price >= 0
}

var ErrNoRounds = errors.New("package has no rounds")

func Load(r io.Reader) (Package, error) {
	var p Package

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&p); err != nil {
		return Package{}, fmt.Errorf("decoding package: %w", err)
	}

	if len(p.Rounds) == 0 {
		return Package{}, ErrNoRounds
	}

	for ri := range p.Rounds {
		round := &p.Rounds[ri]

		if round.Type == "" {
			round.Type = RoundStandard
		}

		if round.Type != RoundStandard && round.Type != RoundFinal {
			return Package{}, fmt.Errorf("round %q: unknown type %q", round.Name, round.Type)
		}

		for ti := range round.Themes {
			for qi := range round.Themes[ti].Questions {
				q := &round.Themes[ti].Questions[qi]

				if q.Type == "" {
					q.Type = QuestionSimple
				}

				if len(q.Right) == 0 {
					return Package{}, fmt.Errorf("round %q theme %q question %d: no right answer", round.Name, round.Themes[ti].Name, qi)
				}
			}
		}
	}

	return p, nil
}
