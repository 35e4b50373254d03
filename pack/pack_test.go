package pack_test

import (
	"strings"
	"testing"

	"quizapi/pack"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	doc := `{
		"name": "animals",
		"rounds": [
			{
				"name": "round 1",
				"themes": [
					{
						"name": "cats",
						"questions": [
							{"price": 100, "text": "the fastest cat", "right": ["cheetah"], "wrong": ["lion"]},
							{"price": 200, "text": "the biggest cat", "right": ["tiger"]}
						]
					}
				]
			},
			{
				"name": "finale",
				"type": "final",
				"themes": [
					{"name": "dogs", "questions": [{"price": 0, "text": "the oldest breed", "right": ["basenji"]}]}
				]
			}
		]
	}`

	p, err := pack.Load(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "animals", p.Name)
	require.Len(t, p.Rounds, 2)
	assert.Equal(t, pack.RoundStandard, p.Rounds[0].Type)
	assert.Equal(t, pack.RoundFinal, p.Rounds[1].Type)
	assert.Equal(t, pack.QuestionSimple, p.Rounds[0].Themes[0].Questions[0].Type)
	assert.True(t, p.Rounds[0].Themes[0].Questions[0].IsActive())
}

func TestLoadRejects(t *testing.T) {
	testCases := []struct {
		desc string
		doc  string
	}{
		{desc: "no rounds", doc: `{"name": "empty", "rounds": []}`},
		{desc: "unknown round type", doc: `{"rounds": [{"name": "r", "type": "bonus", "themes": []}]}`},
		{desc: "no right answer", doc: `{"rounds": [{"name": "r", "themes": [{"name": "t", "questions": [{"price": 100, "text": "?"}]}]}]}`},
		{desc: "not json", doc: `rounds: 1`},
	}

	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			_, err := pack.Load(strings.NewReader(tC.doc))
			assert.Error(t, err)
		})
	}
}
