package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTodoList(t *testing.T) {
	biologist := BiologistStatus{Enabled: true, CanDeliver: true, StageName: "Kurt Dişi (Lv.50)"}
	dungeons := []DungeonStatus{
		{Key: "azrael", Name: "Azrael Mabedi", Available: true},
		{Key: "razador", Name: "Razador", Available: false},
	}
	events := EventList{Active: []Event{{Name: "Tecrübe Etkinliği", Description: "2x tecrübe"}}}

	todos := buildTodoList(biologist, dungeons, events)
	require.Len(t, todos, 3)

	assert.Equal(t, "high", todos[0].Priority)
	assert.Equal(t, "Biyolog Teslimata Hazır", todos[0].Title)

	assert.Equal(t, "medium", todos[1].Priority)
	assert.Equal(t, "Azrael Mabedi Müsait", todos[1].Title)

	assert.Equal(t, "high", todos[2].Priority)
	assert.Equal(t, "Etkinlik: Tecrübe Etkinliği", todos[2].Title)
}

func TestBuildTodoListQuiet(t *testing.T) {
	todos := buildTodoList(
		BiologistStatus{Enabled: true, CanDeliver: false},
		[]DungeonStatus{{Available: false}},
		EventList{},
	)
	assert.Empty(t, todos)
}
