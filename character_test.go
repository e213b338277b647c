package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCharacter(t *testing.T) {
	row := map[string]interface{}{
		"id":        int64(12),
		"name":      []byte("Aragorn"),
		"level":     int64(30),
		"exp":       int64(1000000),
		"gold":      int64(1234567),
		"job":       int64(0),
		"empire":    int64(1),
		"alignment": int64(12000),
		"hp":        int64(2400),
		"sp":        int64(800),
		"st":        int64(90),
		"ht":        int64(40),
		"dx":        int64(60),
		"iq":        int64(30),
		"playtime":  int64(3060),
		"last_play": []byte("2026-03-09 22:14:00"),
		"map_index": int64(41),
		"x":         int64(409600),
		"y":         int64(896000),
	}

	c := formatCharacter(row)
	assert.Equal(t, int64(12), c.ID)
	assert.Equal(t, "Aragorn", c.Name)
	assert.Equal(t, 30, c.Level)
	assert.InDelta(t, 47.13, c.ExpPercent, 0.001)
	assert.Equal(t, int64(2122000), c.ExpNeeded)
	assert.Equal(t, "1.234.567 Yang", c.GoldFormatted)
	assert.Equal(t, "Savaşçı (E)", c.JobName)
	assert.Equal(t, "Shinsoo", c.EmpireName)
	assert.Equal(t, "Kahraman", c.AlignmentRank)
	assert.Equal(t, "2 Gün 3 Saat", c.PlaytimeFormatted)
	// sp and mp are the same stat under deployment-specific names.
	assert.Equal(t, int64(800), c.MP)
}

func TestFormatCharacterOptionalColumns(t *testing.T) {
	// Deployments without champion or cheque columns still format cleanly.
	row := map[string]interface{}{
		"id":    int64(1),
		"name":  []byte("Frodo"),
		"level": int64(5),
		"exp":   int64(0),
		"gold":  int64(0),
		"job":   int64(2),
	}

	c := formatCharacter(row)
	assert.Equal(t, "Ninja (E)", c.JobName)
	assert.Equal(t, float64(0), c.ExpPercent)
	assert.Equal(t, int64(0), c.Won)
	assert.Equal(t, int64(0), c.ChampionLevel)
	assert.Equal(t, "Yansız", c.AlignmentRank)
	assert.Equal(t, "0 Saat", c.PlaytimeFormatted)
}

func TestFormatCharacterChequeFallback(t *testing.T) {
	withCheque := formatCharacter(map[string]interface{}{"cheque": int64(5)})
	assert.Equal(t, int64(5), withCheque.Won)

	withWon := formatCharacter(map[string]interface{}{"won": int64(7)})
	assert.Equal(t, int64(7), withWon.Won)
}
