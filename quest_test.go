package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dungeonByKey(t *testing.T, key string) dungeonDef {
	t.Helper()
	for _, def := range dungeonCatalog {
		if def.Key == key {
			return def
		}
	}
	t.Fatalf("unknown dungeon %s", key)
	return dungeonDef{}
}

func TestDungeonAvailability(t *testing.T) {
	// 2026-03-10 14:00 local time.
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.Local)
	daily := dungeonByKey(t, "azrael")
	weekly := dungeonByKey(t, "razador")
	hourly := dungeonByKey(t, "demon_tower")

	t.Run("no flag means available", func(t *testing.T) {
		available, remaining := dungeonAvailability(daily, 0, false, now)
		assert.True(t, available)
		assert.Zero(t, remaining)
	})

	t.Run("daily entered today at 00:30 is unavailable", func(t *testing.T) {
		entry := time.Date(2026, 3, 10, 0, 30, 0, 0, time.Local).Unix()
		available, remaining := dungeonAvailability(daily, entry, true, now)
		assert.False(t, available)
		// Calendar-day resets report no countdown.
		assert.Zero(t, remaining)
	})

	t.Run("daily entered yesterday at 23:50 is available again", func(t *testing.T) {
		entry := time.Date(2026, 3, 9, 23, 50, 0, 0, time.Local).Unix()
		available, _ := dungeonAvailability(daily, entry, true, now)
		assert.True(t, available)
	})

	t.Run("weekly is a rolling window", func(t *testing.T) {
		exactly := now.Unix() - weekly.Cooldown
		available, remaining := dungeonAvailability(weekly, exactly, true, now)
		assert.True(t, available)
		assert.Zero(t, remaining)

		available, remaining = dungeonAvailability(weekly, exactly+1, true, now)
		assert.False(t, available)
		assert.Equal(t, int64(1), remaining)
	})

	t.Run("hourly remaining counts down", func(t *testing.T) {
		entry := now.Unix() - 600
		available, remaining := dungeonAvailability(hourly, entry, true, now)
		assert.False(t, available)
		assert.Equal(t, int64(3000), remaining)
	})
}

func TestInterpretDungeons(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.Local)

	t.Run("no flags means everything available", func(t *testing.T) {
		statuses := interpretDungeons(nil, now)
		require.Len(t, statuses, len(dungeonCatalog))
		for _, status := range statuses {
			assert.True(t, status.Available, status.Key)
			assert.Equal(t, "✅ Müsait", status.Status)
			assert.Empty(t, status.LastEntry)
		}
	})

	t.Run("last matching flag wins", func(t *testing.T) {
		stale := now.Unix() - 10*86400
		recent := now.Unix() - 60
		statuses := interpretDungeons([]FlagRecord{
			{Name: "razador_last_entry", Value: stale},
			{Name: "razador.last_entry_time", Value: recent},
		}, now)

		var razador DungeonStatus
		for _, status := range statuses {
			if status.Key == "razador" {
				razador = status
			}
		}
		assert.False(t, razador.Available)
		assert.Equal(t, time.Unix(recent, 0).Format("2006-01-02 15:04:05"), razador.LastEntry)
	})

	t.Run("flags for unknown dungeons are ignored", func(t *testing.T) {
		statuses := interpretDungeons([]FlagRecord{
			{Name: "nemere_last_entry", Value: now.Unix()},
		}, now)
		for _, status := range statuses {
			assert.True(t, status.Available, status.Key)
		}
	})

	t.Run("flag matching is case-insensitive", func(t *testing.T) {
		statuses := interpretDungeons([]FlagRecord{
			{Name: "Demon_Tower.last_entry", Value: now.Unix() - 60},
		}, now)
		for _, status := range statuses {
			if status.Key == "demon_tower" {
				assert.False(t, status.Available)
				assert.Equal(t, "❌ Tamamlandı", status.Status)
			}
		}
	})
}

func TestInterpretBiologist(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.Local)

	t.Run("no flags means feature absent", func(t *testing.T) {
		status := interpretBiologist(nil, now)
		assert.False(t, status.Enabled)
		assert.False(t, status.CanDeliver)
	})

	t.Run("future duration blocks delivery", func(t *testing.T) {
		next := now.Add(90 * time.Minute).Unix()
		status := interpretBiologist([]FlagRecord{
			{Name: "biologist.duration", Value: next},
			{Name: "biologist.count", Value: 3},
			{Name: "biologist.level", Value: 4},
		}, now)

		assert.True(t, status.Enabled)
		assert.False(t, status.CanDeliver)
		assert.Equal(t, int64(5400), status.RemainingSeconds)
		assert.Equal(t, "1 Saat 30 Dakika", status.RemainingFormatted)
		assert.Equal(t, int64(3), status.DeliveredToday)
		assert.Equal(t, int64(4), status.Level)
		assert.Equal(t, "Ayı Pençesi (Lv.60)", status.StageName)
	})

	t.Run("past duration allows delivery", func(t *testing.T) {
		status := interpretBiologist([]FlagRecord{
			{Name: "biologist.duration", Value: now.Add(-time.Hour).Unix()},
		}, now)
		assert.True(t, status.Enabled)
		assert.True(t, status.CanDeliver)
		assert.Zero(t, status.RemainingSeconds)
		assert.Equal(t, "Hazır", status.RemainingFormatted)
	})

	t.Run("missing stage defaults to level 1", func(t *testing.T) {
		status := interpretBiologist([]FlagRecord{
			{Name: "biologist.deliver_count", Value: 1},
		}, now)
		assert.Equal(t, int64(1), status.Level)
		assert.Equal(t, "Ork Dişi (Lv.30)", status.StageName)
	})

	t.Run("unknown stage gets a generic label", func(t *testing.T) {
		status := interpretBiologist([]FlagRecord{
			{Name: "biologist.seviye", Value: 12},
		}, now)
		assert.Equal(t, "Aşama 12", status.StageName)
	})
}

func TestClassifyFlags(t *testing.T) {
	t.Run("each flag lands in its first matching role", func(t *testing.T) {
		// "sure_count" contains tokens of both duration and counter;
		// duration is checked first.
		values := classifyFlags([]FlagRecord{
			{Name: "biologist.sure_count", Value: 99},
		}, biologistTokens)
		assert.Equal(t, int64(99), values[roleDuration])
		_, hasCounter := values[roleCounter]
		assert.False(t, hasCounter)
	})

	t.Run("last flag per role wins", func(t *testing.T) {
		values := classifyFlags([]FlagRecord{
			{Name: "biologist.count", Value: 1},
			{Name: "biologist.deliver", Value: 2},
		}, biologistTokens)
		assert.Equal(t, int64(2), values[roleCounter])
	})

	t.Run("unmatched flags are dropped", func(t *testing.T) {
		values := classifyFlags([]FlagRecord{
			{Name: "biologist.lastquestion", Value: 7},
		}, biologistTokens)
		assert.Empty(t, values)
	})
}

func TestInterpretDailyQuests(t *testing.T) {
	flags := []FlagRecord{
		{Name: "daily_kill.completed", Value: 1},
		{Name: "daily_kill.count", Value: 40},
		{Name: "daily_kill.target", Value: 50},
		{Name: "gunluk_boss.done", Value: 0},
		{Name: "daily_reward.timestamp", Value: 1700000000},
	}

	quests := interpretDailyQuests(flags)
	require.Len(t, quests, 2)

	assert.Equal(t, "Kill Completed", quests[0].Name)
	assert.True(t, quests[0].Completed)
	assert.Equal(t, "✅ Tamamlandı", quests[0].Status)

	assert.Equal(t, "Boss Done", quests[1].Name)
	assert.False(t, quests[1].Completed)
	assert.Equal(t, "⏳ Devam Ediyor", quests[1].Status)
}

func TestBeautifyQuestName(t *testing.T) {
	assert.Equal(t, "Kill Completed", beautifyQuestName("daily_kill.completed"))
	assert.Equal(t, "Boss Done", beautifyQuestName("gunluk_boss_done"))
}
