package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateExpPercent(t *testing.T) {
	t.Run("mid-level progress", func(t *testing.T) {
		// Level 30 needs 2,122,000 experience.
		assert.InDelta(t, 47.13, calculateExpPercent(30, 1000000), 0.001)
	})

	t.Run("clamped to 100", func(t *testing.T) {
		assert.Equal(t, float64(100), calculateExpPercent(1, 999999))
	})

	t.Run("clamped to 0", func(t *testing.T) {
		assert.Equal(t, float64(0), calculateExpPercent(30, -500))
	})

	t.Run("beyond table uses sentinel", func(t *testing.T) {
		assert.InDelta(t, 50, calculateExpPercent(120, expBeyondTable/2), 0.001)
	})

	t.Run("two decimal rounding", func(t *testing.T) {
		got := calculateExpPercent(30, 1234567)
		assert.Equal(t, got, float64(int64(got*100))/100)
	})
}

func TestExpNeeded(t *testing.T) {
	assert.Equal(t, int64(2122000), expNeeded(30))
	assert.Equal(t, int64(300), expNeeded(1))
	assert.Equal(t, int64(expBeyondTable), expNeeded(101))
	assert.Equal(t, int64(expBeyondTable), expNeeded(250))
}

func TestJobName(t *testing.T) {
	assert.Equal(t, "Savaşçı (E)", jobName(0))
	assert.Equal(t, "Lycan", jobName(8))
	assert.Equal(t, "Bilinmiyor", jobName(9))
	assert.Equal(t, "Bilinmiyor", jobName(-1))
}

func TestEmpireName(t *testing.T) {
	assert.Equal(t, "Shinsoo", empireName(1))
	assert.Equal(t, "Jinno", empireName(3))
	assert.Equal(t, "-", empireName(0))
	assert.Equal(t, "-", empireName(7))
}

func TestAlignmentRank(t *testing.T) {
	cases := []struct {
		alignment int
		want      string
	}{
		{-15000, "Zalim"},
		{-10000, "Kötü"},
		{-1, "Düşman"},
		{0, "Yansız"},
		{999, "Yansız"},
		{1000, "İyi"},
		{5000, "Kahramanca"},
		{10000, "Kahraman"},
		{19999, "Kahraman"},
		// Out-of-range values clamp to the boundary ranks.
		{25000, "Kahraman"},
		{-30000, "Zalim"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, alignmentRank(tc.alignment), "alignment %d", tc.alignment)
	}
}

func TestFormatYang(t *testing.T) {
	assert.Equal(t, "1.234.567 Yang", formatYang(1234567))
	assert.Equal(t, "0 Yang", formatYang(0))
	assert.Equal(t, "999 Yang", formatYang(999.9))
}

func TestFormatPlaytime(t *testing.T) {
	assert.Equal(t, "0 Saat", formatPlaytime(30))
	assert.Equal(t, "5 Saat", formatPlaytime(330))
	assert.Equal(t, "2 Gün 3 Saat", formatPlaytime(2*24*60+3*60))
}

func TestFormatCooldown(t *testing.T) {
	assert.Equal(t, "Hazır", formatCooldown(0))
	assert.Equal(t, "Hazır", formatCooldown(-5))
	assert.Equal(t, "45 Dakika", formatCooldown(45*60))
	assert.Equal(t, "2 Saat 30 Dakika", formatCooldown(2*3600+30*60))
}

func TestFormatEventDuration(t *testing.T) {
	assert.Equal(t, "0 dakika", formatEventDuration(-1))
	assert.Equal(t, "1 dakika", formatEventDuration(30))
	assert.Equal(t, "5 dakika", formatEventDuration(5*60))
	assert.Equal(t, "3 saat 20 dakika", formatEventDuration(3*3600+20*60))
	assert.Equal(t, "2 gün 4 saat", formatEventDuration(2*86400+4*3600))
	assert.Equal(t, "1 gün 2 saat 3 dakika", formatEventDuration(86400+2*3600+3*60))
}
