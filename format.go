package main

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Experience needed to finish each level. Values past the end of the table
// (champion levels) fall back to a fixed sentinel.
const expBeyondTable = 2000000000

var expTable = map[int]int64{
	1: 300, 2: 800, 3: 1500, 4: 2500, 5: 4300,
	6: 7200, 7: 11000, 8: 17000, 9: 24000, 10: 33000,
	11: 43000, 12: 58000, 13: 76000, 14: 100000, 15: 130000,
	16: 169000, 17: 219000, 18: 283000, 19: 365000, 20: 472000,
	21: 610000, 22: 705000, 23: 813000, 24: 937000, 25: 1077000,
	26: 1237000, 27: 1418000, 28: 1624000, 29: 1857000, 30: 2122000,
	31: 2421000, 32: 2761000, 33: 3145000, 34: 3580000, 35: 4073000,
	36: 4632000, 37: 5194000, 38: 5717000, 39: 6264000, 40: 6837000,
	41: 7600000, 42: 8274000, 43: 8990000, 44: 9753000, 45: 10560000,
	46: 11410000, 47: 12320000, 48: 13270000, 49: 14280000, 50: 15340000,
	51: 16870000, 52: 18960000, 53: 19980000, 54: 21420000, 55: 22930000,
	56: 24580000, 57: 26200000, 58: 27960000, 59: 29800000, 60: 32780000,
	61: 36060000, 62: 39670000, 63: 43640000, 64: 48000000, 65: 52800000,
	66: 58080000, 67: 63890000, 68: 70280000, 69: 77310000, 70: 85040000,
	71: 93540000, 72: 102900000, 73: 113200000, 74: 124500000, 75: 137000000,
	76: 150700000, 77: 165700000, 78: 236990000, 79: 260650000, 80: 286780000,
	81: 315000000, 82: 346970000, 83: 381680000, 84: 419770000, 85: 461760000,
	86: 508040000, 87: 558740000, 88: 614640000, 89: 676130000, 90: 743730000,
	91: 1041222000, 92: 1145344200, 93: 1259878620, 94: 1385866482, 95: 1524453130,
	96: 1676898443, 97: 1844588288, 98: 2029047116, 99: 2050000000, 100: 2150000000,
}

var jobNames = map[int]string{
	0: "Savaşçı (E)",
	1: "Savaşçı (K)",
	2: "Ninja (E)",
	3: "Ninja (K)",
	4: "Sura (E)",
	5: "Sura (K)",
	6: "Şaman (E)",
	7: "Şaman (K)",
	8: "Lycan",
}

var empireNames = map[int]string{0: "-", 1: "Shinsoo", 2: "Chunjo", 3: "Jinno"}

type alignmentRange struct {
	min  int
	max  int
	name string
}

// Half-open ranges [min, max). Values outside every range clamp to the
// nearest boundary rank.
var alignmentRanks = []alignmentRange{
	{-20000, -10000, "Zalim"},
	{-10000, -1000, "Kötü"},
	{-1000, 0, "Düşman"},
	{0, 1000, "Yansız"},
	{1000, 5000, "İyi"},
	{5000, 10000, "Kahramanca"},
	{10000, 20000, "Kahraman"},
}

func expNeeded(level int) int64 {
	if needed, ok := expTable[level]; ok {
		return needed
	}
	return expBeyondTable
}

// calculateExpPercent returns level progress in percent, clamped to [0,100]
// and rounded to two decimals.
func calculateExpPercent(level int, currentExp float64) float64 {
	needed := float64(expNeeded(level))
	if needed <= 0 {
		return 100
	}
	percent := currentExp / needed * 100
	percent = math.Max(0, math.Min(100, percent))
	return math.Round(percent*100) / 100
}

func jobName(job int) string {
	if name, ok := jobNames[job]; ok {
		return name
	}
	return "Bilinmiyor"
}

func empireName(empire int) string {
	if name, ok := empireNames[empire]; ok {
		return name
	}
	return "-"
}

func alignmentRank(alignment int) string {
	for _, r := range alignmentRanks {
		if alignment >= r.min && alignment < r.max {
			return r.name
		}
	}
	if alignment >= alignmentRanks[len(alignmentRanks)-1].max {
		return alignmentRanks[len(alignmentRanks)-1].name
	}
	return alignmentRanks[0].name
}

// The panel's audience reads Turkish digit grouping: 1.234.567.
var yangPrinter = message.NewPrinter(language.Turkish)

func formatYang(amount float64) string {
	return yangPrinter.Sprintf("%d Yang", int64(amount))
}

// formatPlaytime renders minutes of playtime as days and hours.
func formatPlaytime(minutes int) string {
	hours := minutes / 60
	days := hours / 24
	if days > 0 {
		return fmt.Sprintf("%d Gün %d Saat", days, hours%24)
	}
	return fmt.Sprintf("%d Saat", hours)
}

// formatCooldown renders remaining cooldown seconds; zero or less means the
// feature is ready.
func formatCooldown(seconds int64) string {
	if seconds <= 0 {
		return "Hazır"
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%d Saat %d Dakika", hours, minutes)
	}
	return fmt.Sprintf("%d Dakika", minutes)
}

// formatEventDuration renders a span as "N gün N saat N dakika", dropping
// absent units and flooring at one minute.
func formatEventDuration(seconds int64) string {
	if seconds < 0 {
		return "0 dakika"
	}
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%d gün", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d saat", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d dakika", minutes))
	}
	if len(parts) == 0 {
		return "1 dakika"
	}
	return strings.Join(parts, " ")
}
