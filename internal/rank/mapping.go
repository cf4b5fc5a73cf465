package rank

import "strings"

const (
	colorError   = "#FF0000"
	colorDefault = "#888888"
)

// tieredFamilies in display order; matching is by substring against the
// lowercased rank text, so "Gold 2" and "gold2 (peak)" both land on gold.
var tieredFamilies = []struct {
	name  string
	file  string
	color string
}{
	{"iron", "Iron", "#6B5B73"},
	{"bronze", "Bronze", "#CD7F32"},
	{"silver", "Silver", "#C0C0C0"},
	{"gold", "Gold", "#FFD700"},
	{"platinum", "Platinum", "#00CED1"},
	{"diamond", "Diamond", "#B9F2FF"},
	{"ascendant", "Ascendant", "#32CD32"},
	{"immortal", "Immortal", "#FF69B4"},
}

// Icon maps rank text to the rank icon filename. Tiered families resolve to
// the numbered tier when present, otherwise tier 1. Radiant has a single
// icon. Unranked, unrated, and error states have no icon.
func Icon(rank string) string {
	lower := strings.ToLower(rank)

	for _, fam := range tieredFamilies {
		if !strings.Contains(lower, fam.name) {
			continue
		}
		for _, tier := range []string{"1", "2", "3"} {
			if strings.Contains(lower, fam.name+" "+tier) {
				return fam.file + "_" + tier + "_Rank.png"
			}
		}
		return fam.file + "_1_Rank.png"
	}

	if strings.Contains(lower, "radiant") {
		return "Radiant_Rank.png"
	}
	return ""
}

// Color maps rank text to the family display color. Error states are red;
// anything unrecognized gets the neutral gray.
func Color(rank string) string {
	lower := strings.ToLower(rank)

	for _, fam := range tieredFamilies {
		if strings.Contains(lower, fam.name) {
			return fam.color
		}
	}
	if strings.Contains(lower, "radiant") {
		return "#FFFF00"
	}
	if strings.Contains(lower, "error") || strings.Contains(lower, "failed") {
		return colorError
	}
	return colorDefault
}
