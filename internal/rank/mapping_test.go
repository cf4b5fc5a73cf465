package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColor(t *testing.T) {
	cases := []struct {
		rank string
		want string
	}{
		{"Iron 2", "#6B5B73"},
		{"Bronze 1", "#CD7F32"},
		{"Silver 3", "#C0C0C0"},
		{"Gold 2", "#FFD700"},
		{"Platinum 1", "#00CED1"},
		{"Diamond 3", "#B9F2FF"},
		{"Ascendant 2", "#32CD32"},
		{"Immortal 3", "#FF69B4"},
		{"Radiant", "#FFFF00"},
		{"Fetch Failed", "#FF0000"},
		{"API Error", "#FF0000"},
		{"Unranked", "#888888"},
		{"anything else", "#888888"},
		{"", "#888888"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Color(tc.rank), "rank %q", tc.rank)
	}
}

func TestColor_caseInsensitiveSubstring(t *testing.T) {
	assert.Equal(t, "#FFD700", Color("GOLD 2"))
	assert.Equal(t, "#FFD700", Color("peaked at gold last act"))
}

func TestIcon_tiers(t *testing.T) {
	cases := []struct {
		rank string
		want string
	}{
		{"Iron 1", "Iron_1_Rank.png"},
		{"Iron 3", "Iron_3_Rank.png"},
		{"Gold 2", "Gold_2_Rank.png"},
		{"Immortal 3", "Immortal_3_Rank.png"},
		{"Radiant", "Radiant_Rank.png"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Icon(tc.rank), "rank %q", tc.rank)
	}
}

func TestIcon_familyWithoutTierFallsBackToTierOne(t *testing.T) {
	assert.Equal(t, "Silver_1_Rank.png", Icon("Silver"))
	assert.Equal(t, "Diamond_1_Rank.png", Icon("diamond something"))
}

func TestIcon_noIconStates(t *testing.T) {
	assert.Empty(t, Icon("Unranked"))
	assert.Empty(t, Icon("Unrated"))
	assert.Empty(t, Icon("Fetch Failed"))
	assert.Empty(t, Icon(""))
}

func TestInfo(t *testing.T) {
	info := Info("Gold 2")
	assert.Equal(t, "Gold 2", info.Rank)
	assert.Equal(t, "./icons/Gold_2_Rank.png", info.Icon)
	assert.Equal(t, "#FFD700", info.Color)
}
