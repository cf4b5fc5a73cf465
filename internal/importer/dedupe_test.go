package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valorant-accounts/internal/domain"
)

func TestDedupe_firstOccurrenceWins(t *testing.T) {
	in := []domain.Account{
		{RiotID: "Player", Hashtag: "1111"},
		{RiotID: "Other", Hashtag: "2222"},
		{RiotID: "Player", Hashtag: "3333"},
	}

	out := Dedupe(in)
	require.Len(t, out, 2)
	assert.Equal(t, "1111", out[0].Hashtag)
	assert.Equal(t, "Other", out[1].RiotID)
}

func TestDedupe_caseSensitive(t *testing.T) {
	in := []domain.Account{
		{RiotID: "Player"},
		{RiotID: "player"},
	}
	// Batch dedup is exact-match; the application-level merge is the loose one.
	assert.Len(t, Dedupe(in), 2)
}

func TestDedupe_idempotent(t *testing.T) {
	in := []domain.Account{
		{RiotID: "A"}, {RiotID: "B"}, {RiotID: "A"}, {RiotID: "C"}, {RiotID: "B"},
	}
	once := Dedupe(in)
	twice := Dedupe(once)
	assert.Equal(t, once, twice)
}

func TestDedupe_empty(t *testing.T) {
	assert.Empty(t, Dedupe(nil))
}
