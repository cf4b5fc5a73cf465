package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valorant-accounts/internal/config"
	"valorant-accounts/internal/database"
	"valorant-accounts/internal/domain"
	"valorant-accounts/internal/importer"
	"valorant-accounts/internal/rank"
	"valorant-accounts/internal/repository"
	"valorant-accounts/internal/vault"
)

func newTestService(t *testing.T, rankBaseURL string) *AccountService {
	t.Helper()

	cfg := &config.Config{
		DataDir:     t.TempDir(),
		DBPath:      filepath.Join(t.TempDir(), "test.db"),
		RankAPIBase: rankBaseURL,
	}
	logger := zerolog.Nop()

	db, err := database.New(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := vault.NewStore(cfg, logger)
	history := repository.NewRankHistoryRepository(db, logger)
	enricher := rank.NewEnricher(rank.NewClient(cfg, logger), logger)

	return NewAccountService(store, importer.New(logger), enricher, history, logger)
}

func rankStub(t *testing.T, rankText string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(rankText))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestAdd_assignsIDAndDefaults(t *testing.T) {
	svc := newTestService(t, "http://127.0.0.1:1")

	added, err := svc.Add(domain.Account{RiotID: "Player", Region: domain.RegionNA})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, domain.DefaultHashtag, added.Hashtag)
	assert.Equal(t, "Player", added.Username)
	assert.Equal(t, domain.DefaultRank, added.CurrentRank)

	accounts, err := svc.List()
	require.NoError(t, err)
	require.Len(t, accounts, 1)
}

func TestAdd_rejectsMissingRiotIDAndBadRegion(t *testing.T) {
	svc := newTestService(t, "http://127.0.0.1:1")

	_, err := svc.Add(domain.Account{Region: domain.RegionNA})
	assert.Error(t, err)

	_, err = svc.Add(domain.Account{RiotID: "Player", Region: "moon"})
	assert.Error(t, err)
}

func TestUpdateDeleteToggle(t *testing.T) {
	svc := newTestService(t, "http://127.0.0.1:1")

	added, err := svc.Add(domain.Account{RiotID: "Player", Region: domain.RegionNA})
	require.NoError(t, err)

	updated, err := svc.Update(added.ID, domain.Account{RiotID: "Renamed", Hashtag: "9", Region: domain.RegionEU})
	require.NoError(t, err)
	assert.Equal(t, added.ID, updated.ID)
	assert.Equal(t, "Renamed", updated.RiotID)

	toggled, err := svc.ToggleSkins(added.ID)
	require.NoError(t, err)
	assert.True(t, toggled.HasSkins)
	toggled, err = svc.ToggleSkins(added.ID)
	require.NoError(t, err)
	assert.False(t, toggled.HasSkins)

	require.NoError(t, svc.Delete(added.ID))
	accounts, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, accounts)

	_, err = svc.Update("missing", domain.Account{Region: domain.RegionNA})
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.ErrorIs(t, svc.Delete("missing"), ErrAccountNotFound)
}

func TestSearch(t *testing.T) {
	svc := newTestService(t, "http://127.0.0.1:1")

	_, err := svc.Add(domain.Account{RiotID: "AlphaPlayer", Username: "alpha@mail.com", Region: domain.RegionNA})
	require.NoError(t, err)
	_, err = svc.Add(domain.Account{RiotID: "Beta", Username: "beta@mail.com", Region: domain.RegionNA})
	require.NoError(t, err)

	found, err := svc.Search("ALPHA")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "AlphaPlayer", found[0].RiotID)

	found, err = svc.Search("mail.com")
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestImport_mergesCaseInsensitively(t *testing.T) {
	svc := newTestService(t, "http://127.0.0.1:1")

	existing, err := svc.Add(domain.Account{RiotID: "player", Region: domain.RegionNA, Notes: "keep me"})
	require.NoError(t, err)

	csv := "riotId,hashtag,region\nPLAYER,4321,eu\nNewcomer,1,na\n"
	outcome, err := svc.Import([]byte(csv), "import.csv")
	require.NoError(t, err)

	assert.Equal(t, 1, outcome.Merged)
	assert.Equal(t, 1, outcome.Added)
	require.Len(t, outcome.Accounts, 2)

	// The merged record keeps its stable ID and untouched fields.
	merged := outcome.Accounts[0]
	assert.Equal(t, existing.ID, merged.ID)
	assert.Equal(t, "PLAYER", merged.RiotID)
	assert.Equal(t, "4321", merged.Hashtag)
	assert.Equal(t, "keep me", merged.Notes)
}

func TestImport_propagatesTypedErrors(t *testing.T) {
	svc := newTestService(t, "http://127.0.0.1:1")

	_, err := svc.Import([]byte("{broken"), "bad.json")
	var invalid *importer.InvalidFormatError
	assert.ErrorAs(t, err, &invalid)

	_, err = svc.Import([]byte("riotId\n"), "empty.csv")
	var noAccounts *importer.NoAccountsError
	assert.ErrorAs(t, err, &noAccounts)
}

func TestRefresh_overwritesRankAndRecordsHistory(t *testing.T) {
	ts := rankStub(t, "Gold 1")
	svc := newTestService(t, ts.URL)

	added, err := svc.Add(domain.Account{RiotID: "Player", Hashtag: "1", Region: domain.RegionNA, Password: "pw"})
	require.NoError(t, err)

	info, err := svc.Refresh(context.Background(), added.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gold 1", info.Rank)

	accounts, err := svc.List()
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Gold 1", accounts[0].CurrentRank)
	// Refresh touches rank and timestamp only.
	assert.Equal(t, "pw", accounts[0].Password)

	// History is written off the refresh path.
	assert.Eventually(t, func() bool {
		records, err := svc.History(context.Background(), added.ID)
		return err == nil && len(records) == 1
	}, 3*time.Second, 20*time.Millisecond)
}

func TestRefresh_unknownAccount(t *testing.T) {
	svc := newTestService(t, "http://127.0.0.1:1")
	_, err := svc.Refresh(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestRefreshAll_annotatesEveryAccount(t *testing.T) {
	ts := rankStub(t, "Silver 2")
	svc := newTestService(t, ts.URL)

	for _, name := range []string{"One", "Two", "Three"} {
		_, err := svc.Add(domain.Account{RiotID: name, Region: domain.RegionNA})
		require.NoError(t, err)
	}

	started, err := svc.RefreshAll()
	require.NoError(t, err)
	require.True(t, started)

	assert.Eventually(t, func() bool { return !svc.IsRefreshing() }, 5*time.Second, 20*time.Millisecond)

	accounts, err := svc.List()
	require.NoError(t, err)
	for _, acc := range accounts {
		assert.Equal(t, "Silver 2", acc.CurrentRank)
	}
	assert.Len(t, svc.RankResults(), 3)
}

func TestPersistenceAcrossServiceInstances(t *testing.T) {
	cfg := &config.Config{
		DataDir:     t.TempDir(),
		DBPath:      filepath.Join(t.TempDir(), "test.db"),
		RankAPIBase: "http://127.0.0.1:1",
	}
	logger := zerolog.Nop()

	db, err := database.New(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := vault.NewStore(cfg, logger)
	history := repository.NewRankHistoryRepository(db, logger)
	enricher := rank.NewEnricher(rank.NewClient(cfg, logger), logger)

	first := NewAccountService(store, importer.New(logger), enricher, history, logger)
	added, err := first.Add(domain.Account{RiotID: "Durable", Region: domain.RegionKR})
	require.NoError(t, err)

	second := NewAccountService(store, importer.New(logger), enricher, history, logger)
	accounts, err := second.List()
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, added.ID, accounts[0].ID)
	assert.Equal(t, domain.RegionKR, accounts[0].Region)
}
