package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"valorant-accounts/internal/constants"
	"valorant-accounts/internal/domain"
	"valorant-accounts/internal/importer"
	"valorant-accounts/internal/rank"
	"valorant-accounts/internal/repository"
	"valorant-accounts/internal/vault"
)

var ErrAccountNotFound = errors.New("account not found")

// ImportOutcome reports one bulk import: how many records were merged into
// existing accounts versus appended as new ones.
type ImportOutcome struct {
	Accounts []domain.Account
	Message  string
	Merged   int
	Added    int
}

// AccountService owns the decrypted account list and every mutation of it.
// All mutations write through to the encrypted store.
type AccountService struct {
	store    *vault.Store
	importer *importer.Importer
	enricher *rank.Enricher
	history  *repository.RankHistoryRepository
	logger   zerolog.Logger

	mu       sync.Mutex
	accounts []domain.Account
	loaded   bool
}

func NewAccountService(
	store *vault.Store,
	imp *importer.Importer,
	enricher *rank.Enricher,
	history *repository.RankHistoryRepository,
	logger zerolog.Logger,
) *AccountService {
	return &AccountService{
		store:    store,
		importer: imp,
		enricher: enricher,
		history:  history,
		logger:   logger,
	}
}

// ensureLoaded lazily decrypts the account list. Callers must hold mu.
func (s *AccountService) ensureLoaded() error {
	if s.loaded {
		return nil
	}
	accounts, err := s.store.LoadAccounts()
	if err != nil {
		return err
	}
	s.accounts = accounts
	s.loaded = true
	return nil
}

func (s *AccountService) snapshot() []domain.Account {
	out := make([]domain.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// List returns all accounts.
func (s *AccountService) List() ([]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	return s.snapshot(), nil
}

// Search filters accounts on a case-insensitive substring of the riot ID or
// username.
func (s *AccountService) Search(term string) ([]domain.Account, error) {
	accounts, err := s.List()
	if err != nil {
		return nil, err
	}
	if term == "" {
		return accounts, nil
	}

	lower := strings.ToLower(term)
	var out []domain.Account
	for _, acc := range accounts {
		if strings.Contains(strings.ToLower(acc.RiotID), lower) ||
			strings.Contains(strings.ToLower(acc.Username), lower) {
			out = append(out, acc)
		}
	}
	return out, nil
}

// Add appends one manually entered account, assigning its stable ID.
func (s *AccountService) Add(acc domain.Account) (*domain.Account, error) {
	if acc.RiotID == "" {
		return nil, fmt.Errorf("riotId is required")
	}
	if acc.Hashtag == "" {
		acc.Hashtag = domain.DefaultHashtag
	}
	if acc.Username == "" {
		acc.Username = acc.RiotID
	}
	if acc.CurrentRank == "" {
		acc.CurrentRank = domain.DefaultRank
	}
	if !domain.IsValidRegion(string(acc.Region)) {
		return nil, fmt.Errorf("invalid region %q", acc.Region)
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate account id: %w", err)
	}
	acc.ID = id
	acc.LastRefreshed = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	s.accounts = append(s.accounts, acc)
	if err := s.store.SaveAccounts(s.accounts); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", acc.ID).Str("riot_id", acc.RiotID).Msg("account added")
	return &acc, nil
}

// Update replaces an account in place. The ID is never reassigned.
func (s *AccountService) Update(id string, acc domain.Account) (*domain.Account, error) {
	if !domain.IsValidRegion(string(acc.Region)) {
		return nil, fmt.Errorf("invalid region %q", acc.Region)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	for i := range s.accounts {
		if s.accounts[i].ID != id {
			continue
		}
		acc.ID = id
		s.accounts[i] = acc
		if err := s.store.SaveAccounts(s.accounts); err != nil {
			return nil, err
		}
		s.logger.Info().Str("id", id).Msg("account updated")
		return &acc, nil
	}
	return nil, ErrAccountNotFound
}

// Delete removes an account.
func (s *AccountService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return err
	}

	for i := range s.accounts {
		if s.accounts[i].ID != id {
			continue
		}
		s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
		if err := s.store.SaveAccounts(s.accounts); err != nil {
			return err
		}
		s.logger.Info().Str("id", id).Msg("account deleted")
		return nil
	}
	return ErrAccountNotFound
}

// ToggleSkins flips the hasSkins flag.
func (s *AccountService) ToggleSkins(id string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	for i := range s.accounts {
		if s.accounts[i].ID != id {
			continue
		}
		s.accounts[i].HasSkins = !s.accounts[i].HasSkins
		if err := s.store.SaveAccounts(s.accounts); err != nil {
			return nil, err
		}
		acc := s.accounts[i]
		return &acc, nil
	}
	return nil, ErrAccountNotFound
}

// Import extracts accounts from a file and merges them into the existing
// set. Merging is case-insensitive on username OR riot ID; this is looser
// than the batch deduplicator's case-sensitive riot ID rule, and the two
// rules are kept distinct deliberately.
func (s *AccountService) Import(data []byte, filename string) (*ImportOutcome, error) {
	result, err := s.importer.Extract(data, filename)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	outcome := &ImportOutcome{Message: result.Message}
	now := time.Now()

	for _, imported := range result.Accounts {
		idx := s.findMergeTarget(imported)
		if idx >= 0 {
			existing := &s.accounts[idx]
			existing.RiotID = imported.RiotID
			existing.Hashtag = imported.Hashtag
			existing.Username = imported.Username
			if imported.Password != "" {
				existing.Password = imported.Password
			}
			existing.Region = imported.Region
			existing.HasSkins = imported.HasSkins
			existing.CurrentRank = imported.CurrentRank
			outcome.Merged++
			continue
		}

		id, err := gonanoid.New()
		if err != nil {
			return nil, fmt.Errorf("failed to generate account id: %w", err)
		}
		imported.ID = id
		imported.LastRefreshed = now
		s.accounts = append(s.accounts, imported)
		outcome.Added++
	}

	if err := s.store.SaveAccounts(s.accounts); err != nil {
		return nil, err
	}

	outcome.Accounts = s.snapshot()
	s.logger.Info().
		Str("filename", filename).
		Int("merged", outcome.Merged).
		Int("added", outcome.Added).
		Msg("import completed")
	return outcome, nil
}

// findMergeTarget locates an existing account matching the imported one by
// case-insensitive username or riot ID. Callers must hold mu.
func (s *AccountService) findMergeTarget(imported domain.Account) int {
	for i, existing := range s.accounts {
		if strings.EqualFold(existing.Username, imported.Username) ||
			strings.EqualFold(existing.RiotID, imported.RiotID) {
			return i
		}
	}
	return -1
}

// Refresh fetches the rank for a single account and overwrites its
// currentRank and lastRefreshed fields only.
func (s *AccountService) Refresh(ctx context.Context, id string) (*domain.RankInfo, error) {
	s.mu.Lock()
	if err := s.ensureLoaded(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	var target *domain.Account
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			acc := s.accounts[i]
			target = &acc
			break
		}
	}
	s.mu.Unlock()

	if target == nil {
		return nil, ErrAccountNotFound
	}

	info := s.enricher.Refresh(ctx, *target)
	s.applyRankResult(*target, info)
	return &info, nil
}

// RefreshAll starts a background batch refresh over the current account
// list. Returns false when one is already running.
func (s *AccountService) RefreshAll() (bool, error) {
	accounts, err := s.List()
	if err != nil {
		return false, err
	}
	started := s.enricher.StartRefreshAll(accounts, s.applyRankResult)
	if !started {
		s.logger.Debug().Msg("batch refresh already in flight")
	}
	return started, nil
}

// StopRefreshAll halts a running batch before its next account. Results
// already obtained remain valid.
func (s *AccountService) StopRefreshAll() {
	s.enricher.StopRefreshAll()
}

func (s *AccountService) IsRefreshing() bool {
	return s.enricher.IsRefreshing()
}

// RankResults exposes the enricher's identity-to-rank mapping.
func (s *AccountService) RankResults() map[string]domain.RankInfo {
	return s.enricher.Results()
}

// applyRankResult writes one enrichment result back to the account list and
// records it in the history store off the refresh path.
func (s *AccountService) applyRankResult(acc domain.Account, info domain.RankInfo) {
	now := time.Now()

	s.mu.Lock()
	for i := range s.accounts {
		if s.accounts[i].ID != acc.ID {
			continue
		}
		s.accounts[i].CurrentRank = info.Rank
		s.accounts[i].LastRefreshed = now
		break
	}
	if err := s.store.SaveAccounts(s.accounts); err != nil {
		s.logger.Error().Err(err).Str("id", acc.ID).Msg("failed to persist rank result")
	}
	s.mu.Unlock()

	record := domain.RankHistory{
		AccountID: acc.ID,
		RiotID:    acc.RiotID,
		Rank:      info.Rank,
		FetchedAt: now,
	}

	g := new(errgroup.Group)
	g.Go(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), constants.DatabaseTimeout)
		defer cancel()
		return s.history.InsertBatch(ctx, []domain.RankHistory{record})
	})
	go func() {
		if err := g.Wait(); err != nil {
			s.logger.Warn().Err(err).Str("id", acc.ID).Msg("failed to record rank history")
		}
	}()
}

// History returns the recorded rank results for one account, newest first.
func (s *AccountService) History(ctx context.Context, id string) ([]domain.RankHistory, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.history.GetByAccountID(ctx, id, constants.RankHistoryLimit)
}
