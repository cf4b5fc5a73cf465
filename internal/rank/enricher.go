package rank

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"valorant-accounts/internal/constants"
	"valorant-accounts/internal/domain"
)

// Enricher owns the mapping from stable account identity to the latest
// rank result and runs batch refreshes one account at a time so the lookup
// service is never hit with parallel fan-out.
type Enricher struct {
	client *Client
	logger zerolog.Logger

	mu      sync.Mutex
	results map[string]domain.RankInfo
	stop    chan struct{}
	running bool
}

func NewEnricher(client *Client, logger zerolog.Logger) *Enricher {
	return &Enricher{
		client:  client,
		logger:  logger,
		results: make(map[string]domain.RankInfo),
	}
}

func errorInfo() domain.RankInfo {
	return domain.RankInfo{Rank: accountPrivate, Icon: "", Color: colorError}
}

// Refresh fetches the rank for one account and records the result under its
// ID. A cancelled context is recorded as the per-account error state.
func (e *Enricher) Refresh(ctx context.Context, acc domain.Account) domain.RankInfo {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	info, err := e.client.FetchRank(ctx, acc)
	if err != nil {
		e.logger.Warn().Err(err).Str("riot_id", acc.RiotID).Msg("rank refresh interrupted")
		info = errorInfo()
	}

	e.mu.Lock()
	e.results[acc.ID] = info
	e.mu.Unlock()
	return info
}

// StartRefreshAll begins a sequential batch refresh in the background.
// Returns false when a batch is already in flight. onResult is invoked once
// per processed account, in order.
func (e *Enricher) StartRefreshAll(accounts []domain.Account, onResult func(domain.Account, domain.RankInfo)) bool {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return false
	}
	e.running = true
	e.stop = make(chan struct{})
	stop := e.stop
	e.mu.Unlock()

	go func() {
		defer func() {
			e.mu.Lock()
			e.running = false
			e.mu.Unlock()
		}()
		e.runBatch(accounts, stop, onResult)
	}()
	return true
}

// runBatch processes accounts one at a time. The stop signal is honored
// between accounts; a request already in flight is allowed to finish and its
// result kept.
func (e *Enricher) runBatch(accounts []domain.Account, stop <-chan struct{}, onResult func(domain.Account, domain.RankInfo)) {
	for i, acc := range accounts {
		select {
		case <-stop:
			e.logger.Info().Int("processed", i).Int("total", len(accounts)).Msg("batch refresh stopped")
			return
		default:
		}

		info := e.Refresh(context.Background(), acc)
		if onResult != nil {
			onResult(acc, info)
		}
	}
	e.logger.Info().Int("total", len(accounts)).Msg("batch refresh completed")
}

// StopRefreshAll requests a running batch to halt before its next account.
func (e *Enricher) StopRefreshAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running && e.stop != nil {
		select {
		case <-e.stop:
		default:
			close(e.stop)
		}
	}
}

// IsRefreshing reports whether a batch refresh is in flight.
func (e *Enricher) IsRefreshing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Results returns a snapshot of the identity-to-rank mapping.
func (e *Enricher) Results() map[string]domain.RankInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]domain.RankInfo, len(e.results))
	for k, v := range e.results {
		out[k] = v
	}
	return out
}
