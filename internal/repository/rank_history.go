package repository

import (
	"context"
	"database/sql"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"valorant-accounts/internal/domain"
)

type RankHistoryRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewRankHistoryRepository(sqlDB *sql.DB, logger zerolog.Logger) *RankHistoryRepository {
	return &RankHistoryRepository{
		db:     sqlDB,
		logger: logger,
	}
}

func (r *RankHistoryRepository) InsertBatch(ctx context.Context, records []domain.RankHistory) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO rank_history (id, account_id, riot_id, rank, fetched_at)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		id := record.ID
		if id == "" {
			id, err = gonanoid.New()
			if err != nil {
				return fmt.Errorf("failed to generate nanoid: %w", err)
			}
		}

		if _, err := stmt.ExecContext(ctx, id, record.AccountID, record.RiotID, record.Rank, record.FetchedAt); err != nil {
			return fmt.Errorf("failed to insert rank history: %w", err)
		}
	}

	return tx.Commit()
}

func (r *RankHistoryRepository) GetByAccountID(ctx context.Context, accountID string, limit int) ([]domain.RankHistory, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, account_id, riot_id, rank, fetched_at, created_at
		FROM rank_history
		WHERE account_id = ?
		ORDER BY fetched_at DESC
		LIMIT ?`, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query rank history: %w", err)
	}
	defer rows.Close()

	var records []domain.RankHistory
	for rows.Next() {
		var rec domain.RankHistory
		if err := rows.Scan(&rec.ID, &rec.AccountID, &rec.RiotID, &rec.Rank, &rec.FetchedAt, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rank history: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
