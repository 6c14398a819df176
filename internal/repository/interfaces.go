// Package repository provides PostgreSQL persistence for the match log
// and archived market odds.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/matchodds/internal/models"
)

// MatchRepository defines persistence operations for the match log
type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	CreateWithTx(ctx context.Context, tx pgx.Tx, match *models.Match) error
	Update(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error)
	// GetByFixture finds a match by its natural key, used for deduplication
	// during ingestion.
	GetByFixture(ctx context.Context, leagueCode, season, homeKey, awayKey string, date time.Time) (*models.Match, error)
	// GetSeason returns a league season's matches in chronological order,
	// the contract the standings reconstructor and harness depend on.
	GetSeason(ctx context.Context, leagueCode, season string) ([]*models.Match, error)
	GetByDateRange(ctx context.Context, leagueCode string, start, end time.Time) ([]*models.Match, error)
}

// OddsRepository defines persistence operations for archived closing prices
type OddsRepository interface {
	Upsert(ctx context.Context, matchID uuid.UUID, odds *models.MarketOdds) error
	UpsertWithTx(ctx context.Context, tx pgx.Tx, matchID uuid.UUID, odds *models.MarketOdds) error
	GetByMatchID(ctx context.Context, matchID uuid.UUID) (*models.MarketOdds, error)
}
