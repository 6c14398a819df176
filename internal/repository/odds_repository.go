package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/matchodds/internal/database"
	"github.com/yourusername/matchodds/internal/models"
)

// PostgresOddsRepository implements OddsRepository for PostgreSQL
type PostgresOddsRepository struct {
	db *database.DB
}

// NewPostgresOddsRepository creates a new odds repository
func NewPostgresOddsRepository(db *database.DB) OddsRepository {
	return &PostgresOddsRepository{db: db}
}

const upsertOddsQuery = `
	INSERT INTO match_odds (match_id, home_price, draw_price, away_price, source)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (match_id) DO UPDATE SET
		home_price = EXCLUDED.home_price,
		draw_price = EXCLUDED.draw_price,
		away_price = EXCLUDED.away_price,
		source = EXCLUDED.source,
		updated_at = NOW()
`

// Upsert stores or refreshes the archived closing prices for a match
func (r *PostgresOddsRepository) Upsert(ctx context.Context, matchID uuid.UUID, odds *models.MarketOdds) error {
	_, err := r.db.Exec(ctx, upsertOddsQuery, matchID, odds.Home, odds.Draw, odds.Away, odds.Source)
	if err != nil {
		return fmt.Errorf("failed to upsert odds: %w", err)
	}
	return nil
}

// UpsertWithTx stores or refreshes odds using a provided transaction
func (r *PostgresOddsRepository) UpsertWithTx(ctx context.Context, tx pgx.Tx, matchID uuid.UUID, odds *models.MarketOdds) error {
	_, err := tx.Exec(ctx, upsertOddsQuery, matchID, odds.Home, odds.Draw, odds.Away, odds.Source)
	if err != nil {
		return fmt.Errorf("failed to upsert odds within transaction: %w", err)
	}
	return nil
}

// GetByMatchID retrieves the archived closing prices for a match
func (r *PostgresOddsRepository) GetByMatchID(ctx context.Context, matchID uuid.UUID) (*models.MarketOdds, error) {
	query := `
		SELECT home_price, draw_price, away_price, source
		FROM match_odds WHERE match_id = $1
	`

	odds := &models.MarketOdds{}
	err := r.db.QueryRow(ctx, query, matchID).Scan(&odds.Home, &odds.Draw, &odds.Away, &odds.Source)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get odds: %w", err)
	}

	return odds, nil
}
