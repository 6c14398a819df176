package database

import (
	"context"
	"fmt"

	"github.com/yourusername/matchodds/internal/config"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS matches (
		id UUID PRIMARY KEY,
		league_code TEXT NOT NULL,
		season TEXT NOT NULL,
		match_date TIMESTAMPTZ NOT NULL,
		home_team TEXT NOT NULL,
		away_team TEXT NOT NULL,
		home_key TEXT NOT NULL,
		away_key TEXT NOT NULL,
		home_goals INT NOT NULL DEFAULT -1,
		away_goals INT NOT NULL DEFAULT -1,
		ht_home_goals INT NOT NULL DEFAULT -1,
		ht_away_goals INT NOT NULL DEFAULT -1,
		referee TEXT,
		home_shots_on_target INT,
		away_shots_on_target INT,
		home_yellow_cards INT,
		away_yellow_cards INT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS matches_fixture_idx
		ON matches (league_code, season, home_key, away_key, match_date)`,
	`CREATE INDEX IF NOT EXISTS matches_season_date_idx
		ON matches (league_code, season, match_date)`,
	`CREATE TABLE IF NOT EXISTS match_odds (
		match_id UUID PRIMARY KEY REFERENCES matches(id) ON DELETE CASCADE,
		home_price DOUBLE PRECISION NOT NULL,
		draw_price DOUBLE PRECISION NOT NULL,
		away_price DOUBLE PRECISION NOT NULL,
		source TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Initialize creates a database connection pool and ensures the schema
// exists. Statements are idempotent, so running at every startup is safe.
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	for _, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	return db, nil
}
