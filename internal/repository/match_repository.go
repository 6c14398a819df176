package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/matchodds/internal/database"
	"github.com/yourusername/matchodds/internal/models"
)

const errScanMatch = "failed to scan match: %w"

const matchColumns = `id, league_code, season, match_date, home_team, away_team,
       home_key, away_key, home_goals, away_goals, ht_home_goals, ht_away_goals,
       referee, home_shots_on_target, away_shots_on_target,
       home_yellow_cards, away_yellow_cards, created_at, updated_at`

// PostgresMatchRepository implements MatchRepository for PostgreSQL
type PostgresMatchRepository struct {
	db *database.DB
}

// NewPostgresMatchRepository creates a new match repository
func NewPostgresMatchRepository(db *database.DB) MatchRepository {
	return &PostgresMatchRepository{db: db}
}

// Create inserts a new match
func (r *PostgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (id, league_code, season, match_date, home_team, away_team,
			home_key, away_key, home_goals, away_goals, ht_home_goals, ht_away_goals,
			referee, home_shots_on_target, away_shots_on_target, home_yellow_cards, away_yellow_cards)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.db.Exec(ctx, query,
		match.ID, match.LeagueCode, match.Season, match.Date, match.HomeTeam, match.AwayTeam,
		match.HomeKey, match.AwayKey, match.HomeGoals, match.AwayGoals,
		match.HalfTimeHomeGoals, match.HalfTimeAwayGoals, match.Referee,
		match.HomeShotsOnTarget, match.AwayShotsOnTarget, match.HomeYellowCards, match.AwayYellowCards,
	)
	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}

	return nil
}

// CreateWithTx inserts a new match using a provided transaction
func (r *PostgresMatchRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, match *models.Match) error {
	query := `
		INSERT INTO matches (id, league_code, season, match_date, home_team, away_team,
			home_key, away_key, home_goals, away_goals, ht_home_goals, ht_away_goals,
			referee, home_shots_on_target, away_shots_on_target, home_yellow_cards, away_yellow_cards)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := tx.Exec(ctx, query,
		match.ID, match.LeagueCode, match.Season, match.Date, match.HomeTeam, match.AwayTeam,
		match.HomeKey, match.AwayKey, match.HomeGoals, match.AwayGoals,
		match.HalfTimeHomeGoals, match.HalfTimeAwayGoals, match.Referee,
		match.HomeShotsOnTarget, match.AwayShotsOnTarget, match.HomeYellowCards, match.AwayYellowCards,
	)
	if err != nil {
		return fmt.Errorf("failed to create match within transaction: %w", err)
	}

	return nil
}

// Update updates the result fields of an existing match
func (r *PostgresMatchRepository) Update(ctx context.Context, match *models.Match) error {
	query := `
		UPDATE matches SET
			home_goals = $2, away_goals = $3, ht_home_goals = $4, ht_away_goals = $5,
			referee = $6, home_shots_on_target = $7, away_shots_on_target = $8,
			home_yellow_cards = $9, away_yellow_cards = $10, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := r.db.Exec(ctx, query,
		match.ID, match.HomeGoals, match.AwayGoals,
		match.HalfTimeHomeGoals, match.HalfTimeAwayGoals, match.Referee,
		match.HomeShotsOnTarget, match.AwayShotsOnTarget, match.HomeYellowCards, match.AwayYellowCards,
	)
	if err != nil {
		return fmt.Errorf("failed to update match: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// GetByID retrieves a match by ID
func (r *PostgresMatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	query := fmt.Sprintf("SELECT %s FROM matches WHERE id = $1", matchColumns)

	match := &models.Match{}
	err := scanMatch(r.db.QueryRow(ctx, query, id), match)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	return match, nil
}

// GetByFixture finds a match by league, season, resolved team keys and
// kickoff date (same calendar day).
func (r *PostgresMatchRepository) GetByFixture(ctx context.Context, leagueCode, season, homeKey, awayKey string, date time.Time) (*models.Match, error) {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	query := fmt.Sprintf(`
		SELECT %s FROM matches
		WHERE league_code = $1 AND season = $2 AND home_key = $3 AND away_key = $4
		  AND match_date >= $5 AND match_date < $6
	`, matchColumns)

	match := &models.Match{}
	err := scanMatch(r.db.QueryRow(ctx, query, leagueCode, season, homeKey, awayKey, startOfDay, endOfDay), match)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match by fixture: %w", err)
	}

	return match, nil
}

// GetSeason retrieves all of a league season's matches in chronological order
func (r *PostgresMatchRepository) GetSeason(ctx context.Context, leagueCode, season string) ([]*models.Match, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM matches
		WHERE league_code = $1 AND season = $2
		ORDER BY match_date ASC, id ASC
	`, matchColumns)

	rows, err := r.db.Query(ctx, query, leagueCode, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query season matches: %w", err)
	}
	defer rows.Close()

	return collectMatches(rows)
}

// GetByDateRange retrieves a league's matches within a date range
func (r *PostgresMatchRepository) GetByDateRange(ctx context.Context, leagueCode string, start, end time.Time) ([]*models.Match, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM matches
		WHERE league_code = $1 AND match_date >= $2 AND match_date <= $3
		ORDER BY match_date ASC, id ASC
	`, matchColumns)

	rows, err := r.db.Query(ctx, query, leagueCode, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches by date range: %w", err)
	}
	defer rows.Close()

	return collectMatches(rows)
}

func collectMatches(rows pgx.Rows) ([]*models.Match, error) {
	var matches []*models.Match
	for rows.Next() {
		match := &models.Match{}
		if err := scanMatch(rows, match); err != nil {
			return nil, fmt.Errorf(errScanMatch, err)
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

func scanMatch(row pgx.Row, m *models.Match) error {
	return row.Scan(
		&m.ID, &m.LeagueCode, &m.Season, &m.Date, &m.HomeTeam, &m.AwayTeam,
		&m.HomeKey, &m.AwayKey, &m.HomeGoals, &m.AwayGoals,
		&m.HalfTimeHomeGoals, &m.HalfTimeAwayGoals, &m.Referee,
		&m.HomeShotsOnTarget, &m.AwayShotsOnTarget, &m.HomeYellowCards, &m.AwayYellowCards,
		&m.CreatedAt, &m.UpdatedAt,
	)
}
