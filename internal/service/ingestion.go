// Package service contains the ingestion workflow that moves archive
// rows into the persistent match log.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/matchodds/internal/datasource"
	"github.com/yourusername/matchodds/internal/metrics"
	"github.com/yourusername/matchodds/internal/models"
	"github.com/yourusername/matchodds/internal/repository"
	"github.com/yourusername/matchodds/internal/resolve"
)

// IngestionService handles the archive ingestion workflow
type IngestionService struct {
	sources   []datasource.DataSource
	matchRepo repository.MatchRepository
	oddsRepo  repository.OddsRepository
	metrics   *IngestionMetrics
	logger    *logrus.Logger
}

// NewIngestionService creates a new ingestion service
func NewIngestionService(
	sources []datasource.DataSource,
	matchRepo repository.MatchRepository,
	oddsRepo repository.OddsRepository,
	logger *logrus.Logger,
) *IngestionService {
	return &IngestionService{
		sources:   sources,
		matchRepo: matchRepo,
		oddsRepo:  oddsRepo,
		metrics:   NewIngestionMetrics(),
		logger:    logger,
	}
}

// IngestSeason fetches one league season from the named source and merges
// it into the match log. Re-running over the same season is safe: existing
// fixtures are updated in place, never duplicated.
func (s *IngestionService) IngestSeason(ctx context.Context, sourceName, leagueCode, season string) (*IngestionMetrics, error) {
	s.metrics.Reset()
	startTime := time.Now()

	source := s.findSource(sourceName)
	if source == nil {
		return nil, fmt.Errorf("data source not found: %s", sourceName)
	}

	s.logger.WithFields(logrus.Fields{
		"source": sourceName,
		"league": leagueCode,
		"season": season,
	}).Info("Starting season ingestion")

	rows, err := source.FetchSeason(ctx, leagueCode, season)
	if err != nil {
		s.metrics.RecordError()
		metrics.IngestionErrorsTotal.Inc()
		return s.metrics, fmt.Errorf("failed to fetch season: %w", err)
	}
	s.metrics.TotalRows = len(rows)

	for _, row := range rows {
		if err := s.ingestRow(ctx, &row); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"home": row.HomeTeam,
				"away": row.AwayTeam,
				"date": row.Date.Format("2006-01-02"),
			}).Warn("Failed to ingest row")
			s.metrics.RecordError()
			metrics.IngestionErrorsTotal.Inc()
		}
	}

	s.metrics.Duration = time.Since(startTime)
	metrics.LastIngestedMatches.Set(float64(s.metrics.Inserted + s.metrics.Updated))
	s.logger.WithField("metrics", s.metrics.String()).Info("Season ingestion complete")

	return s.metrics, nil
}

func (s *IngestionService) findSource(name string) datasource.DataSource {
	for _, src := range s.sources {
		if src.Name() == name && src.IsEnabled() {
			return src
		}
	}
	return nil
}

func (s *IngestionService) ingestRow(ctx context.Context, row *datasource.MatchData) error {
	if err := validateRow(row); err != nil {
		s.metrics.RecordValidationError()
		return err
	}

	match := RowToMatch(row)

	existing, err := s.matchRepo.GetByFixture(ctx, match.LeagueCode, match.Season, match.HomeKey, match.AwayKey, match.Date)
	switch {
	case err == models.ErrNotFound:
		if err := s.matchRepo.Create(ctx, match); err != nil {
			return err
		}
		s.metrics.RecordInsert()
		metrics.MatchesIngestedTotal.Inc()
	case err != nil:
		return err
	default:
		if existing.Finished() && existing.HomeGoals == match.HomeGoals && existing.AwayGoals == match.AwayGoals {
			s.metrics.RecordDuplicate()
			return nil
		}
		match.ID = existing.ID
		if err := s.matchRepo.Update(ctx, match); err != nil {
			return err
		}
		s.metrics.RecordUpdate()
	}

	if match.Odds != nil {
		if err := s.oddsRepo.Upsert(ctx, match.ID, match.Odds); err != nil {
			return fmt.Errorf("failed to store odds: %w", err)
		}
		s.metrics.RecordOdds()
	}

	return nil
}

// RowToMatch converts one normalized archive row into a match log record,
// resolving both team names to canonical keys. Shared with the offline
// calibration path, which builds a log straight from a CSV file.
func RowToMatch(row *datasource.MatchData) *models.Match {
	m := models.NewMatch()
	m.LeagueCode = row.LeagueCode
	m.Season = row.Season
	m.Date = row.Date
	m.HomeTeam = row.HomeTeam
	m.AwayTeam = row.AwayTeam
	m.HomeKey = resolve.Resolve(row.HomeTeam)
	m.AwayKey = resolve.Resolve(row.AwayTeam)
	m.HomeGoals = row.HomeGoals
	m.AwayGoals = row.AwayGoals
	m.HalfTimeHomeGoals = row.HalfTimeHomeGoals
	m.HalfTimeAwayGoals = row.HalfTimeAwayGoals
	m.Referee = row.Referee
	m.HomeShotsOnTarget = row.HomeShotsOnTarget
	m.AwayShotsOnTarget = row.AwayShotsOnTarget
	m.HomeYellowCards = row.HomeYellowCards
	m.AwayYellowCards = row.AwayYellowCards

	if row.HasOdds() {
		m.Odds = &models.MarketOdds{
			Home:   row.HomePrice.InexactFloat64(),
			Draw:   row.DrawPrice.InexactFloat64(),
			Away:   row.AwayPrice.InexactFloat64(),
			Source: "closing",
		}
	}
	return m
}

// BuildMatchLog converts archive rows into a chronological match log
// without touching storage.
func BuildMatchLog(rows []datasource.MatchData) []*models.Match {
	log := make([]*models.Match, 0, len(rows))
	for i := range rows {
		if validateRow(&rows[i]) != nil {
			continue
		}
		log = append(log, RowToMatch(&rows[i]))
	}
	return log
}

func validateRow(row *datasource.MatchData) error {
	if row.HomeTeam == "" || row.AwayTeam == "" {
		return fmt.Errorf("row missing team names")
	}
	if row.Date.IsZero() {
		return fmt.Errorf("row missing date")
	}
	if row.HomeGoals < -1 || row.AwayGoals < -1 {
		return fmt.Errorf("row has invalid goals %d-%d", row.HomeGoals, row.AwayGoals)
	}
	return nil
}
