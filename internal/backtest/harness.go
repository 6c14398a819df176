// Package backtest replays a season's match log through the standings
// reconstructor and scoring engine with the true result held out, then
// measures whether the produced probabilities are honest.
package backtest

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/matchodds/internal/metrics"
	"github.com/yourusername/matchodds/internal/models"
	"github.com/yourusername/matchodds/internal/scoring"
	"github.com/yourusername/matchodds/internal/signals"
	"github.com/yourusername/matchodds/internal/standings"
)

// Config parametrizes one harness run.
type Config struct {
	LeagueCode string
	Season     string
	// MinPriorMatches is the minimum number of prior appearances both
	// sides need before a fixture is evaluated; earlier fixtures are
	// skipped, not errored, to avoid degenerate early-season standings.
	// Zero evaluates every finished fixture; negative selects the default.
	MinPriorMatches int
	// HeadToHeadCap bounds the prior-meetings tally.
	HeadToHeadCap int
}

// Result is the outcome of one harness run.
type Result struct {
	Config    Config
	Records   []models.OutcomeRecord
	Evaluated int
	Skipped   int
	Metrics   Metrics
	// PresentDayBias is the preserved, documented limitation: ratings
	// and expected-goals snapshots are today's values, not point-in-time.
	PresentDayBias bool
}

// Harness drives the replay. Iterations are independent, but the log is
// processed chronologically so reconstruction only ever sees strictly
// prior matches.
type Harness struct {
	cfg       Config
	engine    *scoring.Engine
	snapshots signals.SnapshotSource
	logger    *logrus.Logger
}

// NewHarness creates a harness. snapshots may be nil, in which case only
// signals derivable from the match log itself (standings, form, schedule
// difficulty, head-to-head, archived odds) feed the engine.
func NewHarness(cfg Config, engine *scoring.Engine, snapshots signals.SnapshotSource, logger *logrus.Logger) (*Harness, error) {
	if engine == nil {
		return nil, fmt.Errorf("scoring engine is required")
	}
	if cfg.MinPriorMatches < 0 {
		cfg.MinPriorMatches = 5
	}
	if cfg.HeadToHeadCap <= 0 {
		cfg.HeadToHeadCap = standings.DefaultHeadToHeadCap
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Harness{cfg: cfg, engine: engine, snapshots: snapshots, logger: logger}, nil
}

// Run replays the chronological match log, scoring every finished fixture
// whose sides both satisfy the prior-appearance threshold.
func (h *Harness) Run(log []*models.Match) (*Result, error) {
	if len(log) == 0 {
		return nil, fmt.Errorf("match log is empty")
	}

	result := &Result{Config: h.cfg, PresentDayBias: h.snapshots != nil}

	for i, m := range log {
		if !m.Finished() {
			continue
		}
		if standings.PriorAppearances(m.HomeKey, i, log) < h.cfg.MinPriorMatches ||
			standings.PriorAppearances(m.AwayKey, i, log) < h.cfg.MinPriorMatches {
			result.Skipped++
			metrics.BacktestFixturesSkipped.Inc()
			continue
		}

		home, away := h.buildBags(i, m, log)
		dist, _, err := h.engine.Score(home, away)
		if err != nil {
			return nil, fmt.Errorf("scoring fixture %d (%s vs %s): %w", i, m.HomeTeam, m.AwayTeam, err)
		}

		result.Records = append(result.Records, models.OutcomeRecord{
			MatchIndex: i,
			Date:       m.Date,
			HomeTeam:   m.HomeTeam,
			AwayTeam:   m.AwayTeam,
			Dist:       dist,
			Predicted:  dist.Predicted(),
			Actual:     m.Result(),
		})
		result.Evaluated++
		metrics.BacktestFixturesEvaluated.Inc()
	}

	if result.Evaluated == 0 {
		return nil, fmt.Errorf("no fixtures evaluated: log has %d matches, threshold %d", len(log), h.cfg.MinPriorMatches)
	}

	result.Metrics = Compute(result.Records)
	h.logger.WithFields(logrus.Fields{
		"league":    h.cfg.LeagueCode,
		"season":    h.cfg.Season,
		"evaluated": result.Evaluated,
		"skipped":   result.Skipped,
	}).Info("Replay complete")
	return result, nil
}

// buildBags reconstructs the point-in-time signal set for fixture i.
// Standings, form, schedule difficulty and head-to-head are truly
// point-in-time; snapshot payloads are present-day (the documented bias);
// archived odds on the match record are the closing prices.
func (h *Harness) buildBags(i int, m *models.Match, log []*models.Match) (models.SignalBag, models.SignalBag) {
	table := standings.AsOf(i, log)
	homeRow, ok := standings.Lookup(table, m.HomeKey)
	if !ok {
		// First appearance: a zero record, ranked nowhere.
		homeRow = models.Standing{TeamKey: m.HomeKey, Team: m.HomeTeam}
	}
	awayRow, ok := standings.Lookup(table, m.AwayKey)
	if !ok {
		awayRow = models.Standing{TeamKey: m.AwayKey, Team: m.AwayTeam}
	}

	var homePayloads, awayPayloads []signals.Payload
	if h.snapshots != nil {
		homePayloads = h.snapshots.TeamPayloads(h.cfg.LeagueCode, m.HomeTeam)
		awayPayloads = h.snapshots.TeamPayloads(h.cfg.LeagueCode, m.AwayTeam)
	}

	home := signals.BuildBag(homeRow, m.HomeTeam, homePayloads)
	away := signals.BuildBag(awayRow, m.AwayTeam, awayPayloads)

	if sos, ok := standings.ScheduleDifficulty(m.HomeKey, i, log); ok {
		home.Schedule = &sos
	}
	if sos, ok := standings.ScheduleDifficulty(m.AwayKey, i, log); ok {
		away.Schedule = &sos
	}

	var homeH2H, awayH2H *models.HeadToHead
	if h2h, ok := standings.HeadToHead(m.HomeKey, m.AwayKey, i, log, h.cfg.HeadToHeadCap); ok {
		homeH2H = &h2h
	}
	if h2h, ok := standings.HeadToHead(m.AwayKey, m.HomeKey, i, log, h.cfg.HeadToHeadCap); ok {
		awayH2H = &h2h
	}

	signals.AttachMatchScope(&home, &away, m.Odds, home.Referee, home.Context, homeH2H, awayH2H)
	return home, away
}
