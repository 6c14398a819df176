// Package main provides the entry point for the calibration CLI tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/matchodds/internal/backtest"
	"github.com/yourusername/matchodds/internal/config"
	"github.com/yourusername/matchodds/internal/database"
	"github.com/yourusername/matchodds/internal/datasource"
	"github.com/yourusername/matchodds/internal/logger"
	"github.com/yourusername/matchodds/internal/models"
	"github.com/yourusername/matchodds/internal/repository"
	"github.com/yourusername/matchodds/internal/scoring"
	"github.com/yourusername/matchodds/internal/service"
	"github.com/yourusername/matchodds/internal/signals"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		season     = flag.String("season", "", "Season to replay, e.g. 2023/24 (default: config)")
		minPrior   = flag.Int("min-prior", 0, "Minimum prior appearances per side (default: config)")
		h2hCap     = flag.Int("h2h-cap", 0, "Head-to-head lookback cap (default: config)")
		csvPath    = flag.String("csv", "", "Replay a local archive CSV instead of the database")
		snapshots  = flag.String("snapshots", "", "Present-day provider snapshot file (JSON); adds rating/xG/squad signals")
		output     = flag.String("output", "", "Write the full result as JSON (default: config backtest.output_path)")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: backtest [flags] LEAGUE_CODE\n")
		flag.PrintDefaults()
		os.Exit(2)
	}
	leagueCode := flag.Arg(0)

	cfg := loadConfig(*configPath)
	log := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)

	league, ok := cfg.League(leagueCode)
	if !ok {
		log.Fatalf("Unknown league code: %s", leagueCode)
	}

	btCfg := backtest.Config{
		LeagueCode:      leagueCode,
		Season:          cfg.Backtest.Season,
		MinPriorMatches: cfg.Backtest.MinPriorMatches,
		HeadToHeadCap:   cfg.Backtest.HeadToHeadCap,
	}
	if *season != "" {
		btCfg.Season = *season
	}
	if *minPrior > 0 {
		btCfg.MinPriorMatches = *minPrior
	}
	if *h2hCap > 0 {
		btCfg.HeadToHeadCap = *h2hCap
	}

	engine, err := scoring.NewEngine(scoring.Config{
		Weights:    applyOverrides(cfg.Scoring.WeightOverrides),
		DrawRate:   league.DrawRate,
		LeagueSize: league.Teams,
	}, log)
	if err != nil {
		log.Fatalf("Failed to create scoring engine: %v", err)
	}

	ctx := context.Background()
	matchLog := loadMatchLog(ctx, cfg, btCfg, *csvPath, log)
	snapshotSource := loadSnapshots(*snapshots, cfg, log)

	harness, err := backtest.NewHarness(btCfg, engine, snapshotSource, log)
	if err != nil {
		log.Fatalf("Failed to create harness: %v", err)
	}

	result, err := harness.Run(matchLog)
	if err != nil {
		log.Fatalf("Calibration run failed: %v", err)
	}

	fmt.Print(backtest.GenerateConsoleReport(result))

	outputPath := cfg.Backtest.OutputPath
	if *output != "" {
		outputPath = *output
	}
	if outputPath != "" {
		if err := backtest.ExportToJSON(result, outputPath); err != nil {
			log.Fatalf("Failed to export result: %v", err)
		}
		log.WithField("path", outputPath).Info("Result exported")
	}
}

func loadConfig(path string) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			fmt.Fprintln(os.Stderr, "AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
			os.Exit(1)
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load secrets: %v\n", err)
			os.Exit(1)
		}
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func applyOverrides(overrides map[string]float64) scoring.Weights {
	weights := scoring.DefaultWeights()
	for name, w := range overrides {
		weights[name] = w
	}
	return weights
}

// loadSnapshots wires an optional offline snapshot file behind the TTL
// cache. The returned source is nil when no file is given, leaving the
// harness on log-derived signals only.
func loadSnapshots(path string, cfg *config.Config, log *logrus.Logger) signals.SnapshotSource {
	if path == "" {
		return nil
	}
	source, err := signals.LoadSnapshotFile(path)
	if err != nil {
		log.Fatalf("Failed to load snapshot file: %v", err)
	}
	ttl := time.Duration(cfg.DataSource.CacheTTLSeconds) * time.Second
	return signals.NewCachedSource(source, ttl)
}

// loadMatchLog reads the season's chronological log either from a local
// archive file or from the match database.
func loadMatchLog(ctx context.Context, cfg *config.Config, btCfg backtest.Config, csvPath string, log *logrus.Logger) []*models.Match {
	if csvPath != "" {
		source := datasource.NewCSVFileSource(csvPath, log)
		rows, err := source.FetchSeason(ctx, btCfg.LeagueCode, btCfg.Season)
		if err != nil {
			log.Fatalf("Failed to read archive file: %v", err)
		}
		return service.BuildMatchLog(rows)
	}

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	matchLog, err := repos.Match.GetSeason(ctx, btCfg.LeagueCode, btCfg.Season)
	if err != nil {
		log.Fatalf("Failed to load season: %v", err)
	}
	attachArchivedOdds(ctx, repos, matchLog, log)
	return matchLog
}

func attachArchivedOdds(ctx context.Context, repos *repository.Repositories, matchLog []*models.Match, log *logrus.Logger) {
	for _, m := range matchLog {
		odds, err := repos.Odds.GetByMatchID(ctx, m.ID)
		if err == models.ErrNotFound {
			continue
		}
		if err != nil {
			log.WithError(err).WithField("match", m.ID).Warn("Failed to load archived odds")
			continue
		}
		m.Odds = odds
	}
}
