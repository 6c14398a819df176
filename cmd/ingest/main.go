// Package main provides the entry point for the archive ingestion service.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/matchodds/internal/config"
	"github.com/yourusername/matchodds/internal/database"
	"github.com/yourusername/matchodds/internal/datasource"
	"github.com/yourusername/matchodds/internal/logger"
	"github.com/yourusername/matchodds/internal/metrics"
	"github.com/yourusername/matchodds/internal/repository"
	"github.com/yourusername/matchodds/internal/scheduler"
	"github.com/yourusername/matchodds/internal/service"
)

var (
	configFile string
	leagueCode string
	season     string

	appLogger    *logrus.Logger
	cfg          *config.Config
	db           *database.DB
	ingestionSvc *service.IngestionService
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config/config.yaml", "Path to configuration file")

	seasonCmd.Flags().StringVarP(&leagueCode, "league", "l", "", "League code (default: all configured leagues)")
	seasonCmd.Flags().StringVarP(&season, "season", "s", "", "Season, e.g. 2023/24 (default: config)")

	rootCmd.AddCommand(seasonCmd)
	rootCmd.AddCommand(daemonCmd)
}

var rootCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest historical match archives",
	Long:  `Fetches season result archives, resolves team names to canonical keys and merges the fixtures into the match database.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
}

var seasonCmd = &cobra.Command{
	Use:   "season",
	Short: "Ingest one season, then exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeason()
	},
}

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run scheduled season syncs until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDaemon()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func setup() error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}
	appLogger = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)

	db, err = database.Initialize(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	repos, err := repository.NewRepositories(db)
	if err != nil {
		return err
	}

	httpClient := datasource.NewRateLimitedHTTPClient(datasource.HTTPClientConfig{
		Timeout:           time.Duration(cfg.DataSource.TimeoutSeconds) * time.Second,
		MaxRetries:        cfg.DataSource.MaxRetries,
		RetryWaitMin:      100 * time.Millisecond,
		RetryWaitMax:      10 * time.Second,
		RateLimit:         cfg.DataSource.RateLimit,
		CircuitBreakerMax: 5,
	}, appLogger)

	archiveSource := datasource.NewFootballDataSource(cfg.DataSource.BaseURL, httpClient, appLogger)
	ingestionSvc = service.NewIngestionService(
		[]datasource.DataSource{archiveSource},
		repos.Match,
		repos.Odds,
		appLogger,
	)

	return nil
}

func runSeason() error {
	if season == "" {
		season = cfg.Backtest.Season
	}

	leagues := make([]string, 0, len(cfg.Leagues))
	if leagueCode != "" {
		if _, ok := cfg.League(leagueCode); !ok {
			return fmt.Errorf("unknown league code: %s", leagueCode)
		}
		leagues = append(leagues, leagueCode)
	} else {
		for _, l := range cfg.Leagues {
			leagues = append(leagues, l.Code)
		}
	}

	ctx := context.Background()
	for _, league := range leagues {
		ingestionMetrics, err := ingestionSvc.IngestSeason(ctx, "football-data", league, season)
		if err != nil {
			return fmt.Errorf("ingestion for %s failed: %w", league, err)
		}
		appLogger.WithFields(logrus.Fields{
			"league":  league,
			"metrics": ingestionMetrics.String(),
		}).Info("Ingestion finished")
	}
	return nil
}

func runDaemon() error {
	if cfg.Schedule.HistoricalSync == "" {
		return fmt.Errorf("schedule.historical_sync is required for daemon mode")
	}

	leagues := make([]string, 0, len(cfg.Leagues))
	for _, l := range cfg.Leagues {
		leagues = append(leagues, l.Code)
	}

	sched := scheduler.NewScheduler(ingestionSvc, appLogger)
	if err := sched.ScheduleSeasonSync(cfg.Schedule.HistoricalSync, "football-data", leagues, cfg.Backtest.Season); err != nil {
		return err
	}
	if err := sched.Start(); err != nil {
		return err
	}

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, metrics.Handler())
		metricsServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler: mux,
		}
		go func() {
			appLogger.WithField("addr", metricsServer.Addr).Info("Metrics server listening")
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				appLogger.WithError(err).Error("Metrics server failed")
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLogger.WithField("signal", sig.String()).Info("Shutting down")

	sched.Stop()
	if metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(ctx); err != nil {
			appLogger.WithError(err).Warn("Metrics server shutdown failed")
		}
	}
	return nil
}
