// Package main provides the entry point for the fixture prediction CLI.
package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/matchodds/internal/config"
	"github.com/yourusername/matchodds/internal/database"
	"github.com/yourusername/matchodds/internal/logger"
	"github.com/yourusername/matchodds/internal/models"
	"github.com/yourusername/matchodds/internal/repository"
	"github.com/yourusername/matchodds/internal/resolve"
	"github.com/yourusername/matchodds/internal/scoring"
	"github.com/yourusername/matchodds/internal/signals"
	"github.com/yourusername/matchodds/internal/standings"
)

var (
	configFile string
	leagueCode string
	season     string
	showAll    bool

	appLogger *logrus.Logger
	cfg       *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVarP(&leagueCode, "league", "l", "E0", "League code")
	rootCmd.Flags().StringVarP(&season, "season", "s", "", "Season, e.g. 2023/24 (default: config)")
	rootCmd.Flags().BoolVar(&showAll, "factors", false, "Print the full factor breakdown")
}

var rootCmd = &cobra.Command{
	Use:   "predict HOME_TEAM AWAY_TEAM",
	Short: "Score an upcoming fixture",
	Long:  `Scores a fixture between two teams using the current season's match log and prints the three-way outcome distribution.`,
	Args:  cobra.ExactArgs(2),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := config.Validate(cfg); err != nil {
			return err
		}
		appLogger = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPredict(args[0], args[1])
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runPredict(homeName, awayName string) error {
	league, ok := cfg.League(leagueCode)
	if !ok {
		return fmt.Errorf("unknown league code: %s", leagueCode)
	}
	if season == "" {
		season = cfg.Backtest.Season
	}

	ctx := context.Background()
	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		return err
	}

	matchLog, err := repos.Match.GetSeason(ctx, leagueCode, season)
	if err != nil {
		return fmt.Errorf("failed to load season: %w", err)
	}
	if len(matchLog) == 0 {
		return fmt.Errorf("no matches stored for %s %s, run ingest first", leagueCode, season)
	}

	homeTeam, ok := resolve.Match(homeName, teamNames(matchLog))
	if !ok {
		return fmt.Errorf("no team in %s %s matches %q", leagueCode, season, homeName)
	}
	awayTeam, ok := resolve.Match(awayName, teamNames(matchLog))
	if !ok {
		return fmt.Errorf("no team in %s %s matches %q", leagueCode, season, awayName)
	}

	engine, err := scoring.NewEngine(scoring.Config{
		Weights:    applyOverrides(cfg.Scoring.WeightOverrides),
		DrawRate:   league.DrawRate,
		LeagueSize: league.Teams,
	}, appLogger)
	if err != nil {
		return err
	}

	home, away, err := buildBags(homeTeam, awayTeam, matchLog)
	if err != nil {
		return err
	}

	dist, factors, err := engine.Score(home, away)
	if err != nil {
		return err
	}

	printPrediction(homeTeam, awayTeam, dist, factors)
	return nil
}

// buildBags assembles the signal set for a not-yet-played fixture: the
// full season log is prior history, so reconstruction runs past its end.
func buildBags(homeTeam, awayTeam string, matchLog []*models.Match) (models.SignalBag, models.SignalBag, error) {
	homeKey := resolve.Resolve(homeTeam)
	awayKey := resolve.Resolve(awayTeam)
	end := len(matchLog)

	table := standings.AsOf(end, matchLog)
	homeRow, ok := standings.Lookup(table, homeKey)
	if !ok {
		return models.SignalBag{}, models.SignalBag{}, fmt.Errorf("no standing for %s", homeTeam)
	}
	awayRow, ok := standings.Lookup(table, awayKey)
	if !ok {
		return models.SignalBag{}, models.SignalBag{}, fmt.Errorf("no standing for %s", awayTeam)
	}

	home := signals.BuildBag(homeRow, homeTeam, nil)
	away := signals.BuildBag(awayRow, awayTeam, nil)

	if sos, ok := standings.ScheduleDifficulty(homeKey, end, matchLog); ok {
		home.Schedule = &sos
	}
	if sos, ok := standings.ScheduleDifficulty(awayKey, end, matchLog); ok {
		away.Schedule = &sos
	}

	var homeH2H, awayH2H *models.HeadToHead
	if h2h, ok := standings.HeadToHead(homeKey, awayKey, end, matchLog, cfg.Backtest.HeadToHeadCap); ok {
		homeH2H = &h2h
	}
	if h2h, ok := standings.HeadToHead(awayKey, homeKey, end, matchLog, cfg.Backtest.HeadToHeadCap); ok {
		awayH2H = &h2h
	}

	signals.AttachMatchScope(&home, &away, nil, nil, nil, homeH2H, awayH2H)
	return home, away, nil
}

func teamNames(matchLog []*models.Match) []string {
	seen := map[string]bool{}
	var names []string
	for _, m := range matchLog {
		if !seen[m.HomeTeam] {
			seen[m.HomeTeam] = true
			names = append(names, m.HomeTeam)
		}
		if !seen[m.AwayTeam] {
			seen[m.AwayTeam] = true
			names = append(names, m.AwayTeam)
		}
	}
	return names
}

func applyOverrides(overrides map[string]float64) scoring.Weights {
	weights := scoring.DefaultWeights()
	for name, w := range overrides {
		weights[name] = w
	}
	return weights
}

func printPrediction(homeTeam, awayTeam string, dist models.Distribution, factors []models.Factor) {
	fmt.Printf("%s vs %s\n", homeTeam, awayTeam)
	fmt.Printf("  Home win %d%%  Draw %d%%  Away win %d%%\n", dist.Home, dist.Draw, dist.Away)

	if !showAll {
		return
	}
	fmt.Println()
	fmt.Printf("  %-22s %10s %10s %8s\n", "Factor", "Home", "Away", "Weight")
	fmt.Printf("  %s\n", strings.Repeat("-", 54))
	for _, f := range factors {
		marker := ""
		if f.Missing {
			marker = " (missing)"
		}
		fmt.Printf("  %-22s %10.3f %10.3f %7.1f%%%s\n",
			f.Label, f.HomeScore, f.AwayScore, f.Weight*100, marker)
	}
}
