package datasource

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const footballDataSourceName = "football-data"

// FootballDataSource fetches season result archives published as CSV by
// football-data.co.uk. One file per league per season; rows are completed
// fixtures with full-time and half-time scores, match statistics and
// closing 1X2 prices from several bookmakers.
type FootballDataSource struct {
	baseURL string
	client  *RateLimitedHTTPClient
	logger  *logrus.Logger
	enabled bool
}

// NewFootballDataSource creates a new football-data.co.uk archive source
func NewFootballDataSource(baseURL string, client *RateLimitedHTTPClient, logger *logrus.Logger) *FootballDataSource {
	if baseURL == "" {
		baseURL = "https://www.football-data.co.uk"
	}
	return &FootballDataSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
		enabled: true,
	}
}

// Name returns the name of the data source
func (s *FootballDataSource) Name() string {
	return footballDataSourceName
}

// IsEnabled returns whether this data source is currently enabled
func (s *FootballDataSource) IsEnabled() bool {
	return s.enabled
}

// FetchSeason downloads and parses one league season's archive file.
func (s *FootballDataSource) FetchSeason(ctx context.Context, leagueCode, season string) ([]MatchData, error) {
	code, err := seasonPathCode(season)
	if err != nil {
		return nil, NewDataSourceError(s.Name(), ErrCodeInvalidData, "bad season", err)
	}

	url := fmt.Sprintf("%s/mmz4281/%s/%s.csv", s.baseURL, code, leagueCode)
	s.logger.WithFields(logrus.Fields{
		"league": leagueCode,
		"season": season,
		"url":    url,
	}).Info("Fetching season archive")

	resp, err := s.client.Get(ctx, url)
	if err != nil {
		return nil, NewDataSourceError(s.Name(), ErrCodeNetworkError, "fetch failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == 404:
		return nil, NewDataSourceError(s.Name(), ErrCodeNotFound,
			fmt.Sprintf("no archive for %s %s", leagueCode, season), ErrNotFound)
	case resp.StatusCode >= 500:
		return nil, NewDataSourceError(s.Name(), ErrCodeServerError,
			fmt.Sprintf("archive host returned %d", resp.StatusCode), ErrServerError)
	case resp.StatusCode != 200:
		return nil, NewDataSourceError(s.Name(), ErrCodeInvalidData,
			fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	rows, err := s.parseCSV(resp.Body, leagueCode, season)
	if err != nil {
		return nil, NewDataSourceError(s.Name(), ErrCodeInvalidData, "parse failed", err)
	}

	s.logger.WithFields(logrus.Fields{
		"league":  leagueCode,
		"season":  season,
		"matches": len(rows),
	}).Info("Parsed season archive")

	return rows, nil
}

// parseCSV reads the archive file. Columns are addressed by header name
// because the archive's layout shifts between seasons; a row missing an
// optional column simply loses that signal.
func (s *FootballDataSource) parseCSV(r io.Reader, leagueCode, season string) ([]MatchData, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // trailing columns vary per season

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"Date", "HomeTeam", "AwayTeam", "FTHG", "FTAG"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("archive missing required column %s", required)
		}
	}

	var matches []MatchData
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record at line %d: %w", line+1, err)
		}
		line++

		field := func(name string) string {
			idx, ok := col[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		if field("HomeTeam") == "" && field("AwayTeam") == "" {
			continue // the archive pads files with blank rows
		}

		m, err := s.parseRow(field, leagueCode, season)
		if err != nil {
			s.logger.WithError(err).WithField("line", line).Warn("Skipping malformed archive row")
			continue
		}
		matches = append(matches, m)
	}

	return matches, nil
}

func (s *FootballDataSource) parseRow(field func(string) string, leagueCode, season string) (MatchData, error) {
	date, err := parseArchiveDate(field("Date"))
	if err != nil {
		return MatchData{}, err
	}

	homeGoals, err := strconv.Atoi(field("FTHG"))
	if err != nil {
		return MatchData{}, fmt.Errorf("bad FTHG: %w", err)
	}
	awayGoals, err := strconv.Atoi(field("FTAG"))
	if err != nil {
		return MatchData{}, fmt.Errorf("bad FTAG: %w", err)
	}

	m := MatchData{
		LeagueCode:        leagueCode,
		Season:            season,
		Date:              date,
		HomeTeam:          field("HomeTeam"),
		AwayTeam:          field("AwayTeam"),
		HomeGoals:         homeGoals,
		AwayGoals:         awayGoals,
		HalfTimeHomeGoals: optionalInt(field("HTHG"), -1),
		HalfTimeAwayGoals: optionalInt(field("HTAG"), -1),
		CreatedAt:         time.Now().UTC(),
	}

	if ref := field("Referee"); ref != "" {
		m.Referee = &ref
	}
	m.HomeShotsOnTarget = optionalIntPtr(field("HST"))
	m.AwayShotsOnTarget = optionalIntPtr(field("AST"))
	m.HomeYellowCards = optionalIntPtr(field("HY"))
	m.AwayYellowCards = optionalIntPtr(field("AY"))

	// Prefer Bet365 closing prices, fall back to the market average
	// columns in older files.
	m.HomePrice, m.DrawPrice, m.AwayPrice = parsePrices(field, "B365H", "B365D", "B365A")
	if !m.HasOdds() {
		m.HomePrice, m.DrawPrice, m.AwayPrice = parsePrices(field, "AvgH", "AvgD", "AvgA")
	}

	return m, nil
}

// parseArchiveDate handles both date layouts the archive has used.
func parseArchiveDate(raw string) (time.Time, error) {
	for _, layout := range []string{"02/01/2006", "02/01/06"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}

func parsePrices(field func(string) string, home, draw, away string) (*decimal.Decimal, *decimal.Decimal, *decimal.Decimal) {
	h := optionalDecimal(field(home))
	d := optionalDecimal(field(draw))
	a := optionalDecimal(field(away))
	if h == nil || d == nil || a == nil {
		return nil, nil, nil
	}
	return h, d, a
}

func optionalDecimal(raw string) *decimal.Decimal {
	if raw == "" {
		return nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil || v.LessThanOrEqual(decimal.NewFromInt(1)) {
		return nil
	}
	return &v
}

func optionalInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func optionalIntPtr(raw string) *int {
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

// seasonPathCode maps "2023/24" to the archive's "2324" path segment.
func seasonPathCode(season string) (string, error) {
	parts := strings.Split(season, "/")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return "", fmt.Errorf("season must look like 2023/24, got %q", season)
	}
	if _, err := strconv.Atoi(parts[0]); err != nil {
		return "", fmt.Errorf("season must look like 2023/24, got %q", season)
	}
	if _, err := strconv.Atoi(parts[1]); err != nil {
		return "", fmt.Errorf("season must look like 2023/24, got %q", season)
	}
	return parts[0][2:] + parts[1], nil
}
