package datasource

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// CSVFileSource reads a season archive from a local file in the same
// layout football-data.co.uk publishes. Useful for offline calibration
// runs against a downloaded file.
type CSVFileSource struct {
	path   string
	parser *FootballDataSource
}

// NewCSVFileSource creates a source backed by one local archive file
func NewCSVFileSource(path string, logger *logrus.Logger) *CSVFileSource {
	if logger == nil {
		logger = logrus.New()
	}
	return &CSVFileSource{
		path:   path,
		parser: &FootballDataSource{logger: logger, enabled: true},
	}
}

// Name returns the name of the data source
func (s *CSVFileSource) Name() string {
	return "csv-file"
}

// IsEnabled returns whether this data source is currently enabled
func (s *CSVFileSource) IsEnabled() bool {
	return true
}

// FetchSeason parses the local archive file.
func (s *CSVFileSource) FetchSeason(ctx context.Context, leagueCode, season string) ([]MatchData, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, NewDataSourceError(s.Name(), ErrCodeNotFound, fmt.Sprintf("cannot open %s", s.path), err)
	}
	defer f.Close()

	rows, err := s.parser.parseCSV(f, leagueCode, season)
	if err != nil {
		return nil, NewDataSourceError(s.Name(), ErrCodeInvalidData, "parse failed", err)
	}
	return rows, nil
}
