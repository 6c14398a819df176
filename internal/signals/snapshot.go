package signals

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/yourusername/matchodds/internal/metrics"
)

// SnapshotSource supplies present-day provider payloads for a team.
// Backtests consume the same interface as live predictions, which is the
// documented optimistic bias: signals without historical snapshots are
// evaluated against today's values.
type SnapshotSource interface {
	TeamPayloads(leagueCode, teamName string) []Payload
}

// StaticSource is an in-memory SnapshotSource keyed by league and
// provider-native team name. Used by tests and by offline snapshot files.
type StaticSource struct {
	payloads map[string][]Payload
}

// NewStaticSource creates an empty static source.
func NewStaticSource() *StaticSource {
	return &StaticSource{payloads: map[string][]Payload{}}
}

// Add registers payloads for a team.
func (s *StaticSource) Add(leagueCode, teamName string, payloads ...Payload) {
	key := leagueCode + "/" + teamName
	s.payloads[key] = append(s.payloads[key], payloads...)
}

// TeamPayloads returns the registered payloads, nil when none exist.
func (s *StaticSource) TeamPayloads(leagueCode, teamName string) []Payload {
	return s.payloads[leagueCode+"/"+teamName]
}

// LoadSnapshotFile reads an offline snapshot file into a StaticSource.
// The file is JSON, keyed league code, then provider-native team name,
// each holding a list of payloads.
func LoadSnapshotFile(path string) (*StaticSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot file: %w", err)
	}

	var leagues map[string]map[string][]Payload
	if err := json.Unmarshal(data, &leagues); err != nil {
		return nil, fmt.Errorf("parsing snapshot file %s: %w", path, err)
	}

	source := NewStaticSource()
	for league, teams := range leagues {
		for team, payloads := range teams {
			source.Add(league, team, payloads...)
		}
	}
	return source, nil
}

// CachedSource wraps a SnapshotSource with a TTL cache. Caching lives
// only at this adapter boundary; the resolver and scoring engine stay
// pure.
type CachedSource struct {
	source SnapshotSource
	cache  *gocache.Cache
}

// NewCachedSource wraps source with the given TTL.
func NewCachedSource(source SnapshotSource, ttl time.Duration) *CachedSource {
	return &CachedSource{
		source: source,
		cache:  gocache.New(ttl, 2*ttl),
	}
}

// TeamPayloads serves from cache when fresh, refetching otherwise.
func (c *CachedSource) TeamPayloads(leagueCode, teamName string) []Payload {
	key := leagueCode + "/" + teamName
	if cached, ok := c.cache.Get(key); ok {
		return cached.([]Payload)
	}
	payloads := c.source.TeamPayloads(leagueCode, teamName)
	c.cache.Set(key, payloads, gocache.DefaultExpiration)
	metrics.SnapshotCacheSize.Set(float64(c.cache.ItemCount()))
	return payloads
}
