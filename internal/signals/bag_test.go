package signals

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/matchodds/internal/models"
)

// TestBuildBagAppliesPayloads tests merging of matching provider payloads
func TestBuildBagAppliesPayloads(t *testing.T) {
	standing := models.Standing{Rank: 3, Played: 10, Points: 20}
	payloads := []Payload{
		{
			Provider: ProviderRatings,
			Team:     "Bayern Munich",
			Rating:   &RatingPayload{Rating: 1910, Source: "elo"},
		},
		{
			Provider: ProviderXG,
			Team:     "FC Bayern München",
			XG:       &XGPayload{SeasonFor: 2.4, SeasonAgainst: 0.9},
		},
	}

	bag := BuildBag(standing, "Bayern Munich", payloads)

	require.NotNil(t, bag.Standing)
	assert.Equal(t, 3, bag.Standing.Rank)
	require.NotNil(t, bag.Rating)
	assert.Equal(t, 1910.0, bag.Rating.Value)
	assert.Equal(t, "elo", bag.Rating.Source)
	require.NotNil(t, bag.XG)
	assert.Equal(t, 2.4, bag.XG.SeasonFor)
}

// TestBuildBagDropsForeignPayloads tests that payloads resolving to a
// different team never merge
func TestBuildBagDropsForeignPayloads(t *testing.T) {
	payloads := []Payload{
		{
			Provider: ProviderRatings,
			Team:     "Borussia Dortmund",
			Rating:   &RatingPayload{Rating: 1850},
		},
	}

	bag := BuildBag(models.Standing{Played: 5}, "Bayern Munich", payloads)
	assert.Nil(t, bag.Rating)
}

// TestBuildBagUnnamedPayloadMerges tests that a payload without a team
// name skips resolution
func TestBuildBagUnnamedPayloadMerges(t *testing.T) {
	payloads := []Payload{
		{
			Provider: ProviderInjuries,
			Squad:    &SquadPayload{Score: 85, KeyAbsences: []string{"keeper"}},
		},
	}

	bag := BuildBag(models.Standing{}, "Arsenal", payloads)
	require.NotNil(t, bag.Squad)
	assert.Equal(t, 85.0, bag.Squad.Score)
	assert.Equal(t, []string{"keeper"}, bag.Squad.KeyAbsences)
}

// TestPayloadApplyIgnoresEmpty tests that a provider tag without its
// payload body is a no-op
func TestPayloadApplyIgnoresEmpty(t *testing.T) {
	bag := BuildBag(models.Standing{}, "Arsenal", []Payload{{Provider: ProviderRatings}})
	assert.Nil(t, bag.Rating)
}

// TestPayloadApplyNewsBoth tests that the news provider can carry both
// context and referee bodies
func TestPayloadApplyNewsBoth(t *testing.T) {
	payloads := []Payload{
		{
			Provider: ProviderNews,
			Context:  &ContextPayload{HomeStakes: "relegation", AwayStakes: "relegation", Derby: true},
			Referee:  &RefereePayload{Name: "M. Oliver", CardsPerMatch: 4.8, Matches: 30},
		},
	}

	bag := BuildBag(models.Standing{}, "Everton", payloads)
	require.NotNil(t, bag.Context)
	assert.Equal(t, models.StakesRelegation, bag.Context.HomeStakes)
	assert.True(t, bag.Context.Derby)
	require.NotNil(t, bag.Referee)
	assert.Equal(t, 4.8, bag.Referee.CardsPerMatch)
}

// TestAttachMatchScope tests mirroring of match-scoped signals onto both
// bags with per-side head-to-head perspectives
func TestAttachMatchScope(t *testing.T) {
	home := BuildBag(models.Standing{Rank: 1}, "Arsenal", nil)
	away := BuildBag(models.Standing{Rank: 9}, "Chelsea", nil)

	odds := &models.MarketOdds{Home: 1.9, Draw: 3.6, Away: 4.2}
	referee := &models.RefereeProfile{Name: "A. Taylor", CardsPerMatch: 3.9, Matches: 25}
	ctx := &models.MatchContext{Derby: true}
	homeH2H := &models.HeadToHead{Wins: 3, Meetings: 6}
	awayH2H := &models.HeadToHead{Losses: 3, Meetings: 6}

	AttachMatchScope(&home, &away, odds, referee, ctx, homeH2H, awayH2H)

	assert.Same(t, odds, home.Odds)
	assert.Same(t, odds, away.Odds)
	assert.Same(t, referee, away.Referee)
	assert.Same(t, ctx, away.Context)
	assert.Same(t, homeH2H, home.H2H)
	assert.Same(t, awayH2H, away.H2H)
}

// TestStaticSource tests registration and lookup
func TestStaticSource(t *testing.T) {
	src := NewStaticSource()
	src.Add("E0", "Arsenal", Payload{Provider: ProviderRatings, Rating: &RatingPayload{Rating: 1900}})

	got := src.TeamPayloads("E0", "Arsenal")
	require.Len(t, got, 1)
	assert.Equal(t, ProviderRatings, got[0].Provider)

	assert.Nil(t, src.TeamPayloads("E0", "Chelsea"))
	assert.Nil(t, src.TeamPayloads("SP1", "Arsenal"))
}

// countingSource wraps StaticSource and counts pass-through fetches.
type countingSource struct {
	inner *StaticSource
	calls int
}

func (c *countingSource) TeamPayloads(leagueCode, teamName string) []Payload {
	c.calls++
	return c.inner.TeamPayloads(leagueCode, teamName)
}

// TestCachedSource tests that repeat lookups inside the TTL hit the cache
func TestCachedSource(t *testing.T) {
	inner := NewStaticSource()
	inner.Add("E0", "Arsenal", Payload{Provider: ProviderRatings, Rating: &RatingPayload{Rating: 1900}})
	counting := &countingSource{inner: inner}

	cached := NewCachedSource(counting, time.Minute)

	first := cached.TeamPayloads("E0", "Arsenal")
	second := cached.TeamPayloads("E0", "Arsenal")
	assert.Equal(t, first, second)
	assert.Equal(t, 1, counting.calls)

	// A different key is its own cache entry.
	cached.TeamPayloads("E0", "Chelsea")
	assert.Equal(t, 2, counting.calls)
}
