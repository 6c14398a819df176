package standings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/matchodds/internal/models"
)

func fixture(day int, homeKey, awayKey string, homeGoals, awayGoals int) *models.Match {
	m := models.NewMatch()
	m.Date = time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC).AddDate(0, 0, day)
	m.HomeTeam, m.AwayTeam = homeKey, awayKey
	m.HomeKey, m.AwayKey = homeKey, awayKey
	m.HomeGoals, m.AwayGoals = homeGoals, awayGoals
	return m
}

func testLog() []*models.Match {
	return []*models.Match{
		fixture(0, "alpha", "beta", 2, 0),
		fixture(1, "gamma", "alpha", 1, 1),
		fixture(2, "beta", "gamma", 0, 3),
		fixture(3, "alpha", "gamma", 1, 0),
		fixture(4, "beta", "alpha", 2, 2),
		fixture(5, "gamma", "beta", 1, 2),
	}
}

// TestAsOfExcludesCurrentMatch tests that reconstruction sees only
// strictly prior matches
func TestAsOfExcludesCurrentMatch(t *testing.T) {
	log := testLog()

	table := AsOf(0, log)
	assert.Empty(t, table)

	table = AsOf(1, log)
	require.Len(t, table, 2)
	alpha, ok := Lookup(table, "alpha")
	require.True(t, ok)
	assert.Equal(t, 1, alpha.Played)
	assert.Equal(t, 3, alpha.Points)
}

// TestAsOfDeterministic tests that repeated reconstruction is identical
func TestAsOfDeterministic(t *testing.T) {
	log := testLog()
	first := AsOf(len(log), log)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, AsOf(len(log), log))
	}
}

// TestAsOfAccumulation tests that table i+1 differs from table i by
// exactly the result of match i
func TestAsOfAccumulation(t *testing.T) {
	log := testLog()

	for i := 0; i < len(log); i++ {
		before := AsOf(i, log)
		after := AsOf(i+1, log)

		playedBefore := 0
		for _, s := range before {
			playedBefore += s.Played
		}
		playedAfter := 0
		for _, s := range after {
			playedAfter += s.Played
		}
		assert.Equal(t, playedBefore+2, playedAfter, "match %d", i)
	}
}

// TestAsOfFullTable tests points, goal difference and ranks after a full
// double round-robin
func TestAsOfFullTable(t *testing.T) {
	log := testLog()
	table := AsOf(len(log), log)
	require.Len(t, table, 3)

	// alpha: W D W D = 8 pts, gamma: D L W L = 4, beta: L L D W = 4.
	alpha, _ := Lookup(table, "alpha")
	assert.Equal(t, 8, alpha.Points)
	assert.Equal(t, 1, alpha.Rank)

	// beta and gamma are level on points; gamma's goal difference
	// (5-4=+1) beats beta's (4-8=-4).
	gamma, _ := Lookup(table, "gamma")
	beta, _ := Lookup(table, "beta")
	assert.Equal(t, 4, gamma.Points)
	assert.Equal(t, 4, beta.Points)
	assert.Equal(t, 2, gamma.Rank)
	assert.Equal(t, 3, beta.Rank)
}

// TestAsOfSkipsUnfinished tests that sentinel-goal matches contribute
// nothing
func TestAsOfSkipsUnfinished(t *testing.T) {
	log := testLog()
	unplayed := fixture(6, "alpha", "beta", -1, -1)
	log = append(log, unplayed)

	assert.Equal(t, AsOf(len(log)-1, log), AsOf(len(log), log))
}

// TestFormMostRecentFirst tests the form string ordering and window
func TestFormMostRecentFirst(t *testing.T) {
	log := testLog()
	table := AsOf(len(log), log)

	// alpha's results oldest first are W D W D, so the form string reads
	// them reversed.
	alpha, _ := Lookup(table, "alpha")
	assert.Equal(t, "DWDW", alpha.Form)

	// Window caps at five once a team has more history.
	long := []*models.Match{}
	for i := 0; i < 7; i++ {
		long = append(long, fixture(i, "alpha", "beta", 1, 0))
	}
	table = AsOf(len(long), long)
	alpha, _ = Lookup(table, "alpha")
	assert.Equal(t, "WWWWW", alpha.Form)
	beta, _ := Lookup(table, "beta")
	assert.Equal(t, "LLLLL", beta.Form)
}

// TestHeadToHeadPerspectives tests that the tally flips with perspective
func TestHeadToHeadPerspectives(t *testing.T) {
	log := testLog()

	alpha, ok := HeadToHead("alpha", "beta", len(log), log, 0)
	require.True(t, ok)
	assert.Equal(t, models.HeadToHead{Wins: 1, Draws: 1, Losses: 0, Meetings: 2}, alpha)

	beta, ok := HeadToHead("beta", "alpha", len(log), log, 0)
	require.True(t, ok)
	assert.Equal(t, models.HeadToHead{Wins: 0, Draws: 1, Losses: 1, Meetings: 2}, beta)
}

// TestHeadToHeadCap tests the most-recent-N bound
func TestHeadToHeadCap(t *testing.T) {
	log := []*models.Match{}
	for i := 0; i < 10; i++ {
		log = append(log, fixture(i, "alpha", "beta", 1, 0))
	}

	h2h, ok := HeadToHead("alpha", "beta", len(log), log, 6)
	require.True(t, ok)
	assert.Equal(t, 6, h2h.Meetings)
	assert.Equal(t, 6, h2h.Wins)
}

func TestHeadToHeadNeverMet(t *testing.T) {
	log := testLog()
	_, ok := HeadToHead("alpha", "delta", len(log), log, 0)
	assert.False(t, ok)
}

// TestPriorAppearances tests the appearance threshold counter
func TestPriorAppearances(t *testing.T) {
	log := testLog()

	assert.Equal(t, 0, PriorAppearances("alpha", 0, log))
	assert.Equal(t, 2, PriorAppearances("alpha", 2, log))
	assert.Equal(t, 4, PriorAppearances("alpha", len(log), log))
	assert.Equal(t, 0, PriorAppearances("delta", len(log), log))
}

// TestScheduleDifficulty tests the strength-of-schedule summary
func TestScheduleDifficulty(t *testing.T) {
	log := testLog()

	sos, ok := ScheduleDifficulty("beta", len(log), log)
	require.True(t, ok)
	assert.GreaterOrEqual(t, sos.Difficulty, 0.0)
	assert.LessOrEqual(t, sos.Difficulty, 1.0)
	assert.Greater(t, sos.OpponentPPM, 0.0)

	_, ok = ScheduleDifficulty("delta", len(log), log)
	assert.False(t, ok)
}

// TestScheduleDifficultyNeedsTable tests the two-team minimum
func TestScheduleDifficultyNeedsTable(t *testing.T) {
	_, ok := ScheduleDifficulty("alpha", 0, testLog())
	assert.False(t, ok)
}
