package standings

import "github.com/yourusername/matchodds/internal/models"

const scheduleWindow = 5

// ScheduleDifficulty summarizes the strength of a team's five most recent
// opponents strictly before index: their average rank mapped to [0,1]
// (facing higher-ranked opposition scores higher) and their average
// points per match. ok is false when the team has no prior matches.
func ScheduleDifficulty(teamKey string, index int, log []*models.Match) (models.ScheduleStrength, bool) {
	table := AsOf(index, log)
	if len(table) < 2 {
		return models.ScheduleStrength{}, false
	}

	opponents := recentOpponents(teamKey, index, log, scheduleWindow)
	if len(opponents) == 0 {
		return models.ScheduleStrength{}, false
	}

	rankSum := 0.0
	ppmSum := 0.0
	counted := 0
	for _, opp := range opponents {
		row, ok := Lookup(table, opp)
		if !ok {
			continue
		}
		rankSum += float64(row.Rank)
		ppmSum += row.PointsPerMatch()
		counted++
	}
	if counted == 0 {
		return models.ScheduleStrength{}, false
	}

	avgRank := rankSum / float64(counted)
	teams := float64(len(table))
	return models.ScheduleStrength{
		Difficulty:  (teams - avgRank) / (teams - 1),
		OpponentPPM: ppmSum / float64(counted),
	}, true
}

// recentOpponents returns the opponents from the team's most recent prior
// finished matches, newest first, capped at n.
func recentOpponents(teamKey string, index int, log []*models.Match, n int) []string {
	if index > len(log) {
		index = len(log)
	}
	opponents := make([]string, 0, n)
	for i := index - 1; i >= 0 && len(opponents) < n; i-- {
		m := log[i]
		if !m.Finished() || !m.Involves(teamKey) {
			continue
		}
		opponents = append(opponents, m.Opponent(teamKey))
	}
	return opponents
}
