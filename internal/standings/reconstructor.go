// Package standings rebuilds the league table, recent form,
// strength-of-schedule and head-to-head exactly as they stood strictly
// before a given point in the match log. Every reconstruction starts from
// scratch; nothing is patched incrementally, so replays cannot drift.
package standings

import (
	"sort"

	"github.com/yourusername/matchodds/internal/models"
)

const formLength = 5

// AsOf folds every finished match strictly before index into a league
// table. Pure and O(matches): identical inputs produce byte-identical
// tables, which the calibration harness depends on.
func AsOf(index int, log []*models.Match) []models.Standing {
	rows := map[string]*models.Standing{}
	// Per-team result history, oldest first, for the form string.
	results := map[string][]byte{}

	if index > len(log) {
		index = len(log)
	}
	for i := 0; i < index; i++ {
		m := log[i]
		if !m.Finished() {
			continue
		}
		home := row(rows, m.HomeKey, m.HomeTeam)
		away := row(rows, m.AwayKey, m.AwayTeam)

		home.Played++
		away.Played++
		home.GoalsFor += m.HomeGoals
		home.GoalsAgainst += m.AwayGoals
		away.GoalsFor += m.AwayGoals
		away.GoalsAgainst += m.HomeGoals

		switch m.Result() {
		case models.OutcomeHomeWin:
			home.Won++
			home.Points += 3
			away.Lost++
			results[m.HomeKey] = append(results[m.HomeKey], 'W')
			results[m.AwayKey] = append(results[m.AwayKey], 'L')
		case models.OutcomeAwayWin:
			away.Won++
			away.Points += 3
			home.Lost++
			results[m.HomeKey] = append(results[m.HomeKey], 'L')
			results[m.AwayKey] = append(results[m.AwayKey], 'W')
		default:
			home.Drawn++
			away.Drawn++
			home.Points++
			away.Points++
			results[m.HomeKey] = append(results[m.HomeKey], 'D')
			results[m.AwayKey] = append(results[m.AwayKey], 'D')
		}
	}

	table := make([]models.Standing, 0, len(rows))
	for key, r := range rows {
		r.Form = formString(results[key])
		table = append(table, *r)
	}

	// Points, then goal difference, then goals scored, then a stable
	// identity tiebreak so equal records still sort deterministically.
	sort.Slice(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference() != b.GoalDifference() {
			return a.GoalDifference() > b.GoalDifference()
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.TeamKey < b.TeamKey
	})
	for i := range table {
		table[i].Rank = i + 1
	}
	return table
}

// Lookup finds a team's row in a reconstructed table.
func Lookup(table []models.Standing, teamKey string) (models.Standing, bool) {
	for _, s := range table {
		if s.TeamKey == teamKey {
			return s, true
		}
	}
	return models.Standing{}, false
}

func row(rows map[string]*models.Standing, key, name string) *models.Standing {
	if r, ok := rows[key]; ok {
		return r
	}
	r := &models.Standing{TeamKey: key, Team: name}
	rows[key] = r
	return r
}

// formString renders the five most recent results, most recent first.
func formString(history []byte) string {
	n := len(history)
	if n == 0 {
		return ""
	}
	take := formLength
	if n < take {
		take = n
	}
	out := make([]byte, take)
	for i := 0; i < take; i++ {
		out[i] = history[n-1-i]
	}
	return string(out)
}
