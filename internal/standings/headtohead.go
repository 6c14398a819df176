package standings

import "github.com/yourusername/matchodds/internal/models"

// DefaultHeadToHeadCap bounds how far back head-to-head tallies look.
const DefaultHeadToHeadCap = 6

// HeadToHead tallies prior meetings of the unordered pair strictly before
// index, from teamKey's perspective, capped to the cap most recent
// meetings. ok is false when the sides have never met.
func HeadToHead(teamKey, opponentKey string, index int, log []*models.Match, cap int) (models.HeadToHead, bool) {
	if cap <= 0 {
		cap = DefaultHeadToHeadCap
	}
	if index > len(log) {
		index = len(log)
	}

	var h2h models.HeadToHead
	for i := index - 1; i >= 0 && h2h.Meetings < cap; i-- {
		m := log[i]
		if !m.Finished() {
			continue
		}
		if !(m.HomeKey == teamKey && m.AwayKey == opponentKey) &&
			!(m.HomeKey == opponentKey && m.AwayKey == teamKey) {
			continue
		}
		h2h.Meetings++
		switch m.Result() {
		case models.OutcomeDraw:
			h2h.Draws++
		case models.OutcomeHomeWin:
			if m.HomeKey == teamKey {
				h2h.Wins++
			} else {
				h2h.Losses++
			}
		case models.OutcomeAwayWin:
			if m.AwayKey == teamKey {
				h2h.Wins++
			} else {
				h2h.Losses++
			}
		}
	}
	return h2h, h2h.Meetings > 0
}

// PriorAppearances counts how many finished matches strictly before index
// involve the team. The calibration harness uses this to skip fixtures
// with degenerate early-season standings.
func PriorAppearances(teamKey string, index int, log []*models.Match) int {
	if index > len(log) {
		index = len(log)
	}
	count := 0
	for i := 0; i < index; i++ {
		if log[i].Finished() && log[i].Involves(teamKey) {
			count++
		}
	}
	return count
}
