package models

// Standing is one point-in-time league-table row. It is valid only as of
// the match index it was reconstructed at and is always rebuilt from
// scratch, never patched incrementally.
type Standing struct {
	Rank    int    `json:"rank"`
	TeamKey string `json:"team_key"`
	Team    string `json:"team"`

	Played int `json:"played"`
	Won    int `json:"won"`
	Drawn  int `json:"drawn"`
	Lost   int `json:"lost"`

	GoalsFor     int `json:"goals_for"`
	GoalsAgainst int `json:"goals_against"`
	Points       int `json:"points"`

	// Form holds up to the five most recent results, most recent first,
	// e.g. "WDLWW". Empty when the team has not played.
	Form string `json:"form,omitempty"`
}

// GoalDifference returns goals for minus goals against.
func (s Standing) GoalDifference() int {
	return s.GoalsFor - s.GoalsAgainst
}

// PointsPerMatch returns average points per played match, zero before the
// first match.
func (s Standing) PointsPerMatch() float64 {
	if s.Played == 0 {
		return 0
	}
	return float64(s.Points) / float64(s.Played)
}
