package resolve

import "strings"

// Person matching attaches an injury or suspension record to one squad
// member. Candidates are scored rather than short-circuited, and only the
// single highest-scoring candidate wins, so one record can never attach
// to several similarly-named players.

const (
	scoreExact       = 1000
	scoreLastInitial = 10
)

// MatchPlayer returns the candidate best matching the free-text player
// name, or ok=false when no candidate scores at all.
func MatchPlayer(rawName string, candidates []string) (string, bool) {
	key := normalize(rawName)
	if key == "" {
		return "", false
	}

	best := ""
	bestScore := 0
	for _, c := range candidates {
		score := playerScore(rawName, key, c)
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, bestScore > 0
}

// playerScore ranks exact key equality above containment (scored by the
// overlap length so fuller names beat fragments) above a surname plus
// first-initial match.
func playerScore(rawName, key, candidate string) int {
	ck := normalize(candidate)
	if ck == "" {
		return 0
	}
	if ck == key {
		return scoreExact
	}

	shorter, longer := key, ck
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if strings.Contains(longer, shorter) && len(shorter) >= 4 {
		return len(shorter)
	}

	if lastNameFirstInitial(rawName, candidate) {
		return scoreLastInitial
	}
	return 0
}

// lastNameFirstInitial matches "L. Messi" against "Lionel Messi": equal
// folded surnames and an agreeing first initial.
func lastNameFirstInitial(a, b string) bool {
	at, bt := tokenize(a), tokenize(b)
	if len(at) < 2 || len(bt) < 2 {
		return false
	}
	aLast, bLast := at[len(at)-1], bt[len(bt)-1]
	if aLast != bLast {
		return false
	}
	return at[0][0] == bt[0][0]
}
