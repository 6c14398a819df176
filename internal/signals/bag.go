package signals

import (
	"github.com/yourusername/matchodds/internal/metrics"
	"github.com/yourusername/matchodds/internal/models"
	"github.com/yourusername/matchodds/internal/resolve"
)

// BuildBag assembles a SignalBag for one team from its mandatory standing
// and whatever provider payloads could be gathered. teamName is the
// canonical display name payload team names must resolve to; payloads
// whose name resolves elsewhere (or nowhere) are dropped as unavailable,
// never treated as an error.
func BuildBag(standing models.Standing, teamName string, payloads []Payload) models.SignalBag {
	bag := models.SignalBag{Standing: &standing}
	for _, p := range payloads {
		if p.Team != "" {
			matched, ok := resolve.Match(p.Team, []string{teamName})
			if !ok || matched != teamName {
				metrics.ResolverMissesTotal.Inc()
				continue
			}
		}
		p.apply(&bag)
	}
	return bag
}

// AttachMatchScope copies match-scoped signals (odds, referee, context,
// each side's head-to-head perspective) onto both bags. The engine reads
// match-scoped values from the home bag; mirroring them keeps either bag
// self-describing.
func AttachMatchScope(home, away *models.SignalBag, odds *models.MarketOdds, referee *models.RefereeProfile, ctx *models.MatchContext, homeH2H, awayH2H *models.HeadToHead) {
	home.Odds, away.Odds = odds, odds
	home.Referee, away.Referee = referee, referee
	home.Context, away.Context = ctx, ctx
	home.H2H = homeH2H
	away.H2H = awayH2H
}
