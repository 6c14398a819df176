package backtest

import (
	"fmt"
	"strings"

	"github.com/yourusername/matchodds/internal/models"
)

var outcomeLabels = map[models.Outcome]string{
	models.OutcomeHomeWin: "Home win",
	models.OutcomeDraw:    "Draw",
	models.OutcomeAwayWin: "Away win",
}

// GenerateConsoleReport formats a run's metrics for terminal output.
func GenerateConsoleReport(result *Result) string {
	var b strings.Builder
	m := result.Metrics

	b.WriteString("Calibration Report\n")
	b.WriteString("==================\n")
	b.WriteString(fmt.Sprintf("League: %s  Season: %s\n", result.Config.LeagueCode, result.Config.Season))
	b.WriteString(fmt.Sprintf("Fixtures evaluated: %d (skipped %d below %d prior matches)\n",
		result.Evaluated, result.Skipped, result.Config.MinPriorMatches))
	b.WriteString(fmt.Sprintf("Accuracy: %.1f%% (%d/%d)\n", m.Accuracy*100, m.Correct, m.Fixtures))

	for _, class := range models.Outcomes {
		acc := m.PerOutcome[class]
		b.WriteString(fmt.Sprintf("  %-8s occurred %3d  predicted %3d  recall %.1f%%\n",
			outcomeLabels[class], acc.Occurred, acc.Predicted, acc.Recall*100))
	}

	b.WriteString(fmt.Sprintf("Brier score: %.4f\n", m.Brier))
	b.WriteString(fmt.Sprintf("Log-loss: %.4f\n", m.LogLoss))

	b.WriteString("Reliability (predicted vs observed):\n")
	for _, bucket := range m.Reliability {
		if bucket.Observations == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("  [%.1f, %.1f)  n=%-5d mean predicted %.3f  observed %.3f\n",
			bucket.Lo, bucket.Hi, bucket.Observations, bucket.MeanPredicted, bucket.HitRate))
	}

	if result.PresentDayBias {
		b.WriteString("Note: rating and expected-goals signals use present-day snapshots,\n")
		b.WriteString("not point-in-time values; results are optimistically biased.\n")
	}
	return b.String()
}
