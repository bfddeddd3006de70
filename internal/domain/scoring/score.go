package scoring

import (
	"math"

	"github.com/rlfpro/rocket-fantasy/internal/domain/stats"
)

// Stat weights for fantasy points. Demolitions are rare so they carry the
// largest weight; in-game score is already a composite and gets dampened.
const (
	weightGoal   = 0.95
	weightAssist = 0.75
	weightSave   = 0.48
	weightDemo   = 17.0
	weightScore  = 0.70
)

// Score converts a stat line into fantasy points at full float precision.
// Callers that display points round separately; summation always uses the
// unrounded value.
func Score(line stats.Line) float64 {
	return float64(line.Goals)*weightGoal +
		float64(line.Assists)*weightAssist +
		float64(line.Saves)*weightSave +
		float64(line.Demos)*weightDemo +
		float64(line.Score)*weightScore
}

// Round2 rounds points for display. Never feed the result back into ranking.
func Round2(points float64) float64 {
	return math.Round(points*100) / 100
}
