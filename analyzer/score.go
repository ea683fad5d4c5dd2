package analyzer

import "math"

const (
	maxScore = 100

	seoWeight           = 0.4
	accessibilityWeight = 0.3
	performanceWeight   = 0.3
)

func clampScore(score int) int {
	switch {
	case score < 0:
		return 0
	case score > maxScore:
		return maxScore
	}
	return score
}

// OverallScore combines the three sub-scores with fixed weights.
func OverallScore(seo, accessibility, performance int) int {
	// Explicit conversions keep each product rounded on its own so the sum
	// is not fused on platforms with FMA.
	weighted := float64(float64(seo)*seoWeight) +
		float64(float64(accessibility)*accessibilityWeight) +
		float64(float64(performance)*performanceWeight)
	return clampScore(int(math.Round(weighted)))
}

// ScoreLabel grades a score for display.
func ScoreLabel(score int) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 70:
		return "Good"
	case score >= 50:
		return "Fair"
	default:
		return "Poor"
	}
}
