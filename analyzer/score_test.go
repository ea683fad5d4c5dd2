package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverallScore(t *testing.T) {
	tests := []struct {
		seo, a11y, perf int
		want            int
	}{
		{80, 60, 100, 80},
		{100, 100, 100, 100},
		{0, 0, 0, 0},
		{90, 70, 50, 72},
		{55, 0, 0, 22},
		{1, 1, 2, 1},
	}
	for _, tt := range tests {
		got := OverallScore(tt.seo, tt.a11y, tt.perf)
		assert.Equal(t, tt.want, got, "seo=%d a11y=%d perf=%d", tt.seo, tt.a11y, tt.perf)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 100)
	}
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, clampScore(-25))
	assert.Equal(t, 42, clampScore(42))
	assert.Equal(t, 100, clampScore(130))
}

func TestScoreLabel(t *testing.T) {
	assert.Equal(t, "Excellent", ScoreLabel(100))
	assert.Equal(t, "Excellent", ScoreLabel(90))
	assert.Equal(t, "Good", ScoreLabel(89))
	assert.Equal(t, "Good", ScoreLabel(70))
	assert.Equal(t, "Fair", ScoreLabel(50))
	assert.Equal(t, "Poor", ScoreLabel(49))
	assert.Equal(t, "Poor", ScoreLabel(0))
}

func TestEvaluateFoldsInOrder(t *testing.T) {
	checks := []Check{
		func(*Page) (Deduction, bool) { return Deduction{Points: 40, Issue: "first"}, true },
		func(*Page) (Deduction, bool) { return Deduction{Points: 99, Issue: "skipped"}, false },
		func(*Page) (Deduction, bool) { return Deduction{Points: 80, Recommendation: "second"}, true },
	}

	card := Evaluate(&Page{}, checks)

	assert.Equal(t, 0, card.Score)
	assert.Equal(t, []string{"first"}, card.Issues)
	assert.Equal(t, []string{"second"}, card.Recommendations)
}
