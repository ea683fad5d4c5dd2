package analyzer

// Page is the shared, read-only input of every check.
type Page struct {
	HTML string
	Doc  Document
}

// Deduction is the effect of a single failed check. Either message may be empty.
type Deduction struct {
	Points         int
	Issue          string
	Recommendation string
}

// Check inspects a page and reports a deduction when it fails.
type Check func(p *Page) (Deduction, bool)

// Scorecard accumulates deductions starting from a perfect score.
type Scorecard struct {
	Score           int
	Issues          []string
	Recommendations []string
}

func newScorecard() *Scorecard {
	return &Scorecard{
		Score:           maxScore,
		Issues:          make([]string, 0),
		Recommendations: make([]string, 0),
	}
}

func (s *Scorecard) apply(d Deduction) {
	s.Score = clampScore(s.Score - d.Points)
	if d.Issue != "" {
		s.Issues = append(s.Issues, d.Issue)
	}
	if d.Recommendation != "" {
		s.Recommendations = append(s.Recommendations, d.Recommendation)
	}
}

// Evaluate runs checks in order and folds their deductions into a Scorecard.
func Evaluate(p *Page, checks []Check) *Scorecard {
	card := newScorecard()
	for _, check := range checks {
		if d, failed := check(p); failed {
			card.apply(d)
		}
	}
	return card
}
