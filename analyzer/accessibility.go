package analyzer

import "fmt"

var accessibilityChecks = []Check{
	checkImageAlt,
	checkFormLabels,
	checkLanguage,
	checkLandmarks,
}

// AnalyzeAccessibility scores assistive-technology friendliness.
func AnalyzeAccessibility(p *Page) AccessibilityAnalysis {
	card := Evaluate(p, accessibilityChecks)
	return AccessibilityAnalysis{
		Score:  card.Score,
		Issues: card.Issues,
	}
}

func checkImageAlt(p *Page) (Deduction, bool) {
	missing := p.Doc.Count("img:not([alt])")
	if missing == 0 {
		return Deduction{}, false
	}
	return Deduction{
		Points: min(30, missing*5),
		Issue:  fmt.Sprintf("%d image(s) have no alt text, so screen reader users can't tell what they show.", missing),
	}, true
}

func checkFormLabels(p *Page) (Deduction, bool) {
	unlabeled := 0
	for _, input := range p.Doc.Find(`input:not([type="hidden"]):not([aria-label])`) {
		if !hasLabel(input) {
			unlabeled++
		}
	}
	if unlabeled == 0 {
		return Deduction{}, false
	}
	return Deduction{
		Points: min(20, unlabeled*5),
		Issue:  fmt.Sprintf("%d form field(s) have no label, so visitors may not know what to enter.", unlabeled),
	}, true
}

// hasLabel reports a <label> directly before the input or wrapping it.
func hasLabel(input Element) bool {
	if prev, ok := input.Prev(); ok && prev.Is("label") {
		return true
	}
	_, wrapped := input.Closest("label")
	return wrapped
}

func checkLanguage(p *Page) (Deduction, bool) {
	if p.Doc.Count("html[lang]") > 0 {
		return Deduction{}, false
	}
	return Deduction{
		Points: 10,
		Issue:  "The page doesn't declare a language, which screen readers and translation tools rely on.",
	}, true
}

func checkLandmarks(p *Page) (Deduction, bool) {
	if p.Doc.Count(`[role="main"], main, [role="navigation"], nav`) > 0 {
		return Deduction{}, false
	}
	return Deduction{
		Points: 10,
		Issue:  "The page has no landmarks (main or navigation regions) to help visitors find content.",
	}, true
}
