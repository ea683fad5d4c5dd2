package analyzer

import (
	"fmt"
	"strings"
)

const (
	maxHTMLBytes     = 500_000
	maxInlineStyles  = 10
	maxScripts       = 15
	maxStylesheets   = 5
	maxEagerImages   = 5
	bytesPerKilobyte = 1024.0
)

var performanceChecks = []Check{
	checkHTMLSize,
	checkInlineStyles,
	checkScriptCount,
	checkStylesheetCount,
	checkImageFormats,
	checkLazyLoading,
}

// AnalyzePerformance scores page weight and loading hints.
func AnalyzePerformance(p *Page) PerformanceAnalysis {
	card := Evaluate(p, performanceChecks)
	return PerformanceAnalysis{
		Score:  card.Score,
		Issues: card.Issues,
	}
}

func checkHTMLSize(p *Page) (Deduction, bool) {
	size := len(p.HTML)
	if size <= maxHTMLBytes {
		return Deduction{}, false
	}
	return Deduction{
		Points: 15,
		Issue:  fmt.Sprintf("The page is large (%.2f KB); large pages load slower.", float64(size)/bytesPerKilobyte),
	}, true
}

func checkInlineStyles(p *Page) (Deduction, bool) {
	count := p.Doc.Count("[style]")
	if count <= maxInlineStyles {
		return Deduction{}, false
	}
	return Deduction{
		Points: 10,
		Issue:  fmt.Sprintf("%d elements use inline styles, which makes the site harder to maintain.", count),
	}, true
}

func checkScriptCount(p *Page) (Deduction, bool) {
	count := p.Doc.Count("script[src]")
	if count <= maxScripts {
		return Deduction{}, false
	}
	return Deduction{
		Points: 10,
		Issue:  fmt.Sprintf("The page loads %d external scripts; too many scripts slow it down.", count),
	}, true
}

func checkStylesheetCount(p *Page) (Deduction, bool) {
	count := p.Doc.Count(`link[rel="stylesheet"]`)
	if count <= maxStylesheets {
		return Deduction{}, false
	}
	return Deduction{
		Points: 5,
		Issue:  fmt.Sprintf("The page loads %d stylesheets; combining them would make it faster.", count),
	}, true
}

// checkImageFormats fires once no matter how many images qualify.
func checkImageFormats(p *Page) (Deduction, bool) {
	for _, img := range p.Doc.Find("img[src]") {
		src, _ := img.Attr("src")
		if src != "" && !strings.Contains(src, ".webp") && !strings.Contains(src, ".avif") {
			return Deduction{
				Points: 10,
				Issue:  "Some images could be served in a modern format such as WebP or AVIF; smaller images load faster.",
			}, true
		}
	}
	return Deduction{}, false
}

func checkLazyLoading(p *Page) (Deduction, bool) {
	count := p.Doc.Count(`img:not([loading="lazy"])`)
	if count <= maxEagerImages {
		return Deduction{}, false
	}
	return Deduction{
		Points: 5,
		Issue:  fmt.Sprintf("%d images don't use lazy loading, so they all load at once.", count),
	}, true
}
