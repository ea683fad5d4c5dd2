package analyzer

// AnalysisResult is the complete audit of a single page.
type AnalysisResult struct {
	URL             string                `json:"url"`
	Title           string                `json:"title"`
	MetaDescription string                `json:"metaDescription"`
	Performance     PerformanceAnalysis   `json:"performance"`
	SEO             SEOAnalysis           `json:"seo"`
	Accessibility   AccessibilityAnalysis `json:"accessibility"`
	BrokenLinks     BrokenLinks           `json:"brokenLinks"`
	Images          ImageAnalysis         `json:"images"`
	Headers         HeaderAnalysis        `json:"headers"`
	FutureScope     []string              `json:"futureScope"`
	OverallScore    int                   `json:"overallScore"`
}

type SEOAnalysis struct {
	Score           int      `json:"score"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

type AccessibilityAnalysis struct {
	Score  int      `json:"score"`
	Issues []string `json:"issues"`
}

type PerformanceAnalysis struct {
	Score  int      `json:"score"`
	Issues []string `json:"issues"`
}

// BrokenLinks lists sampled links that failed their probe. Links outside the
// probe sample are never reported.
type BrokenLinks struct {
	Internal []string `json:"internal"`
	External []string `json:"external"`
}

type ImageAnalysis struct {
	Total      int      `json:"total"`
	WithoutAlt int      `json:"withoutAlt"`
	MissingAlt []string `json:"missingAlt"`
}

type HeaderAnalysis struct {
	H1Count       int      `json:"h1Count"`
	HasMultipleH1 bool     `json:"hasMultipleH1"`
	Structure     []string `json:"structure"`
}
