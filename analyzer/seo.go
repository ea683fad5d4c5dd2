package analyzer

import "unicode/utf8"

const (
	minTitleLength       = 30
	maxTitleLength       = 60
	minDescriptionLength = 120
	maxDescriptionLength = 160
)

var seoChecks = []Check{
	checkTitle,
	checkMetaDescription,
	checkCanonical,
	checkOpenGraph,
	checkRobots,
}

// AnalyzeSEO scores page metadata.
func AnalyzeSEO(p *Page) SEOAnalysis {
	card := Evaluate(p, seoChecks)
	return SEOAnalysis{
		Score:           card.Score,
		Issues:          card.Issues,
		Recommendations: card.Recommendations,
	}
}

func pageTitle(doc Document) string {
	return doc.Text("title")
}

func metaDescription(doc Document) string {
	desc, _ := doc.Attr(`meta[name="description"]`, "content")
	return desc
}

func checkTitle(p *Page) (Deduction, bool) {
	title := pageTitle(p.Doc)
	length := utf8.RuneCountInString(title)
	switch {
	case title == "":
		return Deduction{
			Points:         15,
			Issue:          "Your page is missing a title, so visitors and search engines can't tell what it is about.",
			Recommendation: "Add a clear, descriptive title to the page, for example \"My Bakery - Fresh Homemade Cookies\".",
		}, true
	case length < minTitleLength:
		return Deduction{
			Points:         5,
			Issue:          "Your page title is too short to describe the page.",
			Recommendation: "Make the title longer and more descriptive; 50-60 characters works best.",
		}, true
	case length > maxTitleLength:
		return Deduction{
			Points:         5,
			Issue:          "Your page title is too long and may be cut off in search results.",
			Recommendation: "Shorten the title to 50-60 characters so it is shown in full.",
		}, true
	}
	return Deduction{}, false
}

func checkMetaDescription(p *Page) (Deduction, bool) {
	desc := metaDescription(p.Doc)
	length := utf8.RuneCountInString(desc)
	switch {
	case desc == "":
		return Deduction{
			Points:         15,
			Issue:          "Your page is missing a meta description, a missed chance to attract visitors from search results.",
			Recommendation: "Write a short summary (150-160 characters) of what the page offers.",
		}, true
	case length < minDescriptionLength:
		return Deduction{
			Points:         5,
			Issue:          "Your meta description is too short to explain what the page offers.",
			Recommendation: "Expand the meta description; 150-160 characters is ideal.",
		}, true
	case length > maxDescriptionLength:
		return Deduction{
			Points:         5,
			Issue:          "Your meta description is too long and may be cut off by search engines.",
			Recommendation: "Keep the meta description under 160 characters so it displays fully.",
		}, true
	}
	return Deduction{}, false
}

func checkCanonical(p *Page) (Deduction, bool) {
	if p.Doc.Count(`link[rel="canonical"]`) > 0 {
		return Deduction{}, false
	}
	return Deduction{
		Points:         5,
		Recommendation: "Add a canonical URL so search engines know which address is the main one and avoid duplicate content.",
	}, true
}

func checkOpenGraph(p *Page) (Deduction, bool) {
	if p.Doc.Count(`meta[property^="og:"]`) > 0 {
		return Deduction{}, false
	}
	return Deduction{
		Points:         5,
		Recommendation: "Add Open Graph tags so links to the page get rich previews on social media.",
	}, true
}

func checkRobots(p *Page) (Deduction, bool) {
	if p.Doc.Count(`meta[name="robots"]`) > 0 {
		return Deduction{}, false
	}
	return Deduction{
		Recommendation: "Consider a robots meta tag to control how search engines index the page.",
	}, true
}
