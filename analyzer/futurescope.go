package analyzer

// FutureScope lists unscored improvement ideas. The last three entries are
// always present.
func FutureScope(doc Document) []string {
	tips := make([]string, 0, 8)

	if doc.Count(`meta[name="viewport"]`) == 0 {
		tips = append(tips, "Add a viewport meta tag so the site looks good on phones and tablets.")
	}
	if doc.Count(`link[rel="icon"]`) == 0 && doc.Count(`link[rel="shortcut icon"]`) == 0 {
		tips = append(tips, "Add a favicon so visitors recognize the site in bookmarks and tabs.")
	}
	if doc.Count(`meta[property="og:image"]`) == 0 {
		tips = append(tips, "Add an Open Graph image so shared links show a preview picture on social media.")
	}
	if doc.Count(`script[type="application/ld+json"]`) == 0 {
		tips = append(tips, "Add structured data (JSON-LD) to help search engines understand the content.")
	}
	if doc.Count("script[src]:not([async]):not([defer])") > 0 {
		tips = append(tips, "Add async or defer to script tags to speed up page loading.")
	}

	return append(tips,
		"Consider a Content Security Policy (CSP) to protect visitors against injected scripts.",
		"Progressive Web App (PWA) features can make the site work like a mobile app.",
		"Add analytics to learn how visitors use the site and what to improve.",
	)
}
