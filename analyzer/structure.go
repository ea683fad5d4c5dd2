package analyzer

const (
	maxMissingAltShown  = 20
	maxHeadersShown     = 30
	headerPreviewLength = 50
)

// AnalyzeHeaders summarizes the h1-h6 outline in document order.
func AnalyzeHeaders(doc Document) HeaderAnalysis {
	h1Count := doc.Count("h1")
	headings := doc.Find("h1, h2, h3, h4, h5, h6")

	structure := make([]string, 0, min(len(headings), maxHeadersShown))
	for _, h := range headings {
		if len(structure) == maxHeadersShown {
			break
		}
		structure = append(structure, "<"+h.Tag()+"> "+truncateRunes(h.Text(), headerPreviewLength))
	}

	return HeaderAnalysis{
		H1Count:       h1Count,
		HasMultipleH1: h1Count > 1,
		Structure:     structure,
	}
}

// AnalyzeImages counts images and lists the sources of those without an alt
// attribute. An empty alt counts as present.
func AnalyzeImages(doc Document) ImageAnalysis {
	missing := doc.Find("img:not([alt])")

	sources := make([]string, 0, min(len(missing), maxMissingAltShown))
	for _, img := range missing {
		if len(sources) == maxMissingAltShown {
			break
		}
		src, _ := img.Attr("src")
		if src == "" {
			src = "unknown"
		}
		sources = append(sources, src)
	}

	return ImageAnalysis{
		Total:      doc.Count("img"),
		WithoutAlt: len(missing),
		MissingAlt: sources,
	}
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
