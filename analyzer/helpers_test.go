package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newPage(t *testing.T, html string) *Page {
	t.Helper()
	doc, err := Parse(html)
	require.NoError(t, err)
	return &Page{HTML: html, Doc: doc}
}

// htmlPage wraps head and body markup in a document that passes the lang and
// landmark checks.
func htmlPage(head, body string) string {
	return `<!DOCTYPE html><html lang="en"><head>` + head + `</head><body><main>` + body + `</main></body></html>`
}

func repeat(s string, n int) string {
	return strings.Repeat(s, n)
}
