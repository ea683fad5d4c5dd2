package analyzer

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document is a read-only view over a parsed page. Selectors use CSS syntax.
type Document interface {
	// Count returns the number of elements matching selector.
	Count(selector string) int
	// Find returns matching elements in document order.
	Find(selector string) []Element
	// Text returns the combined text of every match.
	Text(selector string) string
	// Attr returns the attribute of the first match.
	Attr(selector, name string) (string, bool)
}

// Element is a single node of a Document.
type Element interface {
	Tag() string
	Attr(name string) (string, bool)
	Text() string
	Is(selector string) bool
	// Prev returns the immediately preceding element sibling.
	Prev() (Element, bool)
	// Closest returns the nearest ancestor matching selector, starting at the
	// element itself.
	Closest(selector string) (Element, bool)
}

// Parse builds a Document from raw HTML.
func Parse(html string) (Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &goqueryDocument{doc: doc}, nil
}

type goqueryDocument struct {
	doc *goquery.Document
}

func (d *goqueryDocument) Count(selector string) int {
	return d.doc.Find(selector).Length()
}

func (d *goqueryDocument) Find(selector string) []Element {
	sel := d.doc.Find(selector)
	elements := make([]Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, goqueryElement{sel: s})
	})
	return elements
}

func (d *goqueryDocument) Text(selector string) string {
	return d.doc.Find(selector).Text()
}

func (d *goqueryDocument) Attr(selector, name string) (string, bool) {
	return d.doc.Find(selector).First().Attr(name)
}

type goqueryElement struct {
	sel *goquery.Selection
}

func (e goqueryElement) Tag() string {
	return goquery.NodeName(e.sel)
}

func (e goqueryElement) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

func (e goqueryElement) Text() string {
	return e.sel.Text()
}

func (e goqueryElement) Is(selector string) bool {
	return e.sel.Is(selector)
}

func (e goqueryElement) Prev() (Element, bool) {
	prev := e.sel.Prev()
	if prev.Length() == 0 {
		return nil, false
	}
	return goqueryElement{sel: prev}, true
}

func (e goqueryElement) Closest(selector string) (Element, bool) {
	match := e.sel.Closest(selector)
	if match.Length() == 0 {
		return nil, false
	}
	return goqueryElement{sel: match}, true
}
