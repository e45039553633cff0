// Package newsml parses NewsML 2.9 items and maps them to articles.
//
// Field lookups are expressed as compiled, namespace-qualified XPath queries
// (see QuerySpec). The NewsML namespace is bound to the prefix "n"; the NITF
// payload embedded in inlineXML is matched by local name because publishers
// emit it with and without its own namespace.
package newsml

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
)

// ErrMalformedDocument indicates a document body that is not usable NewsML.
var ErrMalformedDocument = errors.New("malformed document")

// Parse reads an XML document from r.
func Parse(r io.Reader) (*xmlquery.Node, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}

	if !hasRootElement(doc) {
		return nil, fmt.Errorf("%w: no root element", ErrMalformedDocument)
	}

	return doc, nil
}

// ParseString is Parse over an in-memory body.
func ParseString(body string) (*xmlquery.Node, error) {
	return Parse(strings.NewReader(body))
}

func hasRootElement(doc *xmlquery.Node) bool {
	if doc == nil {
		return false
	}

	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return true
		}
	}

	return false
}
