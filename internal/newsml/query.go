package newsml

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Namespaces used by NewsML items.
const (
	NamespaceNAR = "http://iptc.org/std/nar/2006-10-01/"
	namespaceXML = "http://www.w3.org/XML/1998/namespace"
)

// queryNamespaces binds the prefixes usable in query expressions.
var queryNamespaces = map[string]string{"n": NamespaceNAR}

// Mode selects how many matches a query yields.
type Mode int

const (
	// First yields the first match in document order, or nothing.
	First Mode = iota
	// All yields every match in document order.
	All
)

// QuerySpec describes one named field lookup.
type QuerySpec struct {
	Name string
	Expr string
	// Lang keeps only nodes whose xml:lang equals it. Empty disables the filter.
	Lang string
	Mode Mode
}

// Query is a compiled QuerySpec. It is safe for concurrent use.
type Query struct {
	spec QuerySpec
	expr *xpath.Expr
}

// Compile compiles spec with the NewsML namespace prefixes bound.
func Compile(spec QuerySpec) (*Query, error) {
	expr, err := xpath.CompileWithNS(spec.Expr, queryNamespaces)
	if err != nil {
		return nil, fmt.Errorf("compile %s query %q: %w", spec.Name, spec.Expr, err)
	}

	return &Query{spec: spec, expr: expr}, nil
}

// MustCompile is like Compile but panics on an invalid expression.
func MustCompile(spec QuerySpec) *Query {
	q, err := Compile(spec)
	if err != nil {
		panic(err)
	}

	return q
}

// Name returns the field name of the query.
func (q *Query) Name() string {
	return q.spec.Name
}

// Eval returns the matching nodes under doc according to the query mode.
func (q *Query) Eval(doc *xmlquery.Node) []*xmlquery.Node {
	if doc == nil {
		return nil
	}

	if q.spec.Mode == First && q.spec.Lang == "" {
		if n := xmlquery.QuerySelector(doc, q.expr); n != nil {
			return []*xmlquery.Node{n}
		}

		return nil
	}

	nodes := xmlquery.QuerySelectorAll(doc, q.expr)

	if q.spec.Lang != "" {
		filtered := nodes[:0:0]

		for _, n := range nodes {
			if strings.EqualFold(Lang(n), q.spec.Lang) {
				filtered = append(filtered, n)
			}
		}

		nodes = filtered
	}

	if q.spec.Mode == First && len(nodes) > 1 {
		nodes = nodes[:1]
	}

	return nodes
}

// Node returns the first match, or nil.
func (q *Query) Node(doc *xmlquery.Node) *xmlquery.Node {
	nodes := q.Eval(doc)
	if len(nodes) == 0 {
		return nil
	}

	return nodes[0]
}

// Text returns the trimmed text of the first match, or "".
func (q *Query) Text(doc *xmlquery.Node) string {
	n := q.Node(doc)
	if n == nil {
		return ""
	}

	return strings.TrimSpace(n.InnerText())
}

// Markup returns the inner markup of the first match when it has child
// elements, otherwise its text. Returns "" without a match.
func (q *Query) Markup(doc *xmlquery.Node) string {
	n := q.Node(doc)
	if n == nil {
		return ""
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return strings.TrimSpace(n.OutputXML(false))
		}
	}

	return strings.TrimSpace(n.InnerText())
}

// Attr returns the unqualified attribute local of the first match, or "".
func (q *Query) Attr(doc *xmlquery.Node, local string) string {
	n := q.Node(doc)
	if n == nil {
		return ""
	}

	return attrValue(n, local, "")
}

// Lang returns the xml:lang attribute of n.
func Lang(n *xmlquery.Node) string {
	return attrValue(n, "lang", namespaceXML)
}

// attrValue finds an attribute by local name. The xml namespace may be
// recorded either as its prefix or as its URL.
func attrValue(n *xmlquery.Node, local, space string) string {
	for _, a := range n.Attr {
		if a.Name.Local != local {
			continue
		}

		switch {
		case space == "" && a.Name.Space == "":
			return a.Value
		case space == namespaceXML && (a.Name.Space == "xml" || a.Name.Space == namespaceXML):
			return a.Value
		}
	}

	return ""
}
