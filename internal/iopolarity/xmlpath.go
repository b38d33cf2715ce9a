package iopolarity

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// xmlPaths finds elements of one namespace by paths of local names.
// Compiled expressions are reused for the whole document.
type xmlPaths struct {
	ns    string
	exprs map[string]*xpath.Expr
}

func newXMLPaths(ns string) *xmlPaths {
	return &xmlPaths{ns: ns, exprs: make(map[string]*xpath.Expr)}
}

// compile turns local names into an XPath expression relative to the
// context node, e.g. "origin", "time" selects origin/time elements of
// the namespace.
func (q *xmlPaths) compile(path ...string) (*xpath.Expr, error) {
	key := strings.Join(path, "/")
	if res, ok := q.exprs[key]; ok {
		return res, nil
	}

	steps := make([]string, len(path))
	for i, v := range path {
		steps[i] = fmt.Sprintf(
			"*[local-name()='%s' and namespace-uri()='%s']", v, q.ns,
		)
	}
	res, err := xpath.Compile(strings.Join(steps, "/"))
	if err != nil {
		return nil, fmt.Errorf("namespace '%s': %w", q.ns, err)
	}
	q.exprs[key] = res
	return res, nil
}

// all returns elements at the path in document order.
func (q *xmlPaths) all(n *xmlquery.Node, path ...string) []*xmlquery.Node {
	if n == nil {
		return nil
	}
	expr, err := q.compile(path...)
	if err != nil {
		return nil
	}
	return xmlquery.QuerySelectorAll(n, expr)
}

// find returns the first element at the path, or nil.
func (q *xmlPaths) find(n *xmlquery.Node, path ...string) *xmlquery.Node {
	if n == nil {
		return nil
	}
	expr, err := q.compile(path...)
	if err != nil {
		return nil
	}
	return xmlquery.QuerySelector(n, expr)
}

// text returns trimmed text of the element at the path. The second
// value is false when the element is missing or has no text.
func (q *xmlPaths) text(n *xmlquery.Node, path ...string) (string, bool) {
	el := q.find(n, path...)
	if el == nil {
		return "", false
	}
	res := strings.TrimSpace(el.InnerText())
	return res, res != ""
}

// attr returns a trimmed attribute value by its local name.
func attr(n *xmlquery.Node, name string) string {
	return strings.TrimSpace(n.SelectAttr(name))
}

// firstElement returns the first element child of n, or nil.
func firstElement(n *xmlquery.Node) *xmlquery.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return c
		}
	}
	return nil
}
