// Package node defines the canonical schema node, the single in-memory
// shape every parsed XML tree is reduced to before any schema analysis
// runs. Both tree shapes produced by the xmltree package normalize to
// it; nothing downstream of Normalize may depend on which parser
// front-end produced the input.
package node

import (
	"sort"

	"github.com/rberaud/xsd2js/xmltree"
)

// Reserved markers carried over from the attribute-merged object shape.
// AttrPrefix distinguishes attribute names from element names of the
// same text; TextKey is the pseudo-name of an element's character data.
const (
	AttrPrefix = "@"
	TextKey    = "#text"
)

// A Node is one canonical XML element: attributes by local name, text
// content, and children grouped by tag name. Child name order is
// first-seen order; children sharing a name keep document order.
type Node struct {
	Attrs map[string]string
	Text  string

	names []string
	kids  map[string][]*Node
}

// New returns an empty Node.
func New() *Node {
	return &Node{
		Attrs: make(map[string]string),
		kids:  make(map[string][]*Node),
	}
}

// Add appends child under name, registering the name on first use.
func (n *Node) Add(name string, child *Node) {
	if _, ok := n.kids[name]; !ok {
		n.names = append(n.names, name)
	}
	n.kids[name] = append(n.kids[name], child)
}

// Names returns the child tag names in first-seen order. The returned
// slice must not be modified.
func (n *Node) Names() []string {
	return n.names
}

// All returns every child with the given tag name, in order.
func (n *Node) All(name string) []*Node {
	return n.kids[name]
}

// First returns the first child with the given tag name, or nil.
func (n *Node) First(name string) *Node {
	if kids := n.kids[name]; len(kids) > 0 {
		return kids[0]
	}
	return nil
}

// Attr returns the named attribute's value, or "".
func (n *Node) Attr(name string) string {
	return n.Attrs[name]
}

// Leaf reports whether the node carries no attributes and no children.
func (n *Node) Leaf() bool {
	return len(n.Attrs) == 0 && len(n.names) == 0
}

// Equal reports structural equality: same attributes, same text, and
// for every child name the same ordered child list. Name order is not
// compared, since the attribute-merged source shape cannot preserve it.
func (n *Node) Equal(m *Node) bool {
	if len(n.Attrs) != len(m.Attrs) || n.Text != m.Text || len(n.names) != len(m.names) {
		return false
	}
	for k, v := range n.Attrs {
		if m.Attrs[k] != v {
			return false
		}
	}
	for _, name := range n.names {
		a, b := n.kids[name], m.kids[name]
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
	}
	return true
}

// Normalize converts a raw parsed-XML value into a canonical Node.
// It accepts *xmltree.Element (the explicit-children tree shape), a
// map[string]interface{} (the attribute-merged object shape), or a
// bare string (a leaf from the object shape). Any other value yields
// an empty node; malformed input degrades to partial nodes, never an
// error.
func Normalize(v interface{}) *Node {
	switch v := v.(type) {
	case *xmltree.Element:
		return fromTree(v)
	case xmltree.Element:
		return fromTree(&v)
	case map[string]interface{}:
		return fromObject(v)
	case string:
		n := New()
		n.Text = v
		return n
	}
	return New()
}

func fromTree(el *xmltree.Element) *Node {
	n := New()
	for _, a := range el.Attr {
		n.Attrs[a.Name] = a.Value
	}
	n.Text = el.Text
	for i := range el.Children {
		child := &el.Children[i]
		n.Add(child.Name, fromTree(child))
	}
	return n
}

// The object shape is an unordered Go map; child names are visited in
// sorted order so that normalization is deterministic. Order across
// distinct names is only meaningful for schema content models, which
// always arrive through the tree shape.
func fromObject(obj map[string]interface{}) *Node {
	n := New()
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := obj[k]
		if k == TextKey {
			if s, ok := v.(string); ok {
				n.Text = s
			}
			continue
		}
		if len(k) > 0 && k[:1] == AttrPrefix {
			if s, ok := v.(string); ok {
				n.Attrs[k[1:]] = s
			}
			continue
		}
		switch v := v.(type) {
		case []interface{}:
			for _, item := range v {
				n.Add(k, Normalize(item))
			}
		default:
			n.Add(k, Normalize(v))
		}
	}
	return n
}
