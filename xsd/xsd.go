// Package xsd derives a type and property model from an XML Schema
// document that has been reduced to canonical nodes.
//
// The package is intended for code generation, not validation: it
// records the structure a generated class needs (elements, attributes,
// text content, cardinality, inheritance parent) and deliberately
// ignores occurrence minimums, datatype facets and identity
// constraints. Named element groups and attribute groups are
// dereferenced during property extraction, and nested content models
// are flattened into one ordered property list per type.
package xsd

import (
	"strings"

	"github.com/rberaud/xsd2js/node"
)

// Kind discriminates the two declaration kinds a schema can contain.
type Kind int

const (
	ComplexKind Kind = iota
	SimpleKind
)

func (k Kind) String() string {
	if k == SimpleKind {
		return "simpleType"
	}
	return "complexType"
}

// A TypeDecl is one named type declaration extracted from the schema.
// Synthesized declarations (promoted top-level elements, promoted
// inline simple types) are indistinguishable from source-level ones.
type TypeDecl struct {
	Name string
	Kind Kind
	// Parent is the local name of the extension base for complex
	// types derived by extension, or "".
	Parent string
	// Node is the canonical declaration body.
	Node *node.Node
}

// A Schema holds every declaration extracted from one schema document.
// Slices keep source order; group maps are keyed by local name.
type Schema struct {
	ComplexTypes []*TypeDecl
	SimpleTypes  []*TypeDecl
	Groups       map[string]*node.Node
	AttrGroups   map[string]*node.Node
}

// ComplexType returns the named complex type declaration, or nil.
func (s *Schema) ComplexType(name string) *TypeDecl {
	for _, t := range s.ComplexTypes {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// SimpleType returns the named simple type declaration, or nil.
func (s *Schema) SimpleType(name string) *TypeDecl {
	for _, t := range s.SimpleTypes {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// A StructureError reports a schema document whose overall structure
// cannot be interpreted. It is fatal; there is no partial recovery.
type StructureError struct {
	msg string
}

func (e *StructureError) Error() string {
	return "schema structure: " + e.msg
}

// local strips a namespace prefix from a QName: "xs:string" -> "string".
func local(qname string) string {
	if i := strings.LastIndex(qname, ":"); i >= 0 {
		return qname[i+1:]
	}
	return qname
}

// Restriction returns the restriction base and the ordered enumeration
// values of a simple type declaration. Values is nil when the type is
// not an enumeration.
func (t *TypeDecl) Restriction() (base string, values []string) {
	r := t.Node.First("xs:restriction")
	if r == nil {
		if l := t.Node.First("xs:list"); l != nil {
			return local(l.Attr("itemType")), nil
		}
		return "", nil
	}
	base = local(r.Attr("base"))
	for _, e := range r.All("xs:enumeration") {
		values = append(values, e.Attr("value"))
	}
	return base, values
}
