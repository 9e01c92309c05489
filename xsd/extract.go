package xsd

import (
	"fmt"

	"github.com/rberaud/xsd2js/node"
)

// Extract collects every named type declaration from a schema
// document. doc may be the canonical node of the document (with the
// schema under an "xs:schema" child) or the schema node itself.
//
// Beyond the source-level declarations, two classes of synthetic
// declarations are produced:
//
//   - every top-level element carrying an inline complex type becomes
//     a complex type named after the element, so document entry points
//     are generatable classes;
//   - every element or attribute declaration carrying an inline simple
//     type is rewritten to reference a synthetic top-level simple type
//     named {ownerType}_{property}_Type.
//
// Rewriting builds fresh declaration nodes; the input tree is never
// modified, and the synthetic-type accumulator lives on the per-call
// extractor, so repeated runs are independent.
func Extract(doc *node.Node) (*Schema, error) {
	root, err := findSchemaRoot(doc)
	if err != nil {
		return nil, err
	}
	x := &extractor{
		schema: &Schema{
			Groups:     make(map[string]*node.Node),
			AttrGroups: make(map[string]*node.Node),
		},
		seen: make(map[string]bool),
	}
	x.collect(root)
	for _, t := range x.schema.ComplexTypes {
		t.Node = x.rewrite(t.Name, t.Node)
	}
	x.schema.SimpleTypes = append(x.schema.SimpleTypes, x.synthesized...)
	return x.schema, nil
}

type extractor struct {
	schema *Schema
	// simple types promoted out of inline declarations, in
	// discovery order
	synthesized []*TypeDecl
	seen        map[string]bool
}

var declarationNames = []string{
	"xs:complexType", "xs:simpleType", "xs:element", "xs:group", "xs:attributeGroup",
}

func findSchemaRoot(doc *node.Node) (*node.Node, error) {
	if doc == nil {
		return nil, &StructureError{msg: "no document"}
	}
	if root := doc.First("xs:schema"); root != nil {
		return root, nil
	}
	for _, name := range declarationNames {
		if doc.First(name) != nil {
			return doc, nil
		}
	}
	return nil, &StructureError{msg: "schema root element not found"}
}

func (x *extractor) collect(root *node.Node) {
	for _, n := range root.All("xs:complexType") {
		name := n.Attr("name")
		if name == "" {
			continue
		}
		x.schema.ComplexTypes = append(x.schema.ComplexTypes, &TypeDecl{
			Name:   name,
			Kind:   ComplexKind,
			Parent: extensionBase(n),
			Node:   n,
		})
	}
	for _, n := range root.All("xs:simpleType") {
		if name := n.Attr("name"); name != "" {
			x.schema.SimpleTypes = append(x.schema.SimpleTypes, &TypeDecl{
				Name: name,
				Kind: SimpleKind,
				Node: n,
			})
		}
	}
	for _, n := range root.All("xs:group") {
		if name := n.Attr("name"); name != "" {
			x.schema.Groups[name] = n
		}
	}
	for _, n := range root.All("xs:attributeGroup") {
		if name := n.Attr("name"); name != "" {
			x.schema.AttrGroups[name] = n
		}
	}
	// Top-level elements with an inline complex type are the schema's
	// entry points; promote each to a named complex type.
	for _, n := range root.All("xs:element") {
		name := n.Attr("name")
		if name == "" || n.Attr("type") != "" {
			continue
		}
		body := n.First("xs:complexType")
		if body == nil {
			continue
		}
		x.schema.ComplexTypes = append(x.schema.ComplexTypes, &TypeDecl{
			Name:   name,
			Kind:   ComplexKind,
			Parent: extensionBase(body),
			Node:   body,
		})
	}
}

// extensionBase returns the local name of a complex type's extension
// base, or "" when the type does not derive by complex-content
// extension.
func extensionBase(n *node.Node) string {
	cc := n.First("xs:complexContent")
	if cc == nil {
		return ""
	}
	ext := cc.First("xs:extension")
	if ext == nil {
		return ""
	}
	return local(ext.Attr("base"))
}

// rewrite returns a copy of n in which every element or attribute
// declaration with an inline simple type references a promoted type
// instead. The input node is left untouched.
func (x *extractor) rewrite(owner string, n *node.Node) *node.Node {
	out := copyShell(n)
	for _, name := range n.Names() {
		for _, kid := range n.All(name) {
			out.Add(name, x.rewriteChild(owner, name, kid))
		}
	}
	return out
}

func (x *extractor) rewriteChild(owner, name string, kid *node.Node) *node.Node {
	if name != "xs:element" && name != "xs:attribute" {
		return x.rewrite(owner, kid)
	}
	inline := kid.First("xs:simpleType")
	if inline == nil || kid.Attr("type") != "" {
		return x.rewrite(owner, kid)
	}
	prop := kid.Attr("name")
	if prop == "" {
		prop = local(kid.Attr("ref"))
	}
	synth := fmt.Sprintf("%s_%s_Type", owner, prop)
	if !x.seen[synth] {
		x.seen[synth] = true
		x.synthesized = append(x.synthesized, &TypeDecl{
			Name: synth,
			Kind: SimpleKind,
			Node: inline,
		})
	}
	out := copyShell(kid)
	out.Attrs["type"] = synth
	for _, cname := range kid.Names() {
		if cname == "xs:simpleType" {
			continue
		}
		for _, c := range kid.All(cname) {
			out.Add(cname, x.rewrite(owner, c))
		}
	}
	return out
}

func copyShell(n *node.Node) *node.Node {
	out := node.New()
	for k, v := range n.Attrs {
		out.Attrs[k] = v
	}
	out.Text = n.Text
	return out
}
