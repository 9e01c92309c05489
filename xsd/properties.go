package xsd

import (
	"strings"

	"github.com/rberaud/xsd2js/node"
)

// A Property describes one field of a generated class. XMLName is
// authoritative for serialization: attribute names always carry the
// "@" marker there, whatever naming option shaped Name.
type Property struct {
	// Name is the user-facing field name.
	Name string
	// XMLName is the original tag or marked attribute name.
	XMLName string
	// Type is the local name of the declared type: another
	// declaration, a built-in, "any", or "" when unknown.
	Type string
	// Attribute is true for attribute-derived properties, which are
	// never lists.
	Attribute bool
	// List is true when the source allows repetition.
	List bool
	// Nillable mirrors nillable="true" on the declaration.
	Nillable bool
	// Choice marks members flattened out of a choice group.
	Choice bool
	// Any marks wildcard (any / anyAttribute) properties.
	Any bool
}

// Options control property extraction.
type Options struct {
	// TextProperty renames the synthesized text-value property of
	// simple-content types. Default "value".
	TextProperty string
	// TransparentAttributes strips the "@" marker from user-facing
	// attribute property names. XMLName keeps the marker regardless.
	TransparentAttributes bool
	// CollapseChoices folds each choice group into one synthetic
	// "choiceItems" property carrying the union of member type names
	// instead of flattening the members into individual properties.
	CollapseChoices bool
}

func (o Options) textProperty() string {
	if o.TextProperty == "" {
		return "value"
	}
	return o.TextProperty
}

// Properties derives the ordered property list for one type
// declaration. Group and attribute-group references are resolved
// through the schema's maps; unresolved type names are carried through
// untouched, to be reported at emission time.
func Properties(t *TypeDecl, s *Schema, opt Options) []Property {
	e := &propExtractor{schema: s, opt: opt, byName: make(map[string]bool)}

	// A simple-content type has no element children by schema rules:
	// one text-value property plus the content model's attributes,
	// and nothing else.
	if sc := t.Node.First("xs:simpleContent"); sc != nil {
		body := sc.First("xs:extension")
		if body == nil {
			body = sc.First("xs:restriction")
		}
		if body == nil {
			return nil
		}
		e.add(Property{
			Name:    opt.textProperty(),
			XMLName: node.TextKey,
			Type:    local(body.Attr("base")),
		})
		e.attributes(body)
		return e.props
	}

	body := t.Node
	if cc := t.Node.First("xs:complexContent"); cc != nil {
		// Only the extension's own content model contributes
		// properties; the base type's members are inherited at the
		// class level.
		if ext := cc.First("xs:extension"); ext != nil {
			body = ext
		} else if res := cc.First("xs:restriction"); res != nil {
			body = res
		}
	}
	e.content(body, false, false)
	e.attributes(body)
	return e.props
}

type propExtractor struct {
	schema *Schema
	opt    Options
	props  []Property
	byName map[string]bool
	// guards runaway group recursion on self-referential groups
	groupDepth int
}

const maxGroupDepth = 50

// add appends p unless a property with the same resolved name already
// exists: first declaration wins.
func (e *propExtractor) add(p Property) {
	if e.byName[p.Name] {
		return
	}
	e.byName[p.Name] = true
	e.props = append(e.props, p)
}

func unbounded(n *node.Node) bool {
	return n.Attr("maxOccurs") == "unbounded"
}

// content flattens a sequence/choice/all/group content model into the
// property list. forceList marks every member as repeated, which
// happens when an enclosing particle is unbounded. choice marks
// members flattened out of a choice group.
func (e *propExtractor) content(body *node.Node, forceList, choice bool) {
	for _, name := range body.Names() {
		for _, kid := range body.All(name) {
			switch name {
			case "xs:sequence", "xs:all":
				e.content(kid, forceList || unbounded(kid), choice)
			case "xs:choice":
				e.choice(kid, forceList || unbounded(kid))
			case "xs:group":
				e.group(kid, forceList, choice)
			case "xs:element":
				e.element(kid, forceList, choice)
			case "xs:any":
				e.add(Property{
					Name:    "anyElement",
					XMLName: "anyElement",
					Type:    "any",
					List:    forceList || unbounded(kid),
					Choice:  choice,
					Any:     true,
				})
			}
		}
	}
}

func (e *propExtractor) choice(ch *node.Node, list bool) {
	if !e.opt.CollapseChoices {
		e.content(ch, list, true)
		return
	}
	var union []string
	gatherChoiceTypes(ch, &union)
	e.add(Property{
		Name:    "choiceItems",
		XMLName: "choiceItems",
		Type:    strings.Join(union, "|"),
		List:    list,
		Choice:  true,
	})
}

func gatherChoiceTypes(n *node.Node, union *[]string) {
	for _, name := range n.Names() {
		for _, kid := range n.All(name) {
			switch name {
			case "xs:element":
				t := local(kid.Attr("type"))
				if t == "" {
					t = local(kid.Attr("ref"))
				}
				for _, have := range *union {
					if have == t {
						t = ""
						break
					}
				}
				if t != "" {
					*union = append(*union, t)
				}
			case "xs:sequence", "xs:choice", "xs:all", "xs:group":
				gatherChoiceTypes(kid, union)
			}
		}
	}
}

func (e *propExtractor) group(ref *node.Node, forceList, choice bool) {
	name := local(ref.Attr("ref"))
	body, ok := e.schema.Groups[name]
	if !ok || e.groupDepth >= maxGroupDepth {
		return
	}
	e.groupDepth++
	e.content(body, forceList || unbounded(ref), choice)
	e.groupDepth--
}

func (e *propExtractor) element(el *node.Node, forceList, choice bool) {
	name := el.Attr("name")
	typ := local(el.Attr("type"))
	if name == "" {
		// an element reference contributes a property named and
		// typed after its target
		name = local(el.Attr("ref"))
		if typ == "" {
			typ = name
		}
	}
	if name == "" {
		return
	}
	e.add(Property{
		Name:     name,
		XMLName:  name,
		Type:     typ,
		List:     forceList || unbounded(el),
		Nillable: el.Attr("nillable") == "true",
		Choice:   choice,
	})
}

// attributes appends attribute-derived properties after all
// element-derived ones. Attributes are never lists.
func (e *propExtractor) attributes(body *node.Node) {
	for _, name := range body.Names() {
		for _, kid := range body.All(name) {
			switch name {
			case "xs:attribute":
				e.attribute(kid)
			case "xs:attributeGroup":
				e.attributeGroup(kid)
			case "xs:anyAttribute":
				e.add(Property{
					Name:      "anyAttribute",
					XMLName:   "anyAttribute",
					Type:      "any",
					Attribute: true,
					Any:       true,
				})
			}
		}
	}
}

func (e *propExtractor) attribute(at *node.Node) {
	name := at.Attr("name")
	if name == "" {
		name = local(at.Attr("ref"))
	}
	if name == "" {
		return
	}
	p := Property{
		Name:      node.AttrPrefix + name,
		XMLName:   node.AttrPrefix + name,
		Type:      local(at.Attr("type")),
		Attribute: true,
	}
	if e.opt.TransparentAttributes {
		p.Name = name
	}
	e.add(p)
}

func (e *propExtractor) attributeGroup(ref *node.Node) {
	name := local(ref.Attr("ref"))
	body, ok := e.schema.AttrGroups[name]
	if !ok || e.groupDepth >= maxGroupDepth {
		return
	}
	e.groupDepth++
	e.attributes(body)
	e.groupDepth--
}
