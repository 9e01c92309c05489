// Package xmlobj implements the construction and serialization
// contract that generated classes follow, operating directly on class
// descriptors and canonical nodes. The emitted JavaScript base class
// mirrors this behavior; keeping a native implementation makes the
// contract executable against sample documents without a JS host.
package xmlobj

import (
	"fmt"
	"strconv"

	"github.com/rberaud/xsd2js/node"
	"github.com/rberaud/xsd2js/xsd"
)

// A Builder constructs instances of generated classes from canonical
// nodes.
type Builder struct {
	classes map[string]*xsd.Class
	// StringOnly suppresses value coercion: every leaf stays text.
	StringOnly bool
}

// NewBuilder indexes the given classes by name.
func NewBuilder(classes []*xsd.Class) *Builder {
	b := &Builder{classes: make(map[string]*xsd.Class, len(classes))}
	for _, c := range classes {
		b.classes[c.Name] = c
	}
	return b
}

// An Instance is one constructed object: its class descriptor plus a
// field map. List property fields hold []interface{}; nested object
// fields hold *Instance; leaves hold string, float64 or bool depending
// on coercion.
type Instance struct {
	Class  *xsd.Class
	Fields map[string]interface{}

	builder *Builder
}

// Construct builds an instance of the named class from data.
// Per property: primitive values pass through (coerced by built-in
// kind), a single nested object is constructed only when source data
// is present, and list properties always coerce their source to a
// list, whether the document carried one occurrence or many.
func (b *Builder) Construct(className string, data *node.Node) (*Instance, error) {
	cls, ok := b.classes[className]
	if !ok {
		return nil, fmt.Errorf("xmlobj: unknown class %q", className)
	}
	inst := &Instance{Class: cls, Fields: make(map[string]interface{}), builder: b}
	if err := b.fill(inst, cls, data); err != nil {
		return nil, err
	}
	return inst, nil
}

func (b *Builder) fill(inst *Instance, cls *xsd.Class, data *node.Node) error {
	if cls.Parent != "" {
		if parent, ok := b.classes[cls.Parent]; ok {
			if err := b.fill(inst, parent, data); err != nil {
				return err
			}
		}
	}
	for _, p := range cls.Props {
		if p.Any {
			continue
		}
		switch {
		case p.Attribute:
			name := p.XMLName[len(node.AttrPrefix):]
			if raw, ok := data.Attrs[name]; ok {
				inst.Fields[p.Name] = b.coerce(p.Type, raw)
			}
		case p.XMLName == node.TextKey:
			if data.Text != "" {
				inst.Fields[p.Name] = b.coerce(p.Type, data.Text)
			}
		case p.List:
			kids := data.All(p.XMLName)
			if len(kids) == 0 {
				continue
			}
			list := make([]interface{}, 0, len(kids))
			for _, kid := range kids {
				v, err := b.value(p.Type, kid)
				if err != nil {
					return err
				}
				list = append(list, v)
			}
			inst.Fields[p.Name] = list
		default:
			kid := data.First(p.XMLName)
			if kid == nil {
				continue
			}
			v, err := b.value(p.Type, kid)
			if err != nil {
				return err
			}
			inst.Fields[p.Name] = v
		}
	}
	return nil
}

func (b *Builder) value(typ string, data *node.Node) (interface{}, error) {
	if _, ok := b.classes[typ]; ok {
		return b.Construct(typ, data)
	}
	return b.coerce(typ, data.Text), nil
}

func (b *Builder) coerce(typ, raw string) interface{} {
	if b.StringOnly {
		return raw
	}
	kind, ok := xsd.BuiltinKind(typ)
	if !ok {
		return raw
	}
	switch kind {
	case "number":
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	case "boolean":
		return raw == "true" || raw == "1"
	}
	return raw
}

// Node serializes the instance back to a canonical node, inverting
// Construct exactly: attributes are written under their unmarked
// names, the text property becomes element text, and nested or list
// properties become child elements named by their XMLName.
func (inst *Instance) Node() *node.Node {
	out := node.New()
	inst.write(inst.Class, out)
	return out
}

func (inst *Instance) write(cls *xsd.Class, out *node.Node) {
	if cls.Parent != "" {
		// parent descriptors are needed to serialize inherited fields
		if parent, ok := inst.builder.classes[cls.Parent]; ok {
			inst.write(parent, out)
		}
	}
	for _, p := range cls.Props {
		v, ok := inst.Fields[p.Name]
		if !ok || p.Any {
			continue
		}
		switch {
		case p.Attribute:
			out.Attrs[p.XMLName[len(node.AttrPrefix):]] = format(v)
		case p.XMLName == node.TextKey:
			out.Text = format(v)
		case p.List:
			if list, ok := v.([]interface{}); ok {
				for _, item := range list {
					out.Add(p.XMLName, childNode(item))
				}
			}
		default:
			out.Add(p.XMLName, childNode(v))
		}
	}
}

// MarshalXML serializes the instance as an XML element with the given
// tag name.
func (inst *Instance) MarshalXML(name string) []byte {
	return node.Marshal(name, inst.Node())
}

func childNode(v interface{}) *node.Node {
	if nested, ok := v.(*Instance); ok {
		return nested.Node()
	}
	n := node.New()
	n.Text = format(v)
	return n
}

func format(v interface{}) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		if v {
			return "true"
		}
		return "false"
	}
	return fmt.Sprintf("%v", v)
}
