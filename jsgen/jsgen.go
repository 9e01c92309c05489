// Package jsgen generates JavaScript classes from an XML Schema
// document. Generated classes construct themselves from parsed XML
// data and serialize back to XML through a shared runtime base class.
package jsgen

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rberaud/xsd2js/internal/dependency"
	"github.com/rberaud/xsd2js/node"
	"github.com/rberaud/xsd2js/xmltree"
	"github.com/rberaud/xsd2js/xsd"
)

const banner = "// Code generated by xsd2js. DO NOT EDIT.\n\n"

// An emitter renders one schema's classes through the class template.
type emitter struct {
	cfg      *Config
	schema   *xsd.Schema
	known    map[string]*xsd.Class
	template string
}

// GenArtifacts generates the output files for one schema document,
// keyed by file name. One combined file by default; one file per class
// plus the runtime and an index when split output is selected. A
// simple-type table is always included.
func (cfg *Config) GenArtifacts(doc []byte) (map[string][]byte, error) {
	root, err := xmltree.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("parse schema: %v", err)
	}
	schema, err := xsd.Extract(node.Normalize(root))
	if err != nil {
		return nil, err
	}
	classes := schema.Classes(cfg.xsdOptions())
	cfg.logf("extracted %d complex types, %d simple types",
		len(classes), len(schema.SimpleTypes))

	em := &emitter{
		cfg:    cfg,
		schema: schema,
		known:  make(map[string]*xsd.Class, len(classes)),
	}
	for _, c := range classes {
		em.known[c.Name] = c
	}
	if em.template, err = cfg.classTemplate(); err != nil {
		return nil, err
	}
	base, err := cfg.baseClass()
	if err != nil {
		return nil, err
	}

	// Parents must be evaluated before the classes extending them, so
	// emission follows dependency order rather than source order.
	var graph dependency.Graph
	for _, c := range classes {
		var deps []string
		for _, d := range c.Dependencies() {
			if _, ok := em.known[d]; ok {
				deps = append(deps, d)
			}
		}
		graph.Add(c.Name, deps...)
	}

	artifacts := make(map[string][]byte)
	if cfg.split {
		graph.Flatten(func(name string) {
			artifacts[classFileName(name)] = em.classSource(em.known[name])
		})
		artifacts["xmlbase.js"] = append([]byte(banner), base...)
		artifacts["index.js"] = indexSource(&graph)
	} else {
		var buf bytes.Buffer
		buf.WriteString(banner)
		buf.Write(base)
		graph.Flatten(func(name string) {
			buf.WriteByte('\n')
			buf.Write(em.classSource(em.known[name]))
		})
		artifacts["classes.js"] = buf.Bytes()
	}
	artifacts["simpletypes.js"] = simpleTypesSource(schema)
	return artifacts, nil
}

func (cfg *Config) classTemplate() (string, error) {
	if cfg.templateFile == "" {
		return defaultClassTemplate, nil
	}
	data, err := os.ReadFile(cfg.templateFile)
	if err != nil {
		return "", fmt.Errorf("class template: %v", err)
	}
	return string(data), nil
}

func (cfg *Config) baseClass() ([]byte, error) {
	if cfg.baseFile == "" {
		return []byte(baseClassJS), nil
	}
	data, err := os.ReadFile(cfg.baseFile)
	if err != nil {
		return nil, fmt.Errorf("base class: %v", err)
	}
	return data, nil
}

func classFileName(name string) string {
	return strings.ToLower(name) + ".js"
}

// classSource renders one class through the template by token
// substitution.
func (em *emitter) classSource(c *xsd.Class) []byte {
	parent := baseClassName
	if _, ok := em.known[c.Parent]; ok {
		parent = c.Parent
	}
	subst := map[string]string{
		"REQUIRES":   em.requires(c),
		"CLASS_NAME": c.Name,
		"BASE_CLASS": parent,
		"FIELD_INIT": em.fieldInit(c),
		"ACCESSORS":  em.accessorSource(c),
		"METADATA":   em.metadata(c),
		"EXPORTS":    fmt.Sprintf("module.exports.%s = %s;", c.Name, c.Name),
	}
	out := em.template
	for name, text := range subst {
		out = strings.ReplaceAll(out, em.cfg.token(name), text)
	}
	return []byte(out)
}

func (em *emitter) requires(c *xsd.Class) string {
	if !em.cfg.split {
		return ""
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "const { %s } = require(\"./xmlbase\");\n", baseClassName)
	for _, dep := range c.Dependencies() {
		if _, ok := em.known[dep]; !ok || dep == c.Name {
			continue
		}
		fmt.Fprintf(&buf, "const { %s } = require(\"./%s\");\n",
			dep, strings.ToLower(dep))
	}
	buf.WriteByte('\n')
	return buf.String()
}

// fieldInit renders the constructor body: one assignment per property,
// pulling from the parsed data object through the runtime helpers.
// Inherited properties are initialized by the parent constructor.
func (em *emitter) fieldInit(c *xsd.Class) string {
	var buf bytes.Buffer
	for _, p := range c.Props {
		lhs := fieldRef(p.Name, em.cfg.accessors && validJSIdent(p.Name))
		rhs, warn := em.fieldValue(c, p)
		fmt.Fprintf(&buf, "\t\t%s = %s;%s\n", lhs, rhs, warn)
	}
	return buf.String()
}

func (em *emitter) fieldValue(c *xsd.Class, p xsd.Property) (expr, warn string) {
	if p.Any {
		return fmt.Sprintf("%s._any(this._data)", baseClassName), ""
	}
	member := ""
	kind := "null"
	switch {
	case strings.Contains(p.Type, "|"):
		// collapsed choice members keep their parsed shape
	case p.Type == "" || p.Type == "any":
	default:
		k, cls, ok := em.resolve(p.Type)
		if !ok {
			warn = fmt.Sprintf(" // WARNING: unresolved type %q", p.Type)
			em.cfg.logf("class %s: property %s has unresolved type %q",
				c.Name, p.Name, p.Type)
		}
		member, kind = cls, k
	}
	switch {
	case p.Attribute:
		return fmt.Sprintf("%s._attr(this._data, %s, %s)",
			baseClassName, strconv.Quote(p.XMLName), kind), warn
	case p.XMLName == node.TextKey:
		return fmt.Sprintf("%s._text(this._data, %s)", baseClassName, kind), warn
	case p.List:
		if member == "" {
			member = "null"
		}
		return fmt.Sprintf("%s._list(%s, this._data[%s], %s)",
			baseClassName, member, strconv.Quote(p.XMLName), kind), warn
	case member != "":
		return fmt.Sprintf("%s._member(%s, this._data[%s])",
			baseClassName, member, strconv.Quote(p.XMLName)), warn
	default:
		return fmt.Sprintf("%s._leaf(this._data[%s], %s)",
			baseClassName, strconv.Quote(p.XMLName), kind), warn
	}
}

// resolve maps a declared type name to either a generated class or a
// coercion kind. Declared simple types coerce by their restriction
// base.
func (em *emitter) resolve(typ string) (kind, class string, ok bool) {
	if _, isClass := em.known[typ]; isClass {
		return "null", typ, true
	}
	if k, isBuiltin := xsd.BuiltinKind(typ); isBuiltin {
		return em.kindLiteral(k), "", true
	}
	if st := em.schema.SimpleType(typ); st != nil {
		base, _ := st.Restriction()
		if k, isBuiltin := xsd.BuiltinKind(base); isBuiltin {
			return em.kindLiteral(k), "", true
		}
		return "null", "", true
	}
	return "null", "", false
}

func (em *emitter) kindLiteral(kind string) string {
	if em.cfg.stringOnly {
		return "null"
	}
	return strconv.Quote(kind)
}

func (em *emitter) accessorSource(c *xsd.Class) string {
	if !em.cfg.accessors {
		return ""
	}
	var buf bytes.Buffer
	for _, p := range c.Props {
		if !validJSIdent(p.Name) {
			continue
		}
		fmt.Fprintf(&buf, "\tget %s() { return this._%s; }\n", p.Name, p.Name)
		if em.cfg.notify {
			fmt.Fprintf(&buf, "\tset %s(v) { this._%s = v; this._changed(%s, v); }\n",
				p.Name, p.Name, strconv.Quote(p.Name))
		} else {
			fmt.Fprintf(&buf, "\tset %s(v) { this._%s = v; }\n", p.Name, p.Name)
		}
	}
	return buf.String()
}

// metadata renders the static property descriptors serialization
// consults. Optional fields join per the retention options.
func (em *emitter) metadata(c *xsd.Class) string {
	var buf bytes.Buffer
	buf.WriteString("\tstatic properties = [\n")
	for _, p := range c.Props {
		fmt.Fprintf(&buf, "\t\t{ name: %s, xmlName: %s",
			strconv.Quote(p.Name), strconv.Quote(p.XMLName))
		if em.cfg.retainTypes && p.Type != "" {
			fmt.Fprintf(&buf, ", type: %s", strconv.Quote(p.Type))
		}
		if em.cfg.retainAttrFlags {
			fmt.Fprintf(&buf, ", attribute: %v", p.Attribute)
		}
		buf.WriteString(" },\n")
	}
	buf.WriteString("\t];\n")
	return buf.String()
}

func indexSource(graph *dependency.Graph) []byte {
	var buf bytes.Buffer
	buf.WriteString(banner)
	fmt.Fprintf(&buf, "module.exports.%s = require(\"./xmlbase\").%s;\n",
		baseClassName, baseClassName)
	graph.Flatten(func(name string) {
		fmt.Fprintf(&buf, "module.exports.%s = require(\"./%s\").%s;\n",
			name, strings.ToLower(name), name)
	})
	buf.WriteString("module.exports.simpleTypes = require(\"./simpletypes\").simpleTypes;\n")
	return buf.Bytes()
}

// simpleTypesSource renders the declared simple types as a lookup
// table: restriction base plus enumeration values in declaration
// order.
func simpleTypesSource(schema *xsd.Schema) []byte {
	var buf bytes.Buffer
	buf.WriteString(banner)
	buf.WriteString("module.exports.simpleTypes = {\n")
	for _, t := range schema.SimpleTypes {
		base, values := t.Restriction()
		fmt.Fprintf(&buf, "\t%s: { base: %s, values: [",
			strconv.Quote(t.Name), strconv.Quote(base))
		for i, v := range values {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(strconv.Quote(v))
		}
		buf.WriteString("] },\n")
	}
	buf.WriteString("};\n")
	return buf.Bytes()
}

func fieldRef(name string, hidden bool) string {
	if hidden {
		return "this._" + name
	}
	if validJSIdent(name) {
		return "this." + name
	}
	return fmt.Sprintf("this[%s]", strconv.Quote(name))
}

func validJSIdent(name string) bool {
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == '$':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return name != ""
}
