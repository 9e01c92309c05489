package xsd

import "strings"

// A Class is the emission-ready descriptor for one generated type:
// its property list plus its inheritance parent.
type Class struct {
	Name   string
	Parent string
	Props  []Property
}

// Classes derives one Class per complex type, in source order.
func (s *Schema) Classes(opt Options) []*Class {
	classes := make([]*Class, 0, len(s.ComplexTypes))
	for _, t := range s.ComplexTypes {
		classes = append(classes, &Class{
			Name:   t.Name,
			Parent: t.Parent,
			Props:  Properties(t, s, opt),
		})
	}
	return classes
}

// Dependencies returns the type names this class references: its
// parent followed by every property's declared type, first occurrence
// only. Callers decide which names resolve to generated types.
func (c *Class) Dependencies() []string {
	var deps []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name == "" || name == "any" || seen[name] {
			return
		}
		seen[name] = true
		deps = append(deps, name)
	}
	add(c.Parent)
	for _, p := range c.Props {
		// collapsed choice properties carry a union of type names
		for _, t := range strings.Split(p.Type, "|") {
			add(t)
		}
	}
	return deps
}

// Property returns the class property with the given user-facing
// name, or nil.
func (c *Class) Property(name string) *Property {
	for i := range c.Props {
		if c.Props[i].Name == name {
			return &c.Props[i]
		}
	}
	return nil
}
