// Package xmltree parses XML documents into generic trees.
//
// Two tree shapes are produced, matching the two parser front-ends the
// generator accepts. Parse builds an explicit-children tree that keeps
// document order, which is required when reading schema content models.
// ParseFlat builds the attribute-merged object shape, where attributes
// are folded into their element's object under an "@" prefix and an
// element with no attributes or children collapses to its text.
//
// Schema elements are canonicalized to the literal "xs:" prefix; the
// generator does not resolve namespaces beyond recognizing the XML
// Schema namespace.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"strings"

	"golang.org/x/net/html/charset"
)

const recursionLimit = 3000

var errDeepXML = errors.New("xmltree: xml document too deeply nested")

// The canonical XML Schema namespace. Elements in this namespace are
// given the fixed "xs:" prefix regardless of the prefix used in the
// source document.
const schemaNS = "http://www.w3.org/2001/XMLSchema"

// An Element is a single element of an XML document, with its children
// in document order.
type Element struct {
	// Tag name. Schema elements carry the fixed "xs:" prefix,
	// all other names are local.
	Name string
	// Attributes in source order.
	Attr []Attr
	// Character data directly inside the element, surrounding
	// whitespace removed.
	Text string
	// Child elements in document order.
	Children []Element
}

// An Attr is one key="value" pair on an element's opening tag.
type Attr struct {
	Name, Value string
}

// AttrValue returns the value of the named attribute, or "" if the
// element has no such attribute.
func (el *Element) AttrValue(name string) string {
	for _, a := range el.Attr {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

func tagName(name xml.Name) string {
	if name.Space == schemaNS || name.Space == "xs" || name.Space == "xsd" {
		return "xs:" + name.Local
	}
	return name.Local
}

type scanner struct {
	*xml.Decoder
	tok xml.Token
	err error
}

func (s *scanner) scan() bool {
	if s.err != nil {
		return false
	}
	s.tok, s.err = s.Token()
	return s.err == nil
}

func newDecoder(doc []byte) *xml.Decoder {
	d := xml.NewDecoder(bytes.NewReader(doc))
	d.CharsetReader = charset.NewReaderLabel
	return d
}

// Parse reads an XML document and returns its root element. The
// document may be in any encoding named by its XML declaration.
func Parse(doc []byte) (*Element, error) {
	s := scanner{Decoder: newDecoder(doc)}
	root := new(Element)

	for s.scan() {
		if start, ok := s.tok.(xml.StartElement); ok {
			root.Name = tagName(start.Name)
			root.Attr = copyAttrs(start.Attr)
			break
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	if err := root.parse(&s, 0); err != nil {
		return nil, err
	}
	return root, nil
}

func copyAttrs(attrs []xml.Attr) []Attr {
	var result []Attr
	for _, a := range attrs {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		result = append(result, Attr{Name: a.Name.Local, Value: a.Value})
	}
	return result
}

func (el *Element) parse(s *scanner, depth int) error {
	if depth > recursionLimit {
		return errDeepXML
	}
	var text bytes.Buffer
	for s.scan() {
		switch tok := s.tok.(type) {
		case xml.StartElement:
			child := Element{
				Name: tagName(tok.Name),
				Attr: copyAttrs(tok.Copy().Attr),
			}
			if err := child.parse(s, depth+1); err != nil {
				return err
			}
			el.Children = append(el.Children, child)
		case xml.CharData:
			text.Write(tok)
		case xml.EndElement:
			el.Text = strings.TrimSpace(text.String())
			return nil
		}
	}
	return s.err
}

// ParseFlat reads an XML document and returns the root element's
// content in the attribute-merged object shape: a
// map[string]interface{} whose keys are "@"-prefixed attribute names,
// "#text" for character data, and child tag names. A child occurring
// once maps to its object directly; a repeated child maps to a
// []interface{} in document order. An element with no attributes and
// no children collapses to its text string.
func ParseFlat(doc []byte) (interface{}, error) {
	root, err := Parse(doc)
	if err != nil {
		return nil, err
	}
	return flatten(root), nil
}

func flatten(el *Element) interface{} {
	if len(el.Attr) == 0 && len(el.Children) == 0 {
		return el.Text
	}
	obj := make(map[string]interface{})
	for _, a := range el.Attr {
		obj["@"+a.Name] = a.Value
	}
	if el.Text != "" {
		obj["#text"] = el.Text
	}
	for i := range el.Children {
		child := &el.Children[i]
		v := flatten(child)
		switch prev := obj[child.Name].(type) {
		case nil:
			obj[child.Name] = v
		case []interface{}:
			obj[child.Name] = append(prev, v)
		default:
			obj[child.Name] = []interface{}{prev, v}
		}
	}
	return obj
}
