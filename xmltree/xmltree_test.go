package xmltree

import (
	"errors"
	"strings"
	"testing"
)

var sampleSchema = []byte(`<?xml version="1.0"?>
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:complexType name="Person">
    <xsd:sequence>
      <xsd:element name="Name" type="xsd:string"/>
    </xsd:sequence>
    <xsd:attribute name="Age" type="xsd:int"/>
  </xsd:complexType>
</xsd:schema>`)

func TestParse(t *testing.T) {
	root, err := Parse(sampleSchema)
	if err != nil {
		t.Fatal(err)
	}
	if root.Name != "xs:schema" {
		t.Errorf("root name %q, wanted canonical xs:schema", root.Name)
	}
	if len(root.Children) != 1 {
		t.Fatalf("schema has %d children, wanted 1", len(root.Children))
	}
	ct := &root.Children[0]
	if ct.Name != "xs:complexType" || ct.AttrValue("name") != "Person" {
		t.Errorf("got %s %q, wanted xs:complexType Person", ct.Name, ct.AttrValue("name"))
	}
	seq := &ct.Children[0]
	if seq.Name != "xs:sequence" {
		t.Errorf("first child %q, wanted xs:sequence", seq.Name)
	}
	el := &seq.Children[0]
	if el.AttrValue("type") != "xsd:string" {
		t.Errorf("element type %q, attribute values must pass through untouched", el.AttrValue("type"))
	}
}

func TestParseSkipsNamespaceDecls(t *testing.T) {
	root, err := Parse(sampleSchema)
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range root.Attr {
		if strings.HasPrefix(a.Name, "xmlns") || a.Name == "xsd" {
			t.Errorf("namespace declaration %q leaked into attributes", a.Name)
		}
	}
}

func TestParseText(t *testing.T) {
	root, err := Parse([]byte(`<doc>  hello
	</doc>`))
	if err != nil {
		t.Fatal(err)
	}
	if root.Text != "hello" {
		t.Errorf("text %q, wanted %q", root.Text, "hello")
	}
}

func TestParseFlat(t *testing.T) {
	doc := []byte(`<Person Age="42">
	  <Name>Bob</Name>
	  <Pet>cat</Pet>
	  <Pet>dog</Pet>
	</Person>`)
	v, err := ParseFlat(doc)
	if err != nil {
		t.Fatal(err)
	}
	obj, ok := v.(map[string]interface{})
	if !ok {
		t.Fatalf("root flattened to %T, wanted map", v)
	}
	if obj["@Age"] != "42" {
		t.Errorf("@Age = %v, wanted 42", obj["@Age"])
	}
	if obj["Name"] != "Bob" {
		t.Errorf("leaf child Name = %#v, wanted the bare string", obj["Name"])
	}
	pets, ok := obj["Pet"].([]interface{})
	if !ok {
		t.Fatalf("repeated child Pet = %#v, wanted a slice", obj["Pet"])
	}
	if len(pets) != 2 || pets[0] != "cat" || pets[1] != "dog" {
		t.Errorf("Pet = %v, wanted [cat dog] in document order", pets)
	}
}

func TestParseFlatText(t *testing.T) {
	v, err := ParseFlat([]byte(`<price currency="EUR">10.5</price>`))
	if err != nil {
		t.Fatal(err)
	}
	obj := v.(map[string]interface{})
	if obj["#text"] != "10.5" || obj["@currency"] != "EUR" {
		t.Errorf("got %v, wanted text and attribute side by side", obj)
	}
}

func TestCharset(t *testing.T) {
	doc := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><r><name>Ren\xe9</name></r>")
	root, err := Parse(doc)
	if err != nil {
		t.Fatal(err)
	}
	if got := root.Children[0].Text; got != "René" {
		t.Errorf("got %q, wanted decoded %q", got, "René")
	}
}

func TestDeepNesting(t *testing.T) {
	depth := recursionLimit + 10
	doc := strings.Repeat("<a>", depth) + strings.Repeat("</a>", depth)
	_, err := Parse([]byte(doc))
	if !errors.Is(err, errDeepXML) {
		t.Errorf("got %v, wanted %v", err, errDeepXML)
	}
}
