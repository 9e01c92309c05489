package node

import (
	"bytes"
	"encoding/xml"
	"io"
	"sort"
)

// Marshal produces the XML encoding of a canonical node as an element
// named name. Attribute and text markers are interpreted, never
// emitted: the output is plain XML.
func Marshal(name string, n *Node) []byte {
	var buf bytes.Buffer
	if err := Encode(&buf, name, n); err != nil {
		// bytes.Buffer writes cannot fail
		panic(err)
	}
	return buf.Bytes()
}

// Encode writes the XML encoding of the node to w.
func Encode(w io.Writer, name string, n *Node) error {
	e := encoder{w: w}
	return e.encode(name, n)
}

type encoder struct {
	w io.Writer
}

func (e *encoder) encode(name string, n *Node) error {
	if _, err := io.WriteString(e.w, "<"+name); err != nil {
		return err
	}
	// Attribute order follows child-name conventions: sorted, since
	// the Attrs map carries no source order.
	for _, k := range sortedKeys(n.Attrs) {
		if _, err := io.WriteString(e.w, " "+k+`="`); err != nil {
			return err
		}
		if err := escape(e.w, n.Attrs[k]); err != nil {
			return err
		}
		if _, err := io.WriteString(e.w, `"`); err != nil {
			return err
		}
	}
	if n.Text == "" && len(n.names) == 0 {
		_, err := io.WriteString(e.w, "/>")
		return err
	}
	if _, err := io.WriteString(e.w, ">"); err != nil {
		return err
	}
	if n.Text != "" {
		if err := escape(e.w, n.Text); err != nil {
			return err
		}
	}
	for _, child := range n.names {
		for _, kid := range n.kids[child] {
			if err := e.encode(child, kid); err != nil {
				return err
			}
		}
	}
	_, err := io.WriteString(e.w, "</"+name+">")
	return err
}

func escape(w io.Writer, s string) error {
	return xml.EscapeText(w, []byte(s))
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
