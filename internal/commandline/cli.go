// Package commandline contains helper types for collecting
// command-line arguments.
package commandline

import (
	"bytes"
	"fmt"
	"strings"
)

// A Marker renames one substitution point of the class template. On
// the command line, markers are provided as "NAME=token" pairs.
type Marker struct {
	Name, Token string
}

// A MarkerList collects multiple marker overrides from the command
// line.
type MarkerList []Marker

func (m *MarkerList) String() string {
	var buf bytes.Buffer
	for _, item := range *m {
		fmt.Fprintf(&buf, "%s=%s\n", item.Name, item.Token)
	}
	return buf.String()
}

// Set adds a marker override, in the order provided on the command
// line.
func (m *MarkerList) Set(s string) error {
	parts := strings.SplitN(s, "=", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("invalid marker %q. must be \"NAME=token\"", s)
	}
	*m = append(*m, Marker{Name: strings.TrimSpace(parts[0]), Token: parts[1]})
	return nil
}

// The Strings type can be used to collect multiple command-line
// options, in the order provided.
type Strings []string

func (s *Strings) String() string {
	return strings.Join(*s, ",")
}

func (s *Strings) Set(val string) error {
	*s = append(*s, val)
	return nil
}
