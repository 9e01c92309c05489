// Package testutil contains common utility functions for unit tests.
package testutil

import (
	"testing"

	"golang.org/x/tools/txtar"
)

// Fixture loads a txtar archive from testdata and returns its files
// keyed by name.
func Fixture(t *testing.T, path string) map[string][]byte {
	t.Helper()
	ar, err := txtar.ParseFile(path)
	if err != nil {
		t.Fatalf("load fixture %s: %v", path, err)
	}
	files := make(map[string][]byte, len(ar.Files))
	for _, f := range ar.Files {
		files[f.Name] = f.Data
	}
	return files
}

// File returns one file from a fixture archive, failing the test when
// it is missing.
func File(t *testing.T, files map[string][]byte, name string) []byte {
	t.Helper()
	data, ok := files[name]
	if !ok {
		t.Fatalf("fixture has no file %q", name)
	}
	return data
}
