package jsgen

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/rberaud/xsd2js/internal/testutil"
)

type testLogger testing.T

func (t *testLogger) Printf(format string, v ...interface{}) {
	t.Logf(format, v...)
}

func grep(pattern, data string) bool {
	matched, err := regexp.MatchString(pattern, data)
	if err != nil {
		panic(err)
	}
	return matched
}

func testConfig(t *testing.T, opts ...Option) *Config {
	var cfg Config
	cfg.Option(DefaultOptions...)
	cfg.Option(LogOutput((*testLogger)(t)))
	cfg.Option(LogLevel(5))
	cfg.Option(opts...)
	return &cfg
}

func testGen(t *testing.T, schemaFile string, opts ...Option) map[string][]byte {
	t.Helper()
	files := testutil.Fixture(t, "testdata/schemas.txt")
	artifacts, err := testConfig(t, opts...).GenArtifacts(testutil.File(t, files, schemaFile))
	if err != nil {
		t.Fatal(err)
	}
	return artifacts
}

func TestCombinedOutput(t *testing.T) {
	artifacts := testGen(t, "person.xsd")
	data := string(artifacts["classes.js"])
	if !grep(`class XMLElement`, data) {
		t.Error("combined output does not embed the runtime base class")
	}
	if !grep(`class Address extends XMLElement`, data) {
		t.Error("no Address class declaration")
	}
	if !grep(`class Person extends XMLElement`, data) {
		t.Error("no Person class declaration")
	}
	if !grep(`this\.Name = XMLElement\._leaf\(this\._data\["Name"\], "string"\);`, data) {
		t.Errorf("missing Name initialization, got\n%s", data)
	}
	if !grep(`this\["@Age"\] = XMLElement\._attr\(this\._data, "@Age", "number"\);`, data) {
		t.Errorf("missing Age initialization, got\n%s", data)
	}
	if !grep(`this\.Pet = XMLElement\._list\(null, this\._data\["Pet"\], "string"\);`, data) {
		t.Errorf("missing Pet list initialization, got\n%s", data)
	}
	if !grep(`this\.Home = XMLElement\._member\(Address, this\._data\["Home"\]\);`, data) {
		t.Errorf("missing Home member initialization, got\n%s", data)
	}
	if !grep(`module\.exports\.Person = Person;`, data) {
		t.Error("Person not exported")
	}
}

// A class must be declared after the class it extends.
func TestInheritanceOrder(t *testing.T) {
	artifacts := testGen(t, "library.xsd")
	data := string(artifacts["classes.js"])
	if !grep(`class Book extends Item`, data) {
		t.Fatalf("no extension declaration, got\n%s", data)
	}
	if strings.Index(data, "class Item") > strings.Index(data, "class Book") {
		t.Error("Item declared after Book")
	}
}

// A property typed by a declared simple type coerces by the type's
// restriction base.
func TestSimpleTypeCoercion(t *testing.T) {
	data := string(testGen(t, "library.xsd")["classes.js"])
	if !grep(`this\.Genre = XMLElement\._leaf\(this\._data\["Genre"\], "string"\);`, data) {
		t.Errorf("missing Genre initialization, got\n%s", data)
	}
}

func TestTransparentAttributes(t *testing.T) {
	data := string(testGen(t, "person.xsd", TransparentAttributes(true))["classes.js"])
	if !grep(`this\.Age = XMLElement\._attr\(this\._data, "@Age", "number"\);`, data) {
		t.Errorf("transparent attribute kept its marker, got\n%s", data)
	}
}

func TestStringOnly(t *testing.T) {
	data := string(testGen(t, "person.xsd", StringOnlyCoercion(true))["classes.js"])
	if !grep(`this\.Name = XMLElement\._leaf\(this\._data\["Name"\], null\);`, data) {
		t.Errorf("coercion kind survived -string-only, got\n%s", data)
	}
}

func TestAccessors(t *testing.T) {
	data := string(testGen(t, "person.xsd", Accessors(true))["classes.js"])
	if !grep(`this\._Name = XMLElement\._leaf`, data) {
		t.Errorf("accessor fields not hidden, got\n%s", data)
	}
	if !grep(`get Name\(\) { return this\._Name; }`, data) {
		t.Errorf("no getter, got\n%s", data)
	}
	if grep(`this\._changed\(`, strings.Split(data, "class Person")[1]) {
		t.Error("setters notify without the notification option")
	}
}

func TestChangeNotification(t *testing.T) {
	data := string(testGen(t, "person.xsd", Accessors(true), ChangeNotification(true))["classes.js"])
	if !grep(`set Name\(v\) { this\._Name = v; this\._changed\("Name", v\); }`, data) {
		t.Errorf("no notifying setter, got\n%s", data)
	}
}

func TestMetadata(t *testing.T) {
	data := string(testGen(t, "person.xsd")["classes.js"])
	if !grep(`{ name: "Name", xmlName: "Name" },`, data) {
		t.Errorf("missing property descriptor, got\n%s", data)
	}
	if grep(`type: "string"`, data) || grep(`attribute: `, data) {
		t.Error("optional metadata emitted without the retention options")
	}

	data = string(testGen(t, "person.xsd",
		RetainTypeMetadata(true), RetainAttributeFlags(true))["classes.js"])
	if !grep(`{ name: "Name", xmlName: "Name", type: "string", attribute: false },`, data) {
		t.Errorf("missing element descriptor, got\n%s", data)
	}
	if !grep(`{ name: "@Age", xmlName: "@Age", type: "int", attribute: true },`, data) {
		t.Errorf("missing attribute descriptor, got\n%s", data)
	}
}

func TestCollapseChoices(t *testing.T) {
	data := string(testGen(t, "choice.xsd", CollapseChoices(true))["classes.js"])
	if !grep(`this\.choiceItems = XMLElement\._leaf\(this\._data\["choiceItems"\], null\);`, data) {
		t.Errorf("missing collapsed choice initialization, got\n%s", data)
	}
}

func TestUnresolvedTypeWarning(t *testing.T) {
	data := string(testGen(t, "ghost.xsd")["classes.js"])
	if !grep(`// WARNING: unresolved type "Ghost"`, data) {
		t.Errorf("missing warning comment, got\n%s", data)
	}
	if !grep(`this\.Visitor = XMLElement\._leaf\(this\._data\["Visitor"\], null\);`, data) {
		t.Errorf("unresolved property must still initialize, got\n%s", data)
	}
}

func TestSimpleTypesTable(t *testing.T) {
	data := string(testGen(t, "library.xsd")["simpletypes.js"])
	if !grep(`"Genre": { base: "string", values: \["novel", "essay", "poetry"\] },`, data) {
		t.Errorf("missing Genre entry, got\n%s", data)
	}
}

func TestSplitOutput(t *testing.T) {
	artifacts := testGen(t, "person.xsd", SplitOutput(true))
	for _, name := range []string{"person.js", "address.js", "xmlbase.js", "index.js", "simpletypes.js"} {
		if _, ok := artifacts[name]; !ok {
			t.Errorf("split output missing %s", name)
		}
	}
	person := string(artifacts["person.js"])
	if !grep(`const { XMLElement } = require\("\./xmlbase"\);`, person) {
		t.Errorf("person.js does not require the runtime, got\n%s", person)
	}
	if !grep(`const { Address } = require\("\./address"\);`, person) {
		t.Errorf("person.js does not require its dependency, got\n%s", person)
	}
	index := string(artifacts["index.js"])
	if !grep(`module\.exports\.Person = require\("\./person"\)\.Person;`, index) {
		t.Errorf("index does not re-export Person, got\n%s", index)
	}
}

func TestCustomTemplate(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "class.tmpl")
	text := "// generated\nclass __NAME__ extends %BASE_CLASS% {\n\tconstructor(data) {\n\t\tsuper(data);\n%FIELD_INIT%\t}\n}\n"
	if err := os.WriteFile(tmpl, []byte(text), 0666); err != nil {
		t.Fatal(err)
	}
	data := string(testGen(t, "person.xsd",
		ClassTemplate(tmpl), TagMarker("CLASS_NAME", "__NAME__"))["classes.js"])
	if !grep(`class Person extends XMLElement`, data) {
		t.Errorf("custom template not applied, got\n%s", data)
	}
	if grep(`static properties`, data) {
		t.Error("metadata emitted by a template without a metadata marker")
	}
}

func TestCustomBaseClass(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.js")
	if err := os.WriteFile(base, []byte("class XMLElement { /* stub */ }\n"), 0666); err != nil {
		t.Fatal(err)
	}
	data := string(testGen(t, "person.xsd", BaseClassFile(base))["classes.js"])
	if !grep(`/\* stub \*/`, data) {
		t.Error("custom base class not embedded")
	}
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	files := testutil.Fixture(t, "testdata/schemas.txt")
	schema := filepath.Join(dir, "person.xsd")
	if err := os.WriteFile(schema, testutil.File(t, files, "person.xsd"), 0666); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.js")
	if err := testConfig(t).Generate("-o", out, schema); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !grep(`class Person extends XMLElement`, string(data)) {
		t.Error("command output has no Person class")
	}
	if _, err := os.ReadFile(filepath.Join(dir, "out_simpletypes.js")); err != nil {
		t.Errorf("no simple-type table next to the output: %v", err)
	}
}

func TestGenerateSplit(t *testing.T) {
	dir := t.TempDir()
	files := testutil.Fixture(t, "testdata/schemas.txt")
	schema := filepath.Join(dir, "person.xsd")
	if err := os.WriteFile(schema, testutil.File(t, files, "person.xsd"), 0666); err != nil {
		t.Fatal(err)
	}
	outDir := filepath.Join(dir, "out")
	if err := testConfig(t).Generate("-split", "-o", outDir, schema); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"person.js", "xmlbase.js", "index.js"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("split output missing %s: %v", name, err)
		}
	}
}

func TestGenerateMissingInput(t *testing.T) {
	if err := testConfig(t).Generate("no-such-file.xsd"); err == nil {
		t.Error("missing input file must fail")
	}
}

func TestOptionUndo(t *testing.T) {
	var cfg Config
	prev := cfg.Option(SplitOutput(true))
	if !cfg.split {
		t.Fatal("option not applied")
	}
	cfg.Option(prev)
	if cfg.split {
		t.Error("reverting an option did not restore the previous value")
	}
}
