package jsgen

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rberaud/xsd2js/internal/commandline"
	"github.com/rberaud/xsd2js/internal/ordered"
)

// Generate creates JavaScript source generated from an XML Schema.
// Generate is meant to be called as part of a command, and can be used
// to change the behavior of the xsd2js command in ways that its
// command-line arguments do not allow. The arguments are the same as
// those passed to the xsd2js command.
func (cfg *Config) Generate(arguments ...string) error {
	var (
		markers          commandline.MarkerList
		fs               = flag.NewFlagSet("xsd2js", flag.ExitOnError)
		output           = fs.String("o", "", "name of the output file, or directory with -split")
		split            = fs.Bool("split", false, "one file per class plus an index, instead of one combined file")
		base             = fs.String("base", "", "custom runtime base class source file")
		template         = fs.String("template", "", "custom class template file")
		textProp         = fs.String("text-prop", "value", "name of the text-value property of simple-content types")
		transparentAttrs = fs.Bool("transparent-attrs", false, "strip the @ marker from attribute property names")
		retainTypes      = fs.Bool("retain-types", false, "embed schema type names in class metadata")
		retainAttrFlags  = fs.Bool("retain-attr-flags", false, "embed attribute flags in class metadata")
		accessors        = fs.Bool("accessors", false, "emit getter/setter pairs backed by hidden fields")
		notify           = fs.Bool("notify", false, "generated setters invoke the change callback (with -accessors)")
		stringOnly       = fs.Bool("string-only", false, "suppress value coercion; every leaf stays text")
		collapseChoices  = fs.Bool("collapse-choices", false, "fold each choice group into one choiceItems property")
		verbosity        = fs.Int("v", 0, "logging verbosity, 1 to 5")
	)
	fs.Var(&markers, "marker", "template marker override 'NAME=token' (can be used multiple times)")

	fs.Parse(arguments)
	if fs.NArg() != 1 {
		return errors.New("Usage: xsd2js [-o out] [-split] [options] file")
	}
	cfg.Option(
		SplitOutput(*split),
		BaseClassFile(*base),
		ClassTemplate(*template),
		TextProperty(*textProp),
		TransparentAttributes(*transparentAttrs),
		RetainTypeMetadata(*retainTypes),
		RetainAttributeFlags(*retainAttrFlags),
		Accessors(*accessors),
		ChangeNotification(*notify),
		StringOnlyCoercion(*stringOnly),
		CollapseChoices(*collapseChoices),
		LogLevel(*verbosity),
	)
	for _, m := range markers {
		cfg.Option(TagMarker(m.Name, m.Token))
	}

	doc, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	cfg.debugf("read %s", fs.Arg(0))

	artifacts, err := cfg.GenArtifacts(doc)
	if err != nil {
		return err
	}

	if cfg.split {
		dir := *output
		if dir == "" {
			dir = "xsd2js_output"
		}
		if err := os.MkdirAll(dir, 0777); err != nil {
			return err
		}
		var werr error
		ordered.RangeBytes(artifacts, func(name string, data []byte) {
			if werr == nil {
				werr = os.WriteFile(filepath.Join(dir, name), data, 0666)
			}
		})
		if werr != nil {
			return werr
		}
		cfg.errorf("wrote %d files to %s", len(artifacts), dir)
		return nil
	}

	out := *output
	if out == "" {
		out = "xsd2js_output.js"
	}
	if err := os.WriteFile(out, artifacts["classes.js"], 0666); err != nil {
		return err
	}
	table := fmt.Sprintf("%s_simpletypes.js", out[:len(out)-len(filepath.Ext(out))])
	if err := os.WriteFile(table, artifacts["simpletypes.js"], 0666); err != nil {
		return err
	}
	cfg.errorf("wrote %s", out)
	return nil
}
