package jsgen

import (
	"github.com/rberaud/xsd2js/xsd"
)

// A Config holds user-defined overrides and output settings used when
// generating JavaScript source from an xsd document.
type Config struct {
	logger   Logger
	loglevel int

	// one file per class plus an index, instead of one combined file
	split bool
	// override for the bundled runtime base class source
	baseFile string
	// override for the bundled class template
	templateFile string
	// overrides for the template substitution tokens
	markers map[string]string

	textProp         string
	transparentAttrs bool
	retainTypes      bool
	retainAttrFlags  bool
	accessors        bool
	notify           bool
	stringOnly       bool
	collapseChoices  bool
}

func (cfg *Config) errorf(format string, v ...interface{}) {
	if cfg.logger != nil {
		cfg.logger.Printf(format, v...)
	}
}

func (cfg *Config) logf(format string, v ...interface{}) {
	if cfg.logger != nil && cfg.loglevel > 0 {
		cfg.logger.Printf(format, v...)
	}
}

func (cfg *Config) debugf(format string, v ...interface{}) {
	if cfg.logger != nil && cfg.loglevel > 3 {
		cfg.logger.Printf(format, v...)
	}
}

func (cfg *Config) xsdOptions() xsd.Options {
	return xsd.Options{
		TextProperty:          cfg.textProp,
		TransparentAttributes: cfg.transparentAttrs,
		CollapseChoices:       cfg.collapseChoices,
	}
}

// An Option is used to customize a Config.
type Option func(*Config) Option

// The Option method applies options to an existing configuration. The
// return value can be used to revert the final option to its previous
// setting.
func (cfg *Config) Option(opts ...Option) (previous Option) {
	for _, opt := range opts {
		previous = opt(cfg)
	}
	return previous
}

// DefaultOptions are good enough for the majority of use cases: one
// combined artifact, the bundled base class and template, coerced
// values, plain assigned fields.
var DefaultOptions = []Option{
	TextProperty("value"),
}

// Types implementing the Logger interface can receive debug
// information from the generation process. The Logger interface is
// implemented by *log.Logger.
type Logger interface {
	Printf(format string, v ...interface{})
}

// LogOutput specifies an optional Logger for warnings and debug
// information.
func LogOutput(l Logger) Option {
	return func(cfg *Config) Option {
		prev := cfg.logger
		cfg.logger = l
		return LogOutput(prev)
	}
}

// LogLevel sets the verbosity of messages sent to the error log, from
// 1 to 5.
func LogLevel(level int) Option {
	return func(cfg *Config) Option {
		prev := cfg.loglevel
		cfg.loglevel = level
		return LogLevel(prev)
	}
}

// SplitOutput selects one artifact per generated class plus an index,
// instead of a single combined artifact.
func SplitOutput(on bool) Option {
	return func(cfg *Config) Option {
		prev := cfg.split
		cfg.split = on
		return SplitOutput(prev)
	}
}

// BaseClassFile substitutes a custom runtime base class source file
// for the bundled one.
func BaseClassFile(path string) Option {
	return func(cfg *Config) Option {
		prev := cfg.baseFile
		cfg.baseFile = path
		return BaseClassFile(prev)
	}
}

// ClassTemplate substitutes a custom class template file for the
// bundled one. The template is plain text with substitution tokens;
// see TagMarker for renaming the tokens.
func ClassTemplate(path string) Option {
	return func(cfg *Config) Option {
		prev := cfg.templateFile
		cfg.templateFile = path
		return ClassTemplate(prev)
	}
}

// TagMarker renames one substitution token of the class template, for
// use with custom templates whose markers differ from the defaults.
func TagMarker(name, token string) Option {
	return func(cfg *Config) Option {
		if cfg.markers == nil {
			cfg.markers = make(map[string]string)
		}
		prev := cfg.markers[name]
		cfg.markers[name] = token
		if prev == "" {
			return func(cfg *Config) Option {
				delete(cfg.markers, name)
				return TagMarker(name, token)
			}
		}
		return TagMarker(name, prev)
	}
}

// TextProperty renames the synthesized text-value property of
// simple-content types.
func TextProperty(name string) Option {
	return func(cfg *Config) Option {
		prev := cfg.textProp
		cfg.textProp = name
		return TextProperty(prev)
	}
}

// TransparentAttributes strips the attribute marker from user-facing
// property names. Serialization still recovers the true attribute
// name, which keeps its marker in the property's xml name.
func TransparentAttributes(on bool) Option {
	return func(cfg *Config) Option {
		prev := cfg.transparentAttrs
		cfg.transparentAttrs = on
		return TransparentAttributes(prev)
	}
}

// RetainTypeMetadata embeds each property's original schema type name
// in the generated class metadata.
func RetainTypeMetadata(on bool) Option {
	return func(cfg *Config) Option {
		prev := cfg.retainTypes
		cfg.retainTypes = on
		return RetainTypeMetadata(prev)
	}
}

// RetainAttributeFlags embeds each property's attribute-vs-element
// flag in the generated class metadata.
func RetainAttributeFlags(on bool) Option {
	return func(cfg *Config) Option {
		prev := cfg.retainAttrFlags
		cfg.retainAttrFlags = on
		return RetainAttributeFlags(prev)
	}
}

// Accessors emits getter/setter pairs backed by hidden fields.
func Accessors(on bool) Option {
	return func(cfg *Config) Option {
		prev := cfg.accessors
		cfg.accessors = on
		return Accessors(prev)
	}
}

// ChangeNotification makes generated setters invoke the instance's
// change callback. Implies nothing unless Accessors is enabled.
func ChangeNotification(on bool) Option {
	return func(cfg *Config) Option {
		prev := cfg.notify
		cfg.notify = on
		return ChangeNotification(prev)
	}
}

// StringOnlyCoercion suppresses type coercion; every leaf value stays
// text.
func StringOnlyCoercion(on bool) Option {
	return func(cfg *Config) Option {
		prev := cfg.stringOnly
		cfg.stringOnly = on
		return StringOnlyCoercion(prev)
	}
}

// CollapseChoices folds each choice group into one synthetic
// choiceItems property carrying the union of member type names,
// instead of flattening members into individual properties.
func CollapseChoices(on bool) Option {
	return func(cfg *Config) Option {
		prev := cfg.collapseChoices
		cfg.collapseChoices = on
		return CollapseChoices(prev)
	}
}
