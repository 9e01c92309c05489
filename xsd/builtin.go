package xsd

// The built-in simple types of XML Schema, mapped to the value kind a
// generated class stores them as. Kinds are the JavaScript-facing
// "string", "number", "boolean" and "Date"; anything not listed here is
// treated as a reference to a declared type.
var builtinKind = map[string]string{
	"anyType":            "string",
	"anySimpleType":      "string",
	"anyURI":             "string",
	"base64Binary":       "string",
	"boolean":            "boolean",
	"byte":               "number",
	"date":               "Date",
	"dateTime":           "Date",
	"decimal":            "number",
	"double":             "number",
	"duration":           "string",
	"ENTITY":             "string",
	"float":              "number",
	"gDay":               "string",
	"gMonth":             "string",
	"gMonthDay":          "string",
	"gYear":              "string",
	"gYearMonth":         "string",
	"hexBinary":          "string",
	"ID":                 "string",
	"IDREF":              "string",
	"int":                "number",
	"integer":            "number",
	"language":           "string",
	"long":               "number",
	"Name":               "string",
	"NCName":             "string",
	"negativeInteger":    "number",
	"NMTOKEN":            "string",
	"nonNegativeInteger": "number",
	"nonPositiveInteger": "number",
	"normalizedString":   "string",
	"NOTATION":           "string",
	"positiveInteger":    "number",
	"QName":              "string",
	"short":              "number",
	"string":             "string",
	"time":               "Date",
	"token":              "string",
	"unsignedByte":       "number",
	"unsignedInt":        "number",
	"unsignedLong":       "number",
	"unsignedShort":      "number",
}

// IsBuiltin reports whether name (without prefix) is an XML Schema
// built-in simple type.
func IsBuiltin(name string) bool {
	_, ok := builtinKind[name]
	return ok
}

// BuiltinKind returns the value kind for a built-in type name, and
// whether the name is a built-in at all.
func BuiltinKind(name string) (string, bool) {
	k, ok := builtinKind[name]
	return k, ok
}
