/*
xsd2js is a tool to automatically generate JavaScript class declarations
based on an XML Schema.

Usage:

	xsd2js [-o out] [-split] [options] file

Given an XML file containing an <xsd:schema> declaration, xsd2js will
create a JavaScript source file containing a class declaration for each
complex type defined in the schema, plus a lookup table for the schema's
simple types. Generated classes construct themselves from parsed XML
data and serialize back to XML through a shared runtime base class,
which is embedded in the output.

By default all classes are written to one combined file, named by the
-o flag ("xsd2js_output.js" if unset). With the -split flag, each class
is written to its own file in the -o directory, next to the runtime
base class and an index that re-exports everything.

Attribute-derived properties are named with a leading "@" marker, so
that an attribute and an element sharing a name cannot collide. The
-transparent-attrs flag strips the marker from the user-facing property
names; serialization still recovers the true attribute name.

The -template and -base flags substitute custom class template and
runtime base class files for the bundled ones. A custom template is
plain text with substitution tokens; the -marker flag renames one token
as "NAME=token", and may be used multiple times.

The remaining flags adjust the shape of the generated classes; run
xsd2js -help for the full list.
*/
package main
