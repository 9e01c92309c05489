package jsgen

// The class template is plain text stitched together by token
// substitution. Custom templates replace the text; custom tag markers
// replace the tokens looked for in it.
var defaultMarkers = map[string]string{
	"REQUIRES":   "%REQUIRES%",
	"CLASS_NAME": "%CLASS_NAME%",
	"BASE_CLASS": "%BASE_CLASS%",
	"FIELD_INIT": "%FIELD_INIT%",
	"ACCESSORS":  "%ACCESSORS%",
	"METADATA":   "%METADATA%",
	"EXPORTS":    "%EXPORTS%",
}

func (cfg *Config) token(name string) string {
	if t, ok := cfg.markers[name]; ok {
		return t
	}
	return defaultMarkers[name]
}

const defaultClassTemplate = `%REQUIRES%class %CLASS_NAME% extends %BASE_CLASS% {
	constructor(data) {
		super(data);
%FIELD_INIT%	}
%ACCESSORS%%METADATA%}
%EXPORTS%
`

// baseClassName is the class every generated type ultimately extends.
// A custom base class source must export a class of the same name.
const baseClassName = "XMLElement"

// The runtime base class. Construction helpers implement the
// single-or-array normalization for list properties and per-kind value
// coercion; serialization consults the static property descriptors
// emitted with the metadata options, falling back to field-shape
// inspection when a class carries none.
const baseClassJS = `"use strict";

class XMLElement {
	constructor(data) {
		this._data = data || {};
	}

	_changed(name, value) {
		if (typeof this.onPropertyChanged === "function") {
			this.onPropertyChanged(name, value);
		}
	}

	static _coerce(v, kind) {
		if (v === undefined || v === null) return undefined;
		if (typeof v === "object" && !Array.isArray(v)) v = v["#text"];
		if (typeof v !== "string") return v;
		switch (kind) {
		case "number": {
			const n = Number(v);
			return isNaN(n) ? v : n;
		}
		case "boolean":
			return v === "true" || v === "1";
		case "Date":
			return new Date(v);
		default:
			return v;
		}
	}

	static _attr(data, name, kind) {
		if (typeof data !== "object" || data === null) return undefined;
		return XMLElement._coerce(data[name], kind);
	}

	static _text(data, kind) {
		if (typeof data === "object" && data !== null) data = data["#text"];
		return XMLElement._coerce(data, kind);
	}

	static _leaf(v, kind) {
		return XMLElement._coerce(v, kind);
	}

	static _member(cls, v) {
		if (v === undefined || v === null) return undefined;
		return cls ? new cls(v) : v;
	}

	static _list(cls, v, kind) {
		if (v === undefined || v === null) return [];
		const items = Array.isArray(v) ? v : [v];
		return items.map(item => (cls ? new cls(item) : XMLElement._coerce(item, kind)));
	}

	static _any(data) {
		return data;
	}

	static fromXML(text) {
		if (typeof DOMParser === "undefined") {
			throw new Error("no XML parser available; construct from parsed data instead");
		}
		const doc = new DOMParser().parseFromString(text, "application/xml");
		return new this(XMLElement._fromDOM(doc.documentElement));
	}

	static _fromDOM(el) {
		const obj = {};
		for (const a of el.attributes) obj["@" + a.name] = a.value;
		let hasChild = false;
		for (const child of el.children) {
			hasChild = true;
			const v = XMLElement._fromDOM(child);
			const key = child.tagName;
			if (obj[key] === undefined) obj[key] = v;
			else if (Array.isArray(obj[key])) obj[key].push(v);
			else obj[key] = [obj[key], v];
		}
		const text = (el.textContent || "").trim();
		if (!hasChild && el.attributes.length === 0) return text;
		if (!hasChild && text !== "") obj["#text"] = text;
		return obj;
	}

	static _escape(s) {
		return String(s)
			.replace(/&/g, "&amp;")
			.replace(/</g, "&lt;")
			.replace(/>/g, "&gt;")
			.replace(/"/g, "&quot;");
	}

	toXML(name) {
		const descs = this.constructor.properties || this._inferProperties();
		let attrs = "";
		let body = "";
		for (const d of descs) {
			const v = this[d.name];
			if (v === undefined || v === null) continue;
			const xmlName = d.xmlName || d.name;
			if (xmlName.charAt(0) === "@" || d.attribute) {
				attrs += " " + xmlName.replace(/^@/, "") + "=\"" + XMLElement._escape(v) + "\"";
			} else if (xmlName === "#text") {
				body += XMLElement._escape(v);
			} else {
				const items = Array.isArray(v) ? v : [v];
				for (const item of items) {
					body += item instanceof XMLElement
						? item.toXML(xmlName)
						: "<" + xmlName + ">" + XMLElement._escape(item) + "</" + xmlName + ">";
				}
			}
		}
		return "<" + name + attrs + (body === "" ? "/>" : ">" + body + "</" + name + ">");
	}

	_inferProperties() {
		const descs = [];
		for (const key of Object.keys(this)) {
			if (key.charAt(0) === "_") continue;
			descs.push({ name: key, xmlName: key });
		}
		return descs;
	}
}

module.exports.XMLElement = XMLElement;
`
