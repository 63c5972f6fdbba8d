package render

import (
	"math"
	"reflect"
	"slices"
	"strings"

	"github.com/dmitrymomot/mailjsx/pkg/element"
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "keygen": true, "link": true,
	"meta": true, "param": true, "source": true, "track": true, "wbr": true,
}

func isVoid(tag string) bool { return voidElements[tag] }

// renamedAttrs holds DOM property names whose attribute name differs by
// more than case.
var renamedAttrs = map[string]string{
	"className":     "class",
	"htmlFor":       "for",
	"httpEquiv":     "http-equiv",
	"acceptCharset": "accept-charset",
}

// lowercasedAttrs are camelCase DOM properties rendered in lower case.
var lowercasedAttrs = map[string]bool{
	"accessKey": true, "allowFullScreen": true, "autoComplete": true,
	"autoFocus": true, "autoPlay": true, "cellPadding": true, "cellSpacing": true,
	"charSet": true, "colSpan": true, "contentEditable": true, "crossOrigin": true,
	"dateTime": true, "encType": true, "enterKeyHint": true, "formAction": true,
	"formNoValidate": true, "frameBorder": true, "inputMode": true, "itemID": true,
	"itemProp": true, "itemRef": true, "itemScope": true, "itemType": true,
	"marginHeight": true, "marginWidth": true, "maxLength": true, "minLength": true,
	"noModule": true, "noValidate": true, "playsInline": true, "readOnly": true,
	"referrerPolicy": true, "rowSpan": true, "spellCheck": true, "srcDoc": true,
	"srcLang": true, "srcSet": true, "tabIndex": true, "useMap": true,
	"bgColor": true, "vAlign": true,
}

// booleanAttrs render as name="" when truthy and are omitted otherwise.
var booleanAttrs = map[string]bool{
	"allowfullscreen": true, "async": true, "autofocus": true, "autoplay": true,
	"checked": true, "controls": true, "default": true, "defer": true,
	"disabled": true, "formnovalidate": true, "hidden": true, "itemscope": true,
	"loop": true, "multiple": true, "muted": true, "nomodule": true,
	"novalidate": true, "open": true, "playsinline": true, "readonly": true,
	"required": true, "reversed": true, "selected": true,
}

// booleanishAttrs accept booleans and render them as "true" or "false".
var booleanishAttrs = map[string]bool{
	"contenteditable": true, "draggable": true, "spellcheck": true, "value": true,
}

// reservedProps never become attributes.
var reservedProps = map[string]bool{
	"children":                       true,
	"dangerouslySetInnerHTML":        true,
	"key":                            true,
	"ref":                            true,
	"suppressContentEditableWarning": true,
	"suppressHydrationWarning":       true,
}

func attrName(prop string) string {
	if name, ok := renamedAttrs[prop]; ok {
		return name
	}
	if lowercasedAttrs[prop] {
		return strings.ToLower(prop)
	}
	return prop
}

func validAttrName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch r {
		case ' ', '\t', '\n', '\f', '\r', '"', '\'', '>', '/', '=', '<':
			return false
		}
	}
	return true
}

// renderAttrs serializes props as ` name="value"` pairs in sorted order.
func renderAttrs(props element.Props) string {
	keys := make([]string, 0, len(props))
	for k := range props {
		if !reservedProps[k] {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	var b strings.Builder
	for _, k := range keys {
		name := attrName(k)
		if !validAttrName(name) {
			continue
		}
		v := props[k]
		if k == "style" {
			css := styleString(v)
			if css != "" {
				b.WriteString(` style="`)
				b.WriteString(escapeHTML(css))
				b.WriteByte('"')
			}
			continue
		}
		value, ok := attrValue(name, v)
		if !ok {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(escapeHTML(value))
		b.WriteByte('"')
	}
	return b.String()
}

func attrValue(name string, v any) (string, bool) {
	if element.IsNullish(v) || isFunc(v) {
		return "", false
	}
	lower := strings.ToLower(name)
	if booleanAttrs[lower] {
		if truthyAttr(v) {
			return "", true
		}
		return "", false
	}
	if b, ok := element.Primitive(v).(bool); ok {
		if booleanishAttrs[lower] || strings.HasPrefix(lower, "data-") || strings.HasPrefix(lower, "aria-") {
			if b {
				return "true", true
			}
			return "false", true
		}
		return "", false
	}
	if s, ok := element.Stringify(v); ok {
		return s, true
	}
	return element.ToString(v), true
}

func truthyAttr(v any) bool {
	switch x := element.Primitive(v).(type) {
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0 && !math.IsNaN(x)
	}
	return !element.IsNullish(v)
}

func isFunc(v any) bool {
	if _, ok := v.(element.Callable); ok {
		return true
	}
	return reflect.ValueOf(v).Kind() == reflect.Func
}

var unitlessStyles = map[string]bool{
	"animationIterationCount": true, "aspectRatio": true, "borderImageOutset": true,
	"borderImageSlice": true, "borderImageWidth": true, "boxFlex": true,
	"boxFlexGroup": true, "boxOrdinalGroup": true, "columnCount": true,
	"columns": true, "flex": true, "flexGrow": true, "flexPositive": true,
	"flexShrink": true, "flexNegative": true, "flexOrder": true, "gridArea": true,
	"gridRow": true, "gridRowEnd": true, "gridRowSpan": true, "gridRowStart": true,
	"gridColumn": true, "gridColumnEnd": true, "gridColumnSpan": true,
	"gridColumnStart": true, "fontWeight": true, "lineClamp": true,
	"lineHeight": true, "opacity": true, "order": true, "orphans": true,
	"scale": true, "tabSize": true, "widows": true, "zIndex": true, "zoom": true,
	"fillOpacity": true, "floodOpacity": true, "stopOpacity": true,
	"strokeDasharray": true, "strokeDashoffset": true, "strokeMiterlimit": true,
	"strokeOpacity": true, "strokeWidth": true,
}

// styleString serializes a style object to CSS declarations in sorted
// property order. Strings pass through unchanged.
func styleString(v any) string {
	if s, ok := element.Primitive(v).(string); ok {
		return strings.TrimSpace(s)
	}
	m, ok := element.ToMap(v)
	if !ok {
		return ""
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	decls := make([]string, 0, len(keys))
	for _, k := range keys {
		val, ok := styleValue(k, m[k])
		if !ok {
			continue
		}
		decls = append(decls, cssPropertyName(k)+":"+val)
	}
	return strings.Join(decls, ";")
}

func styleValue(prop string, v any) (string, bool) {
	if element.IsNullish(v) {
		return "", false
	}
	switch x := element.Primitive(v).(type) {
	case bool:
		return "", false
	case float64:
		s := element.FormatNumber(x)
		if x != 0 && !unitlessStyles[prop] && !strings.HasPrefix(prop, "--") {
			s += "px"
		}
		return s, true
	case string:
		s := strings.TrimSpace(x)
		return s, s != ""
	}
	return element.ToString(v), true
}

// cssPropertyName converts a camelCase style key to its CSS name:
// fontSize becomes font-size, WebkitTransform -webkit-transform and
// msTransform -ms-transform. Custom properties are left alone.
func cssPropertyName(prop string) string {
	if strings.HasPrefix(prop, "--") || strings.Contains(prop, "-") {
		return prop
	}
	var b strings.Builder
	if strings.HasPrefix(prop, "ms") && len(prop) > 2 && prop[2] >= 'A' && prop[2] <= 'Z' {
		b.WriteByte('-')
	}
	for _, r := range prop {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

func escapeHTML(s string) string { return htmlEscaper.Replace(s) }

func sortedStrings(ss []string) []string {
	slices.Sort(ss)
	return ss
}
