package components

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/mailjsx/pkg/element"
)

const (
	previewMaxLength = 150
	// previewWhitespace is a run of invisible characters some clients show
	// as blank space after the preview text.
	previewWhitespace = "\u00a0\u200c\u200b\u200d\u200e\u200f\ufeff"
)

// previewText joins the preview children and truncates them to
// previewMaxLength characters.
func previewText(children any) string {
	var b strings.Builder
	for _, c := range element.Children(element.Props{"children": children}) {
		if s, ok := element.Stringify(c); ok {
			b.WriteString(s)
		}
	}
	text := b.String()
	if r := []rune(text); len(r) > previewMaxLength {
		text = string(r[:previewMaxLength])
	}
	return text
}

func isHeadingTag(tag string) bool {
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

// marginStyle maps the Heading margin shorthands to style properties.
// Later, more specific props win: m, then mx/my, then the single sides.
func marginStyle(p element.Props) element.Props {
	out := element.Props{}
	set := func(v any, sides ...string) {
		if element.IsNullish(v) {
			return
		}
		for _, side := range sides {
			out[side] = v
		}
	}
	set(p["m"], "marginTop", "marginRight", "marginBottom", "marginLeft")
	set(p["mx"], "marginLeft", "marginRight")
	set(p["my"], "marginTop", "marginBottom")
	set(p["mt"], "marginTop")
	set(p["mr"], "marginRight")
	set(p["mb"], "marginBottom")
	set(p["ml"], "marginLeft")
	return out
}

// fontFaceCSS builds the @font-face rule of the Font component from the
// fontFamily, fallbackFontFamily, webFont ({url, format}), fontStyle and
// fontWeight props.
func fontFaceCSS(p element.Props) string {
	family := element.ToString(p["fontFamily"])

	var fallbacks []string
	switch fb := p["fallbackFontFamily"].(type) {
	case nil:
	case string:
		fallbacks = []string{fb}
	default:
		for _, f := range element.Children(element.Props{"children": fb}) {
			fallbacks = append(fallbacks, element.ToString(f))
		}
	}
	if len(fallbacks) == 0 {
		fallbacks = []string{"sans-serif"}
	}

	fontStyle := "normal"
	if s, ok := element.Stringify(p["fontStyle"]); ok {
		fontStyle = s
	}
	fontWeight := "400"
	if s, ok := element.Stringify(p["fontWeight"]); ok {
		fontWeight = s
	}

	var src string
	if wf, ok := element.ToMap(p["webFont"]); ok {
		src = fmt.Sprintf("src: url(%s) format('%s');", element.ToString(wf["url"]), element.ToString(wf["format"]))
	}

	return fmt.Sprintf(
		"@font-face { font-family: '%s'; font-style: %s; font-weight: %s; mso-font-alt: '%s'; %s } * { font-family: '%s', %s; }",
		family, fontStyle, fontWeight, fallbacks[0], src, family, strings.Join(fallbacks, ", "),
	)
}
