package components

import (
	"maps"
	"strings"
	"unicode/utf8"

	"github.com/dmitrymomot/mailjsx/pkg/element"
)

var (
	// Html is the document root. lang defaults to "en" and dir to "ltr".
	Html = element.NewComponent("Html", func(p element.Props) (any, error) {
		attrs := withStyle(p)
		setDefault(attrs, "lang", "en")
		setDefault(attrs, "dir", "ltr")
		return element.CreateElement("html", attrs, children(p)...)
	})

	// Head declares the content type and disables Apple's message reformatting.
	Head = element.NewComponent("Head", func(p element.Props) (any, error) {
		contentType, err := element.CreateElement("meta", element.Props{
			"content":   "text/html; charset=UTF-8",
			"httpEquiv": "Content-Type",
		})
		if err != nil {
			return nil, err
		}
		reformat, err := element.CreateElement("meta", element.Props{"name": "x-apple-disable-message-reformatting"})
		if err != nil {
			return nil, err
		}
		return element.CreateElement("head", withStyle(p), append([]any{contentType, reformat}, children(p)...)...)
	})

	// Body is the document body. Email clients drop most body styles, so
	// backgrounds are usually repeated on a Container.
	Body = element.NewComponent("Body", func(p element.Props) (any, error) {
		return element.CreateElement("body", withStyle(p), children(p)...)
	})

	// Container centers its content with a 37.5em max width.
	Container = element.NewComponent("Container", func(p element.Props) (any, error) {
		return layoutTable(p, style(p, element.Props{"maxWidth": "37.5em"}), true, func(c []any) (any, error) {
			td, err := element.CreateElement("td", nil, c...)
			if err != nil {
				return nil, err
			}
			return element.CreateElement("tr", element.Props{"style": element.Props{"width": "100%"}}, td)
		})
	})

	// Section is a full-width presentation table holding one cell.
	Section = element.NewComponent("Section", func(p element.Props) (any, error) {
		return layoutTable(p, style(p, nil), false, func(c []any) (any, error) {
			td, err := element.CreateElement("td", nil, c...)
			if err != nil {
				return nil, err
			}
			return element.CreateElement("tr", nil, td)
		})
	})

	// Row lays its Column children out side by side.
	Row = element.NewComponent("Row", func(p element.Props) (any, error) {
		return layoutTable(p, style(p, nil), false, func(c []any) (any, error) {
			return element.CreateElement("tr", element.Props{"style": element.Props{"width": "100%"}}, c...)
		})
	})

	// Column is a cell of a Row, tagged so that clients keep it inline.
	Column = element.NewComponent("Column", func(p element.Props) (any, error) {
		attrs := withStyle(p)
		attrs["data-id"] = "__react-email-column"
		return element.CreateElement("td", attrs, children(p)...)
	})

	// Text is a paragraph with the default email body typography.
	Text = element.NewComponent("Text", func(p element.Props) (any, error) {
		attrs := rest(p)
		attrs["style"] = style(p, element.Props{
			"fontSize":   "14px",
			"lineHeight": "24px",
			"margin":     "16px 0",
		})
		return element.CreateElement("p", attrs, children(p)...)
	})

	// Heading renders h1 by default; "as" selects h1-h6. The m, mx, my,
	// mt, mr, mb and ml props set margins.
	Heading = element.NewComponent("Heading", func(p element.Props) (any, error) {
		tag := "h1"
		if as, ok := p["as"].(string); ok && isHeadingTag(as) {
			tag = as
		}
		attrs := rest(p, "as", "m", "mx", "my", "mt", "mr", "mb", "ml")
		if s := style(p, marginStyle(p)); len(s) > 0 {
			attrs["style"] = s
		}
		return element.CreateElement(tag, attrs, children(p)...)
	})

	// Link opens in a new tab and drops the underline.
	Link = element.NewComponent("Link", func(p element.Props) (any, error) {
		attrs := rest(p)
		setDefault(attrs, "target", "_blank")
		attrs["style"] = style(p, element.Props{
			"color":              "#067df7",
			"textDecorationLine": "none",
		})
		return element.CreateElement("a", attrs, children(p)...)
	})

	// Button is a link styled as an inline block.
	Button = element.NewComponent("Button", func(p element.Props) (any, error) {
		attrs := rest(p)
		setDefault(attrs, "target", "_blank")
		attrs["style"] = style(p, element.Props{
			"lineHeight":     "100%",
			"textDecoration": "none",
			"display":        "inline-block",
			"maxWidth":       "100%",
			"msoPaddingAlt":  "0px",
		})
		inner, err := element.CreateElement("span", element.Props{"style": element.Props{
			"maxWidth":      "100%",
			"display":       "inline-block",
			"lineHeight":    "120%",
			"msoPaddingAlt": "0px",
			"msoTextRaise":  0,
		}}, children(p)...)
		if err != nil {
			return nil, err
		}
		return element.CreateElement("a", attrs, inner)
	})

	// Img is a block image without borders or outline. Pass width and
	// height explicitly; many clients ignore CSS sizes on images.
	Img = element.NewComponent("Img", func(p element.Props) (any, error) {
		attrs := rest(p)
		attrs["style"] = style(p, element.Props{
			"display":        "block",
			"outline":        "none",
			"border":         "none",
			"textDecoration": "none",
		})
		return element.CreateElement("img", attrs)
	})

	// Hr is a full-width 1px divider.
	Hr = element.NewComponent("Hr", func(p element.Props) (any, error) {
		attrs := rest(p)
		attrs["style"] = style(p, element.Props{
			"width":     "100%",
			"border":    "none",
			"borderTop": "1px solid #eaeaea",
		})
		return element.CreateElement("hr", attrs)
	})

	// Preview is the inbox preview line. It is hidden in the body, skipped in
	// plain text, and padded to previewMaxLength characters so clients do not
	// pull body text into the preview.
	Preview = element.NewComponent("Preview", func(p element.Props) (any, error) {
		text := previewText(p["children"])
		attrs := rest(p)
		attrs["data-skip-in-text"] = true
		attrs["style"] = element.Props{
			"display":    "none",
			"overflow":   "hidden",
			"lineHeight": "1px",
			"opacity":    0,
			"maxHeight":  0,
			"maxWidth":   0,
		}
		kids := []any{text}
		if pad := previewMaxLength - utf8.RuneCountInString(text); pad > 0 {
			filler, err := element.CreateElement("div", nil, strings.Repeat(previewWhitespace, pad))
			if err != nil {
				return nil, err
			}
			kids = append(kids, filler)
		}
		return element.CreateElement("div", attrs, kids...)
	})

	// Font declares a web font and applies it to every element.
	Font = element.NewComponent("Font", func(p element.Props) (any, error) {
		return element.CreateElement("style", element.Props{
			"dangerouslySetInnerHTML": element.Props{"__html": fontFaceCSS(p)},
		})
	})

	// CodeInline renders inline code.
	CodeInline = element.NewComponent("CodeInline", func(p element.Props) (any, error) {
		return element.CreateElement("code", withStyle(p), children(p)...)
	})
)

// Exports returns every component keyed by the name templates use.
// The map is newly allocated on each call.
func Exports() map[string]any {
	return map[string]any{
		"Html":       Html,
		"Head":       Head,
		"Body":       Body,
		"Container":  Container,
		"Section":    Section,
		"Row":        Row,
		"Column":     Column,
		"Text":       Text,
		"Heading":    Heading,
		"Link":       Link,
		"Button":     Button,
		"Img":        Img,
		"Hr":         Hr,
		"Preview":    Preview,
		"Font":       Font,
		"CodeInline": CodeInline,
	}
}

// layoutTable wraps content in the presentation table email layouts rely on.
// body builds the table row. With pinned set, only align and width may be
// overridden by the caller; otherwise every table attribute may be.
func layoutTable(p element.Props, st element.Props, pinned bool, body func([]any) (any, error)) (any, error) {
	defaults := element.Props{
		"align":       "center",
		"width":       "100%",
		"border":      0,
		"cellPadding": "0",
		"cellSpacing": "0",
		"role":        "presentation",
	}
	attrs := rest(p)
	if pinned {
		maps.Copy(attrs, element.Props{"border": 0, "cellPadding": "0", "cellSpacing": "0", "role": "presentation"})
		setDefault(attrs, "align", "center")
		setDefault(attrs, "width", "100%")
	} else {
		maps.Copy(defaults, attrs)
		attrs = defaults
	}
	if len(st) > 0 {
		attrs["style"] = st
	}

	row, err := body(children(p))
	if err != nil {
		return nil, err
	}
	tbody, err := element.CreateElement("tbody", nil, row)
	if err != nil {
		return nil, err
	}
	return element.CreateElement("table", attrs, tbody)
}

// rest copies props without children, style and the named keys.
func rest(p element.Props, omit ...string) element.Props {
	out := make(element.Props, len(p))
	for k, v := range p {
		switch k {
		case "children", "style":
			continue
		}
		out[k] = v
	}
	for _, k := range omit {
		delete(out, k)
	}
	return out
}

// withStyle copies props like rest and keeps a non-empty caller style.
func withStyle(p element.Props, omit ...string) element.Props {
	attrs := rest(p, omit...)
	if s := style(p, nil); len(s) > 0 {
		attrs["style"] = s
	}
	return attrs
}

// style merges the caller's style over defaults.
func style(p element.Props, defaults element.Props) element.Props {
	out := make(element.Props, len(defaults))
	maps.Copy(out, defaults)
	if s, ok := element.ToMap(p["style"]); ok {
		maps.Copy(out, s)
	}
	return out
}

func children(p element.Props) []any {
	if c, ok := p["children"]; ok {
		return []any{c}
	}
	return nil
}

func setDefault(p element.Props, key string, v any) {
	if cur, ok := p[key]; !ok || element.IsNullish(cur) {
		p[key] = v
	}
}
