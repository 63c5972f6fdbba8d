package render

import (
	"dario.cat/mergo"
)

// Options configures a render. The zero value renders compact HTML.
type Options struct {
	// PlainText converts the rendered markup to plain text.
	PlainText bool `json:"plainText" yaml:"plainText"`
	// Pretty indents the markup. It cannot be combined with PlainText.
	Pretty bool `json:"pretty" yaml:"pretty"`
	// HTMLToText tunes the plain-text conversion. Unset fields keep their defaults.
	HTMLToText *HTMLToTextOptions `json:"htmlToTextOptions,omitempty" yaml:"htmlToTextOptions,omitempty"`
}

// HTMLToTextOptions configures the HTML to text conversion.
type HTMLToTextOptions struct {
	// WordWrap is the maximum line length. Zero means 80, a negative value
	// disables wrapping.
	WordWrap int `json:"wordwrap" yaml:"wordwrap"`
	// LinkBrackets surround the href printed after link text. Defaults to
	// "[" and "]"; set two empty strings to print the bare href.
	LinkBrackets []string `json:"linkBrackets" yaml:"linkBrackets"`
	// UppercaseHeadings upper-cases h1-h6 text. Defaults to true.
	UppercaseHeadings *bool `json:"uppercaseHeadings" yaml:"uppercaseHeadings"`
	// HRWidth is the length of the rule printed for <hr>. Defaults to 40.
	HRWidth int `json:"hrWidth" yaml:"hrWidth"`
}

const (
	defaultWordWrap = 80
	defaultHRWidth  = 40
)

func defaultHTMLToTextOptions() HTMLToTextOptions {
	upper := true
	return HTMLToTextOptions{
		WordWrap:          defaultWordWrap,
		LinkBrackets:      []string{"[", "]"},
		UppercaseHeadings: &upper,
		HRWidth:           defaultHRWidth,
	}
}

// textOptions returns the conversion options with defaults filled in.
func (o Options) textOptions() (HTMLToTextOptions, error) {
	var out HTMLToTextOptions
	if o.HTMLToText != nil {
		out = *o.HTMLToText
	}
	// Without dereferencing, an explicit false in UppercaseHeadings is kept.
	if err := mergo.Merge(&out, defaultHTMLToTextOptions(), mergo.WithoutDereference); err != nil {
		return HTMLToTextOptions{}, err
	}
	if len(out.LinkBrackets) != 2 {
		return HTMLToTextOptions{}, ErrInvalidLinkBrackets
	}
	return out, nil
}

func (o Options) validate() error {
	if o.PlainText && o.Pretty {
		return ErrConflictingOptions
	}
	return nil
}
