// Package render turns element trees into email HTML or plain text.
//
// Render expands components, flattens fragments and writes the resulting
// markup after the XHTML 1.0 Transitional doctype:
//
//	el, _ := element.CreateElement("p", element.Props{"className": "lead"}, "Hello")
//	out, err := render.Render(el, nil)
//	// <!DOCTYPE html ...><p class="lead">Hello</p>
//
// Props follow React DOM conventions. className and htmlFor become class and
// for, style objects are serialized to CSS with px appended to unitless
// numbers, boolean attributes render as name="" when truthy, and function
// props are skipped. Attributes and style declarations are written in sorted
// order, so output is stable across runs.
//
// With Options.PlainText the markup is converted to text: headings are
// upper-cased, links print their href in brackets, list items get a " * "
// prefix, images and elements marked data-skip-in-text="true" are dropped
// and paragraphs are wrapped at 80 columns. HTMLToTextOptions adjusts these
// defaults.
//
// Component adapts any renderable value to templ.Component so that rendered
// emails can be embedded into templ pages, and templ components placed in a
// tree render through templ.
package render
