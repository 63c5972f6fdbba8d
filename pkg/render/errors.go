package render

import "errors"

var (
	// ErrRender is returned for element trees that cannot be rendered.
	ErrRender = errors.New("render: invalid element tree")

	// ErrConflictingOptions is returned when PlainText and Pretty are both set.
	ErrConflictingOptions = errors.New("render: plainText and pretty cannot be used together")

	// ErrInvalidLinkBrackets is returned when LinkBrackets does not hold exactly two strings.
	ErrInvalidLinkBrackets = errors.New("render: linkBrackets must hold an opening and a closing string")
)
