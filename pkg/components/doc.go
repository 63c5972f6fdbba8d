// Package components provides the prebuilt email components every template
// can use without declaring them: Html, Head, Body, Container, Section, Row,
// Column, Text, Heading, Link, Button, Img, Hr, Preview, Font and CodeInline.
//
// The components emit the table-based, inline-styled markup email clients
// render reliably. Each accepts a style prop merged over its defaults and
// passes other props through as attributes.
package components
