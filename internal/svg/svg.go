// Package svg builds SVG documents from small element trees and extracts the
// inner markup of upstream cards.
package svg

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/MikhailRaia/readme-cards/internal/pool"
)

// Namespace is the SVG XML namespace.
const Namespace = "http://www.w3.org/2000/svg"

const indent = "  "

var (
	buffers = pool.New(16, func() *bytes.Buffer { return new(bytes.Buffer) })

	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)

	// First opening <svg ...> up to the last closing </svg>.
	innerSVG = regexp.MustCompile(`(?is)<svg[^>]*>(.*)</svg>`)
)

// ExtractContent returns the markup between the outer <svg> tags of s.
// When s has no such pair it is returned unchanged, so non-SVG upstream
// bodies are still embedded rather than dropped.
func ExtractContent(s string) string {
	m := innerSVG.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	return m[1]
}

// Node is anything that can be placed inside an Element.
type Node interface {
	render(b *bytes.Buffer, depth int)
}

// Attr is a single XML attribute. Values are escaped on output.
type Attr struct {
	Name  string
	Value string
}

// A is shorthand for an Attr.
func A(name, value string) Attr {
	return Attr{Name: name, Value: value}
}

// Num formats a number attribute without trailing zeros.
func Num(name string, v float64) Attr {
	return Attr{Name: name, Value: strconv.FormatFloat(v, 'f', -1, 64)}
}

// Element is an SVG element with ordered attributes and children.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []Node
}

// El creates an element.
func El(name string, attrs ...Attr) *Element {
	return &Element{Name: name, Attrs: attrs}
}

// Document creates a root <svg> element of the given size.
func Document(width, height string) *Element {
	return El("svg", A("width", width), A("height", height), A("xmlns", Namespace))
}

// Append adds children and returns e for chaining. Nil elements are skipped.
func (e *Element) Append(children ...Node) *Element {
	for _, c := range children {
		if el, ok := c.(*Element); ok && el == nil {
			continue
		}
		if c == nil {
			continue
		}
		e.Children = append(e.Children, c)
	}
	return e
}

// String renders e and its subtree.
func (e *Element) String() string {
	b := buffers.Get()
	defer buffers.Put(b)

	e.render(b, 0)
	return b.String()
}

func (e *Element) render(b *bytes.Buffer, depth int) {
	b.WriteByte('<')
	b.WriteString(e.Name)
	for _, a := range e.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		attrEscaper.WriteString(b, a.Value)
		b.WriteByte('"')
	}

	if len(e.Children) == 0 {
		b.WriteString("/>")
		return
	}

	b.WriteByte('>')
	for _, c := range e.Children {
		b.WriteByte('\n')
		writeIndent(b, depth+1)
		c.render(b, depth+1)
	}
	b.WriteByte('\n')
	writeIndent(b, depth)
	b.WriteString("</")
	b.WriteString(e.Name)
	b.WriteByte('>')
}

// Raw is markup written verbatim, such as content taken from an upstream card.
type Raw string

func (r Raw) render(b *bytes.Buffer, _ int) {
	b.WriteString(string(r))
}

func writeIndent(b *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString(indent)
	}
}
