// Package decoration holds the named SVG stickers that are overlaid on cards.
package decoration

import (
	"errors"
	"regexp"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/MikhailRaia/readme-cards/internal/params"
	"github.com/MikhailRaia/readme-cards/internal/svg"
)

// None disables the decoration.
const None = "none"

// Default is the decoration used when the caller does not pick one.
const Default = "cat"

var (
	// ErrInvalidName is returned when a template name contains characters
	// other than letters, digits, '-' and '_'.
	ErrInvalidName = errors.New("invalid decoration name")

	validName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// Template is a reusable decoration placed at a default offset.
//
// With a ViewBox the body is wrapped in a nested <svg> sized by Width;
// otherwise it is wrapped in a translated <g>.
type Template struct {
	Name    string
	X, Y    float64
	Width   float64
	ViewBox string
	Attrs   []svg.Attr
	Body    []svg.Node
}

// Element places the template at (x, y).
func (t Template) Element(x, y float64) *svg.Element {
	if t.ViewBox == "" {
		return svg.El("g", svg.A("transform", "translate("+formatFloat(x)+","+formatFloat(y)+")")).
			Append(t.Body...)
	}

	attrs := []svg.Attr{svg.Num("x", x), svg.Num("y", y)}
	if t.Width > 0 {
		attrs = append(attrs, svg.Num("width", t.Width))
	}
	attrs = append(attrs, svg.A("viewBox", t.ViewBox))
	attrs = append(attrs, t.Attrs...)

	return svg.El("svg", attrs...).Append(t.Body...)
}

// DefaultElement places the template at its default offset.
func (t Template) DefaultElement() *svg.Element {
	return t.Element(t.X, t.Y)
}

// Registry is a closed set of named templates. It is safe for concurrent reads
// once populated.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]Template
}

// NewRegistry returns a registry holding the built-in decorations.
func NewRegistry() *Registry {
	r := &Registry{templates: make(map[string]Template)}
	for _, t := range builtins() {
		r.templates[t.Name] = t
	}
	return r
}

// Register adds t, replacing any template with the same name.
func (r *Registry) Register(t Template) error {
	if !validName.MatchString(t.Name) || t.Name == None {
		return ErrInvalidName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.templates[t.Name] = t
	return nil
}

// Lookup returns the template registered under name.
func (r *Registry) Lookup(name string) (Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.templates[name]
	return t, ok
}

// Names lists registered template names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Element resolves name and places it, using x and y when they parse as numbers.
// ok is false for "none" and for unknown names, which render nothing.
func (r *Registry) Element(name, x, y string) (el *svg.Element, ok bool) {
	if name == None {
		return nil, false
	}

	t, found := r.Lookup(name)
	if !found {
		log.Debug().Str("decoration", name).Msg("Unknown decoration, rendering none")
		return nil, false
	}

	posX, posY := t.X, t.Y
	if v, ok := params.Float(x); ok {
		posX = v
	}
	if v, ok := params.Float(y); ok {
		posY = v
	}

	return t.Element(posX, posY), true
}

// Render returns the markup for the named decoration, or "" when there is none.
func (r *Registry) Render(name, x, y string) string {
	el, ok := r.Element(name, x, y)
	if !ok {
		return ""
	}
	return el.String()
}

func formatFloat(v float64) string {
	return svg.Num("", v).Value
}
