package card

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/MikhailRaia/readme-cards/internal/decoration"
	"github.com/MikhailRaia/readme-cards/internal/params"
	"github.com/MikhailRaia/readme-cards/internal/svg"
	"github.com/MikhailRaia/readme-cards/internal/upstream"
)

// ErrUsernameRequired is returned when the request has no username.
var ErrUsernameRequired = errors.New("username is required")

const (
	statsWidth  = 500
	statsHeight = 200

	topLangsWidth  = 500
	topLangsHeight = 170
)

var (
	statsDefaults = []params.Pair{
		{Key: "show_icons", Value: "true"},
		{Key: "hide_rank", Value: "true"},
		{Key: "hide_border", Value: "true"},
		{Key: "card_width", Value: "350"},
	}

	topLangsDefaults = []params.Pair{
		{Key: "layout", Value: "compact"},
		{Key: "card_width", Value: "350"},
		{Key: "hide_border", Value: "true"},
		{Key: "show_bg", Value: "1"},
	}

	// Parameters consumed by the top-langs card itself and never forwarded.
	topLangsOwnParams = []string{"decoration", "decoration_x", "decoration_y", "svg_width", "svg_height"}
)

// Fetcher retrieves upstream SVG text.
type Fetcher interface {
	FetchSVG(ctx context.Context, baseURL string, params url.Values) (string, error)
}

// Decorations resolves a named decoration placed at optional offsets.
type Decorations interface {
	Element(name, x, y string) (*svg.Element, bool)
}

// Service composes decorated cards from upstream SVGs.
type Service struct {
	fetcher     Fetcher
	decorations Decorations
	statsURL    string
	topLangsURL string
}

// NewService constructs a Service for the given upstream endpoints.
func NewService(fetcher Fetcher, decorations Decorations, statsURL, topLangsURL string) *Service {
	return &Service{
		fetcher:     fetcher,
		decorations: decorations,
		statsURL:    statsURL,
		topLangsURL: topLangsURL,
	}
}

// Stats fetches the upstream stats card and re-embeds its content in a
// fixed-size container with the floating path decoration.
func (s *Service) Stats(ctx context.Context, query url.Values) (string, error) {
	username, err := requireUsername(query)
	if err != nil {
		return "", err
	}

	upstreamParams := params.Merge(statsDefaults, query)
	upstreamParams.Set("username", username)

	original, err := s.fetcher.FetchSVG(ctx, s.statsURL, upstreamParams)
	if err != nil {
		return "", fmt.Errorf("error fetching stats card: %w", err)
	}

	doc := svg.Document(strconv.Itoa(statsWidth), strconv.Itoa(statsHeight)).Append(
		background(statsWidth-1, "98%"),
		svg.El("g").Append(svg.Raw(svg.ExtractContent(original))),
		decoration.FloatingPath.DefaultElement(),
	)

	return doc.String(), nil
}

// TopLangs validates the upstream top languages card and returns a container
// that references it by URL, followed by the requested decoration.
func (s *Service) TopLangs(ctx context.Context, query url.Values) (string, error) {
	username, err := requireUsername(query)
	if err != nil {
		return "", err
	}

	width := params.PositiveInt(query.Get("svg_width"), topLangsWidth)
	height := params.PositiveInt(query.Get("svg_height"), topLangsHeight)

	upstreamParams := params.Merge(topLangsDefaults, query, topLangsOwnParams...)
	upstreamParams.Set("username", username)

	if _, err := s.fetcher.FetchSVG(ctx, s.topLangsURL, upstreamParams); err != nil {
		return "", fmt.Errorf("error fetching top languages card: %w", err)
	}

	imageURL, err := upstream.BuildURL(s.topLangsURL, upstreamParams)
	if err != nil {
		return "", err
	}

	doc := svg.Document(strconv.Itoa(width), strconv.Itoa(height)).Append(
		background(width-1, "99%"),
		svg.El("image", svg.A("href", imageURL)),
	)

	name := query.Get("decoration")
	if name == "" {
		name = decoration.Default
	}
	if el, ok := s.decorations.Element(name, query.Get("decoration_x"), query.Get("decoration_y")); ok {
		doc.Append(el)
	}

	return doc.String(), nil
}

func requireUsername(query url.Values) (string, error) {
	username := strings.TrimSpace(query.Get("username"))
	if username == "" {
		return "", ErrUsernameRequired
	}
	return username, nil
}

func background(width int, height string) *svg.Element {
	return svg.El("rect",
		svg.A("x", "0.5"),
		svg.A("y", "0.5"),
		svg.A("rx", "4.5"),
		svg.A("height", height),
		svg.A("width", strconv.Itoa(width)),
		svg.A("fill", "#fffefe"),
		svg.A("stroke", "#e4e2e2"),
		svg.A("stroke-opacity", "1"),
	)
}
