package decoration

import "github.com/MikhailRaia/readme-cards/internal/svg"

// FloatingPath is the translucent shape that bobs beside the stats card.
var FloatingPath = Template{
	Name:    "float",
	X:       400,
	Y:       0,
	Width:   80,
	ViewBox: "0 0 230.7 357.6",
	Attrs:   []svg.Attr{svg.A("fill-opacity", "0.2")},
	Body: []svg.Node{
		svg.El("path",
			svg.A("d", "M1045.4,483.4c40.5-5.7,81.4-2,122.1-3.7,7.4-.1,7.4-.1,7.5-7.6s4.5-14.6,12.6-12.1-.5,17.9,8.6,19.2c12.6.7,25.2,2.6,37.6-2,8.9-3.3,12.9-.5,13.3,9s-1.8,15.3-11.5,11.7c-11.5-3.7-23.1-2.9-34.7-2.6-8.3.3-8.4.6-8.9,8.9s-3.2,11-11.5,9c-11.2-4.4,1.7-18.9-16.5-17.1C1124.9,493.3,1080.5,504.6,1045.4,483.4Z"),
			svg.A("transform", "translate(-1045.4 -302.8)"),
		).Append(
			svg.El("animateTransform",
				svg.A("attributeName", "transform"),
				svg.A("attributeType", "XML"),
				svg.A("type", "translate"),
				svg.A("values", "-1045.4,-302.8; -1045.4,-320.8; -1045.4,-310.8; -1045.4,-325.8; -1045.4,-302.8"),
				svg.A("keyTimes", "0; 0.25; 0.5; 0.75; 1"),
				svg.A("dur", "5s"),
				svg.A("repeatCount", "indefinite"),
			),
		),
	},
}

var cat = Template{
	Name:    "cat",
	X:       380,
	Y:       45,
	Width:   100,
	ViewBox: "0 0 100 100",
	Body: []svg.Node{
		svg.El("g").Append(
			svg.El("animateTransform",
				svg.A("attributeName", "transform"),
				svg.A("type", "translate"),
				svg.A("values", "0,0; 0,-4; 0,0"),
				svg.A("dur", "3s"),
				svg.A("repeatCount", "indefinite"),
			),
			svg.El("path", svg.A("d", "M18 42 L26 10 L44 30 Z"), svg.A("fill", "#f4a261")),
			svg.El("path", svg.A("d", "M82 42 L74 10 L56 30 Z"), svg.A("fill", "#f4a261")),
			svg.El("ellipse", svg.A("cx", "50"), svg.A("cy", "54"), svg.A("rx", "34"), svg.A("ry", "28"), svg.A("fill", "#f4a261")),
			svg.El("circle", svg.A("cx", "38"), svg.A("cy", "50"), svg.A("r", "4"), svg.A("fill", "#333333")),
			svg.El("circle", svg.A("cx", "62"), svg.A("cy", "50"), svg.A("r", "4"), svg.A("fill", "#333333")),
			svg.El("path", svg.A("d", "M46 60 L54 60 L50 65 Z"), svg.A("fill", "#e76f51")),
			svg.El("path",
				svg.A("d", "M50 65 Q44 72 38 68 M50 65 Q56 72 62 68 M30 58 L12 55 M30 62 L12 64 M70 58 L88 55 M70 62 L88 64"),
				svg.A("fill", "none"),
				svg.A("stroke", "#333333"),
				svg.A("stroke-width", "2"),
				svg.A("stroke-linecap", "round"),
			),
		),
	},
}

var star = Template{
	Name:    "star",
	X:       430,
	Y:       15,
	Width:   40,
	ViewBox: "0 0 100 100",
	Body: []svg.Node{
		svg.El("polygon",
			svg.A("points", "50,5 61,39 97,39 68,60 79,95 50,74 21,95 32,60 3,39 39,39"),
			svg.A("fill", "#ffd166"),
		).Append(
			svg.El("animate",
				svg.A("attributeName", "opacity"),
				svg.A("values", "1;0.4;1"),
				svg.A("dur", "2s"),
				svg.A("repeatCount", "indefinite"),
			),
		),
	},
}

func builtins() []Template {
	return []Template{cat, star, FloatingPath}
}
