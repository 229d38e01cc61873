/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package style

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"chartkit/internal/vector"
)

// ParseColor understands SVG color keywords, #rgb, #rrggbb, #rrggbbaa,
// rgb(r, g, b) and the keywords "none" and "transparent".
func ParseColor(s string) (vector.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return vector.Color{}, fmt.Errorf("empty color")
	case "none", "transparent":
		return vector.Transparent, nil
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	if strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")") {
		parts := strings.Split(s[4:len(s)-1], ",")
		if len(parts) != 3 {
			return vector.Color{}, fmt.Errorf("invalid rgb() color %q", s)
		}
		var c [3]uint8
		for i, p := range parts {
			v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
			if err != nil {
				return vector.Color{}, fmt.Errorf("invalid rgb() component %q: %w", p, err)
			}
			c[i] = uint8(v)
		}
		return vector.Color{R: c[0], G: c[1], B: c[2], A: 255}, nil
	}
	if c, ok := colornames.Map[s]; ok {
		return vector.Color{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return vector.Color{}, fmt.Errorf("unknown color %q", s)
}

// MustColor is ParseColor falling back to def on error.
func MustColor(s string, def vector.Color) vector.Color {
	c, err := ParseColor(s)
	if err != nil {
		return def
	}
	return c
}

func parseHex(h string) (vector.Color, error) {
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]}) + "ff"
	case 6:
		h += "ff"
	case 8:
	default:
		return vector.Color{}, fmt.Errorf("invalid hex color #%s", h)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return vector.Color{}, fmt.Errorf("invalid hex color #%s: %w", h, err)
	}
	return vector.Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Paint converts a resolved bar style into backend paint: fill defaults to
// black, stroke to the fill, opacity to 1 and line width to 0.
func (s Style) Paint() vector.Paint {
	fill := "black"
	if s.Fill != "" {
		fill = s.Fill
	}
	stroke := fill
	if s.Stroke != "" {
		stroke = s.Stroke
	}
	return vector.Paint{
		Fill:      MustColor(fill, vector.Black),
		Stroke:    MustColor(stroke, vector.Black),
		Opacity:   Get(s.FillOpacity, 1),
		LineWidth: Get(s.StrokeWidth, 0),
	}
}
