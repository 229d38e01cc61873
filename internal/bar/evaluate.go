/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package bar

import (
	"math"

	"chartkit/internal/plot"
	"chartkit/internal/style"
)

// Evaluate resolves p in a fixed order: style, width, corner radius, then the
// independent text props. Each step sees the results of the previous ones.
func Evaluate(p Props) Evaluated {
	e := Evaluated{Props: p}
	a := Args{Props: &e.Props}

	e.Style = EvaluateStyle(p.Style, a, p.DisableInlineStyles)
	a.Style = e.Style

	e.BarWidth = EvaluateWidth(p.BarWidth, a)
	a.BarWidth = e.BarWidth

	e.CornerRadius = EvaluateCornerRadius(p.CornerRadius, a)

	e.AriaLabel = p.AriaLabel.Resolve(a)
	e.Desc = p.Desc.Resolve(a)
	e.ID = p.ID.Resolve(a)
	e.TabIndex = p.TabIndex.Resolve(a)

	e.Path = Path(e)
	return e
}

// EvaluateStyle resolves the style spec on top of the bar defaults: fill is
// black and stroke follows the explicit fill. Inline styles can be switched
// off entirely, which yields an empty style.
func EvaluateStyle(s style.Spec[Args], a Args, disabled bool) style.Style {
	if disabled {
		return style.Style{}
	}
	explicit := s.Resolve(a)
	stroke := "black"
	if explicit.Fill != "" {
		stroke = explicit.Fill
	}
	return style.Merge(style.Style{Fill: "black", Stroke: stroke}, explicit)
}

// EvaluateWidth picks the bar width from, in order, the barWidth prop, the
// style width and the scale. A literal zero counts as unset. The result is
// never below 1.
func EvaluateWidth(barWidth Number, a Args) float64 {
	var p Props
	if a.Props != nil {
		p = *a.Props
	}
	var w float64
	switch {
	case barWidth.IsDerived() || barWidth.Resolve(a) != 0:
		w = barWidth.Resolve(a)
	case style.Truthy(a.Style.Width):
		w = *a.Style.Width
	default:
		ratio := p.BarRatio
		if ratio == 0 {
			ratio = DefaultBarRatio
		}
		base := p.DefaultBarWidth
		if base == 0 {
			base = DefaultBarWidth
		}
		if len(p.Data) >= 2 {
			base = plot.Extent(p.Scale.X) / float64(len(p.Data)+2)
		}
		w = ratio * base
	}
	if math.IsNaN(w) || w < 1 {
		return 1
	}
	return w
}

// EvaluateCornerRadius resolves the corner radius prop into four corners.
// The single-value form only rounds the top corners. In the object form each
// corner uses its own key when set and the top/bottom shorthand otherwise.
// Negative values clamp to 0.
func EvaluateCornerRadius(spec CornerRadiusSpec, a Args) CornerRadius {
	if spec.IsZero() {
		return CornerRadius{}
	}
	if spec.All.IsSet() {
		r := nonNeg(spec.All.Resolve(a))
		return CornerRadius{TopLeft: r, TopRight: r}
	}
	corner := func(exact, fallback Number) float64 {
		switch {
		case exact.IsSet():
			return nonNeg(exact.Resolve(a))
		case fallback.IsSet():
			return nonNeg(fallback.Resolve(a))
		}
		return 0
	}
	return CornerRadius{
		TopLeft:     corner(spec.TopLeft, spec.Top),
		TopRight:    corner(spec.TopRight, spec.Top),
		BottomLeft:  corner(spec.BottomLeft, spec.Bottom),
		BottomRight: corner(spec.BottomRight, spec.Bottom),
	}
}

func nonNeg(v float64) float64 {
	if v > 0 {
		return v
	}
	return 0
}
