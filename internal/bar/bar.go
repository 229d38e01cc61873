/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package bar derives the drawable shape of a single bar: its width, its
// per-corner rounding and its outline path.
package bar

import (
	"chartkit/internal/plot"
	"chartkit/internal/prop"
	"chartkit/internal/style"
	"chartkit/internal/vector"
)

// Fallbacks used when the corresponding prop is unset or zero.
const (
	DefaultBarRatio = 0.5
	DefaultBarWidth = 8
)

// Args is what derived props see. Fields are filled in evaluation order:
// Style is set once the style is resolved, BarWidth once the width is.
type Args struct {
	Props    *Props
	Style    style.Style
	BarWidth float64
}

// Number is a numeric prop, literal or derived from Args.
type Number = prop.Value[float64, Args]

// Text is a string prop, literal or derived from Args.
type Text = prop.Value[string, Args]

// Alignment positions the bar relative to its category coordinate.
type Alignment string

const (
	AlignStart  Alignment = "start"
	AlignMiddle Alignment = "middle"
	AlignEnd    Alignment = "end"
)

// Props describes one bar. Coordinates are in pixels.
//
// Vertical bars: X is the category center, Y the value end and Y0 the
// baseline, all on their screen axes. Horizontal bars keep the same meaning
// with the axes swapped: X is the screen y of the category, Y and Y0 are
// screen x. Polar bars use X as the angle in radians (counterclockwise from
// 3 o'clock), Y as the outer and Y0 as the inner radius, relative to Origin.
type Props struct {
	X, Y, Y0 float64
	Datum    plot.Datum
	Data     []plot.Datum
	Scale    plot.Scales

	Horizontal bool
	Polar      bool
	Origin     vector.Pt
	Alignment  Alignment

	Style           style.Spec[Args]
	BarWidth        Number
	CornerRadius    CornerRadiusSpec
	BarRatio        float64
	DefaultBarWidth float64

	// GetPath replaces the built-in outlines when set.
	GetPath func(p Props, width float64) string

	DisableInlineStyles bool

	AriaLabel Text
	Desc      Text
	ID        Text
	TabIndex  prop.Value[int, Args]
}

// CornerRadius is the resolved rounding of the four bar corners. "Top" is the
// value end of the bar and "left" the lower category coordinate.
type CornerRadius struct {
	TopLeft     float64 `json:"topLeft"`
	TopRight    float64 `json:"topRight"`
	BottomLeft  float64 `json:"bottomLeft"`
	BottomRight float64 `json:"bottomRight"`
}

// CornerRadiusSpec is the corner radius prop. All is the single-value form;
// the remaining fields are the object form where Top and Bottom are
// shorthands for the two corners on that end.
type CornerRadiusSpec struct {
	All Number

	Top         Number
	Bottom      Number
	TopLeft     Number
	TopRight    Number
	BottomLeft  Number
	BottomRight Number
}

// Uniform is the single-value form.
func Uniform(r float64) CornerRadiusSpec { return CornerRadiusSpec{All: prop.Lit[float64, Args](r)} }

// N wraps a literal number prop.
func N(v float64) Number { return prop.Lit[float64, Args](v) }

// Fn wraps a derived number prop.
func Fn(f func(Args) float64) Number { return prop.Func(f) }

func (c CornerRadiusSpec) IsZero() bool {
	return !c.All.IsSet() && !c.Top.IsSet() && !c.Bottom.IsSet() &&
		!c.TopLeft.IsSet() && !c.TopRight.IsSet() && !c.BottomLeft.IsSet() && !c.BottomRight.IsSet()
}

// Evaluated is a bar with every prop resolved.
type Evaluated struct {
	Props        Props
	Style        style.Style
	BarWidth     float64
	CornerRadius CornerRadius
	AriaLabel    string
	Desc         string
	ID           string
	TabIndex     int
	Path         string
}
