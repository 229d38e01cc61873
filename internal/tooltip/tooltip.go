/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package tooltip places annotation tooltips: it sizes the flyout around the
// measured label, offsets it from the anchor by the pointer, optionally keeps
// it inside the viewport and derives which side the pointer ends up on.
package tooltip

import (
	"chartkit/internal/plot"
	"chartkit/internal/prop"
	"chartkit/internal/style"
	"chartkit/internal/vector"
)

type Orientation string

const (
	Top    Orientation = "top"
	Bottom Orientation = "bottom"
	Left   Orientation = "left"
	Right  Orientation = "right"
)

// Orientations in the order used to break ties.
var Orientations = []Orientation{Bottom, Top, Left, Right}

// IsHorizontal reports whether the pointer points sideways.
func (o Orientation) IsHorizontal() bool { return o == Left || o == Right }

// IsVertical reports whether the pointer points up or down.
func (o Orientation) IsVertical() bool { return o == Top || o == Bottom }

// LabelPlacement controls polar label orientation.
type LabelPlacement string

const (
	Vertical      LabelPlacement = "vertical"
	Parallel      LabelPlacement = "parallel"
	Perpendicular LabelPlacement = "perpendicular"
)

// Fallbacks for props that neither the caller nor the theme set.
const (
	FallbackCornerRadius  = 5
	FallbackPointerLength = 10
	FallbackPointerWidth  = 10
)

// Args is what derived tooltip props see.
type Args struct {
	Props *Props
}

type Number = prop.Value[float64, Args]

// N wraps a literal number prop.
func N(v float64) Number { return prop.Lit[float64, Args](v) }

// Fn wraps a derived number prop.
func Fn(f func(Args) float64) Number { return prop.Func(f) }

// Center overrides the computed flyout center per axis.
type Center struct {
	X, Y       float64
	HasX, HasY bool
}

// CenterAt overrides both axes.
func CenterAt(x, y float64) Center { return Center{X: x, Y: y, HasX: true, HasY: true} }

// CenterOffset shifts the flyout center after overrides.
type CenterOffset struct {
	X, Y Number
}

// Theme carries the tooltip defaults of a chart theme. Nil numbers are unset.
type Theme struct {
	Style         style.Style `yaml:"style,omitempty" json:"style,omitempty"`
	FlyoutStyle   style.Style `yaml:"flyoutStyle,omitempty" json:"flyoutStyle,omitempty"`
	CornerRadius  *float64    `yaml:"cornerRadius,omitempty" json:"cornerRadius,omitempty"`
	PointerLength *float64    `yaml:"pointerLength,omitempty" json:"pointerLength,omitempty"`
	PointerWidth  *float64    `yaml:"pointerWidth,omitempty" json:"pointerWidth,omitempty"`
}

// Props describes one tooltip. X and Y are the anchor in pixels; Width and
// Height are the viewport used by ConstrainToVisibleArea.
type Props struct {
	X, Y  float64
	Datum plot.Datum
	Scale plot.Scales

	Horizontal     bool
	Polar          bool
	LabelPlacement LabelPlacement
	Angle          float64

	Orientation  prop.Value[Orientation, Args]
	Center       Center
	CenterOffset CenterOffset
	Dx, Dy       Number

	CornerRadius  Number
	PointerLength Number
	PointerWidth  Number
	FlyoutWidth   Number
	FlyoutHeight  Number

	Active prop.Value[bool, Args]
	Text   prop.Value[[]string, Args]

	// Style holds one label style fragment per text line; a single entry
	// styles every line.
	Style       []style.Spec[Args]
	FlyoutStyle style.Spec[Args]

	ConstrainToVisibleArea bool
	Width, Height          float64

	RenderInPortal bool
	Theme          Theme
}

// Evaluated holds every dynamic prop resolved once, in order.
type Evaluated struct {
	Props         Props
	Style         []style.Style
	FlyoutStyle   style.Style
	Orientation   Orientation
	Dx, Dy        float64
	CornerRadius  float64
	PointerLength float64
	PointerWidth  float64
	FlyoutWidth   float64
	FlyoutHeight  float64
	Active        bool
	Text          []string
}

// Flyout describes the background shape of a tooltip.
type Flyout struct {
	X             float64     `json:"x"`
	Y             float64     `json:"y"`
	Dx            float64     `json:"dx"`
	Dy            float64     `json:"dy"`
	Orientation   Orientation `json:"orientation"`
	CornerRadius  float64     `json:"cornerRadius"`
	PointerLength float64     `json:"pointerLength"`
	PointerWidth  float64     `json:"pointerWidth"`
	Width         float64     `json:"width"`
	Height        float64     `json:"height"`
	Center        vector.Pt   `json:"center"`
	Style         style.Style `json:"style"`
	Path          string      `json:"path"`
}

// Label describes where and how the tooltip text is drawn.
type Label struct {
	X              float64       `json:"x"`
	Y              float64       `json:"y"`
	TextAnchor     string        `json:"textAnchor"`
	VerticalAnchor string        `json:"verticalAnchor"`
	Angle          float64       `json:"angle,omitempty"`
	Style          []style.Style `json:"style"`
	Text           []string      `json:"text"`
}

// Placement is the complete geometry of a visible tooltip.
type Placement struct {
	Flyout    Flyout      `json:"flyout"`
	Label     Label       `json:"label"`
	LabelSize vector.Size `json:"labelSize"`
	// Angle is the rotation about the anchor; Transform is its matrix and
	// TransformAttr the SVG attribute, identity and empty when Angle is 0.
	Angle         float64         `json:"angle,omitempty"`
	Transform     vector.Affine2D `json:"-"`
	TransformAttr string          `json:"transform,omitempty"`
}

// Result is the output of Render. Placement is nil for inactive tooltips;
// Portal still reports a placeholder for them when portal rendering is on.
type Result struct {
	Portal    bool
	Placement *Placement
}
