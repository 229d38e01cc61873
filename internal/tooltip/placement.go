/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package tooltip

import (
	"math"
	"strings"

	"chartkit/internal/prop"
	"chartkit/internal/style"
	"chartkit/internal/textlayout"
	"chartkit/internal/vector"
)

// TextOf splits s into label lines.
func TextOf(s string) prop.Value[[]string, Args] {
	return prop.Lit[[]string, Args](strings.Split(s, "\n"))
}

// Evaluate resolves the dynamic props of p. dx and dy default to the flyout
// padding along the value axis; corner radius and pointer size fall back to
// the theme and then to the package fallbacks.
func Evaluate(p Props) Evaluated {
	e := Evaluated{Props: p}
	a := Args{Props: &e.Props}

	if len(p.Style) == 0 {
		e.Style = []style.Style{{}}
	} else {
		e.Style = make([]style.Style, len(p.Style))
		for i, s := range p.Style {
			e.Style[i] = s.Resolve(a)
		}
	}
	e.FlyoutStyle = p.FlyoutStyle.Resolve(a)

	padding := style.Get(e.FlyoutStyle.Padding, 0)
	defaultDx, defaultDy := 0.0, padding
	if p.Horizontal {
		defaultDx, defaultDy = padding, 0
	}
	e.Dx = p.Dx.ResolveOr(a, defaultDx)
	e.Dy = p.Dy.ResolveOr(a, defaultDy)

	e.Orientation = p.Orientation.Resolve(a)
	if e.Orientation == "" {
		e.Orientation = DefaultOrientation(p)
	}

	e.CornerRadius = withFallback(p.CornerRadius, a, p.Theme.CornerRadius, FallbackCornerRadius)
	e.PointerLength = withFallback(p.PointerLength, a, p.Theme.PointerLength, FallbackPointerLength)
	e.PointerWidth = withFallback(p.PointerWidth, a, p.Theme.PointerWidth, FallbackPointerWidth)
	e.FlyoutWidth = p.FlyoutWidth.Resolve(a)
	e.FlyoutHeight = p.FlyoutHeight.Resolve(a)
	e.Active = p.Active.Resolve(a)
	e.Text = append([]string(nil), p.Text.Resolve(a)...)
	return e
}

func withFallback(v Number, a Args, theme *float64, fallback float64) float64 {
	if v.IsSet() {
		return v.Resolve(a)
	}
	return style.Get(theme, fallback)
}

// LabelPadding is the largest padding among the style fragments, or 0.
func LabelPadding(styles []style.Style) float64 {
	pad := 0.0
	for _, s := range styles {
		pad = math.Max(pad, style.Get(s.Padding, 0))
	}
	return pad
}

// MinSize is the smallest flyout that still fits its rounded corners and,
// on the pointer axis, the pointer.
func MinSize(o Orientation, cornerRadius, pointerLength, pointerWidth float64) vector.Size {
	minH := 2 * cornerRadius
	if !o.IsVertical() {
		minH += pointerWidth
	}
	minW := 2 * cornerRadius
	if o.IsHorizontal() {
		minW += pointerLength
	}
	return vector.Size{W: minW, H: minH}
}

// Dimensions sizes the flyout around text. Explicit positive flyout sizes are
// used as given.
func Dimensions(e Evaluated, text vector.Size, labelStyles []style.Style) vector.Size {
	pad := LabelPadding(labelStyles)
	floor := MinSize(e.Orientation, e.CornerRadius, e.PointerLength, e.PointerWidth)
	h := e.FlyoutHeight
	if h <= 0 {
		h = math.Max(floor.H, text.H+pad) + pad/2
	}
	w := e.FlyoutWidth
	if w <= 0 {
		w = math.Max(floor.W, text.W+pad) + pad
	}
	return vector.Size{W: w, H: h}
}

// FlyoutCenter places the flyout center: pointer length plus half the box
// away from the anchor on the orientation axis, dx/dy on the other, then the
// explicit center, the center offset and finally the viewport constraint.
func FlyoutCenter(e Evaluated, dims vector.Size) vector.Pt {
	p := e.Props
	c := vector.Pt{X: p.X + e.Dx, Y: p.Y + e.Dy}
	if e.Orientation.IsHorizontal() {
		sign := 1.0
		if e.Orientation == Left {
			sign = -1
		}
		c.X = p.X + sign*(e.PointerLength+dims.W/2+sign*e.Dx)
	}
	if e.Orientation.IsVertical() {
		sign := 1.0
		if e.Orientation == Bottom {
			sign = -1
		}
		c.Y = p.Y - sign*(e.PointerLength+dims.H/2-sign*e.Dy)
	}

	if p.Center.HasX {
		c.X = p.Center.X
	}
	if p.Center.HasY {
		c.Y = p.Center.Y
	}

	a := Args{Props: &e.Props}
	c.X += p.CenterOffset.X.Resolve(a)
	c.Y += p.CenterOffset.Y.Resolve(a)

	if p.ConstrainToVisibleArea {
		return Constrain(c, dims, p.Width, p.Height)
	}
	return c
}

// Constrain shifts a flyout centered on c back into [0,width]x[0,height] and
// rounds the result to whole pixels. A flyout that already fits only gets
// rounded.
func Constrain(c vector.Pt, dims vector.Size, width, height float64) vector.Pt {
	box := vector.CenteredRect(c, dims)
	var left, right, top, bottom float64
	if box.X < 0 {
		left = -box.X
	}
	if box.X+box.W > width {
		right = box.X + box.W - width
	}
	if box.Y < 0 {
		top = -box.Y
	}
	if box.Y+box.H > height {
		bottom = box.Y + box.H - height
	}
	return vector.Pt{
		X: vector.RoundHalfUp(c.X + left - right),
		Y: vector.RoundHalfUp(c.Y + top - bottom),
	}
}

// RotationAngle picks the label rotation: a single label style's angle, then
// the angle prop, then the polar default. Zero means no rotation.
func RotationAngle(e Evaluated) float64 {
	if len(e.Style) == 1 && style.Truthy(e.Style[0].Angle) {
		return *e.Style[0].Angle
	}
	if e.Props.Angle != 0 {
		return e.Props.Angle
	}
	return DefaultAngle(e.Props, e.Orientation)
}

// Transform rotates by angle degrees about the anchor. It returns the
// identity and an empty attribute for angle 0.
func Transform(angle float64, anchor vector.Pt) (vector.Affine2D, string) {
	if angle == 0 {
		return vector.Identity, ""
	}
	attr := "rotate(" + vector.FormatNum(angle) + " " + vector.FormatNum(anchor.X) + " " + vector.FormatNum(anchor.Y) + ")"
	return vector.RotateAbout(angle, anchor.X, anchor.Y), attr
}

// Render evaluates p and, when the tooltip is active, computes its placement.
func Render(p Props, m textlayout.Measurer) Result {
	e := Evaluate(p)
	res := Result{Portal: p.RenderInPortal}
	if !e.Active {
		return res
	}
	pl := Place(e, m)
	res.Placement = &pl
	return res
}

// Place computes the geometry of an evaluated tooltip.
func Place(e Evaluated, m textlayout.Measurer) Placement {
	p := e.Props
	labelStyles := make([]style.Style, len(e.Style))
	for i, s := range e.Style {
		labelStyles[i] = style.Merge(p.Theme.Style, s)
	}
	flyoutStyle := style.Merge(p.Theme.FlyoutStyle, e.FlyoutStyle)

	var size vector.Size
	if m != nil {
		size = m.Measure(e.Text, labelStyles)
	}
	dims := Dimensions(e, size, labelStyles)
	center := FlyoutCenter(e, dims)
	anchor := vector.Pt{X: p.X, Y: p.Y}
	final := FinalOrientation(anchor, center, dims)

	callout := vector.ComputeCallout(vector.CalloutOptions{
		Center:       center,
		Size:         dims,
		Radius:       e.CornerRadius,
		Side:         string(final),
		Tip:          vector.Pt{X: p.X + e.Dx, Y: p.Y + e.Dy},
		PointerWidth: e.PointerWidth,
	})

	angle := RotationAngle(e)
	xf, attr := Transform(angle, anchor)

	return Placement{
		Flyout: Flyout{
			X: p.X, Y: p.Y, Dx: e.Dx, Dy: e.Dy,
			Orientation:   final,
			CornerRadius:  e.CornerRadius,
			PointerLength: e.PointerLength,
			PointerWidth:  e.PointerWidth,
			Width:         dims.W,
			Height:        dims.H,
			Center:        center,
			Style:         flyoutStyle,
			Path:          callout.Path.String(),
		},
		Label:         label(e, labelStyles, center, size),
		LabelSize:     size,
		Angle:         angle,
		Transform:     xf,
		TransformAttr: attr,
	}
}

// label anchors the text at the flyout center, shifted by half the text
// width for start and end anchors.
func label(e Evaluated, labelStyles []style.Style, center vector.Pt, size vector.Size) Label {
	anchor := ""
	if len(labelStyles) > 0 {
		anchor = labelStyles[0].TextAnchor
	}
	if anchor == "" {
		anchor = "middle"
	}
	x := center.X
	if anchor != "middle" {
		sign := 1.0
		if anchor == "end" {
			sign = -1
		}
		x = center.X - sign*size.W/2
	}
	var angle float64
	if len(labelStyles) == 1 {
		angle = style.Get(labelStyles[0].Angle, 0)
	}
	return Label{
		X:              x,
		Y:              center.Y,
		TextAnchor:     anchor,
		VerticalAnchor: "middle",
		Angle:          angle,
		Style:          labelStyles,
		Text:           e.Text,
	}
}
