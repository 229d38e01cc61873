/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package chart turns a chart document into bar and tooltip props, lays them
// out and draws the result on a vector.Drawable.
package chart

import (
	"errors"
	"fmt"
	"math"

	"chartkit/internal/bar"
	"chartkit/internal/domain"
	"chartkit/internal/plot"
	"chartkit/internal/prop"
	"chartkit/internal/style"
	"chartkit/internal/theme"
	"chartkit/internal/tooltip"
	"chartkit/internal/vector"
)

// Options carries the user-level defaults that apply beneath a document.
type Options struct {
	// Theme is used when the document names none; empty means grayscale.
	Theme string
	// Tooltip holds fallbacks that sit between the package fallbacks and
	// the theme.
	Tooltip tooltip.Theme
	// Sheet resolves theme names; nil means the builtins only.
	Sheet *theme.Sheet
}

// Scene is a chart ready for layout.
type Scene struct {
	Title      string
	Width      float64
	Height     float64
	Background vector.Color
	Theme      theme.Theme
	Scales     plot.Scales
	Origin     vector.Pt
	Bars       []bar.Props
	Tooltips   []tooltip.Props
}

var ErrNoData = errors.New("chart has no data")

// Build maps the document data onto the plot area and creates one bar per
// datum plus the requested tooltips.
func Build(doc domain.Chart, opts Options) (Scene, error) {
	if len(doc.Data) == 0 {
		return Scene{}, ErrNoData
	}
	w, h := doc.Width, doc.Height
	if w <= 0 {
		w = domain.DefaultWidth
	}
	if h <= 0 {
		h = domain.DefaultHeight
	}

	sheet := opts.Sheet
	if sheet == nil {
		sheet = theme.NewSheet()
	}
	sheet = sheet.WithDocument(doc.Themes)
	def := opts.Theme
	if def == "" {
		def = theme.Grayscale
	}
	name := doc.ThemeName(def)
	th, ok := sheet.Resolve(name)
	if !ok {
		return Scene{}, fmt.Errorf("unknown theme %q", name)
	}
	th = theme.Merge(theme.Theme{Tooltip: opts.Tooltip}, th)

	bg, err := background(doc.Background)
	if err != nil {
		return Scene{}, err
	}
	s := Scene{Title: doc.Title, Width: w, Height: h, Background: bg, Theme: th}
	s.Scales, s.Origin = scales(doc, w, h)

	for i, d := range doc.Data {
		s.Bars = append(s.Bars, barProps(doc, s, i, d))
	}

	explicit := map[int]bool{}
	for _, t := range doc.Tooltips {
		if t.Datum < 0 || t.Datum >= len(doc.Data) {
			return Scene{}, fmt.Errorf("tooltip datum %d out of range", t.Datum)
		}
		explicit[t.Datum] = true
		s.Tooltips = append(s.Tooltips, tooltipProps(doc, s, t))
	}
	if doc.Bars.Tooltips {
		for i, d := range doc.Data {
			if d.Label == "" || explicit[i] {
				continue
			}
			s.Tooltips = append(s.Tooltips, tooltipProps(doc, s, domain.Tooltip{Datum: i}))
		}
	}
	return s, nil
}

func background(s string) (vector.Color, error) {
	if s == "" {
		return vector.White, nil
	}
	c, err := style.ParseColor(s)
	if err != nil {
		return vector.Color{}, fmt.Errorf("background: %w", err)
	}
	return c, nil
}

// scales returns the category (X) and value (Y) scales. Cartesian charts map
// onto the padded plot area, the value axis pointing up (or right for
// horizontal charts). Polar charts map categories onto a full turn and values
// onto radii around the center.
func scales(doc domain.Chart, w, h float64) (plot.Scales, vector.Pt) {
	pad := doc.PaddingOr()
	xLo, xHi := plot.CategoryDomain(doc.Data)
	yLo, yHi := plot.Domain(doc.Data, func(d plot.Datum) float64 { return d.Y })
	switch {
	case doc.Polar:
		outer := math.Max(1, math.Min(w, h)/2-pad)
		inner := math.Min(doc.InnerRadius, outer)
		return plot.Scales{
			X: plot.NewLinear(xLo, xHi, 0, 2*math.Pi),
			Y: plot.NewLinear(yLo, yHi, inner, outer),
		}, vector.Pt{X: w / 2, Y: h / 2}
	case doc.Horizontal:
		return plot.Scales{
			X: plot.NewLinear(xLo, xHi, pad, h-pad),
			Y: plot.NewLinear(yLo, yHi, pad, w-pad),
		}, vector.Pt{}
	default:
		return plot.Scales{
			X: plot.NewLinear(xLo, xHi, pad, w-pad),
			Y: plot.NewLinear(yLo, yHi, h-pad, pad),
		}, vector.Pt{}
	}
}

func barProps(doc domain.Chart, s Scene, i int, d plot.Datum) bar.Props {
	p := bar.Props{
		X:          s.Scales.X.Map(d.X),
		Y:          s.Scales.Y.Map(d.Y),
		Y0:         s.Scales.Y.Map(d.Y0),
		Datum:      d,
		Data:       doc.Data,
		Scale:      s.Scales,
		Horizontal: doc.Horizontal,
		Polar:      doc.Polar,
		Origin:     s.Origin,
		Alignment:  bar.Alignment(doc.Bars.Alignment),
		Style:      style.Static[bar.Args](style.Merge(s.Theme.Bar, doc.Bars.Style)),
		BarRatio:   doc.Bars.BarRatio,
		ID:         prop.Lit[string, bar.Args](fmt.Sprintf("bar-%d", i)),
	}
	if d.Label != "" {
		p.AriaLabel = prop.Lit[string, bar.Args](d.Label)
	}
	switch {
	case doc.Bars.BarWidth > 0:
		p.BarWidth = bar.N(doc.Bars.BarWidth)
	case doc.Polar:
		// the pixel range of a polar category scale is an angle, so size
		// the bar from its share of the turn at the outer radius
		ratio := doc.Bars.BarRatio
		if ratio == 0 {
			ratio = bar.DefaultBarRatio
		}
		slot := 2 * math.Pi / float64(len(doc.Data))
		p.BarWidth = bar.Fn(func(a bar.Args) float64 { return ratio * slot * a.Props.Y })
	}
	if c := doc.Bars.CornerRadius; c != nil {
		p.CornerRadius = corners(*c)
	}
	return p
}

func corners(c domain.Corners) bar.CornerRadiusSpec {
	num := func(v *float64) bar.Number {
		if v == nil {
			return bar.Number{}
		}
		return bar.N(*v)
	}
	if c.All != nil {
		return bar.Uniform(*c.All)
	}
	return bar.CornerRadiusSpec{
		Top:         num(c.Top),
		Bottom:      num(c.Bottom),
		TopLeft:     num(c.TopLeft),
		TopRight:    num(c.TopRight),
		BottomLeft:  num(c.BottomLeft),
		BottomRight: num(c.BottomRight),
	}
}

// anchor is the value end of the datum's bar in screen coordinates.
func anchor(doc domain.Chart, s Scene, d plot.Datum) vector.Pt {
	x, y := s.Scales.X.Map(d.X), s.Scales.Y.Map(d.Y)
	switch {
	case doc.Polar:
		return vector.Pt{X: s.Origin.X + y*math.Cos(x), Y: s.Origin.Y - y*math.Sin(x)}
	case doc.Horizontal:
		return vector.Pt{X: y, Y: x}
	default:
		return vector.Pt{X: x, Y: y}
	}
}

func tooltipProps(doc domain.Chart, s Scene, t domain.Tooltip) tooltip.Props {
	d := doc.Data[t.Datum]
	at := anchor(doc, s, d)
	num := func(v *float64) tooltip.Number {
		if v == nil {
			return tooltip.Number{}
		}
		return tooltip.N(*v)
	}
	text := t.Text
	if text == "" {
		text = d.Label
	}
	p := tooltip.Props{
		X: at.X, Y: at.Y,
		Datum:                  d,
		Scale:                  s.Scales,
		Horizontal:             doc.Horizontal,
		Polar:                  doc.Polar,
		LabelPlacement:         tooltip.LabelPlacement(t.LabelPlacement),
		Angle:                  t.Angle,
		Dx:                     num(t.Dx),
		Dy:                     num(t.Dy),
		CornerRadius:           num(t.CornerRadius),
		PointerLength:          num(t.PointerLength),
		PointerWidth:           num(t.PointerWidth),
		Active:                 prop.Lit[bool, tooltip.Args](t.IsActive()),
		Text:                   tooltip.TextOf(text),
		FlyoutStyle:            style.Static[tooltip.Args](t.FlyoutStyle),
		ConstrainToVisibleArea: t.Constrain,
		Width:                  s.Width,
		Height:                 s.Height,
		Theme:                  s.Theme.Tooltip,
	}
	if t.Orientation != "" {
		p.Orientation = prop.Lit[tooltip.Orientation, tooltip.Args](tooltip.Orientation(t.Orientation))
	}
	if t.FlyoutWidth > 0 {
		p.FlyoutWidth = tooltip.N(t.FlyoutWidth)
	}
	if t.FlyoutHeight > 0 {
		p.FlyoutHeight = tooltip.N(t.FlyoutHeight)
	}
	for _, st := range t.Style {
		p.Style = append(p.Style, style.Static[tooltip.Args](st))
	}
	return p
}
