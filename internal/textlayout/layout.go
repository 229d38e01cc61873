/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

// Text measurement for labels. All measurement goes through a Provider so
// tests and the CLI can swap the bundled bitmap face for real fonts.

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"chartkit/internal/style"
	"chartkit/internal/vector"
)

// Label text defaults when a style leaves them unset.
const (
	DefaultFontSize   = 14
	DefaultLineHeight = 1
)

// FontSpec describes a requested font.
type FontSpec struct {
	Family string // CSS-like list, e.g. "'Gill Sans', sans-serif"
	SizePx float64
	Weight int // 100..900
	Italic bool
}

// Metrics provides font metrics in pixels for the resolved face. Scale
// multiplies advances of faces that cannot be sized, like the bitmap fallback.
type Metrics struct {
	Ascent, Descent, LineGap float64
	Scale                    float64
}

// Provider maps FontSpec to a concrete font.Face.
type Provider interface {
	Resolve(FontSpec) (font.Face, Metrics)
}

// BasicProvider uses x/image/basicfont Face7x13 scaled to the requested size.
// It is deterministic and needs no font files.
type BasicProvider struct{}

const basicHeight = 13

func (BasicProvider) Resolve(spec FontSpec) (font.Face, Metrics) {
	f := basicfont.Face7x13
	m := f.Metrics()
	size := spec.SizePx
	if size <= 0 {
		size = DefaultFontSize
	}
	k := size / basicHeight
	return f, Metrics{
		Ascent:  float64(m.Ascent.Round()) * k,
		Descent: float64(m.Descent.Round()) * k,
		LineGap: float64(m.Height.Round()-m.Ascent.Round()-m.Descent.Round()) * k,
		Scale:   k,
	}
}

// Measurer reports the box taken by lines of label text. Line i uses
// styles[i], or the last style when there are fewer styles than lines.
type Measurer interface {
	Measure(lines []string, styles []style.Style) vector.Size
}

// FaceMeasurer measures with font faces from a Provider. Width is the widest
// line; height sums fontSize*lineHeight over all lines.
type FaceMeasurer struct{ Provider Provider }

func NewMeasurer(provider Provider) FaceMeasurer {
	if provider == nil {
		provider = BasicProvider{}
	}
	return FaceMeasurer{Provider: provider}
}

func (m FaceMeasurer) Measure(lines []string, styles []style.Style) vector.Size {
	provider := m.Provider
	if provider == nil {
		provider = BasicProvider{}
	}
	var out vector.Size
	for i, line := range lines {
		st := LineStyle(styles, i)
		spec := SpecFor(st)
		face, met := provider.Resolve(spec)
		d := &font.Drawer{Face: face}
		w := advance(d, line) * scaleOf(met)
		if w > out.W {
			out.W = w
		}
		out.H += spec.SizePx * style.Get(st.LineHeight, DefaultLineHeight)
	}
	return out
}

// LineStyle picks the style fragment for line i.
func LineStyle(styles []style.Style, i int) style.Style {
	switch {
	case len(styles) == 0:
		return style.Style{}
	case i < len(styles):
		return styles[i]
	default:
		return styles[len(styles)-1]
	}
}

// SpecFor turns a label style into a font request.
func SpecFor(st style.Style) FontSpec {
	size := style.Get(st.FontSize, DefaultFontSize)
	if size <= 0 {
		size = DefaultFontSize
	}
	return FontSpec{Family: st.FontFamily, SizePx: size, Weight: 400}
}

func scaleOf(m Metrics) float64 {
	if m.Scale <= 0 {
		return 1
	}
	return m.Scale
}

func advance(d *font.Drawer, s string) float64 {
	return float64(d.MeasureString(s)) / 64 // fixed.Int26_6 to px
}
