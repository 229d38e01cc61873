/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package style holds the style mapping shared by bars and tooltips and the
// defaults chain used to resolve it.
package style

// Style is a sparse style mapping. Empty strings and nil numbers are unset.
type Style struct {
	Fill        string   `yaml:"fill,omitempty" json:"fill,omitempty"`
	Stroke      string   `yaml:"stroke,omitempty" json:"stroke,omitempty"`
	FillOpacity *float64 `yaml:"fillOpacity,omitempty" json:"fillOpacity,omitempty"`
	StrokeWidth *float64 `yaml:"strokeWidth,omitempty" json:"strokeWidth,omitempty"`
	Width       *float64 `yaml:"width,omitempty" json:"width,omitempty"`
	Padding     *float64 `yaml:"padding,omitempty" json:"padding,omitempty"`
	Angle       *float64 `yaml:"angle,omitempty" json:"angle,omitempty"`
	TextAnchor  string   `yaml:"textAnchor,omitempty" json:"textAnchor,omitempty"`
	FontSize    *float64 `yaml:"fontSize,omitempty" json:"fontSize,omitempty"`
	FontFamily  string   `yaml:"fontFamily,omitempty" json:"fontFamily,omitempty"`
	LineHeight  *float64 `yaml:"lineHeight,omitempty" json:"lineHeight,omitempty"`
}

// Float returns a pointer to v for use in Style literals.
func Float(v float64) *float64 { return &v }

// Get dereferences p or returns def when p is nil.
func Get(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// Truthy reports whether p is set and non-zero.
func Truthy(p *float64) bool { return p != nil && *p != 0 }

func (s Style) IsZero() bool { return s == Style{} }

// Merge resolves a defaults chain. Entries are ordered from lowest to highest
// precedence (theme, component defaults, explicit style); for each key the
// last set value wins. Pointers are copied so the result aliases no input.
func Merge(chain ...Style) Style {
	var out Style
	for _, s := range chain {
		str(&out.Fill, s.Fill)
		str(&out.Stroke, s.Stroke)
		num(&out.FillOpacity, s.FillOpacity)
		num(&out.StrokeWidth, s.StrokeWidth)
		num(&out.Width, s.Width)
		num(&out.Padding, s.Padding)
		num(&out.Angle, s.Angle)
		str(&out.TextAnchor, s.TextAnchor)
		num(&out.FontSize, s.FontSize)
		str(&out.FontFamily, s.FontFamily)
		num(&out.LineHeight, s.LineHeight)
	}
	return out
}

func str(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func num(dst **float64, v *float64) {
	if v != nil {
		*dst = Float(*v)
	}
}

// Spec is a style given as a static mapping plus an optional function of the
// element's evaluation arguments. Derived keys override static ones.
type Spec[A any] struct {
	Static  Style
	Derived func(A) Style
}

// Static wraps a plain style.
func Static[A any](s Style) Spec[A] { return Spec[A]{Static: s} }

func (s Spec[A]) IsZero() bool { return s.Static.IsZero() && s.Derived == nil }

// Resolve evaluates the spec against a.
func (s Spec[A]) Resolve(a A) Style {
	if s.Derived == nil {
		return Merge(s.Static)
	}
	return Merge(s.Static, s.Derived(a))
}
