/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package theme holds named chart themes and resolves them across scopes.
package theme

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"chartkit/internal/style"
	"chartkit/internal/tooltip"
)

// Theme bundles the defaults a chart applies beneath explicit props.
type Theme struct {
	Name    string        `yaml:"name,omitempty" json:"name,omitempty"`
	Bar     style.Style   `yaml:"bar,omitempty" json:"bar,omitempty"`
	Tooltip tooltip.Theme `yaml:"tooltip,omitempty" json:"tooltip,omitempty"`
}

const (
	Grayscale = "grayscale"
	Material  = "material"
)

const (
	charcoal   = "#252525"
	blueGrey   = "#455A64"
	grey900    = "#212121"
	flyoutFill = "#f0f0f0"

	sansSerif = "'Gill Sans', 'Seravek', 'Trebuchet MS', sans-serif"
	helvetica = "'Helvetica Neue', 'Helvetica', sans-serif"
)

func builtin(name string) (Theme, bool) {
	switch name {
	case Grayscale:
		return Theme{
			Name: Grayscale,
			Bar:  style.Style{Fill: charcoal, Padding: style.Float(8), StrokeWidth: style.Float(0)},
			Tooltip: tooltip.Theme{
				Style: style.Style{
					FontFamily: sansSerif,
					FontSize:   style.Float(14),
					Padding:    style.Float(0),
					Fill:       charcoal,
				},
				FlyoutStyle: style.Style{
					Stroke:      charcoal,
					StrokeWidth: style.Float(1),
					Fill:        flyoutFill,
					Padding:     style.Float(5),
				},
				CornerRadius:  style.Float(5),
				PointerLength: style.Float(10),
			},
		}, true
	case Material:
		return Theme{
			Name: Material,
			Bar:  style.Style{Fill: blueGrey, Padding: style.Float(8), StrokeWidth: style.Float(0)},
			Tooltip: tooltip.Theme{
				Style: style.Style{
					FontFamily: helvetica,
					FontSize:   style.Float(12),
					Padding:    style.Float(0),
					Fill:       blueGrey,
				},
				FlyoutStyle: style.Style{
					Stroke:      grey900,
					StrokeWidth: style.Float(1),
					Fill:        flyoutFill,
					Padding:     style.Float(5),
				},
				CornerRadius:  style.Float(5),
				PointerLength: style.Float(10),
			},
		}, true
	}
	return Theme{}, false
}

// Builtins lists the preset names in a stable order.
func Builtins() []string { return []string{Grayscale, Material} }

// Merge layers the set fields of each theme over the previous ones.
func Merge(chain ...Theme) Theme {
	var out Theme
	for _, t := range chain {
		if t.Name != "" {
			out.Name = t.Name
		}
		out.Bar = style.Merge(out.Bar, t.Bar)
		out.Tooltip.Style = style.Merge(out.Tooltip.Style, t.Tooltip.Style)
		out.Tooltip.FlyoutStyle = style.Merge(out.Tooltip.FlyoutStyle, t.Tooltip.FlyoutStyle)
		out.Tooltip.CornerRadius = pick(out.Tooltip.CornerRadius, t.Tooltip.CornerRadius)
		out.Tooltip.PointerLength = pick(out.Tooltip.PointerLength, t.Tooltip.PointerLength)
		out.Tooltip.PointerWidth = pick(out.Tooltip.PointerWidth, t.Tooltip.PointerWidth)
	}
	return out
}

func pick(cur, next *float64) *float64 {
	if next == nil {
		return cur
	}
	v := *next
	return &v
}

// Sheet resolves themes by name over three scopes. Precedence is
// Document > User > Builtin, and each scope only overrides the fields it sets.
type Sheet struct {
	User     map[string]Theme
	Document map[string]Theme
}

func NewSheet() *Sheet {
	return &Sheet{User: map[string]Theme{}, Document: map[string]Theme{}}
}

// WithUser returns a copy with user-level themes added.
func (s *Sheet) WithUser(over map[string]Theme) *Sheet {
	cp := s.clone()
	for k, v := range over {
		cp.User[k] = v
	}
	return cp
}

// WithDocument returns a copy with document-level themes added.
func (s *Sheet) WithDocument(over map[string]Theme) *Sheet {
	cp := s.clone()
	for k, v := range over {
		cp.Document[k] = v
	}
	return cp
}

// Resolve merges every scope that knows name. The second return value is
// false if no scope does.
func (s *Sheet) Resolve(name string) (Theme, bool) {
	var chain []Theme
	if t, ok := builtin(name); ok {
		chain = append(chain, t)
	}
	if s != nil {
		if t, ok := s.User[name]; ok {
			chain = append(chain, t)
		}
		if t, ok := s.Document[name]; ok {
			chain = append(chain, t)
		}
	}
	if len(chain) == 0 {
		return Theme{}, false
	}
	t := Merge(chain...)
	t.Name = name
	return t, true
}

// Names returns the builtins first, then every other known name sorted.
func (s *Sheet) Names() []string {
	out := Builtins()
	seen := map[string]bool{}
	for _, n := range out {
		seen[n] = true
	}
	var extra []string
	if s != nil {
		for _, m := range []map[string]Theme{s.User, s.Document} {
			for k := range m {
				if !seen[k] {
					seen[k] = true
					extra = append(extra, k)
				}
			}
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

func (s *Sheet) clone() *Sheet {
	cp := NewSheet()
	if s == nil {
		return cp
	}
	for k, v := range s.User {
		cp.User[k] = v
	}
	for k, v := range s.Document {
		cp.Document[k] = v
	}
	return cp
}

// LoadFile reads a YAML map of named themes, e.g. the user's themes.yaml.
// A missing file yields an empty map.
func LoadFile(path string) (map[string]Theme, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]Theme{}, nil
		}
		return nil, fmt.Errorf("read themes: %w", err)
	}
	var out map[string]Theme
	if err := yaml.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("parse themes %s: %w", path, err)
	}
	if out == nil {
		out = map[string]Theme{}
	}
	return out, nil
}
