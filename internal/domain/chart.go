/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package domain defines the chart document format: a YAML file describing a
// bar series, its data and the tooltips attached to it.
package domain

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"chartkit/internal/plot"
	"chartkit/internal/style"
	"chartkit/internal/theme"
)

// Chart is one chart document.
type Chart struct {
	Title       string                 `yaml:"title,omitempty" json:"title,omitempty"`
	Width       float64                `yaml:"width" json:"width"`
	Height      float64                `yaml:"height" json:"height"`
	Padding     *float64               `yaml:"padding,omitempty" json:"padding,omitempty"`
	Theme       string                 `yaml:"theme,omitempty" json:"theme,omitempty"`
	Background  string                 `yaml:"background,omitempty" json:"background,omitempty"`
	Horizontal  bool                   `yaml:"horizontal,omitempty" json:"horizontal,omitempty"`
	Polar       bool                   `yaml:"polar,omitempty" json:"polar,omitempty"`
	InnerRadius float64                `yaml:"innerRadius,omitempty" json:"innerRadius,omitempty"`
	Themes      map[string]theme.Theme `yaml:"themes,omitempty" json:"themes,omitempty"`
	Bars        Bars                   `yaml:"bars,omitempty" json:"bars,omitempty"`
	Data        []plot.Datum           `yaml:"data,omitempty" json:"data,omitempty"`
	DataSource  *DataSource            `yaml:"data_source,omitempty" json:"data_source,omitempty"`
	Tooltips    []Tooltip              `yaml:"tooltips,omitempty" json:"tooltips,omitempty"`
}

// Bars configures the bar series.
type Bars struct {
	BarWidth     float64     `yaml:"barWidth,omitempty" json:"barWidth,omitempty"`
	BarRatio     float64     `yaml:"barRatio,omitempty" json:"barRatio,omitempty"`
	Alignment    string      `yaml:"alignment,omitempty" json:"alignment,omitempty"`
	CornerRadius *Corners    `yaml:"cornerRadius,omitempty" json:"cornerRadius,omitempty"`
	Style        style.Style `yaml:"style,omitempty" json:"style,omitempty"`
	// Tooltips adds a tooltip showing the label of every labelled datum
	// that has no explicit tooltip.
	Tooltips bool `yaml:"tooltips,omitempty" json:"tooltips,omitempty"`
}

// Corners is a corner radius given either as a number or per corner.
type Corners struct {
	All         *float64 `yaml:"-" json:"all,omitempty"`
	Top         *float64 `yaml:"top,omitempty" json:"top,omitempty"`
	Bottom      *float64 `yaml:"bottom,omitempty" json:"bottom,omitempty"`
	TopLeft     *float64 `yaml:"topLeft,omitempty" json:"topLeft,omitempty"`
	TopRight    *float64 `yaml:"topRight,omitempty" json:"topRight,omitempty"`
	BottomLeft  *float64 `yaml:"bottomLeft,omitempty" json:"bottomLeft,omitempty"`
	BottomRight *float64 `yaml:"bottomRight,omitempty" json:"bottomRight,omitempty"`
}

func (c *Corners) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		var v float64
		if err := n.Decode(&v); err != nil {
			return fmt.Errorf("cornerRadius: %w", err)
		}
		*c = Corners{All: &v}
		return nil
	}
	type plain Corners
	var p plain
	if err := n.Decode(&p); err != nil {
		return err
	}
	*c = Corners(p)
	return nil
}

func (c Corners) MarshalYAML() (any, error) {
	if c.All != nil {
		return *c.All, nil
	}
	type plain Corners
	return plain(c), nil
}

// Styles is one label style or a list with one entry per text line.
type Styles []style.Style

func (s *Styles) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.SequenceNode {
		var list []style.Style
		if err := n.Decode(&list); err != nil {
			return err
		}
		*s = list
		return nil
	}
	var one style.Style
	if err := n.Decode(&one); err != nil {
		return err
	}
	*s = Styles{one}
	return nil
}

// Tooltip attaches a tooltip to the datum at index Datum.
type Tooltip struct {
	Datum          int         `yaml:"datum" json:"datum"`
	Text           string      `yaml:"text,omitempty" json:"text,omitempty"`
	Active         *bool       `yaml:"active,omitempty" json:"active,omitempty"`
	Orientation    string      `yaml:"orientation,omitempty" json:"orientation,omitempty"`
	LabelPlacement string      `yaml:"labelPlacement,omitempty" json:"labelPlacement,omitempty"`
	Angle          float64     `yaml:"angle,omitempty" json:"angle,omitempty"`
	Dx             *float64    `yaml:"dx,omitempty" json:"dx,omitempty"`
	Dy             *float64    `yaml:"dy,omitempty" json:"dy,omitempty"`
	CornerRadius   *float64    `yaml:"cornerRadius,omitempty" json:"cornerRadius,omitempty"`
	PointerLength  *float64    `yaml:"pointerLength,omitempty" json:"pointerLength,omitempty"`
	PointerWidth   *float64    `yaml:"pointerWidth,omitempty" json:"pointerWidth,omitempty"`
	FlyoutWidth    float64     `yaml:"flyoutWidth,omitempty" json:"flyoutWidth,omitempty"`
	FlyoutHeight   float64     `yaml:"flyoutHeight,omitempty" json:"flyoutHeight,omitempty"`
	Constrain      bool        `yaml:"constrain,omitempty" json:"constrain,omitempty"`
	Style          Styles      `yaml:"style,omitempty" json:"style,omitempty"`
	FlyoutStyle    style.Style `yaml:"flyoutStyle,omitempty" json:"flyoutStyle,omitempty"`
}

// IsActive reports whether the tooltip is shown. Unset means shown.
func (t Tooltip) IsActive() bool { return t.Active == nil || *t.Active }

// DataSource reads the chart data from a spreadsheet instead of Data.
type DataSource struct {
	XLSX        string `yaml:"xlsx" json:"xlsx"`
	Sheet       string `yaml:"sheet,omitempty" json:"sheet,omitempty"`
	XColumn     string `yaml:"x_column,omitempty" json:"x_column,omitempty"`
	YColumn     string `yaml:"y_column,omitempty" json:"y_column,omitempty"`
	LabelColumn string `yaml:"label_column,omitempty" json:"label_column,omitempty"`
	Header      bool   `yaml:"header,omitempty" json:"header,omitempty"`
}

const (
	DefaultWidth   = 400
	DefaultHeight  = 300
	DefaultPadding = 40
)

// PaddingOr returns the plot padding, DefaultPadding when unset.
func (c Chart) PaddingOr() float64 { return style.Get(c.Padding, DefaultPadding) }

// ThemeName returns the requested theme or def.
func (c Chart) ThemeName(def string) string {
	if c.Theme != "" {
		return c.Theme
	}
	return def
}

// ParseChart validates data against the document schema and decodes it.
func ParseChart(data []byte) (Chart, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Chart{}, fmt.Errorf("parse chart: %w", err)
	}
	if raw == nil {
		return Chart{}, fmt.Errorf("parse chart: empty document")
	}
	if err := Validate(raw); err != nil {
		return Chart{}, err
	}
	var c Chart
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Chart{}, fmt.Errorf("decode chart: %w", err)
	}
	for i, tt := range c.Tooltips {
		if len(c.Data) > 0 && tt.Datum >= len(c.Data) {
			return Chart{}, fmt.Errorf("tooltip %d: datum %d out of range (%d data points)", i, tt.Datum, len(c.Data))
		}
	}
	return c, nil
}

// LoadChart reads a chart document. A data_source is resolved relative to
// the document and replaces any inline data.
func LoadChart(path string) (Chart, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Chart{}, fmt.Errorf("read chart: %w", err)
	}
	c, err := ParseChart(b)
	if err != nil {
		return Chart{}, fmt.Errorf("%s: %w", path, err)
	}
	if c.DataSource != nil {
		src := *c.DataSource
		if !filepath.IsAbs(src.XLSX) {
			src.XLSX = filepath.Join(filepath.Dir(path), src.XLSX)
		}
		data, err := LoadXLSXData(src)
		if err != nil {
			return Chart{}, err
		}
		c.Data = data
	}
	return c, nil
}

// SaveChart writes c as YAML.
func SaveChart(path string, c Chart) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode chart: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	return os.WriteFile(path, b, 0o644)
}
