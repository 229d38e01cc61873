/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"chartkit/internal/chart"
)

// PresetName represents a named export preset.
type PresetName string

const (
	PresetWeb   PresetName = "web"
	PresetPrint PresetName = "print"
)

// BatchOptions controls a multi-format export of one chart.
//
// Files are named <Name>.<ext> inside OutDir/<preset>. PNG files of the
// print preset are rendered at twice the chart size unless Scale is set.
type BatchOptions struct {
	Preset  PresetName
	Formats []string // allowed: pdf, png, svg; empty means preset defaults
	Name    string   // base file name, default "chart"
	OutDir  string
	Scale   float64 // when > 0 overrides the preset's PNG scale
}

// BatchExport writes f in every format of the preset and returns the paths.
func BatchExport(f chart.Frame, opt BatchOptions) ([]string, error) {
	formats := opt.Formats
	if len(formats) == 0 {
		formats = presetDefaultFormats(opt.Preset)
	}
	name := opt.Name
	if name == "" {
		name = "chart"
	}
	dir := opt.OutDir
	if opt.Preset != "" {
		dir = filepath.Join(dir, string(opt.Preset))
	}
	scale := presetScale(opt.Preset)
	if opt.Scale > 0 {
		scale = opt.Scale
	}

	var out []string
	for _, s := range formats {
		format, err := ParseFormat(strings.TrimSpace(s))
		if err != nil {
			return out, err
		}
		path := filepath.Join(dir, name+"."+string(format))
		if err := ExportFile(path, format, f, Options{Scale: scale}); err != nil {
			return out, fmt.Errorf("%s: %w", format, err)
		}
		out = append(out, path)
	}
	return out, nil
}

// ParsePreset validates a preset name.
func ParsePreset(s string) (PresetName, error) {
	switch p := PresetName(strings.ToLower(s)); p {
	case PresetWeb, PresetPrint:
		return p, nil
	}
	return "", fmt.Errorf("unknown preset: %s", s)
}

func presetDefaultFormats(p PresetName) []string {
	switch p {
	case PresetWeb:
		return []string{"svg", "png"}
	case PresetPrint:
		return []string{"pdf", "png"}
	default:
		return []string{"svg"}
	}
}

func presetScale(p PresetName) float64 {
	if p == PresetPrint {
		return 2
	}
	return 1
}
