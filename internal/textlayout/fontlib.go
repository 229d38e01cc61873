/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// FontLibrary stores loaded OpenType fonts by lower-cased family name.
// Faces are cached per size since layout measures the same few sizes many
// times. It is safe for concurrent use.
type FontLibrary struct {
	mu    sync.Mutex
	fonts map[string]*opentype.Font
	faces map[faceKey]font.Face
}

type faceKey struct {
	family string
	size   float64
}

func NewFontLibrary() *FontLibrary {
	return &FontLibrary{fonts: make(map[string]*opentype.Font), faces: make(map[faceKey]font.Face)}
}

// LoadTTF loads a TrueType/OpenType file and registers it under family.
func (fl *FontLibrary) LoadTTF(family, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font %s: %w", path, err)
	}
	return fl.Add(family, data)
}

// Add registers already loaded font data under family.
func (fl *FontLibrary) Add(family string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", family, err)
	}
	fl.mu.Lock()
	defer fl.mu.Unlock()
	if fl.fonts == nil {
		fl.fonts = make(map[string]*opentype.Font)
		fl.faces = make(map[faceKey]font.Face)
	}
	fl.fonts[normFamily(family)] = f
	return nil
}

// Families splits a CSS font-family list into bare names.
func Families(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		name := normFamily(part)
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

func normFamily(s string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(s), `'"`))
}

// face returns a sized face for the first family of the list that is loaded.
func (fl *FontLibrary) face(spec FontSpec, dpi float64) (font.Face, bool) {
	if fl == nil {
		return nil, false
	}
	fl.mu.Lock()
	defer fl.mu.Unlock()
	for _, fam := range Families(spec.Family) {
		f, ok := fl.fonts[fam]
		if !ok {
			continue
		}
		key := faceKey{family: fam, size: spec.SizePx}
		if face, ok := fl.faces[key]; ok {
			return face, true
		}
		face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: spec.SizePx, DPI: dpi, Hinting: font.HintingNone})
		if err != nil {
			continue
		}
		fl.faces[key] = face
		return face, true
	}
	return nil, false
}

// OTProvider resolves FontSpec using a FontLibrary and falls back to another Provider.
// Sizes are pixels, so the default DPI of 72 maps one point to one pixel.
type OTProvider struct {
	Lib      *FontLibrary
	DPI      float64
	Fallback Provider
}

func (p OTProvider) Resolve(spec FontSpec) (font.Face, Metrics) {
	if spec.SizePx <= 0 {
		spec.SizePx = DefaultFontSize
	}
	dpi := p.DPI
	if dpi <= 0 {
		dpi = 72
	}
	if face, ok := p.Lib.face(spec, dpi); ok {
		m := face.Metrics()
		return face, Metrics{
			Ascent:  float64(m.Ascent) / 64,
			Descent: float64(m.Descent) / 64,
			LineGap: float64(m.Height-m.Ascent-m.Descent) / 64,
			Scale:   1,
		}
	}
	fb := p.Fallback
	if fb == nil {
		fb = BasicProvider{}
	}
	return fb.Resolve(spec)
}
