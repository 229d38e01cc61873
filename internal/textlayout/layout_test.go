/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"math"
	"path/filepath"
	"reflect"
	"testing"

	"chartkit/internal/style"
)

func almostEq(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func TestMeasure_BasicFace(t *testing.T) {
	m := NewMeasurer(nil)
	// Face7x13 advances 7px per glyph at its native 13px size
	sz := m.Measure([]string{"abc", "abcdef"}, []style.Style{{FontSize: style.Float(13)}})
	if !almostEq(sz.W, 42, 1e-9) {
		t.Fatalf("width should be the widest line, got %v", sz.W)
	}
	if !almostEq(sz.H, 26, 1e-9) {
		t.Fatalf("height should sum the line heights, got %v", sz.H)
	}
}

func TestMeasure_ScalesWithFontSizeAndLineHeight(t *testing.T) {
	m := NewMeasurer(BasicProvider{})
	sz := m.Measure([]string{"ab"}, []style.Style{{FontSize: style.Float(26), LineHeight: style.Float(1.5)}})
	if !almostEq(sz.W, 28, 1e-9) || !almostEq(sz.H, 39, 1e-9) {
		t.Fatalf("unexpected size %+v", sz)
	}
	// defaults: 14px, line height 1
	sz = m.Measure([]string{"a"}, nil)
	if !almostEq(sz.H, DefaultFontSize, 1e-9) || !almostEq(sz.W, 7*DefaultFontSize/13.0, 1e-9) {
		t.Fatalf("unexpected default size %+v", sz)
	}
}

func TestMeasure_PerLineStyles(t *testing.T) {
	m := NewMeasurer(nil)
	styles := []style.Style{{FontSize: style.Float(13)}, {FontSize: style.Float(26)}}
	sz := m.Measure([]string{"x", "x", "x"}, styles)
	// the third line reuses the last style
	if !almostEq(sz.H, 13+26+26, 1e-9) || !almostEq(sz.W, 14, 1e-9) {
		t.Fatalf("unexpected size %+v", sz)
	}
	if got := m.Measure(nil, styles); got.W != 0 || got.H != 0 {
		t.Fatalf("no lines should measure zero, got %+v", got)
	}
}

func TestFamilies(t *testing.T) {
	got := Families(`'Gill Sans', "Seravek",  sans-serif ,`)
	want := []string{"gill sans", "seravek", "sans-serif"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestOTProvider_FallsBackWithoutFonts(t *testing.T) {
	p := OTProvider{Lib: NewFontLibrary()}
	_, met := p.Resolve(FontSpec{Family: "Missing", SizePx: 26})
	if met.Scale != 2 {
		t.Fatalf("expected basic fallback scaled x2, got %+v", met)
	}
	if err := p.Lib.LoadTTF("x", filepath.Join(t.TempDir(), "none.ttf")); err == nil {
		t.Fatalf("expected read error")
	}
	if err := p.Lib.Add("x", []byte("not a font")); err == nil {
		t.Fatalf("expected parse error")
	}
}
