/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"context"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chartkit/internal/chart"
	"chartkit/internal/domain"
	"chartkit/internal/plot"
	"chartkit/internal/style"
	"chartkit/internal/vector"
)

func sampleFrame(t *testing.T) chart.Frame {
	t.Helper()
	doc := domain.Chart{
		Title:    "Sales",
		Width:    200,
		Height:   100,
		Padding:  style.Float(20),
		Data:     []plot.Datum{{X: 1, Y: 2, Label: "a"}, {X: 2, Y: 4, Label: "b"}},
		Tooltips: []domain.Tooltip{{Datum: 1, Text: "hi"}},
	}
	s, err := chart.Build(doc, chart.Options{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	f, err := chart.Layout(context.Background(), s, nil)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	return f
}

func square(x, y, s float64) vector.Path {
	var p vector.Path
	p.MoveTo(x, y)
	p.LineTo(x+s, y)
	p.LineTo(x+s, y+s)
	p.LineTo(x, y+s)
	p.Close()
	return p
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"png": FormatPNG, ".SVG": FormatSVG, " pdf ": FormatPDF}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("gif"); err == nil {
		t.Fatalf("expected error for gif")
	}
	if f, err := FormatFromPath("out/chart.pdf"); err != nil || f != FormatPDF {
		t.Fatalf("FormatFromPath: %q %v", f, err)
	}
	if _, err := FormatFromPath("out/chart"); err == nil {
		t.Fatalf("expected error without extension")
	}
}

func TestRaster_FillAndTransform(t *testing.T) {
	r := NewRaster(40, 40, 1)
	red := vector.Paint{Fill: vector.Color{R: 255, A: 255}, Opacity: 1}
	if err := r.Fill(square(10, 10, 10), red); err != nil {
		t.Fatal(err)
	}
	if c := r.Image().RGBAAt(15, 15); c.R != 255 || c.G != 0 || c.A != 255 {
		t.Fatalf("inside pixel %+v", c)
	}
	if c := r.Image().RGBAAt(5, 5); c.A != 0 {
		t.Fatalf("outside pixel should stay transparent, got %+v", c)
	}
	err := r.WithTransform(vector.Translate(20, 0), func() error {
		return r.Fill(square(10, 10, 10), red)
	})
	if err != nil {
		t.Fatal(err)
	}
	if c := r.Image().RGBAAt(35, 15); c.R != 255 {
		t.Fatalf("translated fill missing: %+v", c)
	}
	if r.Depth() != 0 {
		t.Fatalf("transform not popped")
	}
}

func TestRaster_Scale(t *testing.T) {
	r := NewRaster(20, 10, 2)
	if b := r.Image().Bounds(); b.Dx() != 40 || b.Dy() != 20 {
		t.Fatalf("bounds %v", b)
	}
	blue := vector.Paint{Fill: vector.Color{B: 255, A: 255}, Opacity: 1}
	_ = r.Fill(square(0, 0, 5), blue)
	if c := r.Image().RGBAAt(8, 8); c.B != 255 {
		t.Fatalf("scaled fill should cover device pixel 8,8: %+v", c)
	}
	if c := r.Image().RGBAAt(12, 12); c.A != 0 {
		t.Fatalf("scaled fill too large: %+v", c)
	}
}

func TestRaster_Stroke(t *testing.T) {
	r := NewRaster(40, 40, 1)
	p := vector.Paint{Stroke: vector.Black, LineWidth: 4}
	_ = r.Fill(square(10, 10, 20), p)
	if c := r.Image().RGBAAt(20, 10); c.A != 255 {
		t.Fatalf("stroke pixel %+v", c)
	}
	if c := r.Image().RGBAAt(20, 20); c.A != 0 {
		t.Fatalf("unfilled interior %+v", c)
	}
}

func TestRaster_Text(t *testing.T) {
	r := NewRaster(100, 40, 1)
	err := r.DrawText(vector.Text{Lines: []string{"HH"}, At: vector.Pt{X: 50, Y: 20}, Size: 13, Color: vector.Black})
	if err != nil {
		t.Fatal(err)
	}
	var ink int
	b := r.Image().Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if r.Image().RGBAAt(x, y).A > 0 {
				if x < 40 || x > 60 {
					t.Fatalf("ink outside the centered line at %d,%d", x, y)
				}
				ink++
			}
		}
	}
	if ink == 0 {
		t.Fatalf("no glyphs drawn")
	}
}

func TestSVG_Output(t *testing.T) {
	var buf bytes.Buffer
	s := NewSVG(&buf, 100, 50, "demo")
	_ = s.WithTransform(vector.Translate(10, 0), func() error {
		return s.Fill(square(0, 0, 5), vector.Paint{Fill: vector.Color{R: 255, A: 255}, Opacity: 0.5, Stroke: vector.Black, LineWidth: 2})
	})
	_ = s.DrawText(vector.Text{Lines: []string{"hello"}, At: vector.Pt{X: 5, Y: 5}, Size: 10})
	if err := s.End(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		`viewBox="0 0 100 50"`,
		"<title>demo</title>",
		`transform="matrix(1 0 0 1 10 0)"`,
		"d=\"M 0 0 L 5 0 L 5 5 L 0 5 Z\"",
		"fill:#ff0000;fill-opacity:0.5;stroke:#000000;stroke-width:2",
		">hello</text>",
		"</svg>",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("svg missing %q:\n%s", want, out)
		}
	}
}

func TestPageMatrix(t *testing.T) {
	const h = 100.0
	flip := func(p vector.Pt) vector.Pt { return vector.Pt{X: p.X, Y: h - p.Y} }
	m := vector.Translate(30, 10).Mul(vector.Rotate(math.Pi / 6)).Mul(vector.Scale(2, 1))
	pm := PageMatrix(m, h)
	for _, p := range []vector.Pt{{}, {X: 10, Y: 5}, {X: -3, Y: 40}} {
		q := flip(p)
		got := vector.Pt{X: pm.A*q.X + pm.C*q.Y + pm.E, Y: pm.B*q.X + pm.D*q.Y + pm.F}
		want := flip(m.Apply(p))
		if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
			t.Fatalf("point %+v: got %+v want %+v", p, got, want)
		}
	}
	id := PageMatrix(vector.Identity, h)
	if id.A != 1 || id.D != 1 || id.B != 0 || id.C != 0 || id.E != 0 || id.F != 0 {
		t.Fatalf("identity maps to %+v", id)
	}
}

func TestRender_AllFormats(t *testing.T) {
	f := sampleFrame(t)
	var buf bytes.Buffer
	if err := Render(&buf, FormatPNG, f, Options{}); err != nil {
		t.Fatalf("png: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Fatalf("png bounds %v", b)
	}
	// bar 0 spans x 50..70, y 50..80 in the grayscale theme
	if r, g, b, _ := img.At(60, 65).RGBA(); r>>8 != 0x25 || g>>8 != 0x25 || b>>8 != 0x25 {
		t.Fatalf("bar pixel %x %x %x", r>>8, g>>8, b>>8)
	}
	if r, _, _, a := img.At(5, 5).RGBA(); r>>8 != 0xff || a>>8 != 0xff {
		t.Fatalf("background pixel %x %x", r>>8, a>>8)
	}

	buf.Reset()
	if err := Render(&buf, FormatSVG, f, Options{}); err != nil {
		t.Fatalf("svg: %v", err)
	}
	if out := buf.String(); strings.Count(out, "<path") < 4 || !strings.Contains(out, ">hi</text>") {
		t.Fatalf("svg content:\n%s", out)
	}

	buf.Reset()
	if err := Render(&buf, FormatPDF, f, Options{}); err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("not a pdf: %q", buf.Bytes()[:8])
	}

	if err := Render(&buf, Format("gif"), f, Options{}); err == nil {
		t.Fatalf("expected unknown format error")
	}
}

func TestExportFile(t *testing.T) {
	f := sampleFrame(t)
	path := filepath.Join(t.TempDir(), "nested", "dir", "chart.svg")
	if err := ExportFile(path, FormatSVG, f, Options{}); err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "<title>Sales</title>") {
		t.Fatalf("title missing")
	}
	bad := filepath.Join(t.TempDir(), "x.gif")
	if err := ExportFile(bad, Format("gif"), f, Options{}); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := os.Stat(bad); !os.IsNotExist(err) {
		t.Fatalf("failed export left a file behind")
	}
}

func TestBatchExport_Presets(t *testing.T) {
	f := sampleFrame(t)
	dir := t.TempDir()
	paths, err := BatchExport(f, BatchOptions{Preset: PresetPrint, OutDir: dir})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	want := []string{filepath.Join(dir, "print", "chart.pdf"), filepath.Join(dir, "print", "chart.png")}
	if len(paths) != 2 || paths[0] != want[0] || paths[1] != want[1] {
		t.Fatalf("paths %v", paths)
	}
	fh, err := os.Open(paths[1])
	if err != nil {
		t.Fatal(err)
	}
	defer fh.Close()
	cfg, err := png.DecodeConfig(fh)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 400 || cfg.Height != 200 {
		t.Fatalf("print png should be doubled: %dx%d", cfg.Width, cfg.Height)
	}

	paths, err = BatchExport(f, BatchOptions{Preset: PresetWeb, OutDir: dir, Name: "sales", Formats: []string{"png"}, Scale: 1})
	if err != nil || len(paths) != 1 || filepath.Base(paths[0]) != "sales.png" {
		t.Fatalf("web: %v %v", paths, err)
	}
	if _, err := BatchExport(f, BatchOptions{OutDir: dir, Formats: []string{"tiff"}}); err == nil {
		t.Fatalf("expected unknown format error")
	}
	if _, err := ParsePreset("poster"); err == nil {
		t.Fatalf("expected unknown preset error")
	}
	if p, err := ParsePreset("WEB"); err != nil || p != PresetWeb {
		t.Fatalf("ParsePreset: %q %v", p, err)
	}
}
