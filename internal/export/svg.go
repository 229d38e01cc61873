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
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"

	"chartkit/internal/vector"
)

// SVG is a Drawable that writes SVG markup. Transforms become nested groups.
type SVG struct {
	canvas *svg.SVG
	out    *errWriter
}

// NewSVG starts a document of the given size in chart units.
func NewSVG(w io.Writer, width, height float64, title string) *SVG {
	ew := &errWriter{w: w}
	s := &SVG{canvas: svg.New(ew), out: ew}
	s.canvas.Startview(ceil(width), ceil(height), 0, 0, ceil(width), ceil(height))
	if title != "" {
		s.canvas.Title(title)
	}
	return s
}

// End closes the document and reports the first write error.
func (s *SVG) End() error {
	s.canvas.End()
	return s.out.err
}

func (s *SVG) Fill(p vector.Path, paint vector.Paint) error {
	s.canvas.Path(p.String(), svgPaint(paint))
	return s.out.err
}

func (s *SVG) WithTransform(m vector.Affine2D, fn func() error) error {
	s.canvas.Gtransform(MatrixAttr(m))
	defer s.canvas.Gend()
	return fn()
}

// DrawText writes one text element per line, centered on its line box.
func (s *SVG) DrawText(t vector.Text) error {
	size := t.Size
	if size <= 0 {
		size = 14
	}
	lh := t.LineHeight
	if lh <= 0 {
		lh = 1
	}
	anchor := t.Anchor
	if anchor == "" {
		anchor = "middle"
	}
	total := float64(len(t.Lines)) * size * lh
	top := t.At.Y - total/2
	switch t.VerticalAnchor {
	case "start":
		top = t.At.Y
	case "end":
		top = t.At.Y - total
	}
	st := []string{
		"text-anchor:" + anchor,
		"dominant-baseline:central",
		"font-size:" + vector.FormatNum(size) + "px",
		"fill:" + t.Color.Hex(),
	}
	if t.Family != "" {
		st = append(st, "font-family:"+t.Family)
	}
	style := strings.Join(st, ";")
	for i, line := range t.Lines {
		y := top + float64(i)*size*lh + size*lh/2
		s.canvas.Gtransform("translate(" + vector.FormatNum(t.At.X) + " " + vector.FormatNum(y) + ")")
		s.canvas.Text(0, 0, line, style)
		s.canvas.Gend()
	}
	return s.out.err
}

// MatrixAttr renders m as an SVG transform attribute.
func MatrixAttr(m vector.Affine2D) string {
	return fmt.Sprintf("matrix(%s %s %s %s %s %s)",
		vector.FormatNum(m.A), vector.FormatNum(m.B), vector.FormatNum(m.C),
		vector.FormatNum(m.D), vector.FormatNum(m.E), vector.FormatNum(m.F))
}

func svgPaint(p vector.Paint) string {
	var st []string
	op := p.Opacity * float64(p.Fill.A) / 255
	if op <= 0 {
		st = append(st, "fill:none")
	} else {
		st = append(st, "fill:"+p.Fill.Hex())
		if op < 1 {
			st = append(st, "fill-opacity:"+vector.FormatNum(op))
		}
		if p.Rule == vector.EvenOdd {
			st = append(st, "fill-rule:evenodd")
		}
	}
	if p.LineWidth > 0 && p.Stroke.A > 0 {
		st = append(st, "stroke:"+p.Stroke.Hex(), "stroke-width:"+vector.FormatNum(p.LineWidth))
	} else {
		st = append(st, "stroke:none")
	}
	return strings.Join(st, ";")
}

func ceil(v float64) int {
	n := int(v)
	if float64(n) < v {
		n++
	}
	return n
}

// errWriter remembers the first write error so the svgo calls, which do not
// return errors, can be checked once.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
