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

	"github.com/jung-kurt/gofpdf"

	"chartkit/internal/vector"
)

// PDF is a Drawable on a single gofpdf page measured in points, one chart
// unit per point. Transforms map onto TransformBegin/TransformEnd so text
// rotates with the shapes.
type PDF struct {
	pdf *gofpdf.Fpdf
	h   float64
	tr  func(string) string
}

// NewPDF creates a document with one page of the chart's size.
func NewPDF(width, height float64, title string) *PDF {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetCompression(true)
	if title != "" {
		pdf.SetTitle(title, true)
	}
	pdf.SetCreator("chartkit", false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)
	return &PDF{pdf: pdf, h: height, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

// Output writes the document.
func (p *PDF) Output(w io.Writer) error {
	if err := p.pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func (p *PDF) Fill(path vector.Path, paint vector.Paint) error {
	polys := path.Flatten(0.25)
	if len(polys) == 0 {
		return p.pdf.Error()
	}
	op := paint.Opacity * float64(paint.Fill.A) / 255
	fill := op > 0
	stroke := paint.LineWidth > 0 && paint.Stroke.A > 0
	if !fill && !stroke {
		return p.pdf.Error()
	}
	var style string
	switch {
	case fill && stroke:
		style = "FD"
	case fill:
		style = "F"
	default:
		style = "D"
	}
	if paint.Rule == vector.EvenOdd && fill {
		style += "*"
	}
	if fill {
		p.pdf.SetFillColor(int(paint.Fill.R), int(paint.Fill.G), int(paint.Fill.B))
		p.pdf.SetAlpha(op, "Normal")
	}
	if stroke {
		p.pdf.SetDrawColor(int(paint.Stroke.R), int(paint.Stroke.G), int(paint.Stroke.B))
		p.pdf.SetLineWidth(paint.LineWidth)
	}
	for _, poly := range polys {
		p.pdf.MoveTo(poly[0].X, poly[0].Y)
		for _, q := range poly[1:] {
			p.pdf.LineTo(q.X, q.Y)
		}
		if len(poly) > 2 && poly[0] == poly[len(poly)-1] {
			p.pdf.ClosePath()
		}
	}
	p.pdf.DrawPath(style)
	p.pdf.SetAlpha(1, "Normal")
	return p.pdf.Error()
}

// WithTransform converts m from the top-left, y-down chart space into the
// page's bottom-left, y-up space before emitting it.
func (p *PDF) WithTransform(m vector.Affine2D, fn func() error) error {
	p.pdf.TransformBegin()
	defer p.pdf.TransformEnd()
	p.pdf.Transform(PageMatrix(m, p.h))
	return fn()
}

// PageMatrix conjugates m with the flip y -> h - y.
func PageMatrix(m vector.Affine2D, h float64) gofpdf.TransformMatrix {
	return gofpdf.TransformMatrix{
		A: m.A,
		B: -m.B,
		C: -m.C,
		D: m.D,
		E: m.C*h + m.E,
		F: h - m.D*h - m.F,
	}
}

func (p *PDF) DrawText(t vector.Text) error {
	size := t.Size
	if size <= 0 {
		size = 14
	}
	lh := t.LineHeight
	if lh <= 0 {
		lh = 1
	}
	p.pdf.SetFont("Helvetica", "", size)
	p.pdf.SetTextColor(int(t.Color.R), int(t.Color.G), int(t.Color.B))
	total := float64(len(t.Lines)) * size * lh
	top := t.At.Y - total/2
	switch t.VerticalAnchor {
	case "start":
		top = t.At.Y
	case "end":
		top = t.At.Y - total
	}
	ascent := size * 0.718 // Helvetica cap height
	for i, line := range t.Lines {
		s := p.tr(line)
		x := t.At.X
		switch t.Anchor {
		case "middle", "":
			x -= p.pdf.GetStringWidth(s) / 2
		case "end":
			x -= p.pdf.GetStringWidth(s)
		}
		box := top + float64(i)*size*lh
		baseline := box + (size*lh+ascent)/2
		p.pdf.Text(x, baseline, s)
	}
	return p.pdf.Error()
}
