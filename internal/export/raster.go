/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	xvector "golang.org/x/image/vector"

	"chartkit/internal/vector"
)

// Raster is a Drawable backed by an RGBA image. Paths are flattened and
// scan-converted with golang.org/x/image/vector; text uses the 7x13 bitmap
// face resampled to the requested size. Fills use the nonzero rule.
type Raster struct {
	vector.TransformStack
	img   *image.RGBA
	scale float64
}

// NewRaster allocates a w x h canvas in chart units; scale multiplies the
// pixel size.
func NewRaster(w, h, scale float64) *Raster {
	if scale <= 0 {
		scale = 1
	}
	pw := int(math.Ceil(w * scale))
	ph := int(math.Ceil(h * scale))
	return &Raster{img: image.NewRGBA(image.Rect(0, 0, max(pw, 1), max(ph, 1))), scale: scale}
}

func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) device() vector.Affine2D {
	return vector.Scale(r.scale, r.scale).Mul(r.Current())
}

func (r *Raster) WithTransform(m vector.Affine2D, fn func() error) error {
	return r.Within(m, fn)
}

func (r *Raster) Fill(p vector.Path, paint vector.Paint) error {
	m := r.device()
	polys := p.Transform(m).Flatten(0.25)
	if fill := paint.FillRGBA(); fill.A > 0 {
		z := r.rasterizer()
		for _, poly := range polys {
			addPoly(z, poly)
		}
		r.paint(z, fill)
	}
	if paint.LineWidth > 0 && paint.Stroke.A > 0 {
		stroke := vector.Paint{Fill: paint.Stroke, Opacity: 1}.FillRGBA()
		hw := paint.LineWidth * r.scale / 2
		z := r.rasterizer()
		for _, poly := range polys {
			for i := 1; i < len(poly); i++ {
				addSegment(z, poly[i-1], poly[i], hw)
			}
		}
		r.paint(z, stroke)
	}
	return nil
}

func (r *Raster) rasterizer() *xvector.Rasterizer {
	b := r.img.Bounds()
	z := xvector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	return z
}

func (r *Raster) paint(z *xvector.Rasterizer, c color.RGBA) {
	z.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{})
}

func addPoly(z *xvector.Rasterizer, poly []vector.Pt) {
	if len(poly) < 3 {
		return
	}
	z.MoveTo(float32(poly[0].X), float32(poly[0].Y))
	for _, q := range poly[1:] {
		z.LineTo(float32(q.X), float32(q.Y))
	}
	z.ClosePath()
}

// addSegment adds the outline of a thick line. Every quad is wound the same
// way, so overlapping segments merge instead of cancelling.
func addSegment(z *xvector.Rasterizer, a, b vector.Pt, hw float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*hw, dx/l*hw
	// extend by half the width for square caps, which also closes joins
	ex, ey := dx/l*hw, dy/l*hw
	addPoly(z, []vector.Pt{
		{X: a.X - ex + nx, Y: a.Y - ey + ny},
		{X: b.X + ex + nx, Y: b.Y + ey + ny},
		{X: b.X + ex - nx, Y: b.Y + ey - ny},
		{X: a.X - ex - nx, Y: a.Y - ey - ny},
	})
}

const bitmapSize = 13

// DrawText renders each line into a glyph mask at the face's native size
// and resamples it through the current transform.
func (r *Raster) DrawText(t vector.Text) error {
	size := t.Size
	if size <= 0 {
		size = 14
	}
	lh := t.LineHeight
	if lh <= 0 {
		lh = 1
	}
	k := size / bitmapSize
	face := basicfont.Face7x13
	total := float64(len(t.Lines)) * size * lh
	top := t.At.Y - total/2
	switch t.VerticalAnchor {
	case "start":
		top = t.At.Y
	case "end":
		top = t.At.Y - total
	}
	src := image.NewUniform(t.Color.RGBA())
	for i, line := range t.Lines {
		if line == "" {
			continue
		}
		d := &font.Drawer{Face: face}
		w := d.MeasureString(line).Ceil()
		mask := image.NewRGBA(image.Rect(0, 0, w, bitmapSize))
		d.Dst = mask
		d.Src = src
		d.Dot = fixed.P(0, face.Ascent)
		d.DrawString(line)

		left := t.At.X
		switch t.Anchor {
		case "middle", "":
			left -= float64(w) * k / 2
		case "end":
			left -= float64(w) * k
		}
		lineTop := top + float64(i)*size*lh + (size*lh-size)/2
		m := r.device().Mul(vector.Translate(left, lineTop)).Mul(vector.Scale(k, k))
		aff := f64.Aff3{m.A, m.C, m.E, m.B, m.D, m.F}
		xdraw.BiLinear.Transform(r.img, aff, mask, mask.Bounds(), xdraw.Over, nil)
	}
	return nil
}
