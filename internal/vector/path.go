/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Path commands and shapes.

import (
	"math"
	"strconv"
	"strings"
)

type PathOp uint8

const (
	MoveTo PathOp = iota
	LineTo
	QuadTo  // quadratic bezier (cx, cy, x, y)
	CubicTo // cubic bezier (cx1, cy1, cx2, cy2, x, y)
	ArcTo   // elliptical arc (rx, ry, rotation, large, sweep, x, y)
	Close
)

type PathCmd struct {
	Op   PathOp
	Data [7]float64 // enough for arcs; unused slots are zero
}

type Path struct{ Cmds []PathCmd }

func (p *Path) MoveTo(x, y float64) {
	p.Cmds = append(p.Cmds, PathCmd{Op: MoveTo, Data: [7]float64{x, y}})
}
func (p *Path) LineTo(x, y float64) {
	p.Cmds = append(p.Cmds, PathCmd{Op: LineTo, Data: [7]float64{x, y}})
}
func (p *Path) QuadTo(cx, cy, x, y float64) {
	p.Cmds = append(p.Cmds, PathCmd{Op: QuadTo, Data: [7]float64{cx, cy, x, y}})
}
func (p *Path) CubicTo(cx1, cy1, cx2, cy2, x, y float64) {
	p.Cmds = append(p.Cmds, PathCmd{Op: CubicTo, Data: [7]float64{cx1, cy1, cx2, cy2, x, y}})
}

// ArcTo appends an SVG elliptical arc. A zero radius degenerates to a line, as in SVG.
func (p *Path) ArcTo(rx, ry, rotation float64, large, sweep bool, x, y float64) {
	p.Cmds = append(p.Cmds, PathCmd{Op: ArcTo, Data: [7]float64{rx, ry, rotation, b2f(large), b2f(sweep), x, y}})
}
func (p *Path) Close() { p.Cmds = append(p.Cmds, PathCmd{Op: Close}) }

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// String encodes the path with absolute M/L/Q/C/A/Z commands. Coordinates are
// rounded to 3 decimals so equal geometry always yields equal strings.
func (p Path) String() string {
	var b strings.Builder
	for i, c := range p.Cmds {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch c.Op {
		case MoveTo:
			b.WriteString("M ")
			writeNums(&b, c.Data[:2])
		case LineTo:
			b.WriteString("L ")
			writeNums(&b, c.Data[:2])
		case QuadTo:
			b.WriteString("Q ")
			writeNums(&b, c.Data[:4])
		case CubicTo:
			b.WriteString("C ")
			writeNums(&b, c.Data[:6])
		case ArcTo:
			b.WriteString("A ")
			writeNums(&b, c.Data[:7])
		case Close:
			b.WriteString("Z")
		}
	}
	return b.String()
}

func writeNums(b *strings.Builder, vs []float64) {
	for i, v := range vs {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(FormatNum(v))
	}
}

// FormatNum renders v with at most 3 decimals and no trailing zeros.
func FormatNum(v float64) string {
	v = FloatRound(v, 3)
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Flatten converts the path into closed or open polylines, one per subpath.
// Curves and arcs are approximated by line segments no longer than about tol.
func (p Path) Flatten(tol float64) [][]Pt {
	if tol <= 0 {
		tol = 0.25
	}
	var (
		out   [][]Pt
		cur   []Pt
		pos   Pt
		start Pt
	)
	flush := func() {
		if len(cur) > 1 {
			out = append(out, cur)
		}
		cur = nil
	}
	for _, c := range p.Cmds {
		switch c.Op {
		case MoveTo:
			flush()
			pos = Pt{c.Data[0], c.Data[1]}
			start = pos
			cur = []Pt{pos}
		case LineTo:
			if cur == nil {
				cur = []Pt{pos}
			}
			pos = Pt{c.Data[0], c.Data[1]}
			cur = append(cur, pos)
		case QuadTo:
			if cur == nil {
				cur = []Pt{pos}
			}
			c1, end := Pt{c.Data[0], c.Data[1]}, Pt{c.Data[2], c.Data[3]}
			n := segments(pos.dist(c1)+c1.dist(end), tol)
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				u := 1 - t
				cur = append(cur, Pt{
					X: u*u*pos.X + 2*u*t*c1.X + t*t*end.X,
					Y: u*u*pos.Y + 2*u*t*c1.Y + t*t*end.Y,
				})
			}
			pos = end
		case CubicTo:
			if cur == nil {
				cur = []Pt{pos}
			}
			c1, c2, end := Pt{c.Data[0], c.Data[1]}, Pt{c.Data[2], c.Data[3]}, Pt{c.Data[4], c.Data[5]}
			n := segments(pos.dist(c1)+c1.dist(c2)+c2.dist(end), tol)
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				u := 1 - t
				cur = append(cur, Pt{
					X: u*u*u*pos.X + 3*u*u*t*c1.X + 3*u*t*t*c2.X + t*t*t*end.X,
					Y: u*u*u*pos.Y + 3*u*u*t*c1.Y + 3*u*t*t*c2.Y + t*t*t*end.Y,
				})
			}
			pos = end
		case ArcTo:
			if cur == nil {
				cur = []Pt{pos}
			}
			end := Pt{c.Data[5], c.Data[6]}
			cur = append(cur, flattenArc(pos, c.Data[0], c.Data[1], c.Data[2], c.Data[3] != 0, c.Data[4] != 0, end, tol)...)
			pos = end
		case Close:
			if cur != nil && (pos != start) {
				cur = append(cur, start)
			}
			pos = start
			flush()
		}
	}
	flush()
	return out
}

// Bounds returns the axis-aligned bounding box of the flattened path.
func (p Path) Bounds() Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, poly := range p.Flatten(0.5) {
		for _, q := range poly {
			minX = math.Min(minX, q.X)
			minY = math.Min(minY, q.Y)
			maxX = math.Max(maxX, q.X)
			maxY = math.Max(maxY, q.Y)
		}
	}
	if minX > maxX || minY > maxY {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Transform returns a copy of the path with every point mapped by m.
// Arcs are flattened first so rotations and non-uniform scales stay exact.
func (p Path) Transform(m Affine2D) Path {
	var out Path
	for _, poly := range p.Flatten(0.25) {
		for i, q := range poly {
			t := m.Apply(q)
			if i == 0 {
				out.MoveTo(t.X, t.Y)
			} else {
				out.LineTo(t.X, t.Y)
			}
		}
		if len(poly) > 2 && poly[0] == poly[len(poly)-1] {
			out.Close()
		}
	}
	return out
}

func (p Pt) dist(o Pt) float64 { return math.Hypot(o.X-p.X, o.Y-p.Y) }

func segments(length, tol float64) int {
	n := int(math.Ceil(length / (tol * 8)))
	if n < 4 {
		n = 4
	}
	if n > 256 {
		n = 256
	}
	return n
}

// flattenArc follows the endpoint-to-center conversion of the SVG spec (F.6.5).
func flattenArc(from Pt, rx, ry, rotDeg float64, large, sweep bool, to Pt, tol float64) []Pt {
	if from == to {
		return nil
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		return []Pt{to}
	}
	phi := rotDeg * math.Pi / 180
	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)
	dx2, dy2 := (from.X-to.X)/2, (from.Y-to.Y)/2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	// scale up radii that are too small to span the endpoints
	if lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}
	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	coef := 0.0
	if den != 0 && num > 0 {
		coef = math.Sqrt(num / den)
	}
	if large == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx
	cx := cosPhi*cxp - sinPhi*cyp + (from.X+to.X)/2
	cy := sinPhi*cxp + cosPhi*cyp + (from.Y+to.Y)/2

	theta1 := vecAngle(1, 0, (x1p-cxp)/rx, (y1p-cyp)/ry)
	delta := vecAngle((x1p-cxp)/rx, (y1p-cyp)/ry, (-x1p-cxp)/rx, (-y1p-cyp)/ry)
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	n := segments(math.Abs(delta)*math.Max(rx, ry), tol)
	pts := make([]Pt, 0, n)
	for i := 1; i <= n; i++ {
		t := theta1 + delta*float64(i)/float64(n)
		ex, ey := rx*math.Cos(t), ry*math.Sin(t)
		pts = append(pts, Pt{X: cosPhi*ex - sinPhi*ey + cx, Y: sinPhi*ex + cosPhi*ey + cy})
	}
	pts[len(pts)-1] = to
	return pts
}

func vecAngle(ux, uy, vx, vy float64) float64 {
	return math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
}
