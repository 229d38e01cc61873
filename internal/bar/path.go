/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package bar

import (
	"math"

	"chartkit/internal/vector"
)

// Path builds the outline of an evaluated bar. A custom GetPath wins over the
// built-in shapes, horizontal over vertical, and polar over everything.
// Polar bars are always drawn as vertical (angular) bars: radial bars are not
// supported and fall through to the same shape.
func Path(e Evaluated) string {
	p := e.Props
	switch {
	case p.Polar:
		return VerticalPolarPath(p, e.BarWidth, e.CornerRadius).String()
	case p.GetPath != nil:
		return p.GetPath(p, e.BarWidth)
	case p.Horizontal:
		return HorizontalPath(p, e.BarWidth, e.CornerRadius).String()
	default:
		return VerticalPath(p, e.BarWidth, e.CornerRadius).String()
	}
}

// span returns the category extent of a bar of width w at position x.
// Horizontal bars grow towards smaller screen y for "start".
func span(x, w float64, a Alignment, horizontal bool) (float64, float64) {
	switch a {
	case AlignStart:
		if horizontal {
			return x - w, x
		}
		return x, x + w
	case AlignEnd:
		if horizontal {
			return x, x + w
		}
		return x - w, x
	}
	return x - w/2, x + w/2
}

// VerticalPath outlines a bar standing on the baseline Y0 and reaching Y.
func VerticalPath(p Props, width float64, r CornerRadius) vector.Path {
	c0, c1 := span(p.X, width, p.Alignment, false)
	pts := [4]vector.Pt{{X: c0, Y: p.Y}, {X: c1, Y: p.Y}, {X: c1, Y: p.Y0}, {X: c0, Y: p.Y0}}
	return roundedQuad(pts, clampQuad(r, c1-c0, math.Abs(p.Y-p.Y0)))
}

// HorizontalPath outlines a bar lying on the baseline Y0 and reaching Y.
// The top corners sit at the value end; "left" is the upper side.
func HorizontalPath(p Props, width float64, r CornerRadius) vector.Path {
	c0, c1 := span(p.X, width, p.Alignment, true)
	pts := [4]vector.Pt{{X: p.Y, Y: c0}, {X: p.Y, Y: c1}, {X: p.Y0, Y: c1}, {X: p.Y0, Y: c0}}
	return roundedQuad(pts, clampQuad(r, c1-c0, math.Abs(p.Y-p.Y0)))
}

// clampQuad keeps the radii of a width x length bar from overlapping.
func clampQuad(r CornerRadius, width, length float64) [4]float64 {
	half := width / 2
	out := [4]float64{
		math.Min(r.TopLeft, half),
		math.Min(r.TopRight, half),
		math.Min(r.BottomRight, half),
		math.Min(r.BottomLeft, half),
	}
	fitPair(&out[0], &out[3], length)
	fitPair(&out[1], &out[2], length)
	return out
}

// fitPair scales a and b down proportionally until a+b <= limit.
func fitPair(a, b *float64, limit float64) {
	if sum := *a + *b; sum > limit && sum > 0 {
		k := math.Max(0, limit) / sum
		*a *= k
		*b *= k
	}
}

// roundedQuad draws the quad through pts (top-left, top-right, bottom-right,
// bottom-left of the bar) with an arc at every corner whose radius is > 0.
// The arc sweep follows the winding of pts so rounding stays convex for
// negative and horizontal bars alike.
func roundedQuad(pts [4]vector.Pt, radii [4]float64) vector.Path {
	area := 0.0
	for i := range pts {
		j := (i + 1) % 4
		area += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	sweep := area > 0

	var path vector.Path
	for i, c := range pts {
		r := radii[i]
		if r <= 0 {
			if i == 0 {
				path.MoveTo(c.X, c.Y)
			} else {
				path.LineTo(c.X, c.Y)
			}
			continue
		}
		in := toward(c, pts[(i+3)%4], r)
		out := toward(c, pts[(i+1)%4], r)
		if i == 0 {
			path.MoveTo(in.X, in.Y)
		} else {
			path.LineTo(in.X, in.Y)
		}
		path.ArcTo(r, r, 0, false, sweep, out.X, out.Y)
	}
	path.Close()
	return path
}

func toward(from, to vector.Pt, d float64) vector.Pt {
	dx, dy := to.X-from.X, to.Y-from.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return from
	}
	return vector.Pt{X: from.X + dx/l*d, Y: from.Y + dy/l*d}
}

// VerticalPolarPath outlines an annular sector around the origin (the caller
// translates to Origin). Its angular width is the bar width measured along
// the outer radius.
func VerticalPolarPath(p Props, width float64, cr CornerRadius) vector.Path {
	outer, inner := math.Max(p.Y, p.Y0), math.Max(0, math.Min(p.Y, p.Y0))
	aw := 0.0
	if outer > 0 {
		aw = math.Min(width/outer, 2*math.Pi)
	}
	var a0, a1 float64
	switch p.Alignment {
	case AlignStart:
		a0, a1 = p.X, p.X+aw
	case AlignEnd:
		a0, a1 = p.X-aw, p.X
	default:
		a0, a1 = p.X-aw/2, p.X+aw/2
	}

	// radii: top = outer arc, bottom = inner arc, left = start angle
	tl, tr := cr.TopLeft, cr.TopRight
	bl, br := cr.BottomLeft, cr.BottomRight
	if inner == 0 {
		bl, br = 0, 0
	}
	radial := outer - inner
	fitPair(&tl, &bl, radial)
	fitPair(&tr, &br, radial)
	fitPair(&tl, &tr, outer*aw)
	fitPair(&bl, &br, inner*aw)

	at := func(r, a float64) vector.Pt { return vector.Pt{X: r * math.Cos(a), Y: -r * math.Sin(a)} }
	arc := func(path *vector.Path, r float64, large, sweep bool, q vector.Pt) {
		path.ArcTo(r, r, 0, large, sweep, q.X, q.Y)
	}

	var path vector.Path
	// spans beyond a half turn go through the midpoint; a full turn would
	// otherwise be a single arc with equal endpoints, which draws nothing
	ring := func(r, from, to float64, sweep bool) {
		if math.Abs(to-from) > math.Pi {
			arc(&path, r, false, sweep, at(r, (from+to)/2))
		}
		arc(&path, r, false, sweep, at(r, to))
	}
	start := at(inner+bl, a0)
	path.MoveTo(start.X, start.Y)
	q := at(outer-tl, a0)
	path.LineTo(q.X, q.Y)
	if tl > 0 {
		arc(&path, tl, false, false, at(outer, a0+tl/outer))
	}
	ring(outer, a0+tl/math.Max(outer, 1e-9), a1-tr/math.Max(outer, 1e-9), false)
	if tr > 0 {
		arc(&path, tr, false, false, at(outer-tr, a1))
	}
	q = at(inner+br, a1)
	path.LineTo(q.X, q.Y)
	if inner > 0 {
		if br > 0 {
			arc(&path, br, false, false, at(inner, a1-br/inner))
		}
		ring(inner, a1-br/inner, a0+bl/inner, true)
		if bl > 0 {
			arc(&path, bl, false, false, start)
		}
	}
	path.Close()
	return path
}
