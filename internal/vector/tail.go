/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "math"

// CalloutOptions describes a rounded box with a triangular pointer.
// Side names the orientation of the callout relative to its target: "top"
// puts the box above Tip with the pointer on the box's bottom edge, "left"
// puts it left of Tip with the pointer on the right edge, and so on.
type CalloutOptions struct {
	Center       Pt
	Size         Size
	Radius       float64
	Side         string
	Tip          Pt
	PointerWidth float64
}

// CalloutGeometry is the resolved outline of a callout.
type CalloutGeometry struct {
	Box        Rect
	BaseLeft   Pt
	BaseRight  Pt
	Tip        Pt
	HasPointer bool
	Path       Path
}

// ComputeCallout traces the box clockwise on screen starting at the top-left
// corner. The pointer base is centered on the box edge and kept clear of the
// rounded corners. When Tip lies on the box side of the pointer edge the
// pointer collapses and the edge is drawn straight.
func ComputeCallout(opts CalloutOptions) CalloutGeometry {
	box := CenteredRect(opts.Center, opts.Size)
	l, t := box.X, box.Y
	r, b := box.X+box.W, box.Y+box.H
	rad := math.Max(0, math.Min(opts.Radius, math.Min(box.W, box.H)/2))
	half := math.Max(0, opts.PointerWidth/2)

	g := CalloutGeometry{Box: box, Tip: opts.Tip}

	// pointer edge and whether the tip is outside of it
	switch opts.Side {
	case "top":
		g.HasPointer = opts.Tip.Y-b > 0
		cx := clampSpan(opts.Center.X, l+rad+half, r-rad-half)
		g.BaseLeft, g.BaseRight = Pt{cx + half, b}, Pt{cx - half, b}
	case "bottom":
		g.HasPointer = t-opts.Tip.Y > 0
		cx := clampSpan(opts.Center.X, l+rad+half, r-rad-half)
		g.BaseLeft, g.BaseRight = Pt{cx - half, t}, Pt{cx + half, t}
	case "left":
		g.HasPointer = opts.Tip.X-r > 0
		cy := clampSpan(opts.Center.Y, t+rad+half, b-rad-half)
		g.BaseLeft, g.BaseRight = Pt{r, cy - half}, Pt{r, cy + half}
	case "right":
		g.HasPointer = l-opts.Tip.X > 0
		cy := clampSpan(opts.Center.Y, t+rad+half, b-rad-half)
		g.BaseLeft, g.BaseRight = Pt{l, cy + half}, Pt{l, cy - half}
	}
	if half == 0 {
		g.HasPointer = false
	}

	pointer := func(p *Path, side string) {
		if !g.HasPointer || opts.Side != side {
			return
		}
		p.LineTo(g.BaseLeft.X, g.BaseLeft.Y)
		p.LineTo(g.Tip.X, g.Tip.Y)
		p.LineTo(g.BaseRight.X, g.BaseRight.Y)
	}
	corner := func(p *Path, x, y float64) {
		if rad > 0 {
			p.ArcTo(rad, rad, 0, false, true, x, y)
		} else {
			p.LineTo(x, y)
		}
	}

	var p Path
	p.MoveTo(l+rad, t)
	pointer(&p, "bottom")
	p.LineTo(r-rad, t)
	corner(&p, r, t+rad)
	pointer(&p, "left")
	p.LineTo(r, b-rad)
	corner(&p, r-rad, b)
	pointer(&p, "top")
	p.LineTo(l+rad, b)
	corner(&p, l, b-rad)
	pointer(&p, "right")
	p.LineTo(l, t+rad)
	corner(&p, l+rad, t)
	p.Close()
	g.Path = p
	return g
}

// clampSpan limits v to [lo, hi]; an empty span collapses to its midpoint.
func clampSpan(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	return math.Min(math.Max(v, lo), hi)
}
