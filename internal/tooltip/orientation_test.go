/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package tooltip

import (
	"math"
	"testing"

	"chartkit/internal/plot"
	"chartkit/internal/prop"
	"chartkit/internal/vector"
)

func almostEq(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func TestDefaultOrientation_Cartesian(t *testing.T) {
	cases := []struct {
		horizontal bool
		y          float64
		want       Orientation
	}{
		{false, -5, Bottom},
		{false, 5, Top},
		{false, 0, Top},
		{true, -5, Left},
		{true, 5, Right},
	}
	for _, c := range cases {
		got := DefaultOrientation(Props{Horizontal: c.horizontal, Datum: plot.Datum{Y: c.y}})
		if got != c.want {
			t.Fatalf("horizontal=%v y=%v: got %s want %s", c.horizontal, c.y, got, c.want)
		}
	}
}

func TestPolarOrientation_BucketEdges(t *testing.T) {
	cases := []struct {
		deg                      float64
		vertical, par, perpendic Orientation
	}{
		{0, Right, Right, Top},
		{45, Top, Right, Top},
		{90, Top, Left, Top},
		{135, Top, Left, Top},
		{180, Left, Left, Top},
		{225, Bottom, Left, Bottom},
		{270, Bottom, Left, Bottom},
		{315, Bottom, Right, Bottom},
		{NormalizeDegrees(360), Right, Right, Top},
	}
	for _, c := range cases {
		if got := PolarOrientation(Vertical, c.deg); got != c.vertical {
			t.Fatalf("vertical %v: got %s want %s", c.deg, got, c.vertical)
		}
		if got := PolarOrientation("", c.deg); got != c.vertical {
			t.Fatalf("empty placement should mean vertical at %v: got %s", c.deg, got)
		}
		if got := PolarOrientation(Parallel, c.deg); got != c.par {
			t.Fatalf("parallel %v: got %s want %s", c.deg, got, c.par)
		}
		if got := PolarOrientation(Perpendicular, c.deg); got != c.perpendic {
			t.Fatalf("perpendicular %v: got %s want %s", c.deg, got, c.perpendic)
		}
	}
}

func TestPolarOrientation_Total(t *testing.T) {
	valid := map[Orientation]bool{Top: true, Bottom: true, Left: true, Right: true}
	for _, pl := range []LabelPlacement{Vertical, Parallel, Perpendicular} {
		for d := 0.0; d < 360; d += 0.25 {
			if o := PolarOrientation(pl, d); !valid[o] {
				t.Fatalf("%s at %v gave %q", pl, d, o)
			}
		}
	}
}

func TestDegrees(t *testing.T) {
	if got := Degrees(Props{Datum: plot.Datum{X: math.Pi}}); !almostEq(got, 180, 1e-9) {
		t.Fatalf("pi should be 180, got %v", got)
	}
	if got := Degrees(Props{Datum: plot.Datum{X: -math.Pi / 2}}); !almostEq(got, 270, 1e-9) {
		t.Fatalf("-pi/2 should wrap to 270, got %v", got)
	}
	// x scale maps the domain onto a full turn
	p := Props{Datum: plot.Datum{X: 1}, Scale: plot.Scales{X: plot.NewLinear(0, 4, 0, 2*math.Pi)}}
	if got := Degrees(p); !almostEq(got, 90, 1e-9) {
		t.Fatalf("scaled angle should be 90, got %v", got)
	}
	if NormalizeDegrees(720) != 0 || NormalizeDegrees(-30) != 330 {
		t.Fatalf("normalization off")
	}
}

func TestDefaultOrientation_PolarAndExplicit(t *testing.T) {
	p := Props{Polar: true, Datum: plot.Datum{X: math.Pi}}
	if got := DefaultOrientation(p); got != Left {
		t.Fatalf("polar 180 deg should be left, got %s", got)
	}
	p.Orientation = prop.Lit[Orientation, Args](Bottom)
	if got := Evaluate(p).Orientation; got != Bottom {
		t.Fatalf("explicit orientation must win, got %s", got)
	}
	p.Orientation = prop.Func(func(a Args) Orientation {
		if a.Props.Datum.X > 3 {
			return Right
		}
		return Top
	})
	if got := Evaluate(p).Orientation; got != Right {
		t.Fatalf("derived orientation must win, got %s", got)
	}
}

func TestFinalOrientation(t *testing.T) {
	anchor := vector.Pt{X: 50, Y: 50}
	dims := vector.Size{W: 40, H: 20}
	cases := []struct {
		center vector.Pt
		want   Orientation
	}{
		{vector.Pt{X: 50, Y: 20}, Top},    // box above the anchor
		{vector.Pt{X: 50, Y: 80}, Bottom}, // box below
		{vector.Pt{X: 10, Y: 50}, Left},   // box left
		{vector.Pt{X: 90, Y: 50}, Right},  // box right
		{vector.Pt{X: 90, Y: 20}, Top},    // gap 20 up beats gap 20 right by order
	}
	for _, c := range cases {
		if got := FinalOrientation(anchor, c.center, dims); got != c.want {
			t.Fatalf("center %+v: got %s want %s", c.center, got, c.want)
		}
	}
}

func TestFinalOrientation_TieGoesToBottom(t *testing.T) {
	// anchor inside the box: every gap is -1
	if got := FinalOrientation(vector.Pt{X: 50, Y: 50}, vector.Pt{X: 50, Y: 50}, vector.Size{W: 40, H: 20}); got != Bottom {
		t.Fatalf("expected bottom, got %s", got)
	}
}

func TestDefaultAngle(t *testing.T) {
	rad := func(d float64) float64 { return d * math.Pi / 180 }
	cases := []struct {
		placement LabelPlacement
		deg       float64
		orient    Orientation
		want      float64
	}{
		{Vertical, 45, Top, 0},
		{Parallel, 45, Top, -45},
		{Perpendicular, 45, Top, 45},
		{Parallel, 0, Right, 0},
		{Perpendicular, 180, Top, 270},
		{Perpendicular, 180, Bottom, 90},
		{Parallel, 300, Right, 60},
		{Parallel, 120, Left, 60},
	}
	for _, c := range cases {
		p := Props{Polar: true, LabelPlacement: c.placement, Datum: plot.Datum{X: rad(c.deg)}}
		if got := DefaultAngle(p, c.orient); !almostEq(got, c.want, 1e-9) {
			t.Fatalf("%s %v %s: got %v want %v", c.placement, c.deg, c.orient, got, c.want)
		}
	}
	if DefaultAngle(Props{LabelPlacement: Parallel, Datum: plot.Datum{X: 1}}, Top) != 0 {
		t.Fatalf("cartesian tooltips never rotate by default")
	}
}
