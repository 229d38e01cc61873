/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package plot has the data point and scale types the geometry code consumes.
package plot

import (
	"math"
	"sort"
)

// Datum is one data point. Y0 is the baseline of a bar.
type Datum struct {
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Y0    float64 `json:"y0,omitempty" yaml:"y0,omitempty"`
	Label string  `json:"label,omitempty" yaml:"label,omitempty"`
}

// Scale maps domain values to pixels.
type Scale interface {
	// Range returns the pixel extent endpoints.
	Range() (float64, float64)
	Map(v float64) float64
}

// Scales pairs the two axis scales of a chart.
type Scales struct {
	X Scale
	Y Scale
}

// Linear maps [D0,D1] onto [R0,R1].
type Linear struct {
	D0, D1 float64
	R0, R1 float64
}

func NewLinear(d0, d1, r0, r1 float64) Linear { return Linear{D0: d0, D1: d1, R0: r0, R1: r1} }

func (l Linear) Range() (float64, float64) { return l.R0, l.R1 }

func (l Linear) Map(v float64) float64 {
	if l.D1 == l.D0 {
		return (l.R0 + l.R1) / 2
	}
	return l.R0 + (v-l.D0)/(l.D1-l.D0)*(l.R1-l.R0)
}

// Extent returns |r1 - r0| of s, or 0 for a nil scale.
func Extent(s Scale) float64 {
	if s == nil {
		return 0
	}
	r0, r1 := s.Range()
	return math.Abs(r1 - r0)
}

// Domain returns the min and max of the values picked by f, including zero so
// bars always have a baseline on the chart.
func Domain(data []Datum, f func(Datum) float64) (float64, float64) {
	lo, hi := 0.0, 0.0
	for _, d := range data {
		v := f(d)
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		hi = lo + 1
	}
	return lo, hi
}

// CategoryDomain spans the x values of data with half a step of room on
// either side, so the outermost bars fit inside the range. The step is the
// smallest gap between distinct x values, 1 when there is none.
func CategoryDomain(data []Datum) (float64, float64) {
	if len(data) == 0 {
		return 0, 1
	}
	xs := make([]float64, len(data))
	for i, d := range data {
		xs[i] = d.X
	}
	sort.Float64s(xs)
	step := math.Inf(1)
	for i := 1; i < len(xs); i++ {
		if gap := xs[i] - xs[i-1]; gap > 0 && gap < step {
			step = gap
		}
	}
	if math.IsInf(step, 1) {
		step = 1
	}
	return xs[0] - step/2, xs[len(xs)-1] + step/2
}
