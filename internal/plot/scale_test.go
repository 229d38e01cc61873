/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package plot

import "testing"

func TestLinearMapAndExtent(t *testing.T) {
	l := NewLinear(0, 10, 300, 0) // inverted y axis
	if got := l.Map(5); got != 150 {
		t.Fatalf("Map(5)=%v", got)
	}
	if got := l.Map(10); got != 0 {
		t.Fatalf("Map(10)=%v", got)
	}
	if Extent(l) != 300 || Extent(nil) != 0 {
		t.Fatalf("unexpected extent")
	}
	if got := NewLinear(1, 1, 0, 10).Map(1); got != 5 {
		t.Fatalf("degenerate domain should map to the middle, got %v", got)
	}
}

func TestDomainIncludesZero(t *testing.T) {
	data := []Datum{{X: 1, Y: 4}, {X: 2, Y: 9}}
	lo, hi := Domain(data, func(d Datum) float64 { return d.Y })
	if lo != 0 || hi != 9 {
		t.Fatalf("unexpected domain [%v,%v]", lo, hi)
	}
	lo, hi = Domain(nil, func(d Datum) float64 { return d.Y })
	if lo != 0 || hi != 1 {
		t.Fatalf("empty domain should widen to [0,1], got [%v,%v]", lo, hi)
	}
}

func TestCategoryDomain(t *testing.T) {
	lo, hi := CategoryDomain([]Datum{{X: 3}, {X: 1}, {X: 2}})
	if lo != 0.5 || hi != 3.5 {
		t.Fatalf("got [%v,%v]", lo, hi)
	}
	lo, hi = CategoryDomain([]Datum{{X: 0}, {X: 10}, {X: 10}, {X: 20}})
	if lo != -5 || hi != 25 {
		t.Fatalf("duplicates must not shrink the step, got [%v,%v]", lo, hi)
	}
	lo, hi = CategoryDomain([]Datum{{X: 7}})
	if lo != 6.5 || hi != 7.5 {
		t.Fatalf("single point, got [%v,%v]", lo, hi)
	}
	if lo, hi = CategoryDomain(nil); lo != 0 || hi != 1 {
		t.Fatalf("empty, got [%v,%v]", lo, hi)
	}
}
