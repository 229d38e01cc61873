/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package prop

import "testing"

type args struct{ n int }

func TestValueKinds(t *testing.T) {
	var zero Value[int, args]
	if zero.IsSet() || zero.Resolve(args{5}) != 0 || zero.ResolveOr(args{}, 9) != 9 {
		t.Fatalf("zero value should be unset")
	}
	l := Lit[int, args](3)
	if !l.IsSet() || l.IsDerived() || l.Resolve(args{5}) != 3 {
		t.Fatalf("literal misbehaves")
	}
	f := Func(func(a args) int { return a.n * 2 })
	if !f.IsDerived() || f.Resolve(args{5}) != 10 || f.ResolveOr(args{4}, 1) != 8 {
		t.Fatalf("derived misbehaves")
	}
	if Func[int, args](nil).IsSet() {
		t.Fatalf("nil function should be unset")
	}
}

func TestDerivedRecomputesEveryCall(t *testing.T) {
	calls := 0
	f := Func(func(args) int { calls++; return calls })
	f.Resolve(args{})
	if got := f.Resolve(args{}); got != 2 {
		t.Fatalf("expected fresh evaluation, got %d", got)
	}
}
