/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package prop holds values that are either given literally or derived from
// the props of the element they belong to.
package prop

type kind uint8

const (
	unset kind = iota
	literal
	derived
)

// Value is a literal of type T or a function of the evaluation arguments A.
// The zero Value is unset.
type Value[T, A any] struct {
	kind kind
	lit  T
	fn   func(A) T
}

// Lit wraps a literal value.
func Lit[T, A any](v T) Value[T, A] { return Value[T, A]{kind: literal, lit: v} }

// Func wraps a derived value. A nil fn yields an unset Value.
func Func[T, A any](fn func(A) T) Value[T, A] {
	if fn == nil {
		return Value[T, A]{}
	}
	return Value[T, A]{kind: derived, fn: fn}
}

func (v Value[T, A]) IsSet() bool     { return v.kind != unset }
func (v Value[T, A]) IsDerived() bool { return v.kind == derived }

// Resolve returns the literal or calls the function with a. An unset Value
// resolves to the zero T.
func (v Value[T, A]) Resolve(a A) T {
	switch v.kind {
	case literal:
		return v.lit
	case derived:
		return v.fn(a)
	}
	var zero T
	return zero
}

// ResolveOr resolves v, falling back to def when v is unset.
func (v Value[T, A]) ResolveOr(a A, def T) T {
	if !v.IsSet() {
		return def
	}
	return v.Resolve(a)
}
