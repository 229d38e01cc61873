/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Drawable is the drawing surface a backend exposes to the geometry code.
// WithTransform applies m on top of the current transform for the duration of
// fn and restores the previous transform afterwards, also when fn fails or panics.
type Drawable interface {
	Fill(p Path, paint Paint) error
	WithTransform(m Affine2D, fn func() error) error
}

// Text is a block of label lines anchored at At.
type Text struct {
	Lines          []string
	At             Pt
	Anchor         string // start, middle, end
	VerticalAnchor string // start, middle, end
	Size           float64
	LineHeight     float64 // multiple of Size
	Family         string
	Color          Color
}

// TextDrawer is implemented by surfaces that can place text.
type TextDrawer interface {
	DrawText(t Text) error
}

// Scoped runs fn inside m, skipping the surface call for the identity.
func Scoped(d Drawable, m Affine2D, fn func() error) error {
	if m.IsIdentity() {
		return fn()
	}
	return d.WithTransform(m, fn)
}

// TransformStack tracks nested transforms for backends that have no native
// save/restore. The zero value starts at the identity.
type TransformStack struct{ stack []Affine2D }

func (s *TransformStack) Current() Affine2D {
	if len(s.stack) == 0 {
		return Identity
	}
	return s.stack[len(s.stack)-1]
}

func (s *TransformStack) Depth() int { return len(s.stack) }

// Within pushes m, runs fn and pops again.
func (s *TransformStack) Within(m Affine2D, fn func() error) error {
	s.stack = append(s.stack, s.Current().Mul(m))
	defer func() { s.stack = s.stack[:len(s.stack)-1] }()
	return fn()
}

// Op is one recorded drawing call.
type Op struct {
	Kind      string // fill or text
	Path      string
	Paint     Paint
	Text      *Text
	Transform Affine2D
}

// Recorder is a Drawable that keeps every call in memory. It backs the
// inspect command and tests.
type Recorder struct {
	TransformStack
	Ops []Op
}

func (r *Recorder) Fill(p Path, paint Paint) error {
	r.Ops = append(r.Ops, Op{Kind: "fill", Path: p.String(), Paint: paint, Transform: r.Current()})
	return nil
}

func (r *Recorder) WithTransform(m Affine2D, fn func() error) error {
	return r.Within(m, fn)
}

func (r *Recorder) DrawText(t Text) error {
	tc := t
	tc.Lines = append([]string(nil), t.Lines...)
	r.Ops = append(r.Ops, Op{Kind: "text", Text: &tc, Transform: r.Current()})
	return nil
}
