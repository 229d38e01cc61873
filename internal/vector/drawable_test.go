/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"errors"
	"testing"
)

func TestRecorderTransformScoped(t *testing.T) {
	var r Recorder
	var p Path
	p.MoveTo(0, 0)
	p.LineTo(1, 1)

	boom := errors.New("boom")
	err := r.WithTransform(Translate(5, 5), func() error {
		if err := r.Fill(p, DefaultPaint()); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected inner error, got %v", err)
	}
	if r.Depth() != 0 || !r.Current().IsIdentity() {
		t.Fatalf("transform leaked after error: depth=%d", r.Depth())
	}
	_ = r.Fill(p, DefaultPaint())
	if len(r.Ops) != 2 {
		t.Fatalf("expected two ops, got %d", len(r.Ops))
	}
	if r.Ops[0].Transform != Translate(5, 5) || !r.Ops[1].Transform.IsIdentity() {
		t.Fatalf("unexpected recorded transforms: %+v", r.Ops)
	}
}

func TestRecorderTransformResetOnPanic(t *testing.T) {
	var r Recorder
	func() {
		defer func() { _ = recover() }()
		_ = r.WithTransform(Translate(1, 1), func() error { panic("abort") })
	}()
	if r.Depth() != 0 {
		t.Fatalf("transform leaked after panic")
	}
}

func TestScopedSkipsIdentity(t *testing.T) {
	var r Recorder
	depth := -1
	_ = Scoped(&r, Identity, func() error { depth = r.Depth(); return nil })
	if depth != 0 {
		t.Fatalf("identity should not push, depth=%d", depth)
	}
	_ = Scoped(&r, Translate(1, 0), func() error { depth = r.Depth(); return nil })
	if depth != 1 {
		t.Fatalf("non-identity should push, depth=%d", depth)
	}
}

func TestPaintFillRGBA(t *testing.T) {
	p := Paint{Fill: Color{200, 100, 50, 255}, Opacity: 0.5}
	c := p.FillRGBA()
	if c.A != 127 || c.R != 100 {
		t.Fatalf("unexpected premultiplied color: %+v", c)
	}
	if White.Hex() != "#ffffff" {
		t.Fatalf("hex mismatch: %s", White.Hex())
	}
}
