/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package bar

import (
	"errors"
	"testing"

	"chartkit/internal/style"
	"chartkit/internal/vector"
)

func TestDraw_CartesianUsesStylePaint(t *testing.T) {
	var rec vector.Recorder
	e := Evaluate(Props{X: 50, Y: 20, Y0: 100, BarWidth: N(10),
		Style: style.Static[Args](style.Style{Fill: "white", FillOpacity: style.Float(0.5), StrokeWidth: style.Float(2)})})
	if err := Draw(&rec, e); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if len(rec.Ops) != 1 {
		t.Fatalf("expected one fill, got %d", len(rec.Ops))
	}
	op := rec.Ops[0]
	if op.Path != e.Path || !op.Transform.IsIdentity() {
		t.Fatalf("unexpected op: %+v", op)
	}
	if op.Paint.Fill != vector.White || op.Paint.Stroke != vector.White || op.Paint.Opacity != 0.5 || op.Paint.LineWidth != 2 {
		t.Fatalf("unexpected paint: %+v", op.Paint)
	}
}

func TestDraw_PolarTranslatesAndResets(t *testing.T) {
	var rec vector.Recorder
	e := Evaluate(Props{X: 0.5, Y: 80, Polar: true, Origin: vector.Pt{X: 200, Y: 150}, BarWidth: N(10)})
	if err := Draw(&rec, e); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if rec.Ops[0].Transform != vector.Translate(200, 150) {
		t.Fatalf("polar fill should happen at the origin: %+v", rec.Ops[0].Transform)
	}
	if rec.Depth() != 0 {
		t.Fatalf("transform leaked")
	}
}

type failing struct{ vector.Recorder }

func (f *failing) Fill(vector.Path, vector.Paint) error { return errors.New("surface gone") }

func TestDraw_ErrorStillResetsTransform(t *testing.T) {
	f := &failing{}
	e := Evaluate(Props{X: 0.5, Y: 80, Polar: true, BarWidth: N(10)})
	if err := Draw(f, e); err == nil {
		t.Fatalf("expected error")
	}
	if f.Depth() != 0 {
		t.Fatalf("transform leaked after failed fill")
	}
}

func TestDraw_BadCustomPath(t *testing.T) {
	var rec vector.Recorder
	e := Evaluate(Props{GetPath: func(Props, float64) string { return "not a path" }})
	if err := Draw(&rec, e); err == nil {
		t.Fatalf("expected parse error")
	}
}
