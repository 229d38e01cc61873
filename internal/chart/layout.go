/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package chart

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"chartkit/internal/bar"
	applog "chartkit/internal/log"
	"chartkit/internal/style"
	"chartkit/internal/textlayout"
	"chartkit/internal/tooltip"
	"chartkit/internal/vector"
)

// Frame is a laid out scene: every bar evaluated and every tooltip placed.
type Frame struct {
	Title      string               `json:"title,omitempty"`
	Theme      string               `json:"theme"`
	Width      float64              `json:"width"`
	Height     float64              `json:"height"`
	Background vector.Color         `json:"-"`
	Fill       string               `json:"background"`
	Bars       []bar.Evaluated      `json:"-"`
	Tooltips   []tooltip.Result     `json:"-"`
	Summary    []BarSummary         `json:"bars"`
	Placements []*tooltip.Placement `json:"tooltips"`
}

// BarSummary is the serializable part of an evaluated bar.
type BarSummary struct {
	ID           string           `json:"id"`
	AriaLabel    string           `json:"ariaLabel,omitempty"`
	Width        float64          `json:"width"`
	CornerRadius bar.CornerRadius `json:"cornerRadius"`
	Style        style.Style      `json:"style"`
	Path         string           `json:"path"`
}

// Layout evaluates all bars and tooltips of s concurrently. Results keep the
// order of the scene. A nil measurer measures with the built-in bitmap face.
func Layout(ctx context.Context, s Scene, m textlayout.Measurer) (Frame, error) {
	if m == nil {
		m = textlayout.NewMeasurer(nil)
	}
	m = &lockedMeasurer{m: m}
	l := applog.WithOperation(applog.WithComponent("chart"), "layout")
	start := time.Now()

	f := Frame{
		Title:      s.Title,
		Theme:      s.Theme.Name,
		Width:      s.Width,
		Height:     s.Height,
		Background: s.Background,
		Fill:       s.Background.Hex(),
		Bars:       make([]bar.Evaluated, len(s.Bars)),
		Tooltips:   make([]tooltip.Result, len(s.Tooltips)),
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range s.Bars {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f.Bars[i] = bar.Evaluate(s.Bars[i])
			return nil
		})
	}
	for i := range s.Tooltips {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f.Tooltips[i] = tooltip.Render(s.Tooltips[i], m)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		l.WarnContext(ctx, "layout cancelled", slog.Any("err", err))
		return Frame{}, err
	}

	f.Summary = make([]BarSummary, len(f.Bars))
	for i, b := range f.Bars {
		f.Summary[i] = BarSummary{
			ID:           b.ID,
			AriaLabel:    b.AriaLabel,
			Width:        b.BarWidth,
			CornerRadius: b.CornerRadius,
			Style:        b.Style,
			Path:         b.Path,
		}
	}
	f.Placements = make([]*tooltip.Placement, 0, len(f.Tooltips))
	for _, r := range f.Tooltips {
		if r.Placement != nil {
			f.Placements = append(f.Placements, r.Placement)
		}
	}
	l.DebugContext(ctx, "layout done",
		slog.Int("bars", len(f.Bars)),
		slog.Int("tooltips", len(f.Placements)),
		slog.Duration("took", time.Since(start)))
	return f, nil
}

// lockedMeasurer serializes measurement; opentype faces keep per-face
// buffers and must not be shared between goroutines.
type lockedMeasurer struct {
	mu sync.Mutex
	m  textlayout.Measurer
}

func (l *lockedMeasurer) Measure(lines []string, styles []style.Style) vector.Size {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.Measure(lines, styles)
}
