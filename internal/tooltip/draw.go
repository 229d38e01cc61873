/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package tooltip

import (
	"fmt"

	"chartkit/internal/style"
	"chartkit/internal/textlayout"
	"chartkit/internal/vector"
)

// FlyoutPaint converts a flyout style: unfilled with a 1px black outline
// unless the style says otherwise.
func FlyoutPaint(s style.Style) vector.Paint {
	fill := vector.Transparent
	if s.Fill != "" {
		fill = style.MustColor(s.Fill, vector.Transparent)
	}
	stroke := vector.Black
	if s.Stroke != "" {
		stroke = style.MustColor(s.Stroke, vector.Black)
	}
	return vector.Paint{
		Fill:      fill,
		Stroke:    stroke,
		Opacity:   style.Get(s.FillOpacity, 1),
		LineWidth: style.Get(s.StrokeWidth, 1),
	}
}

// Draw renders the flyout and, on surfaces that can place text, the label.
// Both happen inside the placement rotation, which is undone on return.
func Draw(d vector.Drawable, pl *Placement) error {
	if pl == nil {
		return nil
	}
	path, err := vector.ParsePath(pl.Flyout.Path)
	if err != nil {
		return fmt.Errorf("flyout path: %w", err)
	}
	return vector.Scoped(d, pl.Transform, func() error {
		if err := d.Fill(path, FlyoutPaint(pl.Flyout.Style)); err != nil {
			return fmt.Errorf("fill flyout: %w", err)
		}
		td, ok := d.(vector.TextDrawer)
		if !ok || len(pl.Label.Text) == 0 {
			return nil
		}
		return td.DrawText(LabelText(pl.Label))
	})
}

// LabelText converts a label descriptor for a TextDrawer, styled by its
// first fragment.
func LabelText(l Label) vector.Text {
	st := textlayout.LineStyle(l.Style, 0)
	spec := textlayout.SpecFor(st)
	return vector.Text{
		Lines:          l.Text,
		At:             vector.Pt{X: l.X, Y: l.Y},
		Anchor:         l.TextAnchor,
		VerticalAnchor: l.VerticalAnchor,
		Size:           spec.SizePx,
		LineHeight:     style.Get(st.LineHeight, textlayout.DefaultLineHeight),
		Family:         st.FontFamily,
		Color:          style.MustColor(st.Fill, vector.Black),
	}
}
