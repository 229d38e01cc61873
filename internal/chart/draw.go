/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package chart

import (
	"fmt"

	"chartkit/internal/bar"
	"chartkit/internal/tooltip"
	"chartkit/internal/vector"
)

// Draw paints the background, then every bar, then the visible tooltips on
// top so flyouts are never hidden by a neighbouring bar.
func Draw(d vector.Drawable, f Frame) error {
	if f.Background.A > 0 {
		var bg vector.Path
		bg.MoveTo(0, 0)
		bg.LineTo(f.Width, 0)
		bg.LineTo(f.Width, f.Height)
		bg.LineTo(0, f.Height)
		bg.Close()
		if err := d.Fill(bg, vector.Paint{Fill: f.Background, Opacity: 1}); err != nil {
			return fmt.Errorf("background: %w", err)
		}
	}
	for _, b := range f.Bars {
		if err := bar.Draw(d, b); err != nil {
			return err
		}
	}
	for i, t := range f.Tooltips {
		if err := tooltip.Draw(d, t.Placement); err != nil {
			return fmt.Errorf("tooltip %d: %w", i, err)
		}
	}
	return nil
}
