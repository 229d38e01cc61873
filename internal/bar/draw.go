/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package bar

import (
	"fmt"

	"chartkit/internal/vector"
)

// Draw fills the bar outline on d using the resolved style. Polar bars are
// filled inside a translation to their origin that ends with the call.
func Draw(d vector.Drawable, e Evaluated) error {
	path, err := vector.ParsePath(e.Path)
	if err != nil {
		return fmt.Errorf("bar %q path: %w", e.ID, err)
	}
	paint := e.Style.Paint()
	if e.Props.Polar {
		return d.WithTransform(vector.Translate(e.Props.Origin.X, e.Props.Origin.Y), func() error {
			return d.Fill(path, paint)
		})
	}
	return d.Fill(path, paint)
}
