/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package tooltip

import (
	"math"

	"chartkit/internal/vector"
)

// DefaultOrientation infers the orientation when none is given. Cartesian
// tooltips point to the positive side of the value axis unless the datum is
// negative; polar tooltips bucket the datum angle.
func DefaultOrientation(p Props) Orientation {
	if p.Polar {
		return PolarOrientation(p.LabelPlacement, Degrees(p))
	}
	if p.Horizontal {
		if p.Datum.Y < 0 {
			return Left
		}
		return Right
	}
	if p.Datum.Y < 0 {
		return Bottom
	}
	return Top
}

// PolarOrientation maps an angle in degrees to an orientation. An empty
// placement means vertical.
func PolarOrientation(placement LabelPlacement, degrees float64) Orientation {
	switch placement {
	case Parallel:
		if degrees < 90 || degrees > 270 {
			return Right
		}
		return Left
	case Perpendicular:
		if degrees > 180 {
			return Bottom
		}
		return Top
	}
	switch {
	case degrees < 45 || degrees > 315:
		return Right
	case degrees >= 45 && degrees <= 135:
		return Top
	case degrees > 135 && degrees < 225:
		return Left
	default:
		return Bottom
	}
}

// Degrees is the datum's polar angle in [0, 360). The x scale maps the datum
// to radians; without one Datum.X is taken as radians already.
func Degrees(p Props) float64 {
	rad := p.Datum.X
	if p.Scale.X != nil {
		rad = p.Scale.X.Map(p.Datum.X)
	}
	return NormalizeDegrees(rad * 180 / math.Pi)
}

// NormalizeDegrees wraps d into [0, 360).
func NormalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}

// FinalOrientation derives the pointer side from where the flyout ended up.
// For each side it measures the gap between the anchor and the opposite box
// edge, -1 when the anchor is not beyond that edge, and returns the side with
// the largest gap. Ties go to the first side in Orientations.
func FinalOrientation(anchor, center vector.Pt, dims vector.Size) Orientation {
	box := vector.CenteredRect(center, dims)
	top, bottom := box.Y, box.Y+box.H
	left, right := box.X, box.X+box.W

	gap := func(o Orientation) float64 {
		switch o {
		case Bottom:
			if top > anchor.Y {
				return top - anchor.Y
			}
		case Top:
			if bottom < anchor.Y {
				return anchor.Y - bottom
			}
		case Left:
			if right < anchor.X {
				return anchor.X - right
			}
		case Right:
			if left > anchor.X {
				return left - anchor.X
			}
		}
		return -1
	}

	best, bestGap := Orientations[0], gap(Orientations[0])
	for _, o := range Orientations[1:] {
		if g := gap(o); g > bestGap {
			best, bestGap = o, g
		}
	}
	return best
}

// DefaultAngle is the label rotation implied by polar placement. Cartesian
// and vertical placements do not rotate.
func DefaultAngle(p Props, orientation Orientation) float64 {
	if !p.Polar || p.LabelPlacement == "" || p.LabelPlacement == Vertical {
		return 0
	}
	deg := Degrees(p)
	sign := -1.0
	if (deg > 90 && deg < 180) || deg > 270 {
		sign = 1
	}
	rotation := 90.0
	if p.LabelPlacement == Perpendicular {
		rotation = 0
	}
	var angle float64
	switch {
	case deg == 0 || deg == 180:
		angle = 90
		if orientation == Top && deg == 180 {
			angle = 270
		}
	case deg > 0 && deg < 180:
		angle = 90 - deg
	default:
		angle = 270 - deg
	}
	return angle + sign*rotation
}
