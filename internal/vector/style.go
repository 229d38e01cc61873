/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"fmt"
	"image/color"
)

// Styles and paint definitions.

type Color struct{ R, G, B, A uint8 }

var (
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Transparent = Color{0, 0, 0, 0}
)

// RGBA converts to the image/color model used by the raster backend.
func (c Color) RGBA() color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A} }

// Hex renders the color as #rrggbb, dropping alpha.
func (c Color) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

type FillRule uint8

const (
	NonZero FillRule = iota
	EvenOdd
)

// Paint is everything a backend needs to fill and outline one path.
// Opacity scales the fill alpha; a zero LineWidth means no outline.
type Paint struct {
	Fill      Color
	Stroke    Color
	Opacity   float64
	LineWidth float64
	Rule      FillRule
}

// DefaultPaint is a black fill with no outline.
func DefaultPaint() Paint {
	return Paint{Fill: Black, Stroke: Black, Opacity: 1}
}

// FillRGBA returns the fill color with Opacity applied to its alpha channel.
func (p Paint) FillRGBA() color.RGBA {
	c := p.Fill.RGBA()
	op := p.Opacity
	if op < 0 {
		op = 0
	}
	if op > 1 {
		op = 1
	}
	// image/color expects premultiplied values
	f := float64(c.A) / 255 * op
	c.R = uint8(float64(c.R) * f)
	c.G = uint8(float64(c.G) * f)
	c.B = uint8(float64(c.B) * f)
	c.A = uint8(float64(c.A) * op)
	return c
}
