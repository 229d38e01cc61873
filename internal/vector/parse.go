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
	"strconv"
)

// ParsePath reads SVG path data (M, L, H, V, Q, C, A, Z in absolute and
// relative forms) into absolute commands. Custom bar paths arrive as strings
// and have to go through here before a backend can draw them.
func ParsePath(d string) (Path, error) {
	var (
		p     Path
		sc    = pathScanner{s: d}
		cmd   byte
		pos   Pt
		start Pt
	)
	for {
		sc.skipSep()
		if sc.eof() {
			break
		}
		if c := sc.peek(); isCmd(c) {
			cmd = c
			sc.i++
		} else if cmd == 0 {
			return Path{}, fmt.Errorf("path data must start with a command, got %q at %d", c, sc.i)
		}
		rel := cmd >= 'a'
		base := Pt{}
		if rel {
			base = pos
		}
		switch cmd {
		case 'M', 'm':
			v, err := sc.nums(2)
			if err != nil {
				return Path{}, err
			}
			pos = Pt{base.X + v[0], base.Y + v[1]}
			start = pos
			p.MoveTo(pos.X, pos.Y)
			// subsequent pairs are implicit lineto
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'L', 'l':
			v, err := sc.nums(2)
			if err != nil {
				return Path{}, err
			}
			pos = Pt{base.X + v[0], base.Y + v[1]}
			p.LineTo(pos.X, pos.Y)
		case 'H', 'h':
			v, err := sc.nums(1)
			if err != nil {
				return Path{}, err
			}
			pos = Pt{base.X + v[0], pos.Y}
			p.LineTo(pos.X, pos.Y)
		case 'V', 'v':
			v, err := sc.nums(1)
			if err != nil {
				return Path{}, err
			}
			pos = Pt{pos.X, base.Y + v[0]}
			p.LineTo(pos.X, pos.Y)
		case 'Q', 'q':
			v, err := sc.nums(4)
			if err != nil {
				return Path{}, err
			}
			p.QuadTo(base.X+v[0], base.Y+v[1], base.X+v[2], base.Y+v[3])
			pos = Pt{base.X + v[2], base.Y + v[3]}
		case 'C', 'c':
			v, err := sc.nums(6)
			if err != nil {
				return Path{}, err
			}
			p.CubicTo(base.X+v[0], base.Y+v[1], base.X+v[2], base.Y+v[3], base.X+v[4], base.Y+v[5])
			pos = Pt{base.X + v[4], base.Y + v[5]}
		case 'A', 'a':
			v, err := sc.nums(7)
			if err != nil {
				return Path{}, err
			}
			p.ArcTo(v[0], v[1], v[2], v[3] != 0, v[4] != 0, base.X+v[5], base.Y+v[6])
			pos = Pt{base.X + v[5], base.Y + v[6]}
		case 'Z', 'z':
			p.Close()
			pos = start
			cmd = 0
		}
	}
	return p, nil
}

func isCmd(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'Q', 'q', 'C', 'c', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

type pathScanner struct {
	s string
	i int
}

func (sc *pathScanner) eof() bool  { return sc.i >= len(sc.s) }
func (sc *pathScanner) peek() byte { return sc.s[sc.i] }

func (sc *pathScanner) skipSep() {
	for !sc.eof() {
		switch sc.peek() {
		case ' ', ',', '\n', '\t', '\r':
			sc.i++
		default:
			return
		}
	}
}

func (sc *pathScanner) nums(n int) ([]float64, error) {
	out := make([]float64, n)
	for k := 0; k < n; k++ {
		sc.skipSep()
		begin := sc.i
		if !sc.eof() && (sc.peek() == '-' || sc.peek() == '+') {
			sc.i++
		}
		dot, exp := false, false
		for !sc.eof() {
			c := sc.peek()
			switch {
			case c >= '0' && c <= '9':
			case c == '.' && !dot && !exp:
				dot = true
			case (c == 'e' || c == 'E') && !exp:
				exp = true
				if sc.i+1 < len(sc.s) && (sc.s[sc.i+1] == '-' || sc.s[sc.i+1] == '+') {
					sc.i++
				}
			default:
				goto done
			}
			sc.i++
		}
	done:
		if begin == sc.i {
			return nil, fmt.Errorf("expected number at offset %d", begin)
		}
		v, err := strconv.ParseFloat(sc.s[begin:sc.i], 64)
		if err != nil {
			return nil, fmt.Errorf("parse number %q: %w", sc.s[begin:sc.i], err)
		}
		out[k] = v
	}
	return out, nil
}
