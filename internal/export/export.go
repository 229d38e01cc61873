/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export writes laid out charts as PNG, SVG or PDF files.
package export

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"chartkit/internal/chart"
	applog "chartkit/internal/log"
)

type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
)

// ParseFormat accepts a format name or a file extension with or without dot.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))); f {
	case FormatPNG, FormatSVG, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("unknown format: %s", s)
}

// FormatFromPath derives the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("cannot infer format of %q: no extension", path)
	}
	return ParseFormat(ext)
}

// Options tune the output. Scale applies to PNG only; vector formats keep
// one chart unit per pixel or point.
type Options struct {
	Scale float64
}

// Render writes f in the given format.
func Render(w io.Writer, format Format, f chart.Frame, opt Options) error {
	switch format {
	case FormatPNG:
		r := NewRaster(f.Width, f.Height, opt.Scale)
		if err := chart.Draw(r, f); err != nil {
			return err
		}
		if err := png.Encode(w, r.Image()); err != nil {
			return fmt.Errorf("encode png: %w", err)
		}
		return nil
	case FormatSVG:
		s := NewSVG(w, f.Width, f.Height, f.Title)
		if err := chart.Draw(s, f); err != nil {
			return err
		}
		if err := s.End(); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
		return nil
	case FormatPDF:
		p := NewPDF(f.Width, f.Height, f.Title)
		if err := chart.Draw(p, f); err != nil {
			return err
		}
		return p.Output(w)
	}
	return fmt.Errorf("unknown format: %s", format)
}

// ExportFile renders f into path, creating parent directories. The file is
// only written once rendering succeeded.
func ExportFile(path string, format Format, f chart.Frame, opt Options) error {
	l := applog.WithOperation(applog.WithComponent("export"), "file")
	var buf bytes.Buffer
	if err := Render(&buf, format, f, opt); err != nil {
		l.Error("render failed", slog.String("path", path), slog.Any("err", err))
		return fmt.Errorf("render %s: %w", format, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	l.Info("exported", slog.String("path", path), slog.String("format", string(format)), slog.Int("bytes", buf.Len()))
	return nil
}
