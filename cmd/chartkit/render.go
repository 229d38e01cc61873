/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"chartkit/internal/chart"
	"chartkit/internal/domain"
	"chartkit/internal/export"
	applog "chartkit/internal/log"
	"chartkit/internal/storage"
	"chartkit/internal/vector"
)

type buildFlags struct {
	data  string
	sheet string
	theme string
}

func (f *buildFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.data, "data", "", "XLSX workbook replacing the document's data")
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "Worksheet of --data (default: first sheet)")
	cmd.Flags().StringVar(&f.theme, "theme", "", "Theme used when the document names none")
}

// frame loads the document at path and lays it out.
func (a *app) frame(ctx context.Context, path string, f buildFlags) (chart.Frame, domain.Chart, error) {
	doc, err := domain.LoadChart(path)
	if err != nil {
		return chart.Frame{}, doc, err
	}
	if f.data != "" {
		data, err := domain.LoadXLSXData(domain.DataSource{XLSX: f.data, Sheet: f.sheet})
		if err != nil {
			return chart.Frame{}, doc, err
		}
		doc.Data = data
	}
	if doc.Background == "" {
		doc.Background = a.cfg.Render.Background
	}
	sheet, err := a.themeSheet()
	if err != nil {
		return chart.Frame{}, doc, err
	}
	def := f.theme
	if def == "" {
		def = a.cfg.General.Theme
	}
	scene, err := chart.Build(doc, chart.Options{Theme: def, Tooltip: a.tooltipFallbacks(), Sheet: sheet})
	if err != nil {
		return chart.Frame{}, doc, fmt.Errorf("%s: %w", path, err)
	}
	m, err := a.measurer()
	if err != nil {
		return chart.Frame{}, doc, err
	}
	fr, err := chart.Layout(ctx, scene, m)
	return fr, doc, err
}

func newRenderCmd(a *app) *cobra.Command {
	var (
		bf      buildFlags
		out     string
		format  string
		preset  string
		outDir  string
		scale   float64
		journal string
	)
	cmd := &cobra.Command{
		Use:   "render <chart.yaml>",
		Short: "Render a chart document to SVG, PNG or PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			ctx := applog.ContextWithChart(cmd.Context(), src)
			l := applog.WithOperation(applog.WithComponent("cli"), "render")
			start := time.Now()

			if out == "" && preset == "" {
				return errors.New("either -o or --preset is required")
			}
			if scale <= 0 {
				scale = a.cfg.Render.Scale
			}

			fr, doc, err := a.frame(ctx, src, bf)
			entry := storage.Entry{Source: src, Title: doc.Title, Theme: doc.ThemeName(a.cfg.General.Theme)}
			var outputs []string
			if err == nil {
				entry.Bars, entry.Tooltips = len(fr.Bars), len(fr.Placements)
				entry.Theme = fr.Theme
				if preset != "" {
					p, perr := export.ParsePreset(preset)
					if perr != nil {
						err = perr
					} else {
						dir := outDir
						if dir == "" {
							dir = "."
						}
						entry.Format = string(p)
						var formats []string
						if format != "" {
							formats = strings.Split(format, ",")
						}
						outputs, err = export.BatchExport(fr, export.BatchOptions{
							Preset: p, Formats: formats, OutDir: dir, Name: baseName(src), Scale: scale,
						})
					}
				} else {
					var ft export.Format
					ft, err = outputFormat(out, format, a.cfg.Render.Format)
					if err == nil {
						entry.Format = string(ft)
						if filepath.Ext(out) == "" {
							out += "." + string(ft)
						}
						err = export.ExportFile(out, ft, fr, export.Options{Scale: scale})
						if err == nil {
							outputs = []string{out}
						}
					}
				}
			}
			entry.Outputs = outputs
			entry.Duration = time.Since(start)
			if err != nil {
				entry.Err = err.Error()
				l.ErrorContext(ctx, "render failed", slog.Any("err", err))
			}
			if jerr := a.record(ctx, journal, entry); jerr != nil {
				l.WarnContext(ctx, "journal write failed", slog.Any("err", jerr))
			}
			if err != nil {
				return err
			}
			for _, p := range outputs {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	bf.register(cmd)
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output file; the extension selects the format")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Format (svg, png, pdf); with --preset a comma separated list")
	cmd.Flags().StringVar(&preset, "preset", "", "Export preset: web or print")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Directory for preset output (default: current directory)")
	cmd.Flags().Float64Var(&scale, "scale", 0, "PNG pixel scale (default from config)")
	cmd.Flags().StringVar(&journal, "journal", "", "Record the render in this journal database")
	return cmd
}

func baseName(path string) string {
	b := filepath.Base(path)
	return strings.TrimSuffix(b, filepath.Ext(b))
}

// outputFormat picks the explicit format, then the extension of out, then
// the configured default.
func outputFormat(out, explicit, def string) (export.Format, error) {
	if explicit != "" {
		return export.ParseFormat(explicit)
	}
	if filepath.Ext(out) != "" {
		return export.FormatFromPath(out)
	}
	if def == "" {
		def = string(export.FormatSVG)
	}
	return export.ParseFormat(def)
}

// record writes e to the journal named by the flag or, when enabled, the
// configured one.
func (a *app) record(ctx context.Context, flagPath string, e storage.Entry) error {
	path := flagPath
	if path == "" {
		if !a.cfg.Journal.Enabled {
			return nil
		}
		p, err := a.cfg.JournalPath()
		if err != nil {
			return err
		}
		path = p
	}
	j, err := storage.OpenJournal(path)
	if err != nil {
		return err
	}
	defer j.Close()
	_, err = j.Record(ctx, e)
	return err
}

func newInspectCmd(a *app) *cobra.Command {
	var (
		bf  buildFlags
		ops bool
	)
	cmd := &cobra.Command{
		Use:   "inspect <chart.yaml>",
		Short: "Print the laid out chart as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := applog.ContextWithChart(cmd.Context(), args[0])
			fr, _, err := a.frame(ctx, args[0], bf)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if !ops {
				return enc.Encode(fr)
			}
			var rec vector.Recorder
			if err := chart.Draw(&rec, fr); err != nil {
				return err
			}
			return enc.Encode(rec.Ops)
		},
	}
	bf.register(cmd)
	cmd.Flags().BoolVar(&ops, "ops", false, "Print the drawing calls instead of the layout")
	return cmd
}
