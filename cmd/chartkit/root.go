/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"chartkit/internal/config"
	applog "chartkit/internal/log"
	"chartkit/internal/style"
	"chartkit/internal/textlayout"
	"chartkit/internal/theme"
	"chartkit/internal/tooltip"
	"chartkit/internal/version"
)

// app carries what every subcommand needs once the config is loaded.
type app struct {
	cfg config.AppConfig
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "chartkit",
		Short:         "Render bar charts with tooltips",
		Long:          "chartkit lays out bar charts described in YAML documents and exports them as SVG, PNG or PDF.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				// a broken config file is not fatal; defaults and env still apply
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: config:", err)
			}
			a.cfg = cfg
			applog.Init(applog.Options{
				Level:     cfg.Logging.Level,
				Format:    cfg.Logging.Format,
				AddSource: cfg.Logging.Source,
				File:      cfg.Logging.File,
				Console:   cmd.ErrOrStderr(),
			})
			applog.WithComponent("cli").Debug("start", slog.String("cmd", cmd.CommandPath()))
			return nil
		},
	}
	root.AddCommand(
		newVersionCmd(),
		newRenderCmd(a),
		newInspectCmd(a),
		newJournalCmd(a),
		newThemesCmd(a),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

// themeSheet layers the user's themes file over the built-in presets.
func (a *app) themeSheet() (*theme.Sheet, error) {
	sheet := theme.NewSheet()
	if a.cfg.General.ThemesFile == "" {
		return sheet, nil
	}
	user, err := theme.LoadFile(a.cfg.General.ThemesFile)
	if err != nil {
		return nil, err
	}
	return sheet.WithUser(user), nil
}

// tooltipFallbacks turns the config's tooltip section into a theme layer.
func (a *app) tooltipFallbacks() tooltip.Theme {
	t := a.cfg.Tooltip
	return tooltip.Theme{
		CornerRadius:  copyFloat(t.CornerRadius),
		PointerLength: copyFloat(t.PointerLength),
		PointerWidth:  copyFloat(t.PointerWidth),
	}
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	return style.Float(*p)
}

// measurer measures with the configured OpenType fonts and falls back to the
// built-in bitmap face.
func (a *app) measurer() (textlayout.Measurer, error) {
	if len(a.cfg.Fonts) == 0 {
		return textlayout.NewMeasurer(nil), nil
	}
	lib := textlayout.NewFontLibrary()
	for _, f := range a.cfg.Fonts {
		if err := lib.LoadTTF(f.Family, f.Path); err != nil {
			return nil, err
		}
	}
	return textlayout.NewMeasurer(textlayout.OTProvider{Lib: lib, Fallback: textlayout.BasicProvider{}}), nil
}
