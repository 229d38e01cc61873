/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"chartkit/internal/theme"
)

func newThemesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List the available themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sheet, err := a.themeSheet()
			if err != nil {
				return err
			}
			for _, n := range sheet.Names() {
				mark := " "
				if n == a.cfg.General.Theme {
					mark = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark, n)
			}
			return nil
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export <pack.zip> [theme...]",
		Short: "Write themes into a theme pack",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sheet, err := a.themeSheet()
			if err != nil {
				return err
			}
			names := args[1:]
			if len(names) == 0 {
				names = sheet.Names()
			}
			themes := make(map[string]theme.Theme, len(names))
			for _, n := range names {
				th, ok := sheet.Resolve(n)
				if !ok {
					return fmt.Errorf("unknown theme %q", n)
				}
				themes[n] = th
			}
			if err := theme.ExportPack(themes, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d themes to %s\n", len(themes), args[0])
			return nil
		},
	}

	installCmd := &cobra.Command{
		Use:   "install <pack.zip>",
		Short: "Add the themes of a pack to the user themes file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.General.ThemesFile == "" {
				return errors.New("no themes file configured (general.themes_file or CHARTKIT_THEMES_FILE)")
			}
			n, err := theme.InstallPack(args[0], a.cfg.General.ThemesFile)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "installed %d themes\n", n)
			return nil
		},
	}
	cmd.AddCommand(exportCmd, installCmd)
	return cmd
}
