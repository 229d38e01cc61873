/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"chartkit/internal/storage"
)

func newJournalCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Inspect the render journal",
	}
	var (
		limit  int
		asJSON bool
	)
	list := &cobra.Command{
		Use:   "list [journal.sqlite]",
		Short: "List recent renders, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
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
			entries, err := j.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tWHEN\tSOURCE\tFORMAT\tBARS\tTOOLTIPS\tTOOK\tRESULT")
			for _, e := range entries {
				result := strings.Join(e.Outputs, ",")
				if e.Err != "" {
					result = "error: " + e.Err
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
					e.ID, e.At.Local().Format(time.DateTime), e.Source, e.Format, e.Bars, e.Tooltips, e.Duration, result)
			}
			return tw.Flush()
		},
	}
	list.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries (0 = all)")
	list.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")
	cmd.AddCommand(list)
	return cmd
}
