/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Command chartkit renders bar charts with tooltips from YAML documents.
package main

import (
	"fmt"
	"os"
	"strings"

	"chartkit/internal/crash"
)

func main() {
	defer crash.Recover(&crash.Context{Command: strings.Join(os.Args, " "), Charts: chartArgs(os.Args[1:])})

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// chartArgs picks the document arguments out of a command line for crash reports.
func chartArgs(args []string) []string {
	var out []string
	for _, a := range args {
		if strings.HasSuffix(a, ".yaml") || strings.HasSuffix(a, ".yml") {
			out = append(out, a)
		}
	}
	return out
}
