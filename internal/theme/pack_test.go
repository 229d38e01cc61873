/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package theme

import (
	"archive/zip"
	"path/filepath"
	"testing"

	"chartkit/internal/style"
	"chartkit/internal/tooltip"
)

func TestPack_ExportRead(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "out", "pack.zip")
	themes := map[string]Theme{
		"house": {Name: "house", Bar: style.Style{Fill: "navy"}, Tooltip: tooltip.Theme{CornerRadius: style.Float(3)}},
		"night": {Bar: style.Style{Fill: "#111111", StrokeWidth: style.Float(2)}},
	}
	if err := ExportPack(themes, zipPath); err != nil {
		t.Fatalf("export: %v", err)
	}

	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	_ = zr.Close()
	if len(names) != 3 || names[0] != packManifest || names[1] != "themes/house.yaml" || names[2] != "themes/night.yaml" {
		t.Fatalf("zip entries %v", names)
	}

	got, err := ReadPack(zipPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 2 || got["house"].Bar.Fill != "navy" || *got["house"].Tooltip.CornerRadius != 3 {
		t.Fatalf("house: %+v", got["house"])
	}
	if got["house"].Name != "" {
		t.Fatalf("pack entries are named by file, got %q", got["house"].Name)
	}
	if *got["night"].Bar.StrokeWidth != 2 {
		t.Fatalf("night: %+v", got["night"])
	}
}

func TestPack_InstallSkipsExisting(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "pack.zip")
	themesFile := filepath.Join(dir, "cfg", "themes.yaml")
	if err := ExportPack(map[string]Theme{
		"house": {Bar: style.Style{Fill: "navy"}},
		"night": {Bar: style.Style{Fill: "black"}},
	}, zipPath); err != nil {
		t.Fatal(err)
	}
	if err := SaveFile(themesFile, map[string]Theme{"house": {Bar: style.Style{Fill: "red"}}}); err != nil {
		t.Fatal(err)
	}

	n, err := InstallPack(zipPath, themesFile)
	if err != nil || n != 1 {
		t.Fatalf("install: %d %v", n, err)
	}
	all, err := LoadFile(themesFile)
	if err != nil {
		t.Fatal(err)
	}
	if all["house"].Bar.Fill != "red" || all["night"].Bar.Fill != "black" {
		t.Fatalf("merged themes %+v", all)
	}
	if n, err := InstallPack(zipPath, themesFile); err != nil || n != 0 {
		t.Fatalf("second install should be a no-op: %d %v", n, err)
	}
	if _, err := InstallPack(filepath.Join(dir, "missing.zip"), themesFile); err == nil {
		t.Fatalf("expected error for missing pack")
	}
}
