/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chartkit/internal/config"
)

const doc = `
title: Sales
width: 200
height: 100
padding: 20
data:
  - {x: 1, y: 2, label: a}
  - {x: 2, y: 4, label: b}
tooltips:
  - datum: 1
    text: hi
`

// run executes the CLI in-process with an isolated config.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvConfigPath, filepath.Join(dir, "config.yaml"))
	path := filepath.Join(dir, "sales.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersion(t *testing.T) {
	setup(t)
	out, err := run(t, "version")
	if err != nil || !strings.HasPrefix(out, "chartkit ") {
		t.Fatalf("version: %q %v", out, err)
	}
}

func TestRenderWritesFileAndJournal(t *testing.T) {
	src := setup(t)
	dir := filepath.Dir(src)
	outPath := filepath.Join(dir, "out", "sales.svg")
	db := filepath.Join(dir, "journal.sqlite")

	out, err := run(t, "render", src, "-o", outPath, "--journal", db)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.TrimSpace(out) != outPath {
		t.Fatalf("render output %q", out)
	}
	svg, err := os.ReadFile(outPath)
	if err != nil || !strings.Contains(string(svg), "<title>Sales</title>") {
		t.Fatalf("svg: %v", err)
	}

	out, err = run(t, "journal", "list", db, "--json")
	if err != nil {
		t.Fatalf("journal list: %v", err)
	}
	var entries []struct {
		Source   string   `json:"source"`
		Format   string   `json:"format"`
		Theme    string   `json:"theme"`
		Bars     int      `json:"bars"`
		Tooltips int      `json:"tooltips"`
		Outputs  []string `json:"outputs"`
	}
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(entries) != 1 || entries[0].Source != src || entries[0].Format != "svg" || entries[0].Theme != "grayscale" ||
		entries[0].Bars != 2 || entries[0].Tooltips != 1 || len(entries[0].Outputs) != 1 {
		t.Fatalf("journal entries %+v", entries)
	}

	out, err = run(t, "journal", "list", db)
	if err != nil || !strings.Contains(out, "SOURCE") || !strings.Contains(out, outPath) {
		t.Fatalf("journal table %q %v", out, err)
	}
}

func TestRenderFailureIsJournaled(t *testing.T) {
	src := setup(t)
	db := filepath.Join(filepath.Dir(src), "journal.sqlite")
	if _, err := run(t, "render", src, "-o", filepath.Join(filepath.Dir(src), "x.gif"), "--journal", db); err == nil {
		t.Fatalf("expected unknown format error")
	}
	out, err := run(t, "journal", "list", db, "--json")
	if err != nil || !strings.Contains(out, "unknown format") {
		t.Fatalf("failure not journaled: %q %v", out, err)
	}
	if _, err := run(t, "render", src); err == nil {
		t.Fatalf("expected error without -o or --preset")
	}
}

func TestRenderPreset(t *testing.T) {
	src := setup(t)
	dir := filepath.Join(filepath.Dir(src), "exports")
	out, err := run(t, "render", src, "--preset", "web", "--out-dir", dir)
	if err != nil {
		t.Fatalf("render preset: %v", err)
	}
	lines := strings.Fields(out)
	if len(lines) != 2 || lines[0] != filepath.Join(dir, "web", "sales.svg") || lines[1] != filepath.Join(dir, "web", "sales.png") {
		t.Fatalf("preset outputs %q", out)
	}
	for _, p := range lines {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("missing %s", p)
		}
	}
}

func TestInspect(t *testing.T) {
	src := setup(t)
	out, err := run(t, "inspect", src, "--theme", "material")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	var fr struct {
		Title    string `json:"title"`
		Theme    string `json:"theme"`
		Bars     []struct {
			ID   string `json:"id"`
			Path string `json:"path"`
		} `json:"bars"`
		Tooltips []json.RawMessage `json:"tooltips"`
	}
	if err := json.Unmarshal([]byte(out), &fr); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if fr.Title != "Sales" || fr.Theme != "material" || len(fr.Bars) != 2 || fr.Bars[0].ID != "bar-0" || fr.Bars[0].Path == "" || len(fr.Tooltips) != 1 {
		t.Fatalf("frame %+v", fr)
	}
	out, err = run(t, "inspect", src, "--ops")
	if err != nil {
		t.Fatalf("inspect --ops: %v", err)
	}
	var ops []struct {
		Kind string
		Path string
	}
	if err := json.Unmarshal([]byte(out), &ops); err != nil {
		t.Fatalf("decode ops: %v\n%s", err, out)
	}
	fills := 0
	for _, op := range ops {
		if op.Kind == "fill" && op.Path != "" {
			fills++
		}
	}
	if fills < 2 {
		t.Fatalf("ops %+v", ops)
	}
	if _, err := run(t, "inspect", filepath.Join(filepath.Dir(src), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing document")
	}
}

func TestThemes(t *testing.T) {
	src := setup(t)
	dir := filepath.Dir(src)
	out, err := run(t, "themes")
	if err != nil || !strings.Contains(out, "* grayscale") || !strings.Contains(out, "  material") {
		t.Fatalf("themes: %q %v", out, err)
	}

	pack := filepath.Join(dir, "pack.zip")
	if _, err := run(t, "themes", "export", pack, "material"); err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, err := run(t, "themes", "install", pack); err == nil {
		t.Fatalf("install without a themes file should fail")
	}
	t.Setenv(config.EnvThemesFile, filepath.Join(dir, "themes.yaml"))
	if out, err := run(t, "themes", "install", pack); err != nil || !strings.Contains(out, "installed 1") {
		t.Fatalf("install: %q %v", out, err)
	}
	if _, err := run(t, "themes", "export", pack, "nope"); err == nil {
		t.Fatalf("expected unknown theme error")
	}
}

func TestChartArgs(t *testing.T) {
	got := chartArgs([]string{"render", "a.yaml", "-o", "x.svg", "b.yml"})
	if len(got) != 2 || got[0] != "a.yaml" || got[1] != "b.yml" {
		t.Fatalf("chartArgs %v", got)
	}
}
