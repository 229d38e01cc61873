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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	applog "chartkit/internal/log"
)

const packManifest = "themepack.manifest.txt"

// ExportPack zips themes into destZipPath, one YAML file per theme under
// themes/, plus a small manifest for quick human inspection.
func ExportPack(themes map[string]Theme, destZipPath string) error {
	l := applog.WithOperation(applog.WithComponent("theme"), "pack_export").With(slog.String("zip", destZipPath))
	if strings.TrimSpace(destZipPath) == "" {
		return errors.New("destZipPath is required")
	}
	if err := os.MkdirAll(filepath.Dir(destZipPath), 0o755); err != nil {
		return fmt.Errorf("ensure zip dir: %w", err)
	}
	// On Windows, remove destination if present before create
	_ = os.Remove(destZipPath)

	zf, err := os.Create(destZipPath)
	if err != nil {
		return fmt.Errorf("create zip: %w", err)
	}
	zw := zip.NewWriter(zf)

	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)

	manifest := fmt.Sprintf("chartkit Theme Pack\nCreated: %s\nThemes: %s\n",
		time.Now().Format(time.RFC3339), strings.Join(names, ", "))
	if err := writeEntry(zw, packManifest, []byte(manifest)); err != nil {
		_ = zf.Close()
		return fmt.Errorf("write manifest: %w", err)
	}
	for _, n := range names {
		th := themes[n]
		th.Name = ""
		data, err := yaml.Marshal(th)
		if err != nil {
			_ = zf.Close()
			return fmt.Errorf("encode theme %s: %w", n, err)
		}
		if err := writeEntry(zw, path.Join("themes", n+".yaml"), data); err != nil {
			_ = zf.Close()
			l.Error("zip build failed", slog.Any("err", err))
			return fmt.Errorf("build zip: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		_ = zf.Close()
		return fmt.Errorf("finish zip: %w", err)
	}
	if err := zf.Close(); err != nil {
		return fmt.Errorf("close zip: %w", err)
	}
	l.Info("theme pack exported", slog.Int("themes", len(names)))
	return nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ReadPack returns the themes stored in a pack, keyed by file name without
// extension. Entries outside themes/ are ignored.
func ReadPack(packZipPath string) (map[string]Theme, error) {
	r, err := zip.OpenReader(packZipPath)
	if err != nil {
		return nil, fmt.Errorf("open pack: %w", err)
	}
	defer func() { _ = r.Close() }()

	out := map[string]Theme{}
	for _, f := range r.File {
		if f.FileInfo().IsDir() || !strings.HasPrefix(f.Name, "themes/") {
			continue
		}
		ext := path.Ext(f.Name)
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		var th Theme
		if err := yaml.Unmarshal(data, &th); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.Name, err)
		}
		out[strings.TrimSuffix(path.Base(f.Name), ext)] = th
	}
	return out, nil
}

// InstallPack merges the themes of a pack into the YAML themes file at
// themesFile. Existing themes are not overwritten; they are skipped.
// Returns the count of themes installed.
func InstallPack(packZipPath, themesFile string) (int, error) {
	l := applog.WithOperation(applog.WithComponent("theme"), "pack_install").With(slog.String("file", themesFile))
	if strings.TrimSpace(themesFile) == "" {
		return 0, errors.New("themes file is required")
	}
	pack, err := ReadPack(packZipPath)
	if err != nil {
		return 0, err
	}
	current, err := LoadFile(themesFile)
	if err != nil {
		return 0, err
	}
	installed := 0
	for n, th := range pack {
		if _, ok := current[n]; ok {
			l.Warn("skip existing theme", slog.String("theme", n))
			continue
		}
		current[n] = th
		installed++
	}
	if installed == 0 {
		return 0, nil
	}
	if err := SaveFile(themesFile, current); err != nil {
		return 0, err
	}
	l.Info("theme pack installed", slog.Int("themes", installed))
	return installed, nil
}

// SaveFile writes a YAML map of named themes.
func SaveFile(file string, themes map[string]Theme) error {
	data, err := yaml.Marshal(themes)
	if err != nil {
		return fmt.Errorf("encode themes: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("ensure themes dir: %w", err)
	}
	return os.WriteFile(file, data, 0o644)
}
