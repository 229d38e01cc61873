/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
// Unknown fields are ignored on unmarshal.

type GeneralConfig struct {
	Theme      string `yaml:"theme"`       // theme used when a chart names none
	ThemesFile string `yaml:"themes_file"` // optional YAML map of user themes
}

type RenderConfig struct {
	Format     string  `yaml:"format"` // svg | png | pdf, used when -o has no extension
	Scale      float64 `yaml:"scale"`  // PNG pixel scale
	Background string  `yaml:"background"`
}

// TooltipConfig holds fallbacks applied beneath the active theme.
type TooltipConfig struct {
	CornerRadius  *float64 `yaml:"corner_radius,omitempty"`
	PointerLength *float64 `yaml:"pointer_length,omitempty"`
	PointerWidth  *float64 `yaml:"pointer_width,omitempty"`
}

type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// FontConfig registers an OpenType file under a family name.
type FontConfig struct {
	Family string `yaml:"family"`
	Path   string `yaml:"path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	General       GeneralConfig `yaml:"general"`
	Render        RenderConfig  `yaml:"render"`
	Tooltip       TooltipConfig `yaml:"tooltip"`
	Journal       JournalConfig `yaml:"journal"`
	Fonts         []FontConfig  `yaml:"fonts,omitempty"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{Theme: "grayscale"},
		Render:        RenderConfig{Format: "svg", Scale: 1},
		Journal:       JournalConfig{Enabled: false},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvConfigPath     = "CHARTKIT_CONFIG"
	EnvTheme          = "CHARTKIT_THEME"
	EnvThemesFile     = "CHARTKIT_THEMES_FILE"
	EnvRenderFormat   = "CHARTKIT_RENDER_FORMAT"
	EnvRenderScale    = "CHARTKIT_RENDER_SCALE"
	EnvJournalEnabled = "CHARTKIT_JOURNAL_ENABLED"
	EnvJournalPath    = "CHARTKIT_JOURNAL_PATH"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "CHARTKIT_LOG_LEVEL"
	EnvLogFormat = "CHARTKIT_LOG_FORMAT"
	EnvLogSource = "CHARTKIT_LOG_SOURCE"
	EnvLogFile   = "CHARTKIT_LOG_FILE"
)

// ConfigDir returns the per-user directory holding config.yaml and the
// default journal.
func ConfigDir() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return filepath.Dir(p), nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "chartkit")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "chartkit")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "chartkit")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return base, nil
}

// ConfigPath returns the per-user config file path. CHARTKIT_CONFIG wins.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// JournalPath returns the configured journal path or the default one next
// to the config file.
func (c AppConfig) JournalPath() (string, error) {
	if p := strings.TrimSpace(c.Journal.Path); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "journal.sqlite"), nil
}

// Load reads user config file (if present), applies defaults, and merges environment overrides.
// A config file that exists but does not parse is reported; the defaults are still returned.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	var parseErr error
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		} else {
			parseErr = err
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, parseErr
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if strings.TrimSpace(src.General.Theme) != "" {
		dst.General.Theme = strings.TrimSpace(src.General.Theme)
	}
	if strings.TrimSpace(src.General.ThemesFile) != "" {
		dst.General.ThemesFile = strings.TrimSpace(src.General.ThemesFile)
	}
	// render
	if strings.TrimSpace(src.Render.Format) != "" {
		dst.Render.Format = strings.ToLower(strings.TrimSpace(src.Render.Format))
	}
	if src.Render.Scale > 0 {
		dst.Render.Scale = src.Render.Scale
	}
	if strings.TrimSpace(src.Render.Background) != "" {
		dst.Render.Background = strings.TrimSpace(src.Render.Background)
	}
	// tooltip fallbacks
	if src.Tooltip.CornerRadius != nil {
		dst.Tooltip.CornerRadius = src.Tooltip.CornerRadius
	}
	if src.Tooltip.PointerLength != nil {
		dst.Tooltip.PointerLength = src.Tooltip.PointerLength
	}
	if src.Tooltip.PointerWidth != nil {
		dst.Tooltip.PointerWidth = src.Tooltip.PointerWidth
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.Journal.Enabled = src.Journal.Enabled
	if strings.TrimSpace(src.Journal.Path) != "" {
		dst.Journal.Path = strings.TrimSpace(src.Journal.Path)
	}
	if len(src.Fonts) > 0 {
		dst.Fonts = append([]FontConfig(nil), src.Fonts...)
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func truthy(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvTheme)); v != "" {
		cfg.General.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvThemesFile)); v != "" {
		cfg.General.ThemesFile = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvRenderFormat)); v != "" {
		cfg.Render.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvRenderScale)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Render.Scale = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvJournalEnabled)); v != "" {
		cfg.Journal.Enabled = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvJournalPath)); v != "" {
		cfg.Journal.Path = v
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

var envKeys = map[string]string{
	"general.theme":       EnvTheme,
	"general.themes_file": EnvThemesFile,
	"render.format":       EnvRenderFormat,
	"render.scale":        EnvRenderScale,
	"journal.enabled":     EnvJournalEnabled,
	"journal.path":        EnvJournalPath,
	"logging.level":       EnvLogLevel,
	"logging.format":      EnvLogFormat,
	"logging.source":      EnvLogSource,
	"logging.file":        EnvLogFile,
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	env, ok := envKeys[key]
	if !ok || os.Getenv(env) == "" {
		return "", false
	}
	return env, true
}
