// Package config loads dogwood.toml: REPL, diagnostics and trace settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"dogwood/internal/diagfmt"
	"dogwood/internal/trace"
)

// FileName is looked up from the working directory upwards.
const FileName = "dogwood.toml"

type Config struct {
	// Path of the file the values came from, empty for defaults.
	Path        string            `toml:"-"`
	REPL        REPLConfig        `toml:"repl"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Trace       TraceConfig       `toml:"trace"`
}

type REPLConfig struct {
	Prompt  string `toml:"prompt"`
	UI      string `toml:"ui"` // auto|on|off
	ShowRPN bool   `toml:"show_rpn"`
	History bool   `toml:"history"` // сохранять ввод между сессиями
}

type DiagnosticsConfig struct {
	Format  string `toml:"format"` // pretty|short|json|msgpack
	Color   string `toml:"color"`  // auto|on|off
	Max     int    `toml:"max"`
	Context bool   `toml:"context"`
}

type TraceConfig struct {
	Level    string `toml:"level"`
	Mode     string `toml:"mode"`
	Output   string `toml:"output"`
	RingSize int    `toml:"ring_size"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		REPL: REPLConfig{
			Prompt:  ">>> ",
			UI:      "off",
			ShowRPN: true,
			History: true,
		},
		Diagnostics: DiagnosticsConfig{
			Format:  "pretty",
			Color:   "auto",
			Max:     32,
			Context: true,
		},
		Trace: TraceConfig{
			Level:    "off",
			Mode:     "stream",
			Output:   "-",
			RingSize: trace.DefaultRingSize,
		},
	}
}

// Resolve loads the explicit path when given, otherwise the first file Find
// reports. No file means defaults.
func Resolve(explicit, startDir string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Find looks for dogwood.toml in startDir and its parents, then for
// $XDG_CONFIG_HOME/dogwood/config.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if ok, err := exists(candidate); err != nil || ok {
			return candidate, ok, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			// без домашнего каталога остаются значения по умолчанию
			return "", false, nil
		}
		base = filepath.Join(home, ".config")
	}
	candidate := filepath.Join(base, "dogwood", "config.toml")
	ok, err := exists(candidate)
	if err != nil || !ok {
		return "", false, err
	}
	return candidate, true, nil
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %q: %w", path, err)
}

// Load decodes path over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(meta); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

func (c *Config) validate(meta toml.MetaData) error {
	if meta.IsDefined("repl", "prompt") && c.REPL.Prompt == "" {
		return fmt.Errorf("[repl].prompt must not be empty")
	}
	if err := oneOf("[repl].ui", c.REPL.UI, "auto", "on", "off"); err != nil {
		return err
	}
	if _, err := diagfmt.ParseFormat(c.Diagnostics.Format); err != nil {
		return fmt.Errorf("[diagnostics].format: %w", err)
	}
	if err := oneOf("[diagnostics].color", c.Diagnostics.Color, "auto", "on", "off"); err != nil {
		return err
	}
	if c.Diagnostics.Max < 0 {
		return fmt.Errorf("[diagnostics].max must be >= 0, got %d", c.Diagnostics.Max)
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return fmt.Errorf("[trace].level: %w", err)
	}
	if _, err := trace.ParseMode(c.Trace.Mode); err != nil {
		return fmt.Errorf("[trace].mode: %w", err)
	}
	if c.Trace.RingSize < 0 {
		return fmt.Errorf("[trace].ring_size must be >= 0, got %d", c.Trace.RingSize)
	}
	return nil
}

func oneOf(key, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s: invalid value %q (expected: %s)", key, value, strings.Join(allowed, "|"))
}
