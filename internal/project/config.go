package project

import (
	"fmt"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"

	"jlower/internal/trace"
)

// Config mirrors jlower.toml.
type Config struct {
	Translate TranslateConfig `toml:"translate"`
	Build     BuildConfig     `toml:"build"`
	Trace     TraceConfig     `toml:"trace"`
}

type TranslateConfig struct {
	// RuntimePrefix names the runtime array classes, e.g. "IOS" for IOSIntArray.
	RuntimePrefix string `toml:"runtime_prefix"`
	OutDir        string `toml:"out_dir"`
}

type BuildConfig struct {
	Jobs     int    `toml:"jobs"` // 0 means GOMAXPROCS
	Cache    bool   `toml:"cache"`
	CacheDir string `toml:"cache_dir"`
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Output string `toml:"output"`
}

// Manifest is a loaded configuration and where it came from.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Default returns the configuration used when no jlower.toml exists.
func Default() Config {
	return Config{
		Translate: TranslateConfig{RuntimePrefix: "IOS", OutDir: "out"},
		Build:     BuildConfig{Cache: true},
		Trace:     TraceConfig{Level: "off", Format: "auto", Output: "stderr"},
	}
}

var prefixPattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)

// Load reads path over the defaults. Unknown keys are rejected so that typos
// do not silently fall back to defaults.
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
	if meta.IsDefined("translate", "runtime_prefix") && strings.TrimSpace(cfg.Translate.RuntimePrefix) == "" {
		return Config{}, fmt.Errorf("%s: [translate].runtime_prefix must not be empty", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that TOML decoding alone cannot.
func (c Config) Validate() error {
	if !prefixPattern.MatchString(c.Translate.RuntimePrefix) {
		return fmt.Errorf("[translate].runtime_prefix %q must be a capitalised identifier", c.Translate.RuntimePrefix)
	}
	if c.Build.Jobs < 0 {
		return fmt.Errorf("[build].jobs must be >= 0, got %d", c.Build.Jobs)
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return fmt.Errorf("[trace].level: %w", err)
	}
	if _, err := trace.ParseFormat(c.Trace.Format); err != nil {
		return fmt.Errorf("[trace].format: %w", err)
	}
	return nil
}

// Jobs resolves the worker count.
func (c Config) Jobs() int {
	if c.Build.Jobs > 0 {
		return c.Build.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

// LoadManifest finds and loads jlower.toml starting at startDir. Relative
// paths in the result are resolved against the manifest's directory.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	root := filepath.Dir(path)
	if cfg.Translate.OutDir != "" && !filepath.IsAbs(cfg.Translate.OutDir) {
		cfg.Translate.OutDir = filepath.Join(root, cfg.Translate.OutDir)
	}
	if cfg.Build.CacheDir != "" && !filepath.IsAbs(cfg.Build.CacheDir) {
		cfg.Build.CacheDir = filepath.Join(root, cfg.Build.CacheDir)
	}
	return &Manifest{Path: path, Root: root, Config: cfg}, true, nil
}
