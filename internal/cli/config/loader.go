package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store logger in context.
type loggerKey struct{}

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// envPrefix prefixes environment variables read into the configuration.
const envPrefix = "LEAPMARK_"

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config
)

// envKeys maps lowercased environment suffixes to config keys whose names
// are not plain lowercase.
var envKeys = map[string]string{
	"specs_ariaversion": "specs.ariaVersion",
	"aria_version":      "specs.ariaVersion",
	"exclude_files":     "excludeFiles",
	"custom_rules":      "customRules",
	"cache_enabled":     "cache.enabled",
	"cache_dir":         "cache.dir",
}

// flagKeys maps command-line flags to config keys. Flags missing here are
// command options, not configuration.
var flagKeys = map[string]string{
	"output":       "output",
	"format":       "output",
	"verbose":      "verbose",
	"locale":       "locale",
	"aria-version": "specs.ariaVersion",
	"cache":        "cache.enabled",
}

// findConfigIn returns the first config file present in dir.
func findConfigIn(dir string) string {
	for _, name := range ConfigFileNames {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// findConfigUpward searches upward from startDir for a config file.
// Returns empty string if not found within maxUpwardSearchLevels.
func findConfigUpward(startDir string) string {
	dir := startDir
	for range maxUpwardSearchLevels {
		if f := findConfigIn(dir); f != "" {
			return f
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}
	return ""
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// LoadConfig loads configuration from defaults, the config file,
// environment variables and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return loadConfig(cfgFile, cwd, flags)
}

// LoadConfigFrom loads the configuration of the project containing dir,
// searching upward from dir instead of the working directory. Without a
// config file dir becomes the project root.
func LoadConfigFrom(dir string) (*Config, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("project root %s: %w", dir, err)
	}
	return loadConfig("", abs, nil)
}

func loadConfig(cfgFile, startDir string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")
	configFileUsed = ""

	// 1. Load defaults
	if err := k.Load(confmap.Provider(map[string]any{
		"verbose":       false,
		"output":        DefaultOutput,
		"cache.enabled": true,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file, extended files first
	if cfgFile == "" {
		cfgFile = findConfigUpward(startDir)
	}
	if cfgFile != "" {
		abs, err := filepath.Abs(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("config file %s: %w", cfgFile, err)
		}
		if err := loadFile(k, abs, map[string]bool{}); err != nil {
			return nil, err
		}
		configFileUsed = abs
	}

	// 3. Load environment variables (LEAPMARK_ prefix)
	// Transform: LEAPMARK_LOCALE -> locale, LEAPMARK_SPECS_ARIAVERSION -> specs.ariaVersion
	if err := k.Load(env.ProviderWithValue(envPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority - overrides env vars and config file)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// 6. Anchor relative paths at the project root
	cfg.ConfigFile = configFileUsed
	if configFileUsed != "" {
		cfg.ProjectRoot = filepath.Dir(configFileUsed)
	} else {
		cfg.ProjectRoot = startDir
	}
	for i, p := range cfg.CustomRules {
		cfg.CustomRules[i] = resolvePathRelativeTo(p, cfg.ProjectRoot)
	}
	cfg.Cache.Dir = resolvePathRelativeTo(cfg.Cache.Dir, cfg.ProjectRoot)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	currentConfig = &cfg
	return &cfg, nil
}

// loadFile merges path into ko after the files it extends. stack holds
// the files being loaded to reject extends cycles.
func loadFile(ko *koanf.Koanf, path string, stack map[string]bool) error {
	if stack[path] {
		return fmt.Errorf("config file %s: extends cycle", path)
	}
	stack[path] = true
	defer delete(stack, path)

	m, err := readFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file %s: %w", path, err)
	}

	extends, err := extendsOf(m)
	if err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	delete(m, "extends")
	for _, ext := range extends {
		if err := loadFile(ko, resolvePathRelativeTo(ext, filepath.Dir(path)), stack); err != nil {
			return err
		}
	}

	// An empty delimiter keeps keys such as parser patterns intact.
	if err := ko.Load(confmap.Provider(m, ""), nil); err != nil {
		return fmt.Errorf("error loading config file %s: %w", path, err)
	}
	return nil
}

// readFile decodes a YAML or TOML config file into a map.
func readFile(path string) (map[string]any, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		var m map[string]any
		if _, err := toml.DecodeFile(path, &m); err != nil {
			return nil, err
		}
		if m == nil {
			m = map[string]any{}
		}
		return m, nil
	}

	b, err := file.Provider(path).ReadBytes()
	if err != nil {
		return nil, err
	}
	m, err := yaml.Parser().Unmarshal(b)
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

// extendsOf reads the extends key: a path or a list of paths.
func extendsOf(m map[string]any) ([]string, error) {
	switch v := m["extends"].(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("extends: expected a path, got %T", e)
			}
			out = append(out, s)
		}
		return out, nil
	case []string:
		return v, nil
	default:
		return nil, fmt.Errorf("extends: expected a path or a list of paths, got %T", v)
	}
}

// envListKeys are config keys holding lists; their env values are comma
// separated.
var envListKeys = map[string]bool{
	"excludeFiles": true,
	"customRules":  true,
}

func envValue(name, value string) (string, any) {
	key := envKey(name)
	if !envListKeys[key] {
		return key, value
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return key, items
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if mapped, ok := envKeys[key]; ok {
		return mapped
	}
	return key
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
// Returns the path unchanged if it's empty or already absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the currently loaded configuration.
// This is available after LoadConfig is called.
func GetCurrentConfig() *Config {
	return currentConfig
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() any {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}
