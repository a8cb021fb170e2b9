package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapmark/internal/cache"
	"github.com/leapstack-labs/leapmark/internal/cli/config"
	"github.com/leapstack-labs/leapmark/internal/cli/output"
	"github.com/leapstack-labs/leapmark/internal/starlark"
	"github.com/leapstack-labs/leapmark/pkg/i18n"
	"github.com/leapstack-labs/leapmark/pkg/lint"
	"github.com/leapstack-labs/leapmark/pkg/spec"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext. format overrides the
// configured output mode when set.
func NewCommandContext(cmd *cobra.Command, format string) *CommandContext {
	cfg := getConfig()
	mode := output.Mode(cfg.OutputFormat)
	if format != "" {
		mode = output.Mode(format)
	}
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
	}
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return &config.Config{
		Locale:       os.Getenv("LEAPMARK_LOCALE"),
		Verbose:      os.Getenv("LEAPMARK_VERBOSE") == "true",
		OutputFormat: getEnvOrDefault("LEAPMARK_OUTPUT", config.DefaultOutput),
		ProjectRoot:  cwd,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// engineSetup is everything a lint run needs besides the files.
type engineSetup struct {
	Engine   *lint.Engine
	Registry *lint.Registry
	Store    *spec.Store
	// Custom holds the names of the rules loaded from scripts.
	Custom []string
	// ConfigKey changes whenever the configuration or a rule script does.
	ConfigKey string
}

// ruleOverrides are command-line adjustments of the configured rules.
type ruleOverrides struct {
	Only    []string // run only these rules
	Disable []string
}

// createEngine builds the lint engine from the configuration: the built-in
// rules plus the configured Starlark rules, the rule settings with
// command-line overrides, the spec store and the message locale.
func createEngine(cfg *config.Config, ov ruleOverrides, logger *slog.Logger) (*engineSetup, error) {
	store, err := spec.Default()
	if err != nil {
		return nil, err
	}

	loader := starlark.NewLoader(starlark.NewThreadPool(0, logger))
	registry, custom, err := loadRegistry(cfg, loader, logger)
	if err != nil {
		return nil, err
	}

	lintCfg, err := buildLintConfig(cfg, registry, custom, ov)
	if err != nil {
		return nil, err
	}
	if unknown := lintCfg.Unknown(registry); len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s", lint.ErrUnknownRule, strings.Join(unknown, ", "))
	}

	translator := i18n.FromEnv()
	if cfg.Locale != "" {
		translator = i18n.New(cfg.Locale)
	}
	locale := translator.Locale().String()

	eng, err := lint.NewEngine(lint.Options{
		Registry:    registry,
		Config:      lintCfg,
		Spec:        store,
		Translator:  translator,
		AriaVersion: cfg.Specs.AriaVersion,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}

	return &engineSetup{
		Engine:    eng,
		Registry:  registry,
		Store:     store,
		Custom:    custom,
		ConfigKey: cache.Key(cfg.Fingerprint(), locale, strings.Join(ov.Only, ","), strings.Join(ov.Disable, ","), loader.Digest()),
	}, nil
}

// loadRegistry returns the built-in rules plus the configured Starlark
// rules, whose names are returned as well.
func loadRegistry(cfg *config.Config, loader *starlark.Loader, logger *slog.Logger) (*lint.Registry, []string, error) {
	registry := lint.Default().Clone()
	if len(cfg.CustomRules) == 0 {
		return registry, nil, nil
	}
	rules, err := loader.LoadFiles(cfg.ProjectRoot, cfg.CustomRules)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load custom rules: %w", err)
	}
	custom := make([]string, 0, len(rules))
	for _, r := range rules {
		if _, exists := registry.Get(r.Name()); exists {
			return nil, nil, fmt.Errorf("custom rule %q shadows a built-in rule", r.Name())
		}
		registry.Add(r)
		custom = append(custom, r.Name())
	}
	logger.Debug("loaded custom rules", "count", len(rules))
	return registry, custom, nil
}

// buildLintConfig turns the configured rules into an engine config.
// Without any configured rule the built-in rules run with their defaults.
// Scripted rules run unless the configuration mentions them.
func buildLintConfig(cfg *config.Config, registry *lint.Registry, custom []string, ov ruleOverrides) (*lint.Config, error) {
	lintCfg, err := cfg.LintConfig()
	if err != nil {
		return nil, err
	}

	if len(lintCfg.Rules) == 0 && len(lintCfg.NodeRules) == 0 && len(lintCfg.ChildNodeRules) == 0 {
		for _, r := range registry.All() {
			if r.Info().Source == "builtin" {
				lintCfg.Enable(r.Name())
			}
		}
	}
	for _, name := range custom {
		if _, ok := lintCfg.Rules[name]; !ok {
			lintCfg.Enable(name)
		}
	}

	if len(ov.Only) > 0 {
		only := make(map[string]bool, len(ov.Only))
		for _, name := range ov.Only {
			name = strings.TrimSpace(name)
			if _, ok := registry.Get(name); !ok {
				return nil, fmt.Errorf("%w: %s", lint.ErrUnknownRule, name)
			}
			only[name] = true
			if s, ok := lintCfg.Rules[name]; !ok || s.Disabled {
				lintCfg.Enable(name)
			}
		}
		for _, name := range registry.Names() {
			if only[name] {
				continue
			}
			disableEverywhere(lintCfg, name)
		}
	}
	for _, name := range ov.Disable {
		name = strings.TrimSpace(name)
		if _, ok := registry.Get(name); !ok {
			return nil, fmt.Errorf("%w: %s", lint.ErrUnknownRule, name)
		}
		disableEverywhere(lintCfg, name)
	}
	return lintCfg, nil
}

// disableEverywhere turns a rule off globally and drops it from the
// selector overrides so none of them can enable it again.
func disableEverywhere(c *lint.Config, name string) {
	c.Disable(name)
	for _, nr := range c.NodeRules {
		delete(nr.Rules, name)
	}
	for _, cr := range c.ChildNodeRules {
		delete(cr.Rules, name)
	}
}

// newResultCache opens the layered result cache, or returns nil when the
// cache is disabled or its directory is unavailable.
func newResultCache(cfg *config.Config, logger *slog.Logger) *cache.ResultCache {
	if !cfg.Cache.Enabled {
		return nil
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		d, err := cache.DefaultDir()
		if err != nil {
			logger.Debug("result cache disabled", "err", err)
			return nil
		}
		dir = d
	}
	const ttl = 7 * 24 * time.Hour
	return cache.NewResultCache(cache.NewLayeredCache(time.Hour, dir, ttl), ttl, logger)
}
