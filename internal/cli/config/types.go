// Package config provides configuration management for the leapmark CLI.
//
// Configuration is layered with koanf: built-in defaults, then the config
// file (and the files it extends), then LEAPMARK_* environment variables,
// then explicitly set command-line flags.
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/leapstack-labs/leapmark/pkg/dialect"
	"github.com/leapstack-labs/leapmark/pkg/lint"
)

// Config holds all CLI configuration options.
type Config struct {
	// Parser maps file name patterns (regular expressions) to dialects.
	Parser map[string]string `koanf:"parser"`
	// Rules maps rule names to true/false, a severity, or a map with
	// severity, value and options.
	Rules          map[string]any        `koanf:"rules"`
	NodeRules      []NodeRuleConfig      `koanf:"nodeRules"`
	ChildNodeRules []ChildNodeRuleConfig `koanf:"childNodeRules"`
	Specs          SpecsConfig           `koanf:"specs"`
	ExcludeFiles   []string              `koanf:"excludeFiles"`
	CustomRules    []string              `koanf:"customRules"`
	Locale         string                `koanf:"locale"`
	Cache          CacheConfig           `koanf:"cache"`
	Verbose        bool                  `koanf:"verbose"`
	OutputFormat   string                `koanf:"output"`

	// ConfigFile is the file the configuration was read from, if any.
	ConfigFile string `koanf:"-"`
	// ProjectRoot anchors relative paths: the config file's directory or
	// the working directory.
	ProjectRoot string `koanf:"-"`
}

// NodeRuleConfig overrides rules for elements matching Selector.
type NodeRuleConfig struct {
	Selector string         `koanf:"selector" json:"selector" yaml:"selector"`
	Rules    map[string]any `koanf:"rules" json:"rules" yaml:"rules"`
}

// ChildNodeRuleConfig overrides rules for the children of elements
// matching Selector, or all their descendants with Inheritance.
type ChildNodeRuleConfig struct {
	Selector    string         `koanf:"selector" json:"selector" yaml:"selector"`
	Inheritance bool           `koanf:"inheritance" json:"inheritance" yaml:"inheritance,omitempty"`
	Rules       map[string]any `koanf:"rules" json:"rules" yaml:"rules"`
}

// SpecsConfig selects spec data versions.
type SpecsConfig struct {
	AriaVersion string `koanf:"ariaVersion" json:"ariaVersion"`
}

// CacheConfig controls the result cache.
type CacheConfig struct {
	Enabled bool `koanf:"enabled"`
	// Dir defaults to the user cache directory.
	Dir string `koanf:"dir"`
}

// Default configuration values.
const (
	DefaultOutput = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// ConfigFileNames are searched in order in each directory.
var ConfigFileNames = []string{
	".leapmarkrc.yaml",
	".leapmarkrc.yml",
	".leapmarkrc.toml",
	"leapmark.yaml",
}

// LintConfig converts the rule sections into an engine configuration.
func (c *Config) LintConfig() (*lint.Config, error) {
	lc := lint.NewConfig()
	rules, err := lint.ParseRules(c.Rules)
	if err != nil {
		return nil, err
	}
	lc.Rules = rules

	for i, nr := range c.NodeRules {
		if nr.Selector == "" {
			return nil, fmt.Errorf("nodeRules[%d]: selector is required", i)
		}
		rs, err := lint.ParseRules(nr.Rules)
		if err != nil {
			return nil, fmt.Errorf("nodeRules[%d]: %w", i, err)
		}
		lc.NodeRules = append(lc.NodeRules, lint.NodeRule{Selector: nr.Selector, Rules: rs})
	}
	for i, cr := range c.ChildNodeRules {
		if cr.Selector == "" {
			return nil, fmt.Errorf("childNodeRules[%d]: selector is required", i)
		}
		rs, err := lint.ParseRules(cr.Rules)
		if err != nil {
			return nil, fmt.Errorf("childNodeRules[%d]: %w", i, err)
		}
		lc.ChildNodeRules = append(lc.ChildNodeRules, lint.ChildNodeRule{
			Selector:    cr.Selector,
			Inheritance: cr.Inheritance,
			Rules:       rs,
		})
	}
	return lc, nil
}

// Mappings returns the parser section as dialect mappings, sorted by
// pattern so the first match is stable.
func (c *Config) Mappings() []dialect.Mapping {
	out := make([]dialect.Mapping, 0, len(c.Parser))
	for pattern, name := range c.Parser {
		out = append(out, dialect.Mapping{Pattern: pattern, Dialect: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pattern < out[j].Pattern })
	return out
}

// Fingerprint identifies the settings that change lint results. Two
// configurations with the same fingerprint produce the same results for
// the same source.
func (c *Config) Fingerprint() string {
	data, _ := json.Marshal(struct {
		Parser         map[string]string     `json:"parser"`
		Rules          map[string]any        `json:"rules"`
		NodeRules      []NodeRuleConfig      `json:"nodeRules"`
		ChildNodeRules []ChildNodeRuleConfig `json:"childNodeRules"`
		Specs          SpecsConfig           `json:"specs"`
		Locale         string                `json:"locale"`
	}{c.Parser, c.Rules, c.NodeRules, c.ChildNodeRules, c.Specs, c.Locale})
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
