package lint

import (
	"fmt"
	"maps"
	"sort"

	"github.com/leapstack-labs/leapmark/pkg/core"
)

// RuleSetting is one configured value of a rule, globally or inside a
// selector override. Unset fields keep the value they override.
type RuleSetting struct {
	Disabled    bool
	Severity    core.Severity
	HasSeverity bool
	Value       any
	Options     map[string]any
}

// ParseRuleSetting decodes a configuration value: true or false, a
// severity name, a map with severity, value and options keys, or any
// other value taken as the rule value.
func ParseRuleSetting(raw any) (RuleSetting, error) {
	var s RuleSetting
	switch v := raw.(type) {
	case nil:
	case bool:
		s.Disabled = !v
	case string:
		switch v {
		case "off", "false":
			s.Disabled = true
		default:
			if sev, ok := core.ParseSeverity(v); ok {
				s.Severity, s.HasSeverity = sev, true
			} else {
				s.Value = v
			}
		}
	case map[string]any:
		return parseRuleMap(v)
	default:
		s.Value = v
	}
	return s, nil
}

func parseRuleMap(m map[string]any) (RuleSetting, error) {
	var s RuleSetting
	for k, v := range m {
		switch k {
		case "severity":
			switch sv := v.(type) {
			case bool:
				s.Disabled = !sv
			case string:
				sev, ok := core.ParseSeverity(sv)
				if !ok {
					return s, fmt.Errorf("invalid severity %q", sv)
				}
				s.Severity, s.HasSeverity = sev, true
			default:
				return s, fmt.Errorf("invalid severity %v", v)
			}
		case "value":
			s.Value = v
		case "options", "option":
			opts, ok := v.(map[string]any)
			if !ok {
				return s, fmt.Errorf("options must be a map, got %T", v)
			}
			s.Options = opts
		default:
			return s, fmt.Errorf("unknown key %q", k)
		}
	}
	return s, nil
}

// ParseRules decodes a rules map such as the "rules" section of a
// configuration file.
func ParseRules(raw map[string]any) (map[string]RuleSetting, error) {
	out := make(map[string]RuleSetting, len(raw))
	for name, v := range raw {
		s, err := ParseRuleSetting(v)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", name, err)
		}
		out[name] = s
	}
	return out, nil
}

// NodeRule overrides rule settings for elements matching Selector.
type NodeRule struct {
	Selector string
	Rules    map[string]RuleSetting
}

// ChildNodeRule overrides rule settings for the children of elements
// matching Selector, or for all their descendants with Inheritance.
type ChildNodeRule struct {
	Selector    string
	Inheritance bool
	Rules       map[string]RuleSetting
}

// Config controls which rules run and how.
type Config struct {
	// Rules holds the global setting per rule name. A rule runs when it is
	// listed here and not disabled, or when an override enables it.
	Rules map[string]RuleSetting

	NodeRules      []NodeRule
	ChildNodeRules []ChildNodeRule
}

// NewConfig creates an empty configuration.
func NewConfig() *Config {
	return &Config{Rules: make(map[string]RuleSetting)}
}

// Enable turns a rule on with its defaults.
func (c *Config) Enable(name string) *Config {
	c.Rules[name] = RuleSetting{}
	return c
}

// Disable turns a rule off.
func (c *Config) Disable(name string) *Config {
	c.Rules[name] = RuleSetting{Disabled: true}
	return c
}

// Set stores a rule setting.
func (c *Config) Set(name string, s RuleSetting) *Config {
	c.Rules[name] = s
	return c
}

// mentions reports whether the rule is enabled anywhere in the config.
func (c *Config) mentions(name string) bool {
	if s, ok := c.Rules[name]; ok && !s.Disabled {
		return true
	}
	for _, nr := range c.NodeRules {
		if s, ok := nr.Rules[name]; ok && !s.Disabled {
			return true
		}
	}
	for _, cr := range c.ChildNodeRules {
		if s, ok := cr.Rules[name]; ok && !s.Disabled {
			return true
		}
	}
	return false
}

// Unknown returns the configured rule names missing from the registry,
// sorted.
func (c *Config) Unknown(r *Registry) []string {
	seen := map[string]bool{}
	check := func(rules map[string]RuleSetting) {
		for name := range rules {
			if _, ok := r.Get(name); !ok {
				seen[name] = true
			}
		}
	}
	check(c.Rules)
	for _, nr := range c.NodeRules {
		check(nr.Rules)
	}
	for _, cr := range c.ChildNodeRules {
		check(cr.Rules)
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Setting is the effective configuration of a rule for one node.
type Setting struct {
	Severity core.Severity
	Value    any
	Options  map[string]any
}

// defaultSetting returns the rule's built-in setting.
func defaultSetting(r Rule) Setting {
	return Setting{
		Severity: r.DefaultSeverity(),
		Value:    r.DefaultValue(),
		Options:  r.DefaultOptions(),
	}
}

// apply layers an override on top of s.
func (s Setting) apply(o RuleSetting) Setting {
	if o.HasSeverity {
		s.Severity = o.Severity
	}
	if o.Value != nil {
		s.Value = o.Value
	}
	if len(o.Options) > 0 {
		merged := maps.Clone(s.Options)
		if merged == nil {
			merged = make(map[string]any, len(o.Options))
		}
		maps.Copy(merged, o.Options)
		s.Options = merged
	}
	return s
}
