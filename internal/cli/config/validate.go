package config

import (
	"errors"
	"fmt"
	"regexp"
	"slices"

	"github.com/leapstack-labs/leapmark/pkg/dialect"
)

// OutputFormats lists the accepted values of the output setting.
var OutputFormats = []string{"auto", "text", "markdown", "json"}

// Validate checks the parts of the configuration that can be checked
// without the rule registry. Every problem is reported.
func (c *Config) Validate() error {
	var errs []error
	if c.OutputFormat != "" && !slices.Contains(OutputFormats, c.OutputFormat) {
		errs = append(errs, fmt.Errorf("output: invalid format %q (expected one of %v)", c.OutputFormat, OutputFormats))
	}
	for _, m := range c.Mappings() {
		if _, err := regexp.Compile(m.Pattern); err != nil {
			errs = append(errs, fmt.Errorf("parser: pattern %q: %w", m.Pattern, err))
		}
		if _, ok := dialect.Get(m.Dialect); !ok {
			errs = append(errs, fmt.Errorf("parser: %w: %s (available: %v)", dialect.ErrUnknownDialect, m.Dialect, dialect.List()))
		}
	}
	if _, err := c.LintConfig(); err != nil {
		errs = append(errs, fmt.Errorf("rules: %w", err))
	}
	return errors.Join(errs...)
}
