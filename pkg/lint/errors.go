package lint

import (
	"errors"
	"fmt"
)

// ConfigurationError reports a rule that could not run on a document
// because of its configuration: a malformed selector, pattern or option.
// Only that rule is aborted.
type ConfigurationError struct {
	Rule string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("rule %s: %v", e.Rule, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func configError(rule string, err error) error {
	var ce *ConfigurationError
	if errors.As(err, &ce) {
		return err
	}
	return &ConfigurationError{Rule: rule, Err: err}
}
