// Package main provides the CLI for the leapmark markup linter.
package main

import (
	"os"

	"github.com/leapstack-labs/leapmark/internal/cli"

	// Register dialects and rules
	_ "github.com/leapstack-labs/leapmark/pkg/dialects/svelte"
	_ "github.com/leapstack-labs/leapmark/pkg/dialects/vue"
	_ "github.com/leapstack-labs/leapmark/pkg/lint/rules/a11y"
	_ "github.com/leapstack-labs/leapmark/pkg/lint/rules/style"
	_ "github.com/leapstack-labs/leapmark/pkg/lint/rules/validation"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
