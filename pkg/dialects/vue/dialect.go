package vue

import "github.com/leapstack-labs/leapmark/pkg/dialect"

// Vue is the Vue dialect.
var Vue = dialect.New(Config).Extends(dialect.HTML).Build()

func init() {
	dialect.Register(Vue)
}
