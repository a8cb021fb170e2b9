package dialect

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Dialect registry
var (
	dialectsMu sync.RWMutex
	dialects   = make(map[string]*Dialect)
)

// ErrUnknownDialect is returned when a dialect name is not registered.
var ErrUnknownDialect = errors.New("unknown dialect")

// Get returns a dialect by name.
func Get(name string) (*Dialect, bool) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	d, ok := dialects[strings.ToLower(name)]
	return d, ok
}

// Register registers a dialect in the global registry.
// Called by dialect implementations in their init() functions.
func Register(d *Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	dialects[strings.ToLower(d.Name)] = d
}

// List returns all registered dialect names (sorted).
func List() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Mapping is one entry of the parser configuration: files whose path
// matches Pattern use the dialect named Dialect.
type Mapping struct {
	Pattern string
	Dialect string
}

// ForFile picks the dialect for path. Mappings are tried in order, then
// the registered dialects by file extension, then HTML.
func ForFile(path string, mappings []Mapping) (*Dialect, error) {
	for _, m := range mappings {
		re, err := regexp.Compile(m.Pattern)
		if err != nil {
			return nil, fmt.Errorf("parser pattern %q: %w", m.Pattern, err)
		}
		if !re.MatchString(path) {
			continue
		}
		d, ok := Get(m.Dialect)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownDialect, m.Dialect)
		}
		return d, nil
	}
	for _, name := range List() {
		d, _ := Get(name)
		if d != HTML && d.HandlesFile(path) {
			return d, nil
		}
	}
	return HTML, nil
}
