package lint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/leapstack-labs/leapmark/pkg/dom"
	"github.com/leapstack-labs/leapmark/pkg/i18n"
	"github.com/leapstack-labs/leapmark/pkg/selector"
	"github.com/leapstack-labs/leapmark/pkg/spec"
)

// Options configures an Engine. Zero fields take defaults: the global
// registry, an empty config, the embedded spec store, English messages,
// the store's default ARIA version and a discarding logger.
type Options struct {
	Registry    *Registry
	Config      *Config
	Spec        *spec.Store
	Translator  i18n.Translator
	AriaVersion string
	Logger      *slog.Logger
}

// Engine runs the configured rules over documents. An Engine is immutable
// after construction and may verify documents concurrently.
type Engine struct {
	registry    *Registry
	config      *Config
	store       *spec.Store
	t           i18n.Translator
	ariaVersion string
	logger      *slog.Logger
	rules       []Rule
}

// NewEngine validates opts and returns an Engine.
func NewEngine(opts Options) (*Engine, error) {
	e := &Engine{
		registry:    opts.Registry,
		config:      opts.Config,
		store:       opts.Spec,
		t:           opts.Translator,
		ariaVersion: opts.AriaVersion,
		logger:      opts.Logger,
	}
	if e.registry == nil {
		e.registry = Default()
	}
	if e.config == nil {
		e.config = NewConfig()
	}
	if e.t == nil {
		e.t = i18n.English
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	if e.store == nil {
		s, err := spec.Default()
		if err != nil {
			return nil, fmt.Errorf("load spec: %w", err)
		}
		e.store = s
	}
	if e.ariaVersion == "" {
		e.ariaVersion = e.store.DefaultAriaVersion()
	} else if !slices.Contains(e.store.AriaVersions(), e.ariaVersion) {
		return nil, fmt.Errorf("%w: %q (supported: %v)", spec.ErrUnknownVersion, e.ariaVersion, e.store.AriaVersions())
	}

	for _, r := range e.registry.All() {
		if e.config.mentions(r.Name()) {
			e.rules = append(e.rules, r)
		}
	}
	return e, nil
}

// Rules returns the rules that run, sorted by name.
func (e *Engine) Rules() []Rule {
	return slices.Clone(e.rules)
}

// Verify runs every active rule over doc. Results come in rule order and,
// within a rule, in the order the rule reported them.
//
// A rule that fails is aborted on this document, its partial results are
// discarded and its error is returned as a *ConfigurationError next to the
// results of the other rules.
func (e *Engine) Verify(ctx context.Context, doc *dom.Document) ([]Result, error) {
	index := selector.NewIndex(doc)
	var (
		results []Result
		errs    []error
	)
	for _, r := range e.rules {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		rc, err := e.newContext(ctx, r, doc, index)
		if err == nil {
			start := time.Now()
			err = r.Verify(rc)
			e.logger.Debug("rule finished",
				slog.String("rule", r.Name()),
				slog.Int("results", len(rc.results)),
				slog.Duration("duration", time.Since(start)))
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return results, ctxErr
			}
			e.logger.Warn("rule failed", slog.String("rule", r.Name()), slog.Any("error", err))
			errs = append(errs, configError(r.Name(), err))
			continue
		}
		results = append(results, rc.results...)
	}
	return results, errors.Join(errs...)
}

// Fix runs the fixers of the active rules in order, each on the document
// left by the previous one, and returns the serialized result. doc is
// modified in place.
func (e *Engine) Fix(ctx context.Context, doc *dom.Document) (string, error) {
	var errs []error
	for _, r := range e.rules {
		f, ok := r.(Fixer)
		if !ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		// earlier fixers may have renamed elements or attributes
		rc, err := e.newContext(ctx, r, doc, selector.NewIndex(doc))
		if err == nil {
			err = f.Fix(rc)
		}
		doc.Layout()
		if err != nil {
			e.logger.Warn("fix failed", slog.String("rule", r.Name()), slog.Any("error", err))
			errs = append(errs, configError(r.Name(), err))
		}
	}
	return doc.Serialize(), errors.Join(errs...)
}

func (e *Engine) newContext(ctx context.Context, r Rule, doc *dom.Document, index *selector.Index) (*Context, error) {
	name := r.Name()
	global, listed := e.config.Rules[name]
	c := &Context{
		ctx:         ctx,
		rule:        r,
		doc:         doc,
		t:           e.t,
		store:       e.store,
		index:       index,
		logger:      e.logger.With(slog.String("rule", name)),
		ariaVersion: e.ariaVersion,
		base:        defaultSetting(r).apply(global),
		enabled:     listed && !global.Disabled,
	}
	for _, nr := range e.config.NodeRules {
		s, ok := nr.Rules[name]
		if !ok {
			continue
		}
		sel, err := selector.Compile(nr.Selector)
		if err != nil {
			return nil, err
		}
		c.nodeRules = append(c.nodeRules, nodeOverride{sel: sel, setting: s})
	}
	for _, cr := range e.config.ChildNodeRules {
		s, ok := cr.Rules[name]
		if !ok {
			continue
		}
		sel, err := selector.Compile(cr.Selector)
		if err != nil {
			return nil, err
		}
		c.childRules = append(c.childRules, childOverride{sel: sel, inheritance: cr.Inheritance, setting: s})
	}
	return c, nil
}
