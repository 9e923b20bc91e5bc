package atomcss

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Engine composes the matcher, resolver, variant table and aggregator for
// one immutable Config. It is safe for concurrent use.
type Engine struct {
	cfg      Config
	matcher  *Matcher
	resolver *Resolver
	variants VariantTable
	log      *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger used for skipped classes and recovered panics
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// New validates cfg and builds an engine. Every configuration problem is
// returned at once; use multierr.Errors to list them.
func New(cfg Config, opts ...Option) (*Engine, error) {
	e := &Engine{cfg: cfg.clone(), log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.Named("engine")

	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}

	breakpoints := e.cfg.Breakpoints
	if breakpoints == nil {
		breakpoints = DefaultBreakpoints
	}
	e.variants = NewVariantTable(breakpoints, e.cfg.Variants, e.cfg.Aliases)

	var err error
	for _, alias := range sortedKeys(e.cfg.Aliases) {
		target := e.cfg.Aliases[alias]
		if _, ok := e.variants.variants[target]; !ok {
			err = multierr.Append(err, configErr(alias, fmt.Sprintf("alias targets unknown variant %q", target)))
		}
		if _, clash := e.variants.variants[alias]; clash {
			err = multierr.Append(err, &AmbiguousMatchError{Name: alias, Sources: []string{"aliases", "variants"}})
		}
	}
	if err != nil {
		return nil, err
	}

	e.resolver, err = NewResolver(e.cfg.Properties, e.cfg.Values, e.cfg.DefaultUnits, e.log)
	if err != nil {
		return nil, err
	}
	e.matcher = NewMatcher(e.variants.Names(), e.resolver.Utilities())
	return e, nil
}

// Config returns a copy of the engine's configuration
func (e *Engine) Config() Config {
	return e.cfg.clone()
}

// Utilities returns the registered utility names
func (e *Engine) Utilities() []string {
	return e.resolver.Utilities()
}

// Variants returns every accepted variant token, aliases included
func (e *Engine) Variants() []string {
	return e.variants.Names()
}

// Match decomposes a class name without resolving it
func (e *Engine) Match(className string) (Match, bool) {
	return e.matcher.Match(className)
}

// Resolve matches and resolves a single utility class
func (e *Engine) Resolve(className string) ([]Declaration, bool) {
	m, ok := e.matcher.Match(className)
	if !ok {
		return nil, false
	}
	return e.resolver.Resolve(m)
}

// ResolveVariant returns the context a variant token maps to
func (e *Engine) ResolveVariant(variant string) VariantContext {
	return e.variants.Resolve(variant)
}

// IsComposite reports whether name is a pre-baked class
func (e *Engine) IsComposite(name string) bool {
	_, ok := e.cfg.Classes[name]
	return ok
}

// Explanation describes how one class name was resolved
type Explanation struct {
	Match     Match
	Kind      ValueKind // kind of the value token, KindUnknown when absent
	Composite bool
	Rules     []GeneratedRule
}

// Explain resolves className and reports the intermediate results.
// ok is false when the class produces no rules.
func (e *Engine) Explain(className string) (Explanation, bool) {
	if e.IsComposite(className) {
		rules := e.expand(className, className, nil)
		return Explanation{Composite: true, Rules: rules}, len(rules) > 0
	}
	m, ok := e.matcher.Match(className)
	if !ok {
		return Explanation{}, false
	}
	ex := Explanation{Match: m}
	if m.HasValue() {
		ex.Kind = Classify(m.Token())
	}
	rule, ok := e.rule(className, className)
	if !ok {
		return ex, false
	}
	ex.Rules = []GeneratedRule{rule}
	return ex, true
}

// Process turns class names into rules in input order. Names that are not
// utility classes are skipped; Process never fails.
func (e *Engine) Process(classNames []string) []GeneratedRule {
	rules := make([]GeneratedRule, 0, len(classNames))
	for _, name := range classNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if e.IsComposite(name) {
			rules = append(rules, e.expand(name, name, nil)...)
			continue
		}
		if rule, ok := e.rule(name, name); ok {
			rules = append(rules, rule)
		}
	}
	return rules
}

// Stylesheet processes class names and renders the aggregated CSS
func (e *Engine) Stylesheet(classNames []string, opts RenderOptions) string {
	return Render(Aggregate(e.Process(classNames)), opts)
}

// Apply builds the direct-styling plan for one element's class list
func (e *Engine) Apply(classNames []string) Plan {
	plan, skipped := BuildPlan(e.Process(classNames))
	for _, rule := range skipped {
		e.log.Debug("variant cannot be simulated inline",
			zap.String("class", rule.ClassName),
			zap.String("variant", rule.Context.Variant),
			zap.Stringer("context", rule.Context.Kind))
	}
	return plan
}

// rule resolves one utility class to a rule named ruleName
func (e *Engine) rule(className, ruleName string) (GeneratedRule, bool) {
	m, ok := e.matcher.Match(className)
	if !ok {
		e.log.Debug("skipping class", zap.String("class", className), zap.String("stage", "matcher"))
		return GeneratedRule{}, false
	}
	decls, ok := e.resolver.Resolve(m)
	if !ok {
		e.log.Debug("skipping class", zap.String("class", className), zap.String("stage", "resolver"))
		return GeneratedRule{}, false
	}
	ctx := e.variants.Resolve(m.Variant)
	if m.Variant != "" && ctx.Kind == ContextNone {
		e.log.Debug("skipping class", zap.String("class", className), zap.String("stage", "variant"))
		return GeneratedRule{}, false
	}
	return GeneratedRule{ClassName: ruleName, Declarations: decls, Context: ctx}, true
}

// expand resolves a pre-baked class into rules under its own name.
// Nested composites are expanded in place; Validate has ruled out cycles.
func (e *Engine) expand(name, ruleName string, seen map[string]bool) []GeneratedRule {
	if seen == nil {
		seen = map[string]bool{}
	}
	if seen[name] {
		return nil
	}
	seen[name] = true
	defer delete(seen, name)

	var rules []GeneratedRule
	for _, token := range strings.Fields(e.cfg.Classes[name]) {
		if e.IsComposite(token) {
			rules = append(rules, e.expand(token, ruleName, seen)...)
			continue
		}
		if rule, ok := e.rule(token, ruleName); ok {
			rules = append(rules, rule)
		}
	}
	return rules
}
