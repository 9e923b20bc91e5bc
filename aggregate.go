package atomcss

import "strings"

// composable lists CSS properties whose function contributions accumulate
// ("blur(4px) brightness(1.5)") instead of overwriting each other.
var composable = map[string]bool{
	"filter":          true,
	"backdrop-filter": true,
	"transform":       true,
}

// Aggregate merges rules that share a final selector and context. The result
// keeps the order in which each group first appeared, and within a group the
// last declaration of a property wins while keeping its first position.
// Aggregate does not modify its input.
func Aggregate(rules []GeneratedRule) []GeneratedRule {
	type group struct {
		rule GeneratedRule
		set  *declSet
	}

	index := make(map[string]int, len(rules))
	groups := make([]group, 0, len(rules))
	for _, rule := range rules {
		key := rule.Selector() + "\x00" + rule.Context.Media
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, group{rule: rule, set: newDeclSet(nil)})
		}
		for _, d := range rule.Declarations {
			groups[i].set.add(d)
		}
	}

	out := make([]GeneratedRule, 0, len(groups))
	for _, g := range groups {
		decls := g.set.declarations()
		if len(decls) == 0 {
			continue
		}
		r := g.rule
		r.Declarations = decls
		out = append(out, r)
	}
	return out
}

// BuildPlan collapses rules into a direct-styling plan. Unconditional rules
// become base mutations (later classes win); pseudo and breakpoint rules become
// bindings, one per variant, in order of first appearance. Contexts direct
// styling cannot simulate are skipped and returned so callers can report them.
func BuildPlan(rules []GeneratedRule) (Plan, []GeneratedRule) {
	base := newDeclSet(nil)
	var skipped []GeneratedRule
	for _, rule := range rules {
		if rule.Context.Kind != ContextNone {
			continue
		}
		for _, d := range rule.Declarations {
			base.add(d)
		}
	}

	type binding struct {
		ctx VariantContext
		set *declSet
	}
	var pseudo, media []*binding
	pseudoIndex := map[string]*binding{}
	mediaIndex := map[string]*binding{}

	for _, rule := range rules {
		ctx := rule.Context
		var b *binding
		switch {
		case ctx.Kind == ContextNone:
			continue
		case !ctx.simulable():
			skipped = append(skipped, rule)
			continue
		case ctx.Kind == ContextPseudo:
			key := ctx.Variant + "\x00" + ctx.Events.Enter + "\x00" + ctx.Events.Leave
			if b = pseudoIndex[key]; b == nil {
				b = &binding{ctx: ctx, set: newDeclSet(base)}
				pseudoIndex[key] = b
				pseudo = append(pseudo, b)
			}
		default:
			key := ctx.Breakpoint.Name
			if b = mediaIndex[key]; b == nil {
				b = &binding{ctx: ctx, set: newDeclSet(base)}
				mediaIndex[key] = b
				media = append(media, b)
			}
		}
		for _, d := range rule.Declarations {
			b.set.add(d)
		}
	}

	plan := Plan{Mutations: mutations(base.declarations())}
	for _, b := range pseudo {
		plan.Pseudo = append(plan.Pseudo, PseudoBinding{
			Variant:   b.ctx.Variant,
			Events:    b.ctx.Events,
			Mutations: mutations(b.set.declarations()),
		})
	}
	for _, b := range media {
		plan.Media = append(plan.Media, MediaBinding{
			Variant:    b.ctx.Variant,
			Breakpoint: b.ctx.Breakpoint,
			Mutations:  mutations(b.set.declarations()),
		})
	}
	return plan, skipped
}

func mutations(decls []Declaration) []Mutation {
	out := make([]Mutation, 0, len(decls))
	for _, d := range decls {
		m := Mutation{Property: KebabCase(d.Property), Value: d.Value}
		if d.Important {
			m.Priority = "important"
		}
		out = append(out, m)
	}
	return out
}

// call is one entry of a composed value; an empty fn is a plain base value
type call struct {
	fn  string
	arg string
}

func (c call) String() string {
	if c.fn == "" {
		return c.arg
	}
	return c.fn + "(" + c.arg + ")"
}

type slot struct {
	important bool
	chain     []call
}

// declSet is an ordered property → value map with last-wins overwrite and
// function composition for composable properties.
type declSet struct {
	order []string
	slots map[string]*slot
	// seed supplies the starting chain when a composed property is first
	// touched, so variant bindings extend the element's base filter.
	seed *declSet
}

func newDeclSet(seed *declSet) *declSet {
	return &declSet{slots: map[string]*slot{}, seed: seed}
}

func (s *declSet) add(d Declaration) {
	prop := KebabCase(d.Property)
	sl, ok := s.slots[prop]
	if !ok {
		sl = &slot{}
		s.slots[prop] = sl
		s.order = append(s.order, prop)
		if d.Function != "" && s.seed != nil {
			if base, found := s.seed.slots[prop]; found {
				sl.chain = append([]call(nil), base.chain...)
			}
		}
	}
	sl.important = d.Important

	if d.Function == "" || !composable[prop] {
		sl.chain = []call{{fn: d.Function, arg: d.Value}}
		return
	}
	chain := sl.chain[:0:0]
	replaced := false
	for _, c := range sl.chain {
		switch {
		case c.fn == "" && strings.EqualFold(c.arg, "none"):
			continue
		case c.fn == d.Function:
			c.arg = d.Value
			replaced = true
		}
		chain = append(chain, c)
	}
	if !replaced {
		chain = append(chain, call{fn: d.Function, arg: d.Value})
	}
	sl.chain = chain
}

func (s *declSet) declarations() []Declaration {
	out := make([]Declaration, 0, len(s.order))
	for _, prop := range s.order {
		sl := s.slots[prop]
		parts := make([]string, len(sl.chain))
		for i, c := range sl.chain {
			parts[i] = c.String()
		}
		out = append(out, Declaration{Property: prop, Value: strings.Join(parts, " "), Important: sl.important})
	}
	return out
}
