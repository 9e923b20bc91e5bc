// Package dom binds direct-styling plans to elements.
//
// A Binding writes a plan's base mutations to a StyleTarget and then drives
// its pseudo-class and breakpoint bindings from events and viewport widths.
// Every binding is a layer: entering it snapshots the inline value of each
// property it targets, leaving it restores exactly that snapshot.
package dom

import (
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/yacobolo/atomcss"
)

// StyleTarget is an element whose inline style can be read and written.
// An empty value removes the property.
type StyleTarget interface {
	Style(property string) (value, priority string)
	SetStyle(property, value, priority string)
}

// State of a pseudo or media layer
type State int

const (
	Idle      State = iota // variant not in effect
	Simulated              // mutations written, snapshot held
)

func (s State) String() string {
	if s == Simulated {
		return "simulated"
	}
	return "idle"
}

type styleValue struct {
	value    string
	priority string
}

type layer struct {
	name      string
	events    atomcss.EventPair
	bp        atomcss.Breakpoint
	media     bool
	mutations []atomcss.Mutation
	state     State
	snapshot  map[string]styleValue
}

// Binding is the live connection between a plan and one element
type Binding struct {
	mu     sync.Mutex
	target StyleTarget
	base   *layer
	pseudo []*layer
	media  []*layer
	active []*layer // activation order
	width  int
	log    *zap.Logger
}

// Option configures a Binding
type Option func(*Binding)

// WithLogger logs layer transitions at Debug
func WithLogger(log *zap.Logger) Option {
	return func(b *Binding) {
		if log != nil {
			b.log = log.Named("dom")
		}
	}
}

// WithWidth sets the initial viewport width; breakpoint layers are evaluated
// against it immediately.
func WithWidth(width int) Option {
	return func(b *Binding) {
		b.width = width
	}
}

// Bind applies plan to target and returns the binding that simulates its variants
func Bind(target StyleTarget, plan atomcss.Plan, opts ...Option) *Binding {
	b := &Binding{target: target, width: -1, log: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	b.load(plan)
	return b
}

func (b *Binding) load(plan atomcss.Plan) {
	b.base = &layer{name: "base", mutations: plan.Mutations}
	b.pseudo = b.pseudo[:0]
	b.media = b.media[:0]
	for _, p := range plan.Pseudo {
		b.pseudo = append(b.pseudo, &layer{name: p.Variant, events: p.Events, mutations: p.Mutations})
	}
	for _, m := range plan.Media {
		b.media = append(b.media, &layer{name: m.Variant, bp: m.Breakpoint, media: true, mutations: m.Mutations})
	}

	b.enter(b.base)
	if b.width >= 0 {
		b.resize(b.width)
	}
}

// Update replaces the plan after the element's class list changed. Every
// active layer is left first, so the element returns to its pre-Bind
// inline style before the new plan is applied.
func (b *Binding) Update(plan atomcss.Plan) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.reset()
	b.load(plan)
}

// Unbind leaves every layer, restoring the element's original inline style
func (b *Binding) Unbind() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reset()
}

func (b *Binding) reset() {
	for i := len(b.active) - 1; i >= 0; i-- {
		b.leave(b.active[i])
	}
}

// Dispatch feeds a DOM event name ("pointerenter", "focusout", …) to the
// pseudo layers. It reports whether any layer changed state.
func (b *Binding) Dispatch(event string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	changed := false
	for _, l := range b.pseudo {
		switch {
		case event == l.events.Enter && l.state == Idle:
			b.enter(l)
			changed = true
		case event == l.events.Leave && l.state == Simulated:
			b.leave(l)
			changed = true
		}
	}
	return changed
}

// Resize re-evaluates breakpoint layers against the viewport width
func (b *Binding) Resize(width int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resize(width)
}

func (b *Binding) resize(width int) {
	b.width = width
	for _, l := range b.media {
		matches := l.bp.Matches(width)
		switch {
		case matches && l.state == Idle:
			b.enter(l)
		case !matches && l.state == Simulated:
			b.leave(l)
		}
	}
}

// State reports the state of the pseudo or breakpoint layer for variant
func (b *Binding) State(variant string) State {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, l := range append(append([]*layer(nil), b.pseudo...), b.media...) {
		if l.name == variant {
			return l.state
		}
	}
	return Idle
}

// enter snapshots every property the layer targets, then writes its mutations
func (b *Binding) enter(l *layer) {
	l.snapshot = make(map[string]styleValue, len(l.mutations))
	for _, m := range l.mutations {
		if _, seen := l.snapshot[m.Property]; seen {
			continue
		}
		v, p := b.target.Style(m.Property)
		l.snapshot[m.Property] = styleValue{value: v, priority: p}
	}
	for _, m := range l.mutations {
		b.target.SetStyle(m.Property, m.Value, m.Priority)
	}
	l.state = Simulated
	b.active = append(b.active, l)
	b.log.Debug("enter", zap.String("layer", l.name), zap.Int("properties", len(l.snapshot)))
}

// leave restores the layer's snapshot. A property also held by a layer
// entered later is not written; that layer inherits the snapshot instead,
// so overlapping layers unwind to the original value in any order.
func (b *Binding) leave(l *layer) {
	idx := -1
	for i, a := range b.active {
		if a == l {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	for prop, snap := range l.snapshot {
		if later := b.laterHolder(idx, prop); later != nil {
			later.snapshot[prop] = snap
			continue
		}
		b.target.SetStyle(prop, snap.value, snap.priority)
	}

	b.active = append(b.active[:idx], b.active[idx+1:]...)
	l.state = Idle
	l.snapshot = nil
	b.log.Debug("leave", zap.String("layer", l.name))
}

func (b *Binding) laterHolder(idx int, prop string) *layer {
	for _, a := range b.active[idx+1:] {
		if _, ok := a.snapshot[prop]; ok {
			return a
		}
	}
	return nil
}

// Element is an in-memory StyleTarget
type Element struct {
	mu    sync.Mutex
	style map[string]styleValue
}

// NewElement returns an element with the given "prop: value" inline style
func NewElement(inline string) *Element {
	e := &Element{style: map[string]styleValue{}}
	for _, decl := range strings.Split(inline, ";") {
		prop, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		priority := ""
		if v, found := strings.CutSuffix(value, "!important"); found {
			value, priority = strings.TrimSpace(v), "important"
		}
		e.SetStyle(strings.TrimSpace(prop), value, priority)
	}
	return e
}

func (e *Element) Style(property string) (string, string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v := e.style[property]
	return v.value, v.priority
}

func (e *Element) SetStyle(property, value, priority string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if value == "" {
		delete(e.style, property)
		return
	}
	e.style[property] = styleValue{value: value, priority: priority}
}

// String renders the inline style attribute with properties sorted
func (e *Element) String() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	props := make([]string, 0, len(e.style))
	for p := range e.style {
		props = append(props, p)
	}
	sort.Strings(props)

	parts := make([]string, 0, len(props))
	for _, p := range props {
		v := e.style[p]
		s := p + ": " + v.value
		if v.priority != "" {
			s += " !" + v.priority
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "; ")
}
