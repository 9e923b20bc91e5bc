// Package atomcss resolves utility class names into CSS.
//
// A class such as "md:p-4" is split into variant, utility and value,
// mapped through a property table and value dictionary, and emitted either as
// stylesheet text or as a plan of inline style mutations.
//
// # Stylesheets
//
//	cfg := atomcss.DefaultConfig().
//		WithValues(atomcss.ValueDictionary{Global: map[string]string{"primary": "#ccf654"}})
//	engine, err := atomcss.New(cfg)
//	css := engine.Stylesheet([]string{"bg-primary", "hover:p-[10px]"}, atomcss.RenderOptions{})
//
// # Direct styling
//
//	plan := engine.Apply(strings.Fields(el.ClassName))
//
// The plan is bound to an element by package dom.
//
// # Configuration
//
// Config values are immutable. WithProperty, WithValues, WithClass,
// WithVariant and Merge return updated copies, and New rejects malformed
// entries before any class is resolved.
//
// # CLI Tool
//
//	go install github.com/yacobolo/atomcss/cmd/atomcss@latest
package atomcss
