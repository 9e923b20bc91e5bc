package atomcss

import (
	"strings"

	core "github.com/yacobolo/atomcss"
)

// propertyCategories lists properties the prefix rules in categorizeProperty
// would not place; anything else unlisted is Layout.
var propertyCategories = map[string]PropertyCategory{
	"background": CategoryVisual,
	"color":      CategoryVisual,
	"border":     CategoryVisual,
	"opacity":    CategoryVisual,
	"box-shadow": CategoryVisual,
	"outline":    CategoryVisual,
	"fill":       CategoryVisual,
	"stroke":     CategoryVisual,

	"line-height":    CategoryTypography,
	"letter-spacing": CategoryTypography,
	"white-space":    CategoryTypography,
	"word-break":     CategoryTypography,

	"transition":      CategoryEffects,
	"animation":       CategoryEffects,
	"transform":       CategoryEffects,
	"filter":          CategoryEffects,
	"backdrop-filter": CategoryEffects,
	"mix-blend-mode":  CategoryEffects,
	"clip-path":       CategoryEffects,
}

// categorizeProperty determines the category of a kebab-case CSS property
func categorizeProperty(name string) PropertyCategory {
	if cat, exists := propertyCategories[name]; exists {
		return cat
	}

	if strings.HasPrefix(name, "--") {
		return CategoryCustom
	}

	// Vendor-prefixed properties
	for _, prefix := range []string{"-webkit-", "-moz-", "-ms-", "-o-"} {
		if strings.HasPrefix(name, prefix) {
			return CategoryInternal
		}
	}

	switch {
	case strings.HasPrefix(name, "border-"), strings.HasPrefix(name, "background-"), strings.HasPrefix(name, "outline-"):
		return CategoryVisual
	case strings.HasPrefix(name, "font-"), strings.HasPrefix(name, "text-"):
		return CategoryTypography
	case strings.HasPrefix(name, "transition-"), strings.HasPrefix(name, "animation-"), strings.HasPrefix(name, "transform-"):
		return CategoryEffects
	}

	// Default to Layout for unknown properties
	return CategoryLayout
}

// categorizeDeclarations converts resolved declarations to CSS form and
// attaches their category, keeping declaration order
func categorizeDeclarations(decls []core.Declaration) []CategorizedProperty {
	props := make([]CategorizedProperty, 0, len(decls))
	for _, d := range decls {
		value := d.Value
		if d.Function != "" {
			value = d.Function + "(" + d.Value + ")"
		}
		name := core.KebabCase(d.Property)
		props = append(props, CategorizedProperty{
			Name:      name,
			Value:     value,
			Category:  categorizeProperty(name),
			Important: d.Important,
		})
	}
	return props
}
