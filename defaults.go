package atomcss

// DefaultBreakpoints are used when a Config defines none
var DefaultBreakpoints = []Breakpoint{
	{Name: "sm", Min: 640},
	{Name: "md", Min: 768},
	{Name: "lg", Min: 1024},
	{Name: "xl", Min: 1280},
	{Name: "2xl", Min: 1536},
}

// builtinVariants are always available; custom variants override them by name
var builtinVariants = map[string]Variant{
	"hover":         {Selector: "&:hover", Events: EventPair{Enter: "pointerenter", Leave: "pointerleave"}},
	"focus":         {Selector: "&:focus", Events: EventPair{Enter: "focusin", Leave: "focusout"}},
	"active":        {Selector: "&:active", Events: EventPair{Enter: "pointerdown", Leave: "pointerup"}},
	"focus-within":  {Selector: "&:focus-within", Events: EventPair{Enter: "focusin", Leave: "focusout"}},
	"focus-visible": {Selector: "&:focus-visible"},
	"visited":       {Selector: "&:visited"},
	"disabled":      {Selector: "&:disabled"},
	"checked":       {Selector: "&:checked"},
	"first":         {Selector: "&:first-child"},
	"last":          {Selector: "&:last-child"},
	"odd":           {Selector: "&:nth-child(odd)"},
	"even":          {Selector: "&:nth-child(even)"},
	"placeholder":   {Selector: "&::placeholder"},
	"before":        {Selector: "&::before"},
	"after":         {Selector: "&::after"},
	"dark":          {Selector: "[data-theme=dark] &"},
}

// DefaultConfig returns a small starter configuration covering common
// spacing, sizing, color, layout and filter utilities.
func DefaultConfig() Config {
	return Config{
		Properties: PropertyTable{
			"p":           Direct("padding"),
			"px":          Multi("paddingLeft", "paddingRight"),
			"py":          Multi("paddingTop", "paddingBottom"),
			"pt":          Direct("paddingTop"),
			"pr":          Direct("paddingRight"),
			"pb":          Direct("paddingBottom"),
			"pl":          Direct("paddingLeft"),
			"m":           Direct("margin"),
			"mx":          Multi("marginLeft", "marginRight"),
			"my":          Multi("marginTop", "marginBottom"),
			"mt":          Direct("marginTop"),
			"mr":          Direct("marginRight"),
			"mb":          Direct("marginBottom"),
			"ml":          Direct("marginLeft"),
			"w":           Direct("width"),
			"h":           Direct("height"),
			"size":        Multi("width", "height"),
			"min-w":       Direct("minWidth"),
			"max-w":       Direct("maxWidth"),
			"min-h":       Direct("minHeight"),
			"max-h":       Direct("maxHeight"),
			"bg":          Direct("background"),
			"text":        Direct("color"),
			"border":      Direct("border"),
			"rounded":     Direct("borderRadius"),
			"opacity":     Direct("opacity"),
			"display":     Direct("display"),
			"flex":        Direct("flex"),
			"gap":         Direct("gap"),
			"grid-cols":   Templated("repeat($1, minmax(0, 1fr))", "gridTemplateColumns"),
			"grid-row":    Templated("$1 / $2", "gridRow"),
			"z":           Direct("zIndex"),
			"font":        Direct("fontWeight"),
			"leading":     Direct("lineHeight"),
			"duration":    Direct("transitionDuration"),
			"blur":        Composing("filter", "blur"),
			"brightness":  Composing("filter", "brightness"),
			"contrast":    Composing("filter", "contrast"),
			"grayscale":   Composing("filter", "grayscale"),
			"rotate":      Composing("transform", "rotate"),
			"scale":       Composing("transform", "scale"),
			"translate-x": Composing("transform", "translateX"),
			"translate-y": Composing("transform", "translateY"),
			"animate":     Multi("webkitAnimation", "animation"),
		},
		Values: ValueDictionary{
			Global: map[string]string{
				"full":   "100%",
				"screen": "100vw",
				"auto":   "auto",
			},
			PerUtility: map[string]map[string]string{
				"h":       {"screen": "100vh"},
				"flex":    {DefaultKey: "1 1 0%"},
				"rounded": {DefaultKey: "0.25rem", "full": "9999px"},
				"border":  {DefaultKey: "1px solid"},
				"blur":    {DefaultKey: "8px"},
			},
		},
		DefaultUnits: map[string]string{
			"padding": "px", "padding-left": "px", "padding-right": "px", "padding-top": "px", "padding-bottom": "px",
			"margin": "px", "margin-left": "px", "margin-right": "px", "margin-top": "px", "margin-bottom": "px",
			"width": "px", "height": "px", "min-width": "px", "max-width": "px", "min-height": "px", "max-height": "px",
			"gap": "px", "border-radius": "px", "transition-duration": "ms",
			// filter and transform functions
			"blur": "px", "brightness": "%", "contrast": "%", "grayscale": "%",
			"rotate": "deg", "scale": "%", "translate-x": "px", "translate-y": "px",
		},
	}
}
