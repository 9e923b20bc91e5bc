package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacobolo/atomcss"
	"github.com/yacobolo/atomcss/dom"
	build "github.com/yacobolo/atomcss/internal/atomcss"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <class>...",
	Short: "Explain how class names resolve to CSS",
	Long: `Show the utility, variant and value each class matched and the rules it produces.
With --direct the classes are applied to an in-memory element instead and the
resulting inline style is printed; --event and --width drive its variants.`,
	Example: `  atomcss resolve p-4 md:w-1/2 hover:bg-[#fff]
  atomcss resolve --direct --event pointerenter p-4 hover:p-8`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runResolve,
}

func init() {
	f := resolveCmd.Flags()
	f.Bool("direct", false, "Apply the classes to an element and print its inline style")
	f.Int("width", -1, "Viewport width in px for breakpoint variants (direct mode)")
	f.String("style", "", `Initial inline style, e.g. "color: red; padding: 1px" (direct mode)`)
	f.StringSlice("event", nil, "Events to dispatch in order, e.g. pointerenter,focusin (direct mode)")
}

func runResolve(cmd *cobra.Command, args []string) error {
	log := loggerFromConfig()
	defer func() { _ = log.Sync() }()

	cfg, err := engineConfig(k)
	if err != nil {
		return err
	}
	engine, err := atomcss.New(cfg, atomcss.WithLogger(log))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !k.Bool("direct") {
		reporter := build.NewReporter(out, build.CheckConfig{UseColors: getBoolWithFallback("color", "color", false)})
		for _, className := range args {
			ex, ok := engine.Explain(className)
			reporter.PrintExplanation(className, ex, ok)
		}
		return nil
	}

	el := dom.NewElement(k.String("style"))
	binding := dom.Bind(el, engine.Apply(args),
		dom.WithWidth(getIntWithFallback("width", "resolve.width", -1)),
		dom.WithLogger(log))
	defer binding.Unbind()

	for _, event := range k.Strings("event") {
		if !binding.Dispatch(event) {
			log.Debug("event changed nothing", zap.String("event", event))
		}
	}
	_, err = fmt.Fprintf(out, "style=%q\n", el.String())
	return err
}
