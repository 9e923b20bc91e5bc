package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .atomcss.yaml config file",
	Long:  `Create a .atomcss.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path := configPath(cmd)

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		return nil
	},
}

const defaultConfig = `# atomcss configuration
# Docs: https://github.com/yacobolo/atomcss

# default: layer the sections below over the built-in utilities
# none:    use only what is defined here
preset: default
verbose: false

# Stylesheet settings
build:
  content:
    - "**/*.html"
    - "**/*.templ"
    - "**/*.{jsx,tsx}"
  output: atoms.css        # "-" writes to stdout
  pretty: false

# Class checking
check:
  strict: false
  output-format: issues    # issues | summary | json
  print-lines: true
  print-linter-name: true

# Utility prefix -> CSS property
#   name: property              direct (camelCase or kebab-case)
#   name: [prop-a, prop-b]      same value on several properties
#   name: property:function     composes into filter/transform
property:
  tint: color

# Named values. Scalars are global; maps apply to one utility.
values:
  primary: "#3b82f6"
  surface: "#f8fafc"

# Pre-baked classes built from other classes
classes:
  btn: "px-4 py-2 rounded bg-primary hover:bg-surface"

# Alternative names for variants
aliases:
  tablet: md

# breakpoints:
#   - {name: sm, min: 640}
#   - {name: md, min: 768}
#   - {name: print-narrow, max: 480}

# variants:
#   expanded:
#     selector: "&[aria-expanded=true]"
#   portrait:
#     media: "(orientation: portrait)"

# Default unit appended to bare numbers, per CSS property or
# filter/transform function (blur, rotate, translate-x)
units:
  line-height: em
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
