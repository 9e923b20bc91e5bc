// Package main provides the atomcss CLI: build utility-class stylesheets from
// the class names used in HTML, JSX and templ sources, check those sources for
// classes that produce no CSS, and explain how single classes resolve.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
