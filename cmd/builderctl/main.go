// Command builderctl runs the blog builder's document transforms from the
// command line: render a sections file into article HTML, parse article
// HTML back into sections, and normalise a tag string.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
