package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		// A duplicate skip exits zero; only auth, config, and submit
		// failures reach this path.
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "fitsync:", err)
		}
		os.Exit(1)
	}
}
