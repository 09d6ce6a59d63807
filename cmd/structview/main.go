// Package main provides the CLI entrypoint for structview.
//
// structview generates typed field views of Go structs:
//   - Loads packages (go/packages + go/types) and measures struct layouts
//   - Checks manifest-declared member lists against the measured layout
//   - Generates accessors, offset getters and flatten functions guarded by
//     compile-time layout assertions
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newApp(os.Stdout, os.Stderr).Run(ctx, os.Args); err != nil {
		// Diagnostics were already printed
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintln(os.Stderr, "structview:", err)
		}

		cancel()
		os.Exit(1)
	}
}
