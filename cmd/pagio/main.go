package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pagio",
		Short: "Navigation core for page-based Go applications",
		Long: `Pagio is a navigation framework for page-based Go applications.

It resolves paths to registered pages, drives their lifecycle
hooks through an interruption-safe transition machine, and keeps
the host address in sync. Features include:

  • Pattern routing with :params and *catchall
  • One live instance per page, created lazily
  • Navigation guards and escape-state fallbacks
  • Path, query, and fragment address encodings
  • WebSocket bridge for out-of-process shells`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
