// Package cli is the process entry point.
package cli

import (
	"fmt"

	"stockadvisors/internal/commands"
	"stockadvisors/internal/version"
)

// Run dispatches the command line and returns the process exit code.
func Run(args []string) int {
	if len(args) < 2 {
		return commands.RunServe(nil)
	}
	switch args[1] {
	case "-h", "--help", "help":
		printUsage()
		return 0
	case "-v", "--version", "version":
		fmt.Printf("stockadvisors %s (build %s)\n", version.Version, version.Build)
		return 0
	case "serve":
		return commands.RunServe(args[2:])
	default:
		// Bare flags go straight to serve (e.g. `stockadvisors --debug`).
		return commands.RunServe(args[1:])
	}
}

func printUsage() {
	fmt.Print(`stockadvisors - native shell for the Stock Advisors frontend

Usage:
  stockadvisors [serve] [flags]

Flags:
  -p, --port <port>   listen port (overrides config)
  -b, --bind <addr>   bind address (overrides config)
      --debug         debug mode (console log, verbose)
  -v, --version       print version
  -h, --help          print help
`)
}
