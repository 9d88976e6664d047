// Package cli assembles the gitfleet root command, binding configuration
// loading and structured logging to the scan, clone, grep, and pull
// subcommands.
package cli
