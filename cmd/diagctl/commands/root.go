// Package commands implements the diagctl CLI surface.
//
// Modelled on the pack's cmd/spectre/commands/root.go: a package-level
// rootCmd variable, subcommands registered onto it in their own init()
// functions, and an exported Execute() the thin main.go calls.
package commands

import (
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:     "diagctl",
	Short:   "diagctl checks whether a non-deterministic finite automaton is diagnosable",
	Long:    `diagctl builds the recognizer and observer of a plant automaton with a fault monitor, and decides whether every occurrence of the fault is eventually revealed by observation.`,
	Version: version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
