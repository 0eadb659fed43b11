// Package main provides the entry point for the skill-gap analyzer CLI and
// HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skillgap",
	Short: "Skill gap analyzer",
	Long:  "Skill gap analyzer compares a resume against a target role's skill requirements, scores the gaps, and produces a prioritized learning roadmap with transferable-skill analysis.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
