// Package main implements the permuta CLI for pattern occurrences and avoidance classes.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// outFile is where results are written; empty means standard output
	outFile string
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "permuta",
	Short: "Permutation pattern occurrences and avoidance classes",
	Long: `permuta finds the occurrences of a pattern permutation inside a text permutation and
enumerates the permutations avoiding a set of patterns, length by length.

Permutations are written either in compact one-line notation ("0231") or as a comma
separated list ("0,2,3,1"). Compact notation reads one digit per value, so permutations
longer than 10 need the comma separated form ("10,3,0,...").`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&outFile, "out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	rootCmd.AddCommand(occurrencesCmd)
	rootCmd.AddCommand(classCmd)
}

// Marshals output into json and writes it to the output file or the Standard Output
func writeOutput(output any) error {
	outputJson, err := json.Marshal(output)
	if err != nil {
		return fmt.Errorf("an error occurred while building output json: %w", err)
	}

	if outFile == "" {
		fmt.Println(string(outputJson))
		return nil
	}
	if err := os.WriteFile(outFile, outputJson, 0666); err != nil {
		return fmt.Errorf("an error occurred while writing to the output file: %w", err)
	}
	return nil
}
