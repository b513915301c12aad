package main

import (
	"fmt"

	"github.com/limaJavier/permuta/pkg/perm"
	"github.com/spf13/cobra"
)

var (
	textStr    string
	patternStr string
	limit      int
	countOnly  bool
)

// occurrencesCmd lists the occurrences of a pattern in a text
var occurrencesCmd = &cobra.Command{
	Use:   "occurrences",
	Short: "List the occurrences of a pattern inside a text permutation",
	Long: `List every increasing position tuple of the text whose values are order-isomorphic to the pattern,
in lexicographic order.

Examples:
  # All occurrences of 201 in 530421
  permuta occurrences --text 530421 --pattern 201

  # Only the first occurrence, if any
  permuta occurrences --text 5,3,0,4,2,1 --pattern 2,0,1 --limit 1`,
	Args: cobra.NoArgs,
	RunE: runOccurrences,
}

func init() {
	occurrencesCmd.Flags().StringVar(&textStr, "text", "", "Text permutation")
	occurrencesCmd.Flags().StringVar(&patternStr, "pattern", "", "Pattern permutation")
	occurrencesCmd.Flags().IntVar(&limit, "limit", 0, "Stop after this many occurrences; 0 means no limit")
	occurrencesCmd.Flags().BoolVar(&countOnly, "count", false, "Print only the number of occurrences")
	_ = occurrencesCmd.MarkFlagRequired("text")
	_ = occurrencesCmd.MarkFlagRequired("pattern")
}

type occurrencesOutput struct {
	Text        []int   `json:"text"`
	Pattern     []int   `json:"pattern"`
	Count       int     `json:"count"`
	Occurrences [][]int `json:"occurrences,omitempty"`
}

func runOccurrences(cmd *cobra.Command, args []string) error {
	text, err := perm.FromString(textStr)
	if err != nil {
		return fmt.Errorf("invalid text: %w", err)
	}
	pattern, err := perm.FromString(patternStr)
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}
	if limit < 0 {
		return fmt.Errorf("limit must not be negative: %v", limit)
	}

	return writeOutput(findOccurrences(text, pattern, limit, countOnly))
}

func findOccurrences(text, pattern perm.Perm, limit int, countOnly bool) occurrencesOutput {
	output := occurrencesOutput{
		Text:        text.Values(),
		Pattern:     pattern.Values(),
		Occurrences: make([][]int, 0),
	}

	for occurrence := range perm.Occurrences(text, pattern) {
		output.Count++
		if !countOnly {
			output.Occurrences = append(output.Occurrences, occurrence)
		}
		if output.Count == limit {
			break
		}
	}

	if countOnly {
		output.Occurrences = nil
	}
	return output
}
