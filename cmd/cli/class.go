package main

import (
	"fmt"
	"strconv"

	"github.com/limaJavier/permuta/pkg/avoidance"
	"github.com/limaJavier/permuta/pkg/config"
	"github.com/limaJavier/permuta/pkg/perm"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	basisStrs    []string
	length       int
	workers      int
	configFile   string
	inputFile    string
	list         bool
	verifyResult bool
)

// classCmd builds an avoidance class
var classCmd = &cobra.Command{
	Use:   "class",
	Short: "Enumerate the permutations avoiding a basis",
	Long: `Build the avoidance class of a basis for every length up to the requested one and
report how many permutations each length has, optionally listing them.

Examples:
  # Catalan numbers
  permuta class --basis 021 --length 10

  # Separable permutations, listed, checked against brute force
  permuta class --basis 1302 --basis 2031 --length 6 --list --verify

  # Basis and length from a file, tuned through a config file
  permuta class --input class.json --config permuta.yaml`,
	Args: cobra.NoArgs,
	RunE: runClass,
}

func init() {
	classCmd.Flags().StringArrayVar(&basisStrs, "basis", nil, "Basis pattern; repeat the flag for every pattern")
	classCmd.Flags().IntVar(&length, "length", -1, "Highest length to build")
	classCmd.Flags().IntVar(&workers, "workers", 0, "Worker pool size; overrides the config file")
	classCmd.Flags().StringVar(&configFile, "config", "", "Path to a YAML or JSON config file")
	classCmd.Flags().StringVar(&inputFile, "input", "", "Path to a JSON file holding the basis and the length")
	classCmd.Flags().BoolVar(&list, "list", false, "List the permutations of every length")
	classCmd.Flags().BoolVar(&verifyResult, "verify", false, "Cross-check the class against an exhaustive enumeration")
}

type classOutput struct {
	Basis        []string           `json:"basis"`
	Counts       []int              `json:"counts"`
	Permutations map[string][][]int `json:"permutations,omitempty"`
	Verified     bool               `json:"verified,omitempty"`
}

func runClass(cmd *cobra.Command, args []string) error {
	//** Resolve configuration
	cfg := config.Default()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return err
		}
	}
	if workers > 0 {
		cfg.Workers = workers
	}

	logger, err := cfg.Logger()
	if err != nil {
		return fmt.Errorf("cannot build logger: %w", err)
	}
	defer logger.Sync()

	//** Resolve basis and length
	basis, maxLength, err := resolveBasis(basisStrs, inputFile, length)
	if err != nil {
		return err
	}

	//** Build
	class, err := avoidance.New(basis, cfg.ClassOptions(logger)...)
	if err != nil {
		return err
	}
	logger.Info("building avoidance class",
		zap.Stringers("basis", basis),
		zap.Int("length", maxLength),
		zap.Int("workers", cfg.Workers),
	)
	if err := class.Build(cmd.Context(), maxLength); err != nil {
		return fmt.Errorf("an error occurred during class construction: %w", err)
	}

	output, err := describeClass(class, maxLength, list)
	if err != nil {
		return err
	}

	if verifyResult {
		if err := avoidance.Verify(class, maxLength); err != nil {
			return err
		}
		output.Verified = true
	}

	return writeOutput(output)
}

// Merges the flag patterns with those of the input file, without duplicates. The input length applies only
// when no length flag was given.
func resolveBasis(strs []string, inputFile string, length int) ([]perm.Perm, int, error) {
	basis, err := parseBasis(strs)
	if err != nil {
		return nil, 0, err
	}
	if inputFile != "" {
		input, err := InputFromJson(inputFile)
		if err != nil {
			return nil, 0, err
		}
		patterns, err := input.Patterns()
		if err != nil {
			return nil, 0, err
		}
		basis = lo.UniqBy(append(basis, patterns...), perm.Perm.Key)
		if length < 0 {
			length = input.Length
		}
	}
	if length < 0 {
		return nil, 0, fmt.Errorf("a non-negative length must be specified")
	}
	return basis, length, nil
}

func describeClass(class *avoidance.Class, length int, list bool) (classOutput, error) {
	output := classOutput{
		Basis:  lo.Map(class.Basis(), func(pattern perm.Perm, _ int) string { return pattern.String() }),
		Counts: make([]int, 0, length+1),
	}
	if list {
		output.Permutations = make(map[string][][]int)
	}

	for n := range length + 1 {
		perms, err := class.PermutationsOfLength(n)
		if err != nil {
			return classOutput{}, err
		}
		output.Counts = append(output.Counts, len(perms))
		if list {
			output.Permutations[strconv.Itoa(n)] = lo.Map(perms, func(p perm.Perm, _ int) []int { return p.Values() })
		}
	}
	return output, nil
}
