package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/limaJavier/permuta/pkg/perm"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

// ClassInput is the content of an input file, e.g. {"basis": [[0, 2, 1], "1032"], "length": 9}
type ClassInput struct {
	Basis  []any
	Length int
}

func InputFromJson(file string) (ClassInput, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return ClassInput{}, fmt.Errorf("cannot read input file: %w", err)
	}
	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return ClassInput{}, err
	}

	var input ClassInput
	if err := mapstructure.Decode(inputJson, &input); err != nil {
		return ClassInput{}, fmt.Errorf("cannot decode input file: %w", err)
	}
	return input, nil
}

// Patterns converts every basis element, given either as a list of values or as a string, into a permutation
func (input ClassInput) Patterns() ([]perm.Perm, error) {
	patterns := make([]perm.Perm, 0, len(input.Basis))
	for _, element := range input.Basis {
		var pattern perm.Perm
		var err error

		switch element := element.(type) {
		case string:
			pattern, err = perm.FromString(element)
		case []any:
			var values []int
			if err = mapstructure.Decode(element, &values); err == nil {
				pattern, err = perm.New(values...)
			}
		default:
			err = fmt.Errorf("unsupported basis element %v", element)
		}

		if err != nil {
			return nil, fmt.Errorf("invalid basis element %v: %w", element, err)
		}
		patterns = append(patterns, pattern)
	}
	return patterns, nil
}

func parseBasis(strs []string) ([]perm.Perm, error) {
	patterns := make([]perm.Perm, 0, len(strs))
	for _, str := range strs {
		pattern, err := perm.FromString(str)
		if err != nil {
			return nil, fmt.Errorf("invalid basis element %q: %w", str, err)
		}
		patterns = append(patterns, pattern)
	}
	return lo.UniqBy(patterns, perm.Perm.Key), nil
}
