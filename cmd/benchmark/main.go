package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/limaJavier/permuta/pkg/avoidance"
	"github.com/limaJavier/permuta/pkg/perm"

	"github.com/samber/lo"
)

const (
	resultsFile         = "benchmark_results.csv"
	MB          float32 = 1024 * 1024
)

type BasisMetadata struct {
	Name   string
	Basis  []string
	Length int
}

type BenchmarkResult struct {
	Basis        BasisMetadata
	Workers      int
	MaxChunkSize int
	Duration     int64
	Memory       float32
	Permutations int
}

var bases = []BasisMetadata{
	{Name: "catalan", Basis: []string{"021"}, Length: 13},
	{Name: "separable", Basis: []string{"1302", "2031"}, Length: 11},
	{Name: "smooth", Basis: []string{"0213", "1032"}, Length: 11},
	{Name: "vexillary", Basis: []string{"1032"}, Length: 10},
}

func main() {
	results := make([]BenchmarkResult, 0, len(bases)*len(getWorkers())*len(getChunkSizes()))

	for _, basis := range bases {
		for _, workers := range getWorkers() {
			for _, maxChunkSize := range getChunkSizes() {
				fmt.Printf("Benchmarking basis \"%v\" up to length %v with %v workers and chunks of at most %v\n", basis.Name, basis.Length, workers, maxChunkSize)

				duration, memory, permutations := measure(basis, workers, maxChunkSize)

				results = append(results, BenchmarkResult{
					Basis:        basis,
					Workers:      workers,
					MaxChunkSize: maxChunkSize,
					Duration:     duration,
					Memory:       memory,
					Permutations: permutations,
				})
			}
		}
	}

	toCsv(results)
}

func getWorkers() []int {
	return lo.Uniq([]int{1, 2, 4, runtime.NumCPU()})
}

func getChunkSizes() []int {
	return []int{1_000, avoidance.DefaultMaxChunkSize}
}

// Builds the class and returns the elapsed milliseconds, the heap growth in MB and the size of the last level
func measure(basis BasisMetadata, workers, maxChunkSize int) (duration int64, memory float32, permutations int) {
	patterns := lo.Map(basis.Basis, func(str string, _ int) perm.Perm { return lo.Must(perm.FromString(str)) })
	class := lo.Must(avoidance.New(patterns, avoidance.WithWorkers(workers), avoidance.WithMaxChunkSize(maxChunkSize)))

	runtime.GC()
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)

	start := time.Now()
	if err := class.Build(context.Background(), basis.Length); err != nil {
		log.Fatalf("an error occurred while building basis \"%v\": %v", basis.Name, err)
	}
	duration = time.Since(start).Milliseconds()

	runtime.ReadMemStats(&after)
	memory = float32(after.TotalAlloc-before.TotalAlloc) / MB
	permutations = lo.Must(class.Count(basis.Length))

	return duration, memory, permutations
}

func toCsv(results []BenchmarkResult) {
	file, err := os.Create(resultsFile)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(header()); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		if err := writer.Write(toRecord(result)); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}

func header() []string {
	return []string{"Name", "Basis", "Length", "Workers", "Max-Chunk Size", "Duration(ms)", "Allocated(MB)", "Permutations"}
}

func toRecord(result BenchmarkResult) []string {
	return []string{
		result.Basis.Name,
		strings.Join(result.Basis.Basis, " "),
		fmt.Sprintf("%d", result.Basis.Length),
		fmt.Sprintf("%d", result.Workers),
		fmt.Sprintf("%d", result.MaxChunkSize),
		fmt.Sprintf("%d", result.Duration),
		fmt.Sprintf("%.1f", result.Memory),
		fmt.Sprintf("%d", result.Permutations),
	}
}
