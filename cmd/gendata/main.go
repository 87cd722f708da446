// Command gendata generates synthetic agricultural fixtures: the per-crop
// training table (CSV or JSON) and a historical yield series. It uses the
// actual generator package so fixtures match what the service trains on.
//
// Usage:
//
//	go run ./cmd/gendata \
//	  -samples 200 \
//	  -seed 42 \
//	  -format csv \
//	  -out data/crop_training_data.csv \
//	  -history-out data/historical_yields.json
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hptimes-code/ai-crop-yield-prediction/internal/domain"
	"github.com/hptimes-code/ai-crop-yield-prediction/internal/synthdata"
)

const (
	historyStartYear = 2015
	historyEndYear   = 2024
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	samples := flag.Int("samples", 200, "samples to generate per crop")
	seed := flag.Uint64("seed", synthdata.DefaultSeed, "generator seed")
	format := flag.String("format", "csv", "output format: csv or json")
	out := flag.String("out", "", "output path for the training table")
	historyOut := flag.String("history-out", "", "optional output path for the historical yield series (JSON)")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *samples <= 0 {
		return fmt.Errorf("-samples must be positive, got %d", *samples)
	}

	gen := synthdata.NewGenerator(*seed)

	table, err := gen.GenerateAll(*samples)
	if err != nil {
		return fmt.Errorf("generating training data: %w", err)
	}
	log.Printf("generated %d samples across %d crops (seed %d)", len(table), len(domain.CropTypes()), *seed)

	switch *format {
	case "csv":
		err = writeCSV(*out, table)
	case "json":
		err = writeJSON(*out, table)
	default:
		return fmt.Errorf("unknown format %q, want csv or json", *format)
	}
	if err != nil {
		return fmt.Errorf("writing training table: %w", err)
	}
	log.Printf("wrote training table: %s", *out)

	if *historyOut != "" {
		series := gen.HistoricalYields(historyStartYear, historyEndYear)
		if err := writeJSON(*historyOut, series); err != nil {
			return fmt.Errorf("writing historical yields: %w", err)
		}
		log.Printf("wrote historical yields (%d-%d): %s", historyStartYear, historyEndYear, *historyOut)
	}

	printStats(table)
	return nil
}

func writeCSV(path string, table []synthdata.Sample) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append([]string{"crop_type"}, domain.FeatureNames()...)
	header = append(header, "yield_tons_per_ha")
	if err := w.Write(header); err != nil {
		return err
	}

	for _, s := range table {
		row := make([]string, 0, len(header))
		row = append(row, string(s.Crop))
		for _, v := range s.Features.Values() {
			row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
		}
		row = append(row, strconv.FormatFloat(s.YieldTonsPerHa, 'f', -1, 64))
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(table []synthdata.Sample) {
	counts := map[domain.CropType]int{}
	sums := map[domain.CropType]float64{}
	mins := map[domain.CropType]float64{}
	maxs := map[domain.CropType]float64{}

	for _, s := range table {
		counts[s.Crop]++
		sums[s.Crop] += s.YieldTonsPerHa
		if counts[s.Crop] == 1 || s.YieldTonsPerHa < mins[s.Crop] {
			mins[s.Crop] = s.YieldTonsPerHa
		}
		if s.YieldTonsPerHa > maxs[s.Crop] {
			maxs[s.Crop] = s.YieldTonsPerHa
		}
	}

	fmt.Println("\n=== Yield summary (t/ha) ===")
	for _, crop := range domain.CropTypes() {
		n := counts[crop]
		if n == 0 {
			continue
		}
		fmt.Printf("%-10s n=%d mean=%.2f min=%.2f max=%.2f\n",
			crop, n, sums[crop]/float64(n), mins[crop], maxs[crop])
	}
}
