package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"

	"github.com/earth-metabolome-initiative/molecular-formulas/pkg/filter"
	"github.com/earth-metabolome-initiative/molecular-formulas/pkg/reader/list"
	"github.com/earth-metabolome-initiative/molecular-formulas/pkg/writer/sqlite"
)

func runConvert(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(inputFile); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", inputFile)
	}

	cfg, err := parserConfig()
	if err != nil {
		return err
	}

	filterConfig := &filter.Config{
		MinMass:     minMass,
		MaxMass:     maxMass,
		MaxCharge:   maxCharge,
		NeutralOnly: neutralOnly,
		RequireHill: requireHill,
	}
	if elementList != "" {
		filterConfig.Elements = strings.Split(elementList, ",")
	}
	if err := filterConfig.Compile(); err != nil {
		return err
	}

	inFile, err := os.Open(inputFile)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer inFile.Close()

	writer, err := sqlite.NewWriter(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output database: %w", err)
	}
	defer writer.Close()

	klog.Infof("converting %s to %s", inputFile, outputFile)

	reader := list.NewReader(inFile, cfg)

	// Dedupe on the canonical rendering, preserving first-seen order and
	// first-seen names.
	seen := linkedhashmap.New()

	count := 0
	skipped := 0
	filtered := 0
	duplicates := 0

	for reader.Next() {
		rec := reader.Record()

		if rec.Err != nil {
			klog.Warningf("skipping %s: %v", rec.Input, rec.Err)
			skipped++
			continue
		}

		keep, err := filterConfig.Keep(rec.Formula)
		if err != nil {
			klog.Warningf("skipping %s: %v", rec.Input, err)
			skipped++
			continue
		}
		if !keep {
			filtered++
			continue
		}

		key := rec.Formula.String()
		if _, ok := seen.Get(key); ok {
			duplicates++
			continue
		}
		seen.Put(key, rec)

		if err := writer.WriteFormula(rec.Name, rec.Input, rec.Formula); err != nil {
			return fmt.Errorf("failed to write formula %q: %w", rec.Input, err)
		}

		count++
		if count%10000 == 0 {
			klog.Infof("processed %d formulas...", count)
		}
	}

	if err := reader.Err(); err != nil {
		return fmt.Errorf("error reading input file: %w", err)
	}

	if err := writer.Finalize(); err != nil {
		return fmt.Errorf("failed to finalize database: %w", err)
	}

	klog.Infof("conversion complete: %d written, %d invalid, %d filtered, %d duplicates",
		count, skipped, filtered, duplicates)
	fmt.Printf("Output: %s (%d formulas)\n", outputFile, count)

	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := parserConfig()
	if err != nil {
		return err
	}

	inFile, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer inFile.Close()

	reader := list.NewReader(inFile, cfg)

	count := 0
	invalid := 0
	for reader.Next() {
		rec := reader.Record()
		count++
		if rec.Err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", rec.Err)
			invalid++
		}
	}
	if err := reader.Err(); err != nil {
		return fmt.Errorf("error reading input file: %w", err)
	}

	fmt.Printf("%d formulas checked, %d invalid\n", count, invalid)
	if invalid > 0 {
		return fmt.Errorf("%d invalid formulas", invalid)
	}
	return nil
}
