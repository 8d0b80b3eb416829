// Package cmd provides CLI command implementations
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/earth-metabolome-initiative/molecular-formulas/pkg/formula"
)

var (
	// Flags for convert; validate also uses count-width, residuals and
	// inchi, and analyze also uses residuals
	inputFile   string
	outputFile  string
	countWidth  string
	residuals   bool
	inchi       bool
	minMass     float64
	maxMass     float64
	maxCharge   int
	neutralOnly bool
	elementList string
	requireHill bool

	// Flags for analyze
	hillStyle bool
)

var rootCmd = &cobra.Command{
	Use:   "molform",
	Short: "molform - Molecular formula parsing and analysis tool",
	Long: `molform parses textual molecular formulas (PubChem, InChI, OCR'd
literature) into canonical form and computes chemical quantities.

Supports nested groups, isotopes, hydrate dots, charge suffixes, OCR
homoglyphs and Unicode subscript/superscript digits, with:
- Canonical and Hill-ordered rendering
- Molar mass, monoisotopic mass and m/z computation
- Conversion of formula lists to SQLite catalogues with filtering`,
	Version: "1.0.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(validateCmd)

	analyzeCmd.Flags().BoolVar(&hillStyle, "hill", false, "Render in Hill order")
	analyzeCmd.Flags().BoolVar(&residuals, "residuals", false, "Accept the wildcard residual atom R")

	convertCmd.Flags().StringVarP(&inputFile, "in", "i", "", "Input formula list file (required)")
	convertCmd.Flags().StringVarP(&outputFile, "out", "o", "", "Output database file (required)")
	convertCmd.Flags().StringVar(&countWidth, "count-width", "16", "Count width in bits: 8, 16 or 32")
	convertCmd.Flags().BoolVar(&residuals, "residuals", false, "Accept the wildcard residual atom R")
	convertCmd.Flags().BoolVar(&inchi, "inchi", false, "Require Hill-ordered (InChI style) input")
	convertCmd.Flags().Float64Var(&minMass, "min-mass", 0, "Keep only formulas with molar mass >= this (0 = no limit)")
	convertCmd.Flags().Float64Var(&maxMass, "max-mass", 0, "Keep only formulas with molar mass <= this (0 = no limit)")
	convertCmd.Flags().IntVar(&maxCharge, "max-charge", 0, "Keep only formulas with |charge| <= this (0 = no limit)")
	convertCmd.Flags().BoolVar(&neutralOnly, "neutral", false, "Drop formulas with a stated non-zero charge")
	convertCmd.Flags().StringVar(&elementList, "elements", "", "Comma-separated element allowlist (e.g. 'C,H,N,O,P,S')")
	convertCmd.Flags().BoolVar(&requireHill, "require-hill", false, "Keep only Hill-sorted formulas")

	convertCmd.MarkFlagRequired("in")
	convertCmd.MarkFlagRequired("out")

	validateCmd.Flags().StringVar(&countWidth, "count-width", "16", "Count width in bits: 8, 16 or 32")
	validateCmd.Flags().BoolVar(&residuals, "residuals", false, "Accept the wildcard residual atom R")
	validateCmd.Flags().BoolVar(&inchi, "inchi", false, "Require Hill-ordered (InChI style) input")
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [formula]...",
	Short: "Parse formulas and print canonical forms and masses",
	Long: `Parse one or more formulas and print the canonical rendering,
composition, charge, molar mass, monoisotopic mass and (for ions) m/z.

Examples:
  molform analyze H2O
  molform analyze --hill "CuSO4.5H2O" "SO4^2-"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a formula list to a SQLite catalogue",
	Long: `Convert a formula list file (one formula per line, optional
tab-separated name, '#' comments) to a SQLite catalogue with canonical
renderings and computed masses.

Examples:
  # Convert with default settings
  molform convert --in formulas.txt --out formulas.db

  # Keep only neutral CHNOPS formulas under 2000 Da
  molform convert --in formulas.txt --out formulas.db --neutral --elements C,H,N,O,P,S --max-mass 2000`,
	RunE: runConvert,
}

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Parse-check a formula list file",
	Long:  `Parse every formula in a list file and report the lines that fail.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

// parserConfig builds the parser configuration from the shared flags.
func parserConfig() (*formula.Config, error) {
	cfg := &formula.Config{
		Residuals: residuals,
		InChI:     inchi,
	}
	switch countWidth {
	case "", "16":
		cfg.Width = formula.Count16
	case "8":
		cfg.Width = formula.Count8
	case "32":
		cfg.Width = formula.Count32
	default:
		return nil, fmt.Errorf("invalid count width %q, must be 8, 16 or 32", countWidth)
	}
	return cfg, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := &formula.Config{Residuals: residuals}

	failed := 0
	for _, input := range args {
		f, err := cfg.Parse(input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", input, err)
			failed++
			continue
		}

		style := formula.RenderParseOrder
		if hillStyle {
			style = formula.RenderHill
		}
		fmt.Printf("%s\n", f.Render(style))

		var comp []string
		for _, e := range f.Elements().Entries() {
			comp = append(comp, fmt.Sprintf("%s:%d", e.Atom.Text(f.Data()), e.Count))
		}
		fmt.Printf("  composition: %s\n", strings.Join(comp, " "))

		if q, stated := f.Charge(); stated {
			fmt.Printf("  charge: %+d\n", q)
		}
		if m, err := f.MolarMass(); err == nil {
			fmt.Printf("  molar mass: %.4f Da\n", m)
		}
		if m, err := f.MonoisotopicMass(); err == nil {
			fmt.Printf("  monoisotopic mass: %.6f Da\n", m)
		}
		if mz, err := f.MassOverCharge(); err == nil {
			fmt.Printf("  m/z: %.6f\n", mz)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d formulas failed to parse", failed, len(args))
	}
	return nil
}
