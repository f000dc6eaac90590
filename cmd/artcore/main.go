package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/inkprep/artcore"
	"github.com/inkprep/artcore/api"
	"github.com/inkprep/artcore/bounds"
	"github.com/inkprep/artcore/dimension"
	"github.com/inkprep/artcore/preview"
	"github.com/inkprep/artcore/scan"
)

// Build information (set by goreleaser)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "artcore",
		Short: "Analyze vector artwork for print production",
		Long: `Artcore inspects uploaded vector artwork and reports what a print
workflow needs to know: the tight content bounding box (excluding
backgrounds and page frames), physical dimensions in px/pt/mm, and a
catalog of colors with CMYK separations and Pantone matches.`,
		Example: `  artcore analyze logo.svg
  artcore analyze --format json *.svg
  artcore bounds --heuristics custom.yaml artwork.svg
  artcore proof -o proof.svg artwork.svg`,
	}

	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newBoundsCommand())
	rootCmd.AddCommand(newCorrectCommand())
	rootCmd.AddCommand(newProofCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newAnalyzeCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "analyze <file1> [file2...]",
		Short: "Run the full artwork analysis over one or more files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer := artcore.NewAnalyzer()
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}
				res, err := analyzer.Analyze(string(data))
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if err := emit(cmd, format, path, res, renderAnalysis); err != nil {
					return err
				}
			}
			return nil
		},
	}

	bindFormatFlag(cmd.Flags(), &format)
	return cmd
}

func newBoundsCommand() *cobra.Command {
	var format string
	var heuristicsFile string

	cmd := &cobra.Command{
		Use:   "bounds <file1> [file2...]",
		Short: "Compute only the content bounding box",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h := bounds.DefaultHeuristics()
			if heuristicsFile != "" {
				var err error
				if h, err = bounds.LoadHeuristics(heuristicsFile); err != nil {
					return err
				}
			}
			calc := bounds.NewCalculatorWith(h)

			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}
				box := calc.ContentBounds(string(data))
				if box == nil {
					return fmt.Errorf("%s: not parseable as vector markup", path)
				}
				if err := emit(cmd, format, path, box, renderBounds); err != nil {
					return err
				}
			}
			return nil
		},
	}

	bindFormatFlag(cmd.Flags(), &format)
	cmd.Flags().StringVar(&heuristicsFile, "heuristics", "", "YAML file overriding bounds heuristics")
	return cmd
}

func newCorrectCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "correct <width-px> <height-px>",
		Short: "Reconcile a tight-content viewBox size for export",
		Long: `Convert a content viewBox (72dpi pixels) to millimeters and apply the
oversized-artwork content ratio when it exceeds the physical threshold.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var w, h float64
			if _, err := fmt.Sscanf(args[0], "%g", &w); err != nil {
				return fmt.Errorf("invalid width %q", args[0])
			}
			if _, err := fmt.Sscanf(args[1], "%g", &h); err != nil {
				return fmt.Errorf("invalid height %q", args[1])
			}
			cd := dimension.NewNormalizer().CorrectForExport(w, h)
			return emit(cmd, format, fmt.Sprintf("%gx%gpx", w, h), cd, renderCorrected)
		},
	}

	bindFormatFlag(cmd.Flags(), &format)
	return cmd
}

func newProofCommand() *cobra.Command {
	var output string
	var unit string

	cmd := &cobra.Command{
		Use:   "proof <file>",
		Short: "Render an annotated proof SVG of the computed bounds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			doc, err := scan.Parse(string(data))
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			box := bounds.NewCalculator().ContentBoundsDocument(doc)

			proof := preview.NewProof(doc.CanvasWidth(), doc.CanvasHeight(), *box)
			proof.Unit = unit
			out, err := proof.GenerateSVG()
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(output, out, 0644); err != nil {
				return fmt.Errorf("failed to write proof: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "proof written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file for the proof SVG (default stdout)")
	cmd.Flags().StringVar(&unit, "unit", "mm", "Measure line unit: mm, pt or px")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "artcore %s (commit: %s, built: %s, go: %s)\n",
				version, commit, date, runtime.Version())
		},
	}
}

func bindFormatFlag(flags *pflag.FlagSet, format *string) {
	flags.StringVarP(format, "format", "f", "pretty", "Output format: pretty, json or yaml")
}

// emit writes one result in the requested format. Pretty rendering is
// per-type; json and yaml marshal the value directly.
func emit[T any](cmd *cobra.Command, format, label string, v T, pretty func(string, T) string) error {
	w := cmd.OutOrStdout()
	switch format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(w, string(data))
		return err
	case "pretty", "":
		_, err := fmt.Fprint(w, pretty(label, v))
		return err
	default:
		return fmt.Errorf("unknown format %q (expected pretty, json or yaml)", format)
	}
}

func renderBounds(label string, box *api.BoundingBox) string {
	return renderBoundsBox(label, *box)
}
