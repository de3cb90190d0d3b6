package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"gorosi/adapters/excel"
	"gorosi/adapters/loader"
	"gorosi/adapters/report"
	"gorosi/app"
	"gorosi/internal/engine"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gorosi",
		Short: "Quantitative risk-decision engine: control sequencing and vendor assessment",
	}

	rootCmd.AddCommand(
		newSequenceCmd(),
		newVendorsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSequenceCmd() *cobra.Command {
	var outDir string
	var xlsx, markdown bool

	cmd := &cobra.Command{
		Use:   "sequence [batch.csv]",
		Short: "Rank control deployment orderings for every scenario in a CSV batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			requests, err := loader.LoadSequenceBatch(file)
			if err != nil {
				return fmt.Errorf("loading batch: %w", err)
			}

			service := app.NewSequenceService()
			for i, req := range requests {
				result, err := service.OptimizeControlSequence(context.Background(), req)
				if err != nil {
					return fmt.Errorf("scenario %d: %w", i+1, err)
				}
				base := outputBase(outDir, "sequence", i+1)
				if err := writeJSON(base+".json", result); err != nil {
					return err
				}
				if xlsx {
					if err := excel.WriteSequenceXLSX(base+".xlsx", result); err != nil {
						return fmt.Errorf("scenario %d workbook: %w", i+1, err)
					}
				}
				if markdown {
					if err := os.WriteFile(base+".md", []byte(report.SequenceMarkdown(result)), 0o644); err != nil {
						return err
					}
				}
				fmt.Printf("scenario %d: best order %v, total ROSI %.1f%%\n",
					i+1, result.Results.BestPermutation, result.Results.BestROSI)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", ".", "output directory")
	cmd.Flags().BoolVar(&xlsx, "xlsx", false, "also write an XLSX workbook per scenario")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "also write a markdown briefing per scenario")
	return cmd
}

func newVendorsCmd() *cobra.Command {
	var outDir string
	var xlsx, markdown bool

	cmd := &cobra.Command{
		Use:   "vendors [batch.csv]",
		Short: "Assess vendor offerings for every scenario in a CSV batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			requests, err := loader.LoadVendorBatch(file)
			if err != nil {
				return fmt.Errorf("loading batch: %w", err)
			}

			service := app.NewVendorService(engine.NewModeEstimator())
			for i, req := range requests {
				result, err := service.AssessVendors(context.Background(), req)
				if err != nil {
					return fmt.Errorf("scenario %d: %w", i+1, err)
				}
				base := outputBase(outDir, "vendors", i+1)
				if err := writeJSON(base+".json", result); err != nil {
					return err
				}
				if xlsx {
					if err := excel.WriteVendorXLSX(base+".xlsx", result); err != nil {
						return fmt.Errorf("scenario %d workbook: %w", i+1, err)
					}
				}
				if markdown {
					if err := os.WriteFile(base+".md", []byte(report.VendorMarkdown(result)), 0o644); err != nil {
						return err
					}
				}
				fmt.Printf("scenario %d: best value vendor %d (mean ROSI %.1f%%), largest reduction vendor %d\n",
					i+1, result.Results.BestVendor[0], result.Results.BestMeanROSI,
					result.Results.MostEffectiveVendor[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", ".", "output directory")
	cmd.Flags().BoolVar(&xlsx, "xlsx", false, "also write an XLSX workbook per scenario")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "also write a markdown briefing per scenario")
	return cmd
}

func outputBase(dir, mode string, scenario int) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%03d", mode, scenario))
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
