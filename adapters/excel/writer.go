package excel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"gorosi/domain/risk"
)

// WriteSequenceXLSX exports a sequencing result as a workbook: one sheet
// ranking every permutation, one with the compounded cost schedule and one
// with the sensitivity indices.
func WriteSequenceXLSX(path string, result *risk.SequenceResult) error {
	f := excelize.NewFile()
	defer f.Close()

	rows := make([][]any, 0, len(result.RankedPermutations))
	for rank, pr := range result.RankedPermutations {
		rows = append(rows, []any{rank + 1, permutationLabel(pr.Permutation), pr.TotalROSI})
	}
	if err := writeSheet(f, "Permutations", []string{"Rank", "Deployment Order", "Total ROSI %"}, rows); err != nil {
		return err
	}

	rows = rows[:0]
	for year, entries := range result.Results.CostSchedule {
		for c, entry := range entries {
			rows = append(rows, []any{year, c + 1, entry.Cost, entry.Adjustment})
		}
	}
	if err := writeSheet(f, "Cost Schedule", []string{"Year", "Control", "Cost", "Adjustment"}, rows); err != nil {
		return err
	}

	if err := writeSensitivitySheet(f, result.SensitivityResults); err != nil {
		return err
	}

	f.DeleteSheet("Sheet1")
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

// WriteVendorXLSX exports a vendor-assessment result: one sheet of
// per-vendor statistics and one with the sensitivity indices.
func WriteVendorXLSX(path string, result *risk.VendorResult) error {
	f := excelize.NewFile()
	defer f.Close()

	rows := make([][]any, 0, len(result.VendorStatistics))
	for _, v := range result.VendorStatistics {
		rows = append(rows, []any{
			v.VendorID, v.ControlCost,
			v.ReductionRange.Min, v.ReductionRange.Max,
			v.ROSI.Mean, v.ROSI.Median, v.ROSI.StdDev,
			v.ALEAfter.Mean, v.MeanALEReduction,
		})
	}
	headers := []string{
		"Vendor", "Cost", "Reduction Min", "Reduction Max",
		"Mean ROSI %", "Median ROSI %", "ROSI Std Dev",
		"Mean Residual ALE", "Mean ALE Reduction",
	}
	if err := writeSheet(f, "Vendors", headers, rows); err != nil {
		return err
	}

	if err := writeSensitivitySheet(f, result.SensitivityResults); err != nil {
		return err
	}

	f.DeleteSheet("Sheet1")
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writeSensitivitySheet(f *excelize.File, sensitivity risk.SensitivityResult) error {
	names := make([]string, 0, len(sensitivity))
	for name := range sensitivity {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]any, 0, len(names))
	for _, name := range names {
		idx := sensitivity[name]
		rows = append(rows, []any{name, idx.S1, idx.S1Conf, idx.ST, idx.STConf})
	}
	return writeSheet(f, "Sensitivity", []string{"Parameter", "S1", "S1 Conf", "ST", "ST Conf"}, rows)
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]any) error {
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("creating sheet %s: %w", sheet, err)
	}
	f.SetActiveSheet(idx)

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("writing %s header: %w", sheet, err)
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("writing %s row %d: %w", sheet, r+1, err)
			}
		}
	}
	return nil
}

func permutationLabel(permutation []int) string {
	parts := make([]string, len(permutation))
	for i, id := range permutation {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, " -> ")
}
