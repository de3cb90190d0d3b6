package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"gorosi/domain/risk"
)

// SequenceMarkdown renders a sequencing result as a human-readable
// markdown briefing: headline recommendation, full ranking table and
// sensitivity indices.
func SequenceMarkdown(result *risk.SequenceResult) string {
	var b strings.Builder
	p := result.SimulationParameters

	b.WriteString("# Control Deployment Sequencing\n\n")
	fmt.Fprintf(&b, "Run `%s` over %d samples (seed %d).\n\n", result.RunID, p.NumSamples, p.Seed)
	fmt.Fprintf(&b, "**Recommended order: %s** with a total ROSI of %.1f%% across %d years.\n\n",
		orderLabel(result.Results.BestPermutation), result.Results.BestROSI, p.NumYears)

	b.WriteString("## Ranking\n\n")
	b.WriteString("| Rank | Order | Total ROSI % |\n|---|---|---|\n")
	for rank, pr := range result.RankedPermutations {
		fmt.Fprintf(&b, "| %d | %s | %.1f |\n", rank+1, orderLabel(pr.Permutation), pr.TotalROSI)
	}
	b.WriteString("\n")

	best := result.RankedPermutations[0]
	b.WriteString("## Recommended Order by Year\n\n")
	b.WriteString("| Year | Control | ALE Before | ALE After | Cost | ROSI % |\n|---|---|---|---|---|---|\n")
	for y, outcome := range best.Years {
		fmt.Fprintf(&b, "| %d | %d | %.0f | %.0f | %.0f | %.1f |\n",
			y+1, best.Permutation[y], outcome.ALEBefore, outcome.ALEAfter, outcome.ControlCost, outcome.ROSI)
	}
	b.WriteString("\n")

	writeSensitivity(&b, result.SensitivityResults)
	return b.String()
}

// VendorMarkdown renders a vendor-assessment result: both rankings side by
// side plus the per-vendor statistics.
func VendorMarkdown(result *risk.VendorResult) string {
	var b strings.Builder
	p := result.SimulationParameters

	b.WriteString("# Vendor Assessment\n\n")
	fmt.Fprintf(&b, "Run `%s` over %d samples (seed %d).\n\n", result.RunID, p.NumSamples, p.Seed)
	fmt.Fprintf(&b, "**Best value: vendor %d** (mean ROSI %.1f%%). ", result.Results.BestVendor[0], result.Results.BestMeanROSI)
	fmt.Fprintf(&b, "**Largest risk reduction: vendor %d.**\n\n", result.Results.MostEffectiveVendor[0])
	if result.Results.BestVendor[0] != result.Results.MostEffectiveVendor[0] {
		b.WriteString("The two rankings disagree: the cheapest risk reduction and the largest one come from different vendors.\n\n")
	}

	b.WriteString("## Vendors\n\n")
	b.WriteString("| Vendor | Cost | Effectiveness | Mean ROSI % | Median ROSI % | Mean Residual ALE | Mean ALE Reduction |\n|---|---|---|---|---|---|---|\n")
	for _, v := range result.VendorStatistics {
		fmt.Fprintf(&b, "| %d | %.0f | %.2f-%.2f | %.1f | %.1f | %.0f | %.1f%% |\n",
			v.VendorID, v.ControlCost, v.ReductionRange.Min, v.ReductionRange.Max,
			v.ROSI.Mean, v.ROSI.Median, v.ALEAfter.Mean, v.MeanALEReduction*100)
	}
	b.WriteString("\n")

	writeSensitivity(&b, result.SensitivityResults)
	return b.String()
}

func writeSensitivity(b *strings.Builder, sensitivity risk.SensitivityResult) {
	if len(sensitivity) == 0 {
		return
	}
	names := make([]string, 0, len(sensitivity))
	for name := range sensitivity {
		names = append(names, name)
	}
	sort.Strings(names)

	b.WriteString("## Sensitivity\n\n")
	b.WriteString("| Parameter | S1 | ST |\n|---|---|---|\n")
	for _, name := range names {
		idx := sensitivity[name]
		fmt.Fprintf(b, "| %s | %.3f &plusmn; %.3f | %.3f &plusmn; %.3f |\n",
			name, idx.S1, idx.S1Conf, idx.ST, idx.STConf)
	}
	b.WriteString("\n")
}

func orderLabel(permutation []int) string {
	parts := make([]string, len(permutation))
	for i, id := range permutation {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, " -> ")
}

// RenderHTML converts a markdown briefing to an HTML fragment.
func RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(p.Parse([]byte(md)), renderer)
}
