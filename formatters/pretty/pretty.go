package pretty

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"

	"github.com/kwalitee/kwalitee/models"
)

type Format struct {
}

func (f *Format) Format(ctx context.Context, packages []*models.PackageQuality) error {
	if len(packages) == 0 {
		log.Info().Msg("No packages were estimated")
		return nil
	}

	printSummaryTable(os.Stdout, packages)
	return nil
}

func printSummaryTable(out io.Writer, packages []*models.PackageQuality) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Package", "Quality", "Verdict"})
	table.SetColWidth(80)

	sorted := make([]*models.PackageQuality, len(packages))
	copy(sorted, packages)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	for _, pkg := range sorted {
		table.Append([]string{pkg.Name, fmt.Sprintf("%.3f", pkg.Score), verdict(pkg.Score)})
	}

	table.Render()
	fmt.Fprint(out, "\n")
}

func verdict(score float64) string {
	switch {
	case score >= 0.75:
		return "Good"
	case score >= 0.25:
		return "Fair"
	case score > 0:
		return "Poor"
	}
	return "No signal"
}
