package json

import (
	"context"
	"encoding/json"
	"io"
	"sort"

	"github.com/kwalitee/kwalitee/models"
)

func NewFormat(out io.Writer) *Format {
	return &Format{
		out: out,
	}
}

type Format struct {
	out io.Writer
}

func (f *Format) Format(ctx context.Context, packages []*models.PackageQuality) error {
	sorted := make([]*models.PackageQuality, len(packages))
	copy(sorted, packages)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	encoder := json.NewEncoder(f.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(sorted)
}
