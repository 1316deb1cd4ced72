package pretty

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/kwalitee/kwalitee/models"
)

func TestPrintSummaryTable(t *testing.T) {
	var buf bytes.Buffer

	printSummaryTable(&buf, []*models.PackageQuality{
		{Name: "left-pad", Score: 0},
		{Name: "lodash", Score: 0.987},
		{Name: "some-pkg", Score: 0.41},
	})

	snaps.MatchSnapshot(t, buf.String())
}

func TestVerdict(t *testing.T) {
	cases := []struct {
		score    float64
		expected string
	}{
		{0.99, "Good"},
		{0.75, "Good"},
		{0.5, "Fair"},
		{0.1, "Poor"},
		{0, "No signal"},
	}

	for _, c := range cases {
		if got := verdict(c.score); got != c.expected {
			t.Errorf("verdict(%v) = %q, expected %q", c.score, got, c.expected)
		}
	}
}
