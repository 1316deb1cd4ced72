package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kwalitee/kwalitee/models"
)

func TestScoreDownloads(t *testing.T) {
	cases := []struct {
		name     string
		samples  []models.DownloadSample
		expected float64
	}{
		{
			name:     "popular package",
			samples:  []models.DownloadSample{{Downloads: 500}, {Downloads: 499}},
			expected: 1 - 1.0/999.0,
		},
		{
			name:     "single download",
			samples:  []models.DownloadSample{{Downloads: 1}},
			expected: 0,
		},
		{
			name:     "missing series",
			samples:  nil,
			expected: 0,
		},
		{
			name:     "zero total",
			samples:  []models.DownloadSample{{Downloads: 0}, {Downloads: 0}},
			expected: 0,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.InDelta(t, c.expected, ScoreDownloads(c.samples), 1e-9)
		})
	}
}
