package scoring

import (
	"github.com/kwalitee/kwalitee/models"
)

// ScoreDownloads sums a year of daily download samples into 1 - 1/total.
// A missing series or a zero total scores 0: no downloads is no signal, and
// no signal is scored as the worst case rather than an arithmetic fault.
func ScoreDownloads(samples []models.DownloadSample) float64 {
	var total int64
	for _, sample := range samples {
		total += sample.Downloads
	}

	if total == 0 {
		return 0
	}

	return 1 - 1/float64(total)
}
