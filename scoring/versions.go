package scoring

import (
	"github.com/kwalitee/kwalitee/models"
)

// ScoreVersions counts distinct published versions into 1 - 1/count. Only
// the number of keys matters. An absent or empty map scores 0, the same
// zero-count convention as the download signal.
func ScoreVersions(versions map[string]models.PackumentVersion) float64 {
	count := len(versions)
	if count == 0 {
		return 0
	}

	return 1 - 1/float64(count)
}
