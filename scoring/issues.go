package scoring

import (
	"github.com/rs/zerolog/log"

	"github.com/kwalitee/kwalitee/models"
)

// ScoreIssues converts open/closed issue counts into a score. A repository
// with no issues at all gives no evidence of maintenance and scores 0.
// Issues in an unexpected state count toward the total but not toward open.
func ScoreIssues(issues []models.Issue) float64 {
	if len(issues) == 0 {
		return 0
	}

	open := 0
	for _, issue := range issues {
		switch issue.State {
		case models.IssueStateOpen:
			open++
		case models.IssueStateClosed:
		default:
			log.Warn().Str("state", issue.State).Msg("unexpected issue state")
		}
	}

	return 1 - float64(open)/float64(len(issues))
}
