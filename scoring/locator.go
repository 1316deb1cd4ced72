// Package scoring holds the per-signal scoring formulas and the repository
// locator feeding the issue signal.
package scoring

import (
	"strings"

	"github.com/kwalitee/kwalitee/models"
)

const RepoTypeGit = "git"

// locatorRule matches one git remote URL shape and extracts the owner/name
// pair from it. First matching rule wins; a failed extraction after a match
// means the URL is malformed, not that later rules get a turn.
type locatorRule struct {
	match   func(url string) bool
	extract func(url string) (owner string, name string, ok bool)
}

func prefixRule(prefix string) locatorRule {
	return locatorRule{
		match: func(url string) bool {
			return strings.HasPrefix(url, prefix)
		},
		extract: func(url string) (string, string, bool) {
			parts := strings.Split(strings.TrimPrefix(url, prefix), "/")
			if len(parts) != 2 {
				return "", "", false
			}
			return parts[0], parts[1], true
		},
	}
}

var locatorRules = []locatorRule{
	prefixRule("git@github.com:"),
	prefixRule("git://github.com:"),
	{
		// https://host/owner/name splits into 5 segments
		match: func(string) bool { return true },
		extract: func(url string) (string, string, bool) {
			parts := strings.Split(url, "/")
			if len(parts) != 5 {
				return "", "", false
			}
			return parts[3], parts[4], true
		},
	},
}

// Locate derives a hosting API address from a repository descriptor. It
// never fails: descriptors that are absent, not git-typed, or not
// GitHub-shaped yield an invalid location, meaning the repository signal
// cannot be scored.
func Locate(repo *models.RepoDescriptor) models.RepoLocation {
	if repo == nil || repo.Type != RepoTypeGit || repo.URL == "" {
		return models.RepoLocation{}
	}

	for _, rule := range locatorRules {
		if !rule.match(repo.URL) {
			continue
		}
		owner, name, ok := rule.extract(repo.URL)
		if !ok {
			return models.RepoLocation{}
		}
		return models.RepoLocation{
			Valid: true,
			Owner: owner,
			Name:  strings.TrimSuffix(name, ".git"),
		}
	}

	return models.RepoLocation{}
}
