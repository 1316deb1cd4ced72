// Package github fetches repository issues from the GitHub REST API.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v59/github"
	"golang.org/x/oauth2"

	"github.com/kwalitee/kwalitee/estimate"
	"github.com/kwalitee/kwalitee/models"
)

const DefaultGithubDomain = "github.com"

const (
	issuesPerPage = 100
	// the issue endpoint is call-budget-constrained, stop after 1000
	maxIssues = 1000
)

type Client struct {
	restClient *github.Client
}

// NewClient builds an issue client for github.com or a GitHub Enterprise
// domain. The token is injected, never baked in; an empty token means
// anonymous access.
func NewClient(ctx context.Context, token string, domain string) (*Client, error) {
	rateLimiter, err := github_ratelimit.NewRateLimitWaiterClient(nil)
	if err != nil {
		return nil, err
	}

	httpClient := rateLimiter
	if token != "" {
		src := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		ctx = context.WithValue(ctx, oauth2.HTTPClient, rateLimiter)
		httpClient = oauth2.NewClient(ctx, src)
	}

	restClient := github.NewClient(httpClient)
	if domain != "" && domain != DefaultGithubDomain {
		baseURL := fmt.Sprintf("https://%s/", domain)
		restClient, err = restClient.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, err
		}
	}

	return &Client{restClient: restClient}, nil
}

// ListRepoIssues lists issues for owner/name in all states. A body that
// fails to decode is reported as a MalformedResponseError so the pipeline
// can tell it apart from plain transport failures.
func (c *Client) ListRepoIssues(ctx context.Context, owner string, name string) ([]models.Issue, error) {
	opts := &github.IssueListByRepoOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: issuesPerPage},
	}

	var issues []models.Issue
	for {
		page, resp, err := c.restClient.Issues.ListByRepo(ctx, owner, name, opts)
		if err != nil {
			if isDecodeError(err) {
				return nil, &estimate.MalformedResponseError{
					Endpoint: fmt.Sprintf("issues for %s/%s", owner, name),
					Err:      err,
				}
			}
			return nil, fmt.Errorf("failed to list issues for %s/%s: %w", owner, name, err)
		}

		for _, issue := range page {
			issues = append(issues, models.Issue{State: issue.GetState()})
		}

		if resp.NextPage == 0 || len(issues) >= maxIssues {
			break
		}
		opts.Page = resp.NextPage
	}

	return issues, nil
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) ||
		errors.As(err, &typeErr) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}
