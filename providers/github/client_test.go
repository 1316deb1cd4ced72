package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	gogithub "github.com/google/go-github/v59/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwalitee/kwalitee/estimate"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	restClient := gogithub.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	restClient.BaseURL = baseURL

	return &Client{restClient: restClient}
}

func TestListRepoIssues(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/owner/repo/issues", r.URL.Path)
		assert.Equal(t, "all", r.URL.Query().Get("state"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		fmt.Fprint(w, `[{"state": "open"}, {"state": "closed"}, {"state": "closed"}]`)
	})

	issues, err := client.ListRepoIssues(context.Background(), "owner", "repo")
	require.NoError(t, err)

	require.Len(t, issues, 3)
	assert.Equal(t, "open", issues[0].State)
	assert.Equal(t, "closed", issues[1].State)
}

func TestListRepoIssuesPagination(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "" {
			w.Header().Set("Link", fmt.Sprintf(`<http://%s/repos/owner/repo/issues?page=2>; rel="next", <http://%s/repos/owner/repo/issues?page=2>; rel="last"`, r.Host, r.Host))
			fmt.Fprint(w, `[{"state": "open"}]`)
			return
		}
		fmt.Fprint(w, `[{"state": "closed"}]`)
	})

	issues, err := client.ListRepoIssues(context.Background(), "owner", "repo")
	require.NoError(t, err)

	require.Len(t, issues, 2)
	assert.Equal(t, "open", issues[0].State)
	assert.Equal(t, "closed", issues[1].State)
}

func TestListRepoIssuesTransportError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.ListRepoIssues(context.Background(), "owner", "repo")
	require.Error(t, err)

	var malformed *estimate.MalformedResponseError
	assert.False(t, errors.As(err, &malformed))
}

func TestListRepoIssuesMalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"state": "open"`)
	})

	_, err := client.ListRepoIssues(context.Background(), "owner", "repo")
	require.Error(t, err)

	var malformed *estimate.MalformedResponseError
	assert.True(t, errors.As(err, &malformed))
}
