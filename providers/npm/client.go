// Package npm fetches registry metadata and download statistics for
// packages.
package npm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kwalitee/kwalitee/estimate"
	"github.com/kwalitee/kwalitee/models"
)

const dateFormat = "2006-01-02"

type Client struct {
	httpClient   *http.Client
	registryURL  string
	downloadsURL string
}

func NewClient(httpClient *http.Client, registryURL string, downloadsURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient:   httpClient,
		registryURL:  strings.TrimRight(registryURL, "/"),
		downloadsURL: strings.TrimRight(downloadsURL, "/"),
	}
}

// GetDownloadsRange fetches the daily download series for the date range.
// An undecodable body is a MalformedResponseError; a response without a
// downloads series is an empty result, not an error.
func (c *Client) GetDownloadsRange(ctx context.Context, pkg string, start time.Time, end time.Time) ([]models.DownloadSample, error) {
	endpoint := fmt.Sprintf("%s/downloads/range/%s:%s/%s",
		c.downloadsURL, start.Format(dateFormat), end.Format(dateFormat), pkg)

	body, _, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var stats struct {
		Downloads []models.DownloadSample `json:"downloads"`
	}
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, &estimate.MalformedResponseError{Endpoint: endpoint, Err: err}
	}

	return stats.Downloads, nil
}

// GetPackument fetches the registry's full metadata document for a package.
// A 404 means the package does not exist and returns a nil packument with
// no error.
func (c *Client) GetPackument(ctx context.Context, pkg string) (*models.Packument, error) {
	endpoint := fmt.Sprintf("%s/%s", c.registryURL, url.PathEscape(pkg))

	body, status, err := c.get(ctx, endpoint)
	if status == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var packument models.Packument
	if err := json.Unmarshal(body, &packument); err != nil {
		return nil, &estimate.MalformedResponseError{Endpoint: endpoint, Err: err}
	}

	log.Debug().
		Str("package", pkg).
		Int("versions", len(packument.Versions)).
		Str("latest", packument.LatestVersion()).
		Msg("fetched registry metadata")

	return &packument, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request for %s: %w", endpoint, err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get %s: %w", endpoint, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, res.StatusCode, fmt.Errorf("unexpected status %d from %s", res.StatusCode, endpoint)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, res.StatusCode, fmt.Errorf("failed to read response body from %s: %w", endpoint, err)
	}

	return body, res.StatusCode, nil
}
