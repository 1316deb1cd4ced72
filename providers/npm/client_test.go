package npm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwalitee/kwalitee/estimate"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.Client(), server.URL, server.URL)
}

func TestGetDownloadsRange(t *testing.T) {
	var requestedPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		fmt.Fprint(w, `{"downloads": [{"day": "2026-08-28", "downloads": 500}, {"day": "2026-08-29", "downloads": 499}]}`)
	})

	start := time.Date(2025, 8, 29, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	samples, err := client.GetDownloadsRange(context.Background(), "some-pkg", start, end)
	require.NoError(t, err)

	assert.Equal(t, "/downloads/range/2025-08-29:2026-08-29/some-pkg", requestedPath)
	require.Len(t, samples, 2)
	assert.Equal(t, int64(500), samples[0].Downloads)
	assert.Equal(t, "2026-08-29", samples[1].Day)
}

func TestGetDownloadsRangeMissingSeries(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"package": "some-pkg"}`)
	})

	samples, err := client.GetDownloadsRange(context.Background(), "some-pkg", time.Now(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestGetDownloadsRangeMalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"downloads": [`)
	})

	_, err := client.GetDownloadsRange(context.Background(), "some-pkg", time.Now(), time.Now())
	require.Error(t, err)

	var malformed *estimate.MalformedResponseError
	assert.True(t, errors.As(err, &malformed))
}

func TestGetDownloadsRangeServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.GetDownloadsRange(context.Background(), "some-pkg", time.Now(), time.Now())
	require.Error(t, err)

	var malformed *estimate.MalformedResponseError
	assert.False(t, errors.As(err, &malformed))
}

func TestGetPackument(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"name": "some-pkg",
			"dist-tags": {"latest": "2.0.0"},
			"repository": {"type": "git", "url": "git@github.com:owner/some-pkg.git"},
			"versions": {"1.0.0": {"version": "1.0.0"}, "2.0.0": {"version": "2.0.0"}}
		}`)
	})

	packument, err := client.GetPackument(context.Background(), "some-pkg")
	require.NoError(t, err)
	require.NotNil(t, packument)

	assert.Equal(t, "some-pkg", packument.Name)
	assert.Equal(t, "2.0.0", packument.LatestVersion())
	assert.Len(t, packument.Versions, 2)
	require.NotNil(t, packument.Repository)
	assert.Equal(t, "git", packument.Repository.Type)
}

func TestGetPackumentNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	packument, err := client.GetPackument(context.Background(), "no-such-pkg")
	require.NoError(t, err)
	assert.Nil(t, packument)
}

func TestGetPackumentMalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	})

	_, err := client.GetPackument(context.Background(), "some-pkg")
	require.Error(t, err)

	var malformed *estimate.MalformedResponseError
	assert.True(t, errors.As(err, &malformed))
}

func TestGetPackumentStringRepository(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name": "some-pkg", "repository": "owner/some-pkg", "versions": {"1.0.0": {}}}`)
	})

	packument, err := client.GetPackument(context.Background(), "some-pkg")
	require.NoError(t, err)
	require.NotNil(t, packument)
	require.NotNil(t, packument.Repository)
	assert.Empty(t, packument.Repository.Type)
	assert.Empty(t, packument.Repository.URL)
}
