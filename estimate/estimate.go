// Package estimate computes consolidated quality scores for packages.
package estimate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/semaphore"

	"github.com/kwalitee/kwalitee/models"
	"github.com/kwalitee/kwalitee/scoring"
)

// downloadWindowDays is the trailing window of the popularity signal.
const downloadWindowDays = 365

type IssuesClient interface {
	ListRepoIssues(ctx context.Context, owner string, name string) ([]models.Issue, error)
}

type RegistryClient interface {
	GetDownloadsRange(ctx context.Context, pkg string, start time.Time, end time.Time) ([]models.DownloadSample, error)
	GetPackument(ctx context.Context, pkg string) (*models.Packument, error)
}

type Formatter interface {
	Format(ctx context.Context, packages []*models.PackageQuality) error
}

// MalformedResponseError reports a response body that could not be decoded.
// It is the one collaborator failure that aborts an estimation; transport
// failures only degrade the affected signal.
type MalformedResponseError struct {
	Endpoint string
	Err      error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.Endpoint, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

type Estimator struct {
	issues   IssuesClient
	registry RegistryClient
	now      func() time.Time
}

func NewEstimator(issues IssuesClient, registry RegistryClient) *Estimator {
	return &Estimator{
		issues:   issues,
		registry: registry,
		now:      time.Now,
	}
}

type stage struct {
	name string
	run  func(ctx context.Context) (float64, error)
}

// Estimate runs the scoring pipeline for one package entry and returns the
// product of the computed signal scores. Stages run strictly in order and
// each one requires a network round-trip, so the chain stops as soon as the
// running product reaches 0.
func (e *Estimator) Estimate(ctx context.Context, entry models.PackageEntry) (float64, error) {
	if entry.Name == "" {
		return 0, fmt.Errorf("package entry %+v has no name", entry)
	}

	stages := []stage{
		{"issues", func(ctx context.Context) (float64, error) {
			return e.scoreIssues(ctx, entry.Repository)
		}},
		{"downloads", func(ctx context.Context) (float64, error) {
			return e.scoreDownloads(ctx, entry.Name)
		}},
		{"versions", func(ctx context.Context) (float64, error) {
			return e.scoreVersions(ctx, entry.Name)
		}},
	}

	quality := 1.0
	for _, s := range stages {
		if quality <= 0 {
			log.Debug().Str("package", entry.Name).Str("stage", s.name).Msg("skipping stage, quality is already 0")
			return 0, nil
		}

		score, err := s.run(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to score %s signal for package %s: %w", s.name, entry.Name, err)
		}
		quality *= score
	}

	return quality, nil
}

// EstimatePackage estimates a package known only by its registry name. The
// repository descriptor is resolved from the package's registry metadata
// before the pipeline runs; a package missing from the registry simply has
// no repository signal.
func (e *Estimator) EstimatePackage(ctx context.Context, name string) (*models.PackageQuality, error) {
	entry := models.PackageEntry{Name: name}

	packument, err := e.registry.GetPackument(ctx, name)
	if err != nil {
		log.Warn().Err(err).Str("package", name).Msg("failed to resolve repository from registry")
	} else if packument != nil {
		entry.Repository = packument.Repository
	}

	score, err := e.Estimate(ctx, entry)
	if err != nil {
		return nil, err
	}

	return &models.PackageQuality{Name: name, Score: score}, nil
}

// EstimateAll estimates a batch of entries with bounded concurrency. Each
// pipeline stays sequential inside; only distinct entries run in parallel.
// Entries that fail hard are logged and reported with a zero score so one
// bad package does not sink the batch.
func (e *Estimator) EstimateAll(ctx context.Context, entries []models.PackageEntry, threads *int) ([]*models.PackageQuality, error) {
	bar := progressbar.NewOptions(
		len(entries),
		progressbar.OptionSetDescription("Estimating packages"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWriter(os.Stderr),
	)

	maxGoroutines := 2
	if threads != nil {
		maxGoroutines = *threads
	}
	sem := semaphore.NewWeighted(int64(maxGoroutines))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var results []*models.PackageQuality

	for _, entry := range entries {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, fmt.Errorf("failed to acquire semaphore: %w", err)
		}

		wg.Add(1)
		go func(entry models.PackageEntry) {
			defer sem.Release(1)
			defer wg.Done()

			score, err := e.Estimate(ctx, entry)
			if err != nil {
				log.Error().Err(err).Str("package", entry.Name).Msg("failed to estimate package")
				score = 0
			}

			mu.Lock()
			results = append(results, &models.PackageQuality{Name: entry.Name, Score: score})
			mu.Unlock()
			_ = bar.Add(1)
		}(entry)
	}

	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})

	return results, nil
}

func (e *Estimator) scoreIssues(ctx context.Context, repo *models.RepoDescriptor) (float64, error) {
	location := scoring.Locate(repo)
	if !location.Valid {
		log.Debug().Msg("package has no scorable git repository")
		return 0, nil
	}

	issues, err := e.issues.ListRepoIssues(ctx, location.Owner, location.Name)
	if err != nil {
		var malformed *MalformedResponseError
		if errors.As(err, &malformed) {
			return 0, err
		}
		log.Warn().Err(err).Str("repo", location.FullName()).Msg("failed to fetch issues")
		return 0, nil
	}

	return scoring.ScoreIssues(issues), nil
}

func (e *Estimator) scoreDownloads(ctx context.Context, name string) (float64, error) {
	end := e.now().UTC()
	start := end.AddDate(0, 0, -downloadWindowDays)

	samples, err := e.registry.GetDownloadsRange(ctx, name, start, end)
	if err != nil {
		var malformed *MalformedResponseError
		if errors.As(err, &malformed) {
			return 0, err
		}
		log.Warn().Err(err).Str("package", name).Msg("failed to fetch download counts")
		return 0, nil
	}

	return scoring.ScoreDownloads(samples), nil
}

func (e *Estimator) scoreVersions(ctx context.Context, name string) (float64, error) {
	packument, err := e.registry.GetPackument(ctx, name)
	if err != nil {
		// the registry lookup degrades soft in every failure mode,
		// parse failures included
		log.Warn().Err(err).Str("package", name).Msg("failed to fetch registry metadata")
		return 0, nil
	}
	if packument == nil {
		log.Debug().Str("package", name).Msg("package not found in registry")
		return 0, nil
	}

	return scoring.ScoreVersions(packument.Versions), nil
}
