package models

import (
	"encoding/json"
)

const (
	IssueStateOpen   = "open"
	IssueStateClosed = "closed"
)

// RepoDescriptor describes where a package's source lives, as published in
// the registry manifest.
type RepoDescriptor struct {
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Registries also serve the repository field as a bare "owner/repo" string.
// That shape carries no type and cannot be located, so it decodes to the
// zero descriptor instead of failing the whole packument.
func (r *RepoDescriptor) UnmarshalJSON(data []byte) error {
	type descriptor RepoDescriptor
	var aux descriptor
	if err := json.Unmarshal(data, &aux); err != nil {
		var shorthand string
		if json.Unmarshal(data, &shorthand) == nil {
			return nil
		}
		return err
	}
	*r = RepoDescriptor(aux)
	return nil
}

// PackageEntry is the input to the estimation pipeline.
type PackageEntry struct {
	Name       string          `json:"name" yaml:"name"`
	Repository *RepoDescriptor `json:"repository,omitempty" yaml:"repository,omitempty"`
}

// RepoLocation is an owner/name pair addressable against the hosting API.
// Valid is false when the package has no scorable repository, which is not
// an error.
type RepoLocation struct {
	Valid bool
	Owner string
	Name  string
}

func (l RepoLocation) FullName() string {
	return l.Owner + "/" + l.Name
}

type Issue struct {
	State string `json:"state"`
}

// DownloadSample is one day of the download-count time series.
type DownloadSample struct {
	Day       string `json:"day"`
	Downloads int64  `json:"downloads"`
}

// PackageQuality is the sole output of an estimation. No per-signal
// breakdown crosses this boundary.
type PackageQuality struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}
