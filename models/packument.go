package models

import (
	"sort"

	"github.com/hashicorp/go-version"
)

// Packument is the registry's full metadata document for a package. Only the
// keys of Versions matter for scoring; the values are kept for the debug
// surface.
type Packument struct {
	Name       string                      `json:"name"`
	DistTags   map[string]string           `json:"dist-tags,omitempty"`
	Versions   map[string]PackumentVersion `json:"versions,omitempty"`
	Repository *RepoDescriptor             `json:"repository,omitempty"`
}

type PackumentVersion struct {
	Version string `json:"version,omitempty"`
}

// LatestVersion returns the registry's latest dist-tag when present,
// otherwise the highest published version that parses as semver.
func (p *Packument) LatestVersion() string {
	if p == nil {
		return ""
	}
	if latest := p.DistTags["latest"]; latest != "" {
		return latest
	}

	published := make([]*version.Version, 0, len(p.Versions))
	for raw := range p.Versions {
		semver, err := version.NewVersion(raw)
		if err != nil {
			continue
		}
		published = append(published, semver)
	}
	if len(published) == 0 {
		return ""
	}

	sort.Sort(version.Collection(published))
	return published[len(published)-1].Original()
}
