package models

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// PackageManifest is the batch input file for estimate_file.
type PackageManifest struct {
	Packages []PackageEntry `json:"packages" yaml:"packages"`
}

// LoadPackageManifest reads a manifest from disk. JSON files are detected by
// extension; everything else is parsed as YAML.
func LoadPackageManifest(path string) (*PackageManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read package manifest: %w", err)
	}

	var manifest PackageManifest
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &manifest)
	} else {
		err = yaml.Unmarshal(data, &manifest)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse package manifest %s: %w", path, err)
	}

	return &manifest, nil
}
