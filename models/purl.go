package models

import (
	"fmt"

	"github.com/package-url/packageurl-go"
)

type Purl struct {
	packageurl.PackageURL
}

// NewNpmPurl parses a package URL and rejects anything that is not an npm
// package.
func NewNpmPurl(purl string) (Purl, error) {
	p, err := packageurl.FromString(purl)
	if err != nil {
		return Purl{}, err
	}

	if p.Type != packageurl.TypeNPM {
		return Purl{}, fmt.Errorf("unsupported purl type %q, expected npm", p.Type)
	}

	return Purl{PackageURL: p}, nil
}

// PackageName returns the registry name, with the scope prefix for
// namespaced packages.
func (p *Purl) PackageName() string {
	if p.Namespace == "" {
		return p.Name
	}

	scope := p.Namespace
	if scope[0] != '@' {
		scope = "@" + scope
	}
	return scope + "/" + p.Name
}
