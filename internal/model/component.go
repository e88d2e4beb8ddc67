// Package model defines the component accessors and graph helpers used by the
// BOM normalizer.
package model

import (
	"strings"

	cdx "github.com/CycloneDX/cyclonedx-go"
)

// Property names written by syft when it catalogs a component.
const (
	PropFoundBy      = "syft:package:foundBy"     // cataloger that found the component
	PropLocationPath = "syft:location:0:path"     // first filesystem location
	PropVirtualPath  = "syft:metadata:virtualPath" // archive the component was extracted from
)

// Property returns the value of the first property called name on c.
func Property(c *cdx.Component, name string) (string, bool) {
	if c == nil || c.Properties == nil {
		return "", false
	}
	for _, p := range *c.Properties {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// IdentityKey returns the package identity of c: its purl with any
// "?qualifiers" suffix removed. ok is false when the component has no purl,
// in which case it never takes part in duplicate detection.
//
// The cut is purely textual, so "pkg:maven/a/b@1?type=jar" and
// "pkg:maven/a/b@1" collapse while differently-encoded purls stay apart.
func IdentityKey(c *cdx.Component) (key string, ok bool) {
	if c == nil || c.PackageURL == "" {
		return "", false
	}
	key, _, _ = strings.Cut(c.PackageURL, "?")
	return key, true
}

// Components returns the top-level component slice of bom, or nil.
func Components(bom *cdx.BOM) []cdx.Component {
	if bom == nil || bom.Components == nil {
		return nil
	}
	return *bom.Components
}

// Dependencies returns the relationship slice of bom, or nil.
func Dependencies(bom *cdx.BOM) []cdx.Dependency {
	if bom == nil || bom.Dependencies == nil {
		return nil
	}
	return *bom.Dependencies
}
