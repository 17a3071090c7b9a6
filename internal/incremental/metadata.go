// Package incremental decides whether the help site has to be regenerated by comparing
// the installed package metadata against the copy cached by the previous build.
package incremental

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Package is one entry of the metadata cache: the CLI itself or an installed plugin.
type Package struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// PackageMetadata lists the root package first, followed by the installed plugins.
type PackageMetadata []Package

// Current assembles the metadata for the documented package and its plugins.
func Current(root Package, plugins []Package) PackageMetadata {
	out := make(PackageMetadata, 0, len(plugins)+1)
	out = append(out, root)
	return append(out, plugins...)
}

// Normalized returns a sorted copy. Sorting uses locale-aware collation on the name and
// falls back to byte order on name and version, so equal sets always normalize identically.
func (m PackageMetadata) Normalized() PackageMetadata {
	out := slices.Clone(m)
	if out == nil {
		out = PackageMetadata{}
	}
	col := collate.New(language.Und)
	slices.SortStableFunc(out, func(a, b Package) int {
		if c := col.CompareString(a.Name, b.Name); c != 0 {
			return c
		}
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.Version, b.Version)
	})
	return out
}

// canonicalJSON is the comparison form of the metadata.
func (m PackageMetadata) canonicalJSON() []byte {
	data, err := json.Marshal(m.Normalized())
	if err != nil {
		// Package only holds strings; Marshal cannot fail.
		panic(err)
	}
	return data
}

// Equal reports whether both lists describe the same packages regardless of order.
func (m PackageMetadata) Equal(other PackageMetadata) bool {
	return string(m.canonicalJSON()) == string(other.canonicalJSON())
}

// Signature is a stable hash of the normalized metadata, recorded in build reports.
func (m PackageMetadata) Signature() string {
	sum := sha256.Sum256(m.canonicalJSON())
	return hex.EncodeToString(sum[:])
}

// ShouldRebuild reports whether the site must be regenerated.
func ShouldRebuild(cached, current PackageMetadata) bool {
	return !cached.Equal(current)
}
