// Package linkverify checks that the page-to-page links of a generated help site resolve.
package linkverify

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"git.home.luguber.info/inful/webhelp/internal/foundation/errors"
	"git.home.luguber.info/inful/webhelp/internal/logfields"
)

// BrokenLink is an internal anchor whose target file does not exist.
type BrokenLink struct {
	Page   string // page file name relative to the pages directory
	Target string // href as written
	Text   string
}

func (b BrokenLink) String() string {
	return fmt.Sprintf("%s: %q -> %s", b.Page, b.Text, b.Target)
}

// Result summarizes a verification run.
type Result struct {
	Pages  int
	Links  int
	Broken []BrokenLink
}

// OK reports whether every checked link resolved.
func (r *Result) OK() bool {
	return len(r.Broken) == 0
}

// Err returns a classified error listing the broken links, or nil.
func (r *Result) Err() error {
	if r.OK() {
		return nil
	}
	lines := make([]string, len(r.Broken))
	for i, b := range r.Broken {
		lines[i] = b.String()
	}
	return errors.LinkError(fmt.Sprintf("%d broken link(s)", len(r.Broken))).
		WithContext("links", strings.Join(lines, "; ")).
		Build()
}

// VerifySite checks every <a href> of every .html file in pagesDir. Only anchors are
// verified: page shells reference stylesheets and scripts deployed next to the site.
func VerifySite(ctx context.Context, pagesDir string) (*Result, error) {
	entries, err := os.ReadDir(pagesDir)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read pages directory").
			Fatal().
			WithContext(logfields.KeyFile, pagesDir).
			Build()
	}

	result := &Result{}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".html" {
			continue
		}
		result.Pages++
		broken, checked, err := verifyPage(pagesDir, entry.Name())
		if err != nil {
			return nil, err
		}
		result.Links += checked
		result.Broken = append(result.Broken, broken...)
	}
	slices.SortFunc(result.Broken, func(a, b BrokenLink) int {
		if c := strings.Compare(a.Page, b.Page); c != 0 {
			return c
		}
		return strings.Compare(a.Target, b.Target)
	})
	return result, nil
}

func verifyPage(pagesDir, name string) ([]BrokenLink, int, error) {
	f, err := os.Open(filepath.Join(pagesDir, name))
	if err != nil {
		return nil, 0, errors.WrapError(err, errors.CategoryFileSystem, "failed to open page").Fatal().WithContext(logfields.KeyFile, name).Build()
	}
	defer func() { _ = f.Close() }()

	links, err := ExtractLinks(f)
	if err != nil {
		return nil, 0, err
	}

	var broken []BrokenLink
	checked := 0
	for _, link := range links {
		if link.Tag != "a" || !link.IsInternal {
			continue
		}
		checked++
		u, err := url.Parse(link.URL)
		if err != nil {
			broken = append(broken, BrokenLink{Page: name, Target: link.URL, Text: link.Text})
			continue
		}
		target := filepath.Join(pagesDir, filepath.FromSlash(u.Path))
		if _, err := os.Stat(target); err != nil {
			broken = append(broken, BrokenLink{Page: name, Target: link.URL, Text: link.Text})
		}
	}
	return broken, checked, nil
}
