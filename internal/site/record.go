package site

import (
	"slices"
	"strings"

	"git.home.luguber.info/inful/webhelp/internal/cmdtree"
)

const aliasSeparator = " | "

// PageRecord is the navigation entry of one generated page.
type PageRecord struct {
	// ID is the page file name, e.g. "zowe_zos-jobs.html".
	ID string `json:"id"`
	// Text is the canonical name followed by the secondary aliases, joined by " | ".
	Text string `json:"text"`
	// Children is never nil so it serializes as an array.
	Children []*PageRecord `json:"children"`
}

func newPageRecord(fullPath string, node *cmdtree.Node) *PageRecord {
	return &PageRecord{
		ID:       pageFileName(fullPath),
		Text:     strings.Join(append([]string{node.Name}, node.SecondaryAliases()...), aliasSeparator),
		Children: []*PageRecord{},
	}
}

// Count returns the number of records in the subtree, r included.
func (r *PageRecord) Count() int {
	n := 1
	for _, c := range r.Children {
		n += c.Count()
	}
	return n
}

// Find returns the record with the given id, searching depth-first.
func (r *PageRecord) Find(id string) *PageRecord {
	if r.ID == id {
		return r
	}
	for _, c := range r.Children {
		if found := c.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// AliasIndex maps a secondary alias to the canonical names that use it, in traversal order.
type AliasIndex map[string][]string

// Add records that alias names the command name. Repeated pairs and self aliases are ignored.
func (a AliasIndex) Add(alias, name string) {
	if alias == "" || alias == name || slices.Contains(a[alias], name) {
		return
	}
	a[alias] = append(a[alias], name)
}

func pageFileName(fullPath string) string {
	return fullPath + ".html"
}
