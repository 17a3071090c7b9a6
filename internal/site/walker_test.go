package site

import (
	"bytes"
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/webhelp/internal/cmdtree"
	"git.home.luguber.info/inful/webhelp/internal/foundation/errors"
)

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	return NewGenerator(GeneratorOptions{PagesDir: t.TempDir(), HomeDir: "/home/alice"})
}

func TestWalk_LogsRegisteredAliases(t *testing.T) {
	var logs bytes.Buffer
	gen := NewGenerator(GeneratorOptions{
		PagesDir: t.TempDir(),
		Logger:   slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
	})
	_, _, err := Walk(t.Context(), gen, zoweRoot(t))
	require.NoError(t, err)

	assert.Contains(t, logs.String(), `msg="Alias registered" alias=jobs node=zos-jobs`)
	assert.Contains(t, logs.String(), `alias=ls node=list`)
}

func ids(records []*PageRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestWalk_ZoweTree(t *testing.T) {
	gen := newTestGenerator(t)
	tree, aliases, err := Walk(t.Context(), gen, zoweRoot(t))
	require.NoError(t, err)

	assert.Equal(t, "zowe.html", tree.ID)
	assert.Equal(t, "zowe", tree.Text)
	assert.Equal(t, []string{"zowe_plugins.html", "zowe_zos-files.html", "zowe_zos-jobs.html"}, ids(tree.Children))

	jobs := tree.Find("zowe_zos-jobs.html")
	require.NotNil(t, jobs)
	assert.Equal(t, "zos-jobs | jobs", jobs.Text)
	assert.Equal(t, []string{"zowe_zos-jobs_list.html", "zowe_zos-jobs_submit.html"}, ids(jobs.Children))

	assert.Equal(t, AliasIndex{
		"jobs":  {"zos-jobs"},
		"ls":    {"list"},
		"sub":   {"submit"},
		"files": {"zos-files"},
		"dl":    {"download"},
	}, aliases)

	entries, err := os.ReadDir(gen.PagesDir())
	require.NoError(t, err)
	assert.Len(t, entries, tree.Count())
	assert.Equal(t, 8, tree.Count())
}

func TestWalk_PageContent(t *testing.T) {
	gen := newTestGenerator(t)
	_, _, err := Walk(t.Context(), gen, zoweRoot(t))
	require.NoError(t, err)
	dir := gen.PagesDir()

	root := readPage(t, dir, "zowe.html")
	assert.Contains(t, root, "<title>zowe</title>")
	assert.Contains(t, root, `<h2><a href="zowe.html">zowe</a></h2>`)
	assert.Contains(t, root, "<p>Welcome to Zowe CLI!</p>")
	assert.Contains(t, root, "<h4>Groups</h4>")
	assert.Contains(t, root, `<a href="zowe_zos-jobs.html">zos-jobs | jobs</a> - Manage z/OS jobs.`)

	group := readPage(t, dir, "zowe_zos-jobs.html")
	assert.Contains(t, group, "<title>zos-jobs</title>")
	assert.Contains(t, group, `<h2><a href="zowe.html">zowe</a> → <a href="zowe_zos-jobs.html">zos-jobs</a></h2>`)
	assert.Contains(t, group, "<h4>Commands</h4>")
	assert.Contains(t, group, `<a href="zowe_zos-jobs_list.html">list | ls</a> - List jobs.`)
	assert.Contains(t, group, `<a href="zowe_zos-jobs_submit.html">submit | sub</a> - Submit a job.`)

	list := readPage(t, dir, "zowe_zos-jobs_list.html")
	assert.Contains(t, list, "<title>zos-jobs list</title>")
	assert.Contains(t, list, `<a href="zowe_zos-jobs_list.html">list</a></h2>`)
	assert.Contains(t, list, "Lists jobs for &lt;owner&gt;.")
	assert.Contains(t, list, "/home/&lt;user&gt;/.zowe/profiles")
	assert.NotContains(t, list, "alice")
	assert.Contains(t, list, `<code>zowe zos-jobs list --owner IBMUSER</code> <button class="btn-copy" data-balloon-pos="right" data-clipboard-text="zowe zos-jobs list --owner IBMUSER">Copy</button>`)
	assert.NotContains(t, list, "<h4>Commands</h4>")
	assert.Contains(t, list, `<article class="markdown-body">`)
}

func TestWalk_ExcludedGroupHasNoPage(t *testing.T) {
	gen := newTestGenerator(t)
	root := cmdtree.ExcludeGroups(zoweRoot(t), []string{"plugins"})
	tree, _, err := Walk(t.Context(), gen, root)
	require.NoError(t, err)

	assert.Nil(t, tree.Find("zowe_plugins.html"))
	assert.NoFileExists(t, filepath.Join(gen.PagesDir(), "zowe_plugins.html"))
	assert.NotContains(t, readPage(t, gen.PagesDir(), "zowe.html"), "plugins")
}

func TestWalk_DoesNotMutateInput(t *testing.T) {
	root := zoweRoot(t)
	before := make([]string, len(root.Children))
	for i, c := range root.Children {
		before[i] = c.Name
	}
	_, _, err := Walk(t.Context(), newTestGenerator(t), root)
	require.NoError(t, err)
	for i, c := range root.Children {
		assert.Equal(t, before[i], c.Name)
	}
}

func TestWalk_Deterministic(t *testing.T) {
	a, b := newTestGenerator(t), newTestGenerator(t)
	treeA, aliasesA, err := Walk(t.Context(), a, zoweRoot(t))
	require.NoError(t, err)
	treeB, aliasesB, err := Walk(t.Context(), b, zoweRoot(t))
	require.NoError(t, err)

	assert.Equal(t, treeA, treeB)
	assert.Equal(t, aliasesA, aliasesB)
	entries, err := os.ReadDir(a.PagesDir())
	require.NoError(t, err)
	for _, e := range entries {
		assert.Equal(t, readPage(t, a.PagesDir(), e.Name()), readPage(t, b.PagesDir(), e.Name()), e.Name())
	}
}

func TestWalk_DuplicatePageIDFails(t *testing.T) {
	root := &cmdtree.Node{Name: "r", Type: cmdtree.TypeGroup, Help: staticHelp("# r"), Children: []*cmdtree.Node{
		{Name: "a_b", Type: cmdtree.TypeCommand, Help: staticHelp("# a_b")},
		{Name: "a", Type: cmdtree.TypeGroup, Help: staticHelp("# a"), Children: []*cmdtree.Node{
			{Name: "b", Type: cmdtree.TypeCommand, Help: staticHelp("# b")},
		}},
	}}

	_, _, err := Walk(t.Context(), newTestGenerator(t), root)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryTree))
}

func TestWalk_HelpFailureAborts(t *testing.T) {
	boom := stderrors.New("boom")
	root := &cmdtree.Node{Name: "r", Type: cmdtree.TypeGroup, Help: staticHelp("# r"), Children: []*cmdtree.Node{
		{Name: "bad", Type: cmdtree.TypeCommand, Help: failingHelp{err: boom}},
	}}
	_, _, err := Walk(t.Context(), newTestGenerator(t), root)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.True(t, errors.HasCategory(err, errors.CategoryRender))
}

func TestWalk_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, _, err := Walk(ctx, newTestGenerator(t), zoweRoot(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWalk_NilRoot(t *testing.T) {
	_, _, err := Walk(t.Context(), newTestGenerator(t), nil)
	assert.True(t, errors.HasCategory(err, errors.CategoryTree))
}

type staticHelp string

func (s staticHelp) HelpMarkdown(cmdtree.HelpContext) (string, error)    { return string(s), nil }
func (s staticHelp) ChildrenSummary(cmdtree.HelpContext) (string, error) { return "", nil }
