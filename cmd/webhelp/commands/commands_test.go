package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/webhelp/internal/config"
	"git.home.luguber.info/inful/webhelp/internal/eventstore"
	"git.home.luguber.info/inful/webhelp/internal/foundation/errors"
)

const commandsYAML = `
name: zowe
description: Welcome to Zowe CLI!
children:
  - name: zos-jobs
    aliases: [jobs]
    summary: Manage z/OS jobs.
    children:
      - name: list
        aliases: [ls]
        summary: List jobs.
        examples:
          - description: List all jobs
            options: --owner "*"
`

// project writes a configuration and command tree into a temp dir and returns the config path.
func project(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "commands.yaml"), []byte(commandsYAML), 0o600))
	cfg := `
product_display_name: Zowe CLI
tree: commands.yaml
package: {name: "@zowe/cli", version: "7.18.0"}
home_dir: /home/alice
output:
  directory: site
` + extra
	path := filepath.Join(dir, "webhelp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))
	return path
}

func newGlobal() (*Global, *bytes.Buffer) {
	var out bytes.Buffer
	return &Global{Stdout: &out}, &out
}

func TestBuildCmd_WritesSiteHistoryAndMetrics(t *testing.T) {
	cfgPath := project(t, "history: {database: history.db}\nmetrics: {textfile: webhelp.prom}\nverify_links: true\n")
	dir := filepath.Dir(cfgPath)
	g, out := newGlobal()

	require.NoError(t, (&BuildCmd{}).Run(g, &CLI{Config: cfgPath}))
	assert.Contains(t, out.String(), "Generated 3 pages in "+filepath.Join(dir, "site"))
	assert.FileExists(t, filepath.Join(dir, "site", "docs", "zowe_zos-jobs_list.html"))
	assert.FileExists(t, filepath.Join(dir, "site", "tree-data.js"))

	prom, err := os.ReadFile(filepath.Join(dir, "webhelp.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(prom), `webhelp_build_outcomes_total{outcome="success"} 1`)

	out.Reset()
	require.NoError(t, (&BuildCmd{}).Run(g, &CLI{Config: cfgPath}))
	assert.Empty(t, out.String(), "unchanged build prints no summary")

	out.Reset()
	require.NoError(t, (&HistoryCmd{Since: time.Hour, Limit: 10}).Run(g, &CLI{Config: cfgPath}))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "STATUS")
	assert.Contains(t, out.String(), "completed")
	assert.Contains(t, out.String(), "no_changes")
}

func TestBuildCmd_ForceAndOutputOverride(t *testing.T) {
	cfgPath := project(t, "")
	other := filepath.Join(t.TempDir(), "elsewhere")
	g, out := newGlobal()

	require.NoError(t, (&BuildCmd{Output: other, Force: true}).Run(g, &CLI{Config: cfgPath}))
	assert.Contains(t, out.String(), "Generated 3 pages in "+other)
	assert.FileExists(t, filepath.Join(other, "metadata.json"))
}

func TestBuildCmd_MissingTree(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "webhelp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("package: {name: x, version: '1'}\n"), 0o600))

	err := (&BuildCmd{}).Run(&Global{}, &CLI{Config: path})
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestInitCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webhelp.yaml")
	g, out := newGlobal()

	require.NoError(t, (&InitCmd{}).Run(g, &CLI{Config: path}))
	assert.Contains(t, out.String(), "initialized successfully")
	_, err := config.Load(path)
	require.NoError(t, err)

	err = (&InitCmd{}).Run(g, &CLI{Config: path})
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
	require.NoError(t, (&InitCmd{Force: true}).Run(g, &CLI{Config: path}))
}

func TestShowCmd_Raw(t *testing.T) {
	cfgPath := project(t, "")
	g, out := newGlobal()

	require.NoError(t, (&ShowCmd{Path: []string{"jobs", "ls"}, Raw: true}).Run(g, &CLI{Config: cfgPath}))
	assert.Contains(t, out.String(), "# zowe zos-jobs list")
	assert.Contains(t, out.String(), "`$ zowe zos-jobs list --owner \"*\"`")

	out.Reset()
	require.NoError(t, (&ShowCmd{Raw: true}).Run(g, &CLI{Config: cfgPath}))
	assert.Contains(t, out.String(), "# zowe\n\nWelcome to Zowe CLI!")
	assert.Contains(t, out.String(), "zos-jobs | jobs  Manage z/OS jobs.")
}

func TestShowCmd_Rendered(t *testing.T) {
	cfgPath := project(t, "")
	g, out := newGlobal()

	require.NoError(t, (&ShowCmd{Path: []string{"zos-jobs"}, Style: "notty", Width: 80}).Run(g, &CLI{Config: cfgPath}))
	assert.Contains(t, out.String(), "zowe zos-jobs")
}

func TestShowCmd_UnknownCommand(t *testing.T) {
	cfgPath := project(t, "")
	err := (&ShowCmd{Path: []string{"nope"}, Raw: true}).Run(&Global{Stdout: &bytes.Buffer{}}, &CLI{Config: cfgPath})
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestVerifyCmd(t *testing.T) {
	cfgPath := project(t, "")
	g, out := newGlobal()
	require.NoError(t, (&BuildCmd{}).Run(g, &CLI{Config: cfgPath}))

	out.Reset()
	require.NoError(t, (&VerifyCmd{}).Run(g, &CLI{Config: cfgPath}))
	assert.Contains(t, out.String(), "in 3 pages")

	require.NoError(t, os.Remove(filepath.Join(filepath.Dir(cfgPath), "site", "docs", "zowe_zos-jobs_list.html")))
	out.Reset()
	err := (&VerifyCmd{}).Run(g, &CLI{Config: cfgPath})
	assert.True(t, errors.HasCategory(err, errors.CategoryLinks))
	assert.Contains(t, out.String(), "broken: zowe_zos-jobs.html")
}

func TestHistoryCmd_Disabled(t *testing.T) {
	cfgPath := project(t, "")
	err := (&HistoryCmd{Since: time.Hour}).Run(&Global{}, &CLI{Config: cfgPath})
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestPrintHistory_Limit(t *testing.T) {
	g, out := newGlobal()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	builds := []*eventstore.BuildSummary{
		{BuildID: "0123456789abcdef", Status: eventstore.StatusFailed, StartedAt: now, ErrorStage: "render_pages", ErrorDetail: "boom"},
		{BuildID: "fedcba9876543210", Status: eventstore.StatusCompleted, StartedAt: now.Add(-time.Hour), Pages: 12},
	}
	require.NoError(t, PrintHistory(g, builds, 1))

	assert.Contains(t, out.String(), "01234567")
	assert.Contains(t, out.String(), "render_pages: boom")
	assert.NotContains(t, out.String(), "fedcba98")
}
