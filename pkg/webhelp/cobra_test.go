package webhelp

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/webhelp/internal/cmdtree"
	"git.home.luguber.info/inful/webhelp/internal/foundation/errors"
	"git.home.luguber.info/inful/webhelp/internal/incremental"
)

func noop(*cobra.Command, []string) {}

func appTree() *cobra.Command {
	root := &cobra.Command{Use: "app", Short: "Example application", Version: "1.2.3"}
	jobs := &cobra.Command{Use: "jobs", Aliases: []string{"j"}, Short: "Manage jobs"}
	list := &cobra.Command{Use: "list", Aliases: []string{"ls"}, Short: "List jobs", Long: "List the jobs of an owner.", Run: noop}
	list.Flags().String("owner", "", "owner of the jobs")
	hidden := &cobra.Command{Use: "secret", Short: "Hidden", Hidden: true, Run: noop}
	jobs.AddCommand(list, hidden)
	version := &cobra.Command{Use: "version", Short: "Print the version", Run: noop}
	root.AddCommand(jobs, version)
	return root
}

func TestCommandTree(t *testing.T) {
	root, err := commandTree(appTree())
	require.NoError(t, err)

	assert.Equal(t, "app", root.Name)
	assert.Equal(t, cmdtree.TypeGroup, root.Type)
	require.Len(t, root.Children, 2)

	chain := root.Find("j", "ls")
	require.Len(t, chain, 3)
	list := chain[2]
	assert.Equal(t, "list", list.Name)
	assert.Equal(t, cmdtree.TypeCommand, list.Type)
	assert.Equal(t, "List jobs", list.Description)
	assert.Equal(t, []string{"ls"}, list.Aliases)

	assert.Nil(t, root.Find("jobs", "secret"), "hidden commands are skipped")
}

func TestCommandTree_Nil(t *testing.T) {
	_, err := commandTree(nil)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryTree))
}

func TestCobraHelp_HelpMarkdown(t *testing.T) {
	root, err := commandTree(appTree())
	require.NoError(t, err)
	chain := root.Find("jobs", "list")
	require.NotNil(t, chain)

	md, err := chain[2].Help.HelpMarkdown(cmdtree.HelpContext{Path: []string{"app", "jobs", "list"}})
	require.NoError(t, err)

	assert.Contains(t, md, "## app jobs list")
	assert.Contains(t, md, "List the jobs of an owner.")
	assert.Contains(t, md, "--owner")
	assert.Contains(t, md, "(app_jobs.html)")
	assert.NotContains(t, md, ".md)")
	assert.NotContains(t, md, "Auto generated")
}

func TestCobraHelp_ChildrenSummary(t *testing.T) {
	root, err := commandTree(appTree())
	require.NoError(t, err)
	children := cmdtree.OrderChildren(root.Children, nil)

	summary, err := root.Help.ChildrenSummary(cmdtree.HelpContext{Path: []string{"app"}, Children: children})
	require.NoError(t, err)
	assert.Equal(t, "Available Commands:\n\n  jobs | j  Manage jobs\n  version   Print the version\n", summary)
}

func TestPackageFor(t *testing.T) {
	assert.Equal(t, incremental.Package{Name: "app", Version: "1.2.3"}, packageFor(appTree()))
}
