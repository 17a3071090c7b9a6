package site

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/webhelp/internal/cmdtree"
	"git.home.luguber.info/inful/webhelp/internal/helptext"
)

const zoweTree = `
name: zowe
description: Welcome to Zowe CLI!
children:
  - name: zos-jobs
    aliases: [jobs]
    summary: Manage z/OS jobs.
    children:
      - name: submit
        aliases: [sub]
        summary: Submit a job.
        positionals:
          - name: dataset
            required: true
            description: The data set containing the JCL.
      - name: list
        aliases: [ls]
        summary: List jobs.
        description: Lists jobs for <owner>. Profiles are read from /home/alice/.zowe/profiles.
        options:
          - name: owner
            aliases: [o]
            type: string
            description: The owner of the jobs.
        examples:
          - description: List the jobs of IBMUSER
            options: --owner IBMUSER
  - name: plugins
    summary: Install and manage plug-ins.
    children:
      - name: install
        summary: Install a plug-in.
  - name: zos-files
    aliases: [files]
    summary: Manage z/OS data sets.
    children:
      - name: download
        aliases: [dl]
        summary: Download content.
`

func zoweRoot(t *testing.T) *cmdtree.Node {
	t.Helper()
	def, err := cmdtree.DecodeDefinition([]byte(zoweTree), cmdtree.FormatYAML)
	require.NoError(t, err)
	root, err := cmdtree.FromDefinition(def, helptext.New)
	require.NoError(t, err)
	return root
}

func readPage(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

type failingHelp struct{ err error }

func (f failingHelp) HelpMarkdown(cmdtree.HelpContext) (string, error)    { return "", f.err }
func (f failingHelp) ChildrenSummary(cmdtree.HelpContext) (string, error) { return "", nil }
