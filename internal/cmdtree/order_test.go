package cmdtree

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

func TestOrderChildren_SortsAndDedupes(t *testing.T) {
	first := leaf("zos-jobs", "jobs")
	input := []*Node{first, leaf("config"), leaf("zos-files"), leaf("zos-jobs", "jobs"), leaf("provisioning")}

	var logs bytes.Buffer
	out := OrderChildren(input, slog.New(slog.NewTextHandler(&logs, nil)))

	assert.Equal(t, []string{"config", "provisioning", "zos-files", "zos-jobs"}, names(out))
	assert.Same(t, first, out[3])
	assert.Empty(t, logs.String(), "identical duplicates are dropped silently")
	assert.Equal(t, "zos-jobs", input[0].Name, "input order is untouched")
}

func TestOrderChildren_WarnsOnConflictingDuplicate(t *testing.T) {
	var logs bytes.Buffer
	out := OrderChildren([]*Node{leaf("list", "ls"), leaf("list", "l")}, slog.New(slog.NewTextHandler(&logs, nil)))

	require.Len(t, out, 1)
	assert.Equal(t, []string{"ls"}, out[0].Aliases)
	assert.True(t, strings.Contains(logs.String(), "conflicting duplicate"), logs.String())
}

func TestOrderChildren_Deterministic(t *testing.T) {
	a := OrderChildren([]*Node{leaf("b"), leaf("B"), leaf("a")}, nil)
	b := OrderChildren([]*Node{leaf("a"), leaf("B"), leaf("b")}, nil)
	assert.Equal(t, names(a), names(b))
}

func TestExcludeGroups(t *testing.T) {
	root := group("zowe", group("plugins"), group("zos-jobs"))
	filtered := ExcludeGroups(root, []string{"plugins"})

	assert.Equal(t, []string{"zos-jobs"}, names(filtered.Children))
	assert.Len(t, root.Children, 2, "original tree is not modified")
	assert.Same(t, root, ExcludeGroups(root, nil))
}
