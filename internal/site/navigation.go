package site

import (
	"bytes"
	"encoding/json"

	"git.home.luguber.info/inful/webhelp/internal/foundation/errors"
	"git.home.luguber.info/inful/webhelp/internal/incremental"
)

const navigationBanner = "/* This file is automatically generated, do not edit manually! */\n"

// NavigationData is the content of the navigation script loaded by the site's index page.
type NavigationData struct {
	Tree    *PageRecord
	Aliases AliasIndex
	Header  string
	Footer  string
}

// BuildNavigation assembles navigation data from a finished walk.
func BuildNavigation(tree *PageRecord, aliases AliasIndex, header, footer string) *NavigationData {
	if aliases == nil {
		aliases = AliasIndex{}
	}
	return &NavigationData{Tree: tree, Aliases: aliases, Header: header, Footer: footer}
}

// Render returns the navigation script: the tree as treeNodes, the alias index as
// aliasList and the header and footer strings, all JSON encoded.
func (n *NavigationData) Render() ([]byte, error) {
	nodes := []*PageRecord{}
	if n.Tree != nil {
		nodes = append(nodes, n.Tree)
	}
	var buf bytes.Buffer
	buf.WriteString(navigationBanner)
	for _, decl := range []struct {
		name  string
		value any
	}{
		{"treeNodes", nodes},
		{"aliasList", n.Aliases},
		{"headerStr", n.Header},
		{"footerStr", n.Footer},
	} {
		encoded, err := encodeJS(decl.value)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryRender, "failed to encode navigation data").
				Fatal().
				WithContext("field", decl.name).
				Build()
		}
		buf.WriteString("const " + decl.name + " = ")
		buf.Write(encoded)
		buf.WriteString(";\n")
	}
	return buf.Bytes(), nil
}

// Write renders the navigation script and replaces path with it atomically.
func (n *NavigationData) Write(path string) error {
	data, err := n.Render()
	if err != nil {
		return err
	}
	return incremental.WriteFileAtomic(path, data)
}

func encodeJS(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
