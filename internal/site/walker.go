package site

import (
	"context"
	"strings"

	"git.home.luguber.info/inful/webhelp/internal/cmdtree"
	"git.home.luguber.info/inful/webhelp/internal/foundation/errors"
	"git.home.luguber.info/inful/webhelp/internal/logfields"
	"git.home.luguber.info/inful/webhelp/internal/util/sets"
)

// traversal holds the accumulators of one walk.
type traversal struct {
	ctx     context.Context
	gen     *Generator
	aliases AliasIndex
	ids     sets.Set[string]
}

// Walk generates the page of every node below root, depth-first in pre-order, and
// returns the navigation tree with the alias index collected on the way. Children are
// visited sorted by name with duplicate canonical names collapsed. The walk stops at the
// first error or when ctx is canceled.
func Walk(ctx context.Context, gen *Generator, root *cmdtree.Node) (*PageRecord, AliasIndex, error) {
	if err := cmdtree.Validate(root); err != nil {
		return nil, nil, err
	}
	t := &traversal{
		ctx:     ctx,
		gen:     gen,
		aliases: AliasIndex{},
		ids:     sets.New[string](),
	}
	record, err := t.visit(root, []string{root.Name})
	if err != nil {
		return nil, nil, err
	}
	return record, t.aliases, nil
}

func (t *traversal) visit(node *cmdtree.Node, path []string) (*PageRecord, error) {
	if err := t.ctx.Err(); err != nil {
		return nil, err
	}
	fullPath := strings.Join(path, "_")
	record := newPageRecord(fullPath, node)
	if !t.ids.AddNew(record.ID) {
		return nil, errors.TreeError("two commands map to the same page").
			WithContext("page", record.ID).
			WithContext("node", strings.Join(path, " ")).
			Build()
	}
	for _, alias := range node.SecondaryAliases() {
		t.aliases.Add(alias, node.Name)
		t.gen.logger.Debug("Alias registered", logfields.Alias(alias), logfields.Node(node.Name))
	}

	children := cmdtree.OrderChildren(node.Children, t.gen.logger)
	if err := t.gen.generatePage(node, path, children); err != nil {
		return nil, err
	}
	for _, child := range children {
		childRecord, err := t.visit(child, append(path[:len(path):len(path)], child.Name))
		if err != nil {
			return nil, err
		}
		record.Children = append(record.Children, childRecord)
	}
	return record, nil
}
