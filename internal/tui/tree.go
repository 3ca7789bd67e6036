package tui

import (
	"jarlens/internal/nstree"
)

// row is one visible line of the package tree sidebar.
type row struct {
	node  nstree.Node
	depth int
	// pkg is set when the row is a package, nil for members.
	pkg *nstree.Package
}

// member returns the row's member node, or nil for packages.
func (r row) member() *nstree.Member {
	m, _ := r.node.(*nstree.Member)
	return m
}

// visibleRows flattens the tree into display order, descending only into
// expanded packages. Expansion is tracked per package pointer; the map
// is discarded whenever the tree is rebuilt.
func visibleRows(root *nstree.Package, expanded map[*nstree.Package]bool) []row {
	var rows []row
	var walk func(p *nstree.Package, depth int)
	walk = func(p *nstree.Package, depth int) {
		for _, child := range p.Children {
			if pkg, ok := child.(*nstree.Package); ok {
				rows = append(rows, row{node: child, depth: depth, pkg: pkg})
				if expanded[pkg] {
					walk(pkg, depth+1)
				}
				continue
			}
			rows = append(rows, row{node: child, depth: depth})
		}
	}
	walk(root, 0)
	return rows
}

// expandAll marks every package in the tree as expanded.
func expandAll(root *nstree.Package, expanded map[*nstree.Package]bool) {
	nstree.Walk(root, func(n nstree.Node, _ int) {
		if pkg, ok := n.(*nstree.Package); ok {
			expanded[pkg] = true
		}
	})
}
