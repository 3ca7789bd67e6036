// Package nstree builds a hierarchical package tree from flat qualified
// class names. The tree drives sidebar navigation in the viewer and is
// rebuilt wholesale after each decompile.
package nstree

import (
	"sort"
	"strings"
)

// Delimiter separates segments of a qualified class name.
const Delimiter = "/"

// Node is either a *Package or a *Member. The two variants are distinct
// types so consumers cannot mistake an interior package for a leaf class.
type Node interface {
	// Label returns the text displayed for this node.
	Label() string
}

// Package is an interior node: one segment of a package path with its
// children in first-appearance order. Child segments are unique within
// one parent.
type Package struct {
	Segment  string
	Children []Node
}

// Label returns the package segment.
func (p *Package) Label() string { return p.Segment }

// Member is a leaf node: one decompiled class.
type Member struct {
	// DisplayName is the final segment of the qualified name.
	DisplayName string
	// QualifiedName is the full slash-separated identity, used to look
	// the class up in the result store.
	QualifiedName string
}

// Label returns the display name.
func (m *Member) Label() string { return m.DisplayName }

// Build constructs a tree from qualified names. Names are processed in
// sorted order so identical input sets produce identical trees. Each
// distinct proper prefix becomes exactly one Package; duplicate names
// collapse to a single Member. Names with a single segment attach
// directly under the root. The returned root has an empty Segment.
func Build(names []string) *Package {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	root := &Package{}
	packages := make(map[string]*Package)
	seen := make(map[string]bool)

	for _, name := range sorted {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		parts := strings.Split(name, Delimiter)
		parent := root
		prefix := ""

		for _, segment := range parts[:len(parts)-1] {
			if prefix == "" {
				prefix = segment
			} else {
				prefix += Delimiter + segment
			}

			pkg, ok := packages[prefix]
			if !ok {
				pkg = &Package{Segment: segment}
				packages[prefix] = pkg
				parent.Children = append(parent.Children, pkg)
			}
			parent = pkg
		}

		parent.Children = append(parent.Children, &Member{
			DisplayName:   parts[len(parts)-1],
			QualifiedName: name,
		})
	}

	return root
}

// Walk visits every node in display order, depth-first. The visit
// function receives each node and its depth below the root (0 for the
// root's immediate children).
func Walk(root *Package, visit func(n Node, depth int)) {
	var walk func(p *Package, depth int)
	walk = func(p *Package, depth int) {
		for _, child := range p.Children {
			visit(child, depth)
			if pkg, ok := child.(*Package); ok {
				walk(pkg, depth+1)
			}
		}
	}
	walk(root, 0)
}

// Leaves returns the qualified names of all members in display order.
func Leaves(root *Package) []string {
	var names []string
	Walk(root, func(n Node, _ int) {
		if m, ok := n.(*Member); ok {
			names = append(names, m.QualifiedName)
		}
	})
	return names
}
