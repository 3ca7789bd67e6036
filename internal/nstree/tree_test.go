package nstree

import (
	"reflect"
	"testing"
)

// findPackage returns the direct child package with the given segment.
func findPackage(t *testing.T, p *Package, segment string) *Package {
	t.Helper()
	for _, child := range p.Children {
		if pkg, ok := child.(*Package); ok && pkg.Segment == segment {
			return pkg
		}
	}
	t.Fatalf("package %q not found under %q", segment, p.Segment)
	return nil
}

func memberNames(p *Package) []string {
	var names []string
	for _, child := range p.Children {
		if m, ok := child.(*Member); ok {
			names = append(names, m.DisplayName)
		}
	}
	return names
}

func TestBuild_SharedPrefix(t *testing.T) {
	root := Build([]string{"a/B", "a/C", "a/b/D"})

	if len(root.Children) != 1 {
		t.Fatalf("expected 1 child under root, got %d", len(root.Children))
	}

	a := findPackage(t, root, "a")
	if got := memberNames(a); !reflect.DeepEqual(got, []string{"B", "C"}) {
		t.Errorf("members of a = %v, want [B C]", got)
	}

	b := findPackage(t, a, "b")
	if got := memberNames(b); !reflect.DeepEqual(got, []string{"D"}) {
		t.Errorf("members of a/b = %v, want [D]", got)
	}

	d := b.Children[0].(*Member)
	if d.QualifiedName != "a/b/D" {
		t.Errorf("QualifiedName = %q, want a/b/D", d.QualifiedName)
	}
}

func TestBuild_EveryNameBecomesOneLeaf(t *testing.T) {
	names := []string{
		"com/acme/Server",
		"com/acme/Client",
		"com/acme/util/Strings",
		"Main",
	}
	root := Build(names)

	leaves := Leaves(root)
	if len(leaves) != len(names) {
		t.Fatalf("expected %d leaves, got %d: %v", len(names), len(leaves), leaves)
	}

	found := make(map[string]bool)
	for _, leaf := range leaves {
		if found[leaf] {
			t.Errorf("duplicate leaf %q", leaf)
		}
		found[leaf] = true
	}
	for _, name := range names {
		if !found[name] {
			t.Errorf("name %q missing from leaves", name)
		}
	}
}

func TestBuild_SingleSegmentUnderRoot(t *testing.T) {
	root := Build([]string{"Main"})

	if len(root.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(root.Children))
	}
	m, ok := root.Children[0].(*Member)
	if !ok {
		t.Fatalf("expected a member under root, got %T", root.Children[0])
	}
	if m.DisplayName != "Main" || m.QualifiedName != "Main" {
		t.Errorf("unexpected member: %+v", m)
	}
}

func TestBuild_DuplicatesCollapse(t *testing.T) {
	root := Build([]string{"a/B", "a/B", "a/B"})

	if got := Leaves(root); len(got) != 1 {
		t.Errorf("expected duplicates to collapse to 1 leaf, got %v", got)
	}
}

func TestBuild_EmptyInput(t *testing.T) {
	root := Build(nil)

	if len(root.Children) != 0 {
		t.Errorf("expected empty root, got %d children", len(root.Children))
	}
}

func TestBuild_Idempotent(t *testing.T) {
	names := []string{"x/y/A", "x/B", "z/C", "x/y/D"}
	shuffled := []string{"z/C", "x/y/D", "x/B", "x/y/A"}

	first := Leaves(Build(names))
	second := Leaves(Build(shuffled))

	if !reflect.DeepEqual(first, second) {
		t.Errorf("trees differ for same input set: %v vs %v", first, second)
	}
}

func TestWalk_Depths(t *testing.T) {
	root := Build([]string{"a/b/C"})

	type visit struct {
		label string
		depth int
	}
	var visits []visit
	Walk(root, func(n Node, depth int) {
		visits = append(visits, visit{n.Label(), depth})
	})

	want := []visit{{"a", 0}, {"b", 1}, {"C", 2}}
	if !reflect.DeepEqual(visits, want) {
		t.Errorf("visits = %v, want %v", visits, want)
	}
}
