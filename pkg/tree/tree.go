// Package tree implements the resource tree (C6): a lazily-built,
// shared-immutable hierarchy over dotted resource IDs ("app.greeting" is a
// child of "app"), with children ordered by first insertion (spec §4.6).
//
// This package depends only on pkg/ids, not on pkg/arena, so that the arena
// can memoize a tree over its own resources without an import cycle: arena
// builds the tree from its resource list, tree itself only ever sees
// (dotted ID, resource index) pairs.
package tree

import (
	"strings"

	"github.com/emirpasic/gods/v2/maps/linkedhashmap"

	"github.com/resctx/resctx-runtime/pkg/ids"
)

// Leaf marks a node as backed by a concrete resource, carrying its arena
// index. Branch nodes (no resource of their own, just descendants) have
// HasResource == false.
type Leaf struct {
	HasResource bool
	Index       ids.ResourceIndex
}

// Node is one level of the tree: a path segment, its own leaf payload (if
// any), and its children in insertion order.
type Node struct {
	Name     string
	Path     string
	Leaf     Leaf
	children *linkedhashmap.Map[string, *Node]
}

func newNode(name, path string) *Node {
	return &Node{Name: name, Path: path, children: linkedhashmap.New[string, *Node]()}
}

// Children returns this node's direct children in first-insertion order.
func (n *Node) Children() []*Node {
	return n.children.Values()
}

// Child looks up a direct child by its path segment.
func (n *Node) Child(name string) (*Node, bool) {
	return n.children.Get(name)
}

// Tree is the root of a resource hierarchy. It is built once (by Build) and
// never mutated afterward, so it is safe to share across resolvers and
// goroutines.
type Tree struct {
	root *Node
	byID map[string]*Node
}

// Root returns the tree's synthetic root node, whose children are the
// top-level path segments.
func (t *Tree) Root() *Node { return t.root }

// ByID looks up the node at an exact dotted path, branch or leaf.
func (t *Tree) ByID(id string) (*Node, bool) {
	n, ok := t.byID[id]
	return n, ok
}

// Entry is one resource to place in the tree, keyed by its dotted ID.
type Entry struct {
	ID    string
	Index ids.ResourceIndex
}

// Build constructs a Tree from a flat list of resources. Entries are
// inserted in the given order, so sibling order at every branch reflects
// first occurrence in entries — splitting "a.b.c" creates intermediate
// branch nodes "a" and "a.b" on demand if no resource owns them directly.
func Build(entries []Entry) *Tree {
	t := &Tree{root: newNode("", ""), byID: map[string]*Node{}}
	for _, e := range entries {
		t.insert(e.ID, e.Index)
	}
	return t
}

func (t *Tree) insert(id string, idx ids.ResourceIndex) {
	segments := strings.Split(id, ".")
	cur := t.root
	path := ""
	for i, seg := range segments {
		if path == "" {
			path = seg
		} else {
			path = path + "." + seg
		}
		child, ok := cur.children.Get(seg)
		if !ok {
			child = newNode(seg, path)
			cur.children.Put(seg, child)
			t.byID[path] = child
		}
		cur = child
		if i == len(segments)-1 {
			cur.Leaf = Leaf{HasResource: true, Index: idx}
		}
	}
}
