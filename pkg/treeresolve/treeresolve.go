// Package treeresolve implements the resource tree resolver (C7): walking a
// resource tree (pkg/tree, C6) and composing every resource it contains
// against one resolver (pkg/resolver, C5), producing a mirror tree of
// resolved values instead of one resource at a time (spec §4.6-§4.7).
package treeresolve

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/resctx/resctx-runtime/pkg/resolver"
	"github.com/resctx/resctx-runtime/pkg/tree"
)

// ResourceErrorPolicy controls what happens when composing one resource in
// the tree fails.
type ResourceErrorPolicy int

const (
	// ResourceErrorFail records the error (annotated with the resource's
	// dotted path) and, once the whole tree has been walked, fails the
	// overall resolve with every recorded error aggregated together — the
	// same "report everything, then fail once" shape as pkg/loader.
	ResourceErrorFail ResourceErrorPolicy = iota

	// ResourceErrorSkip treats a composition error as if the resource simply
	// had no matching candidate: it's omitted from the result, and the walk
	// continues without recording an error.
	ResourceErrorSkip
)

// EmptyBranchPolicy controls what happens to a branch node that ends up
// with no resolved value of its own and no children carrying a value.
type EmptyBranchPolicy int

const (
	// EmptyBranchOmit drops empty branches from the result tree entirely;
	// this is the default since most callers only want resources that
	// actually resolved to something.
	EmptyBranchOmit EmptyBranchPolicy = iota

	// EmptyBranchInclude keeps empty branches in the result tree, with no
	// value and no children, so callers can distinguish "this path exists
	// but resolved to nothing" from "this path doesn't exist".
	EmptyBranchInclude
)

// Options configures a tree walk.
type Options struct {
	OnResourceError ResourceErrorPolicy
	OnEmptyBranch   EmptyBranchPolicy
}

// ResolvedNode mirrors one node of the resource tree after composition: its
// own resolved value (if any) and its children, in the same order the
// source tree presents them.
type ResolvedNode struct {
	Name     string
	Path     string
	HasValue bool
	Value    any
	Children []*ResolvedNode
}

// TreeResolver composes every resource in a tree against a single
// resolver's current context.
type TreeResolver struct {
	resolver *resolver.Resolver
	tree     *tree.Tree
}

// New builds a TreeResolver over t, composing resources through r.
func New(r *resolver.Resolver, t *tree.Tree) *TreeResolver {
	return &TreeResolver{resolver: r, tree: t}
}

// Resolve walks the whole tree from its root, returning the composed mirror
// tree. If opts.OnResourceError is ResourceErrorFail (the default) and any
// resource failed to compose, Resolve returns a nil tree and an aggregated
// error describing every failure found, each annotated with its resource's
// dotted path.
func (tr *TreeResolver) Resolve(opts Options) (*ResolvedNode, error) {
	var problems []error
	root := tr.walk(tr.tree.Root(), opts, &problems)
	if len(problems) > 0 {
		msgs := make([]string, len(problems))
		for i, p := range problems {
			msgs[i] = p.Error()
		}
		return nil, errors.Errorf("treeresolve[%s]: %d resource(s) failed to compose:\n  - %s", tr.resolver.CorrelationID(), len(problems), strings.Join(msgs, "\n  - "))
	}
	return root, nil
}

func (tr *TreeResolver) walk(node *tree.Node, opts Options, problems *[]error) *ResolvedNode {
	out := &ResolvedNode{Name: node.Name, Path: node.Path}

	if node.Leaf.HasResource {
		value, found, err := tr.resolver.ResolveComposed(node.Leaf.Index)
		if err != nil {
			switch opts.OnResourceError {
			case ResourceErrorSkip:
				// treat as not found, keep walking
			default:
				*problems = append(*problems, errors.Wrapf(err, "resource %q", node.Path))
			}
		} else {
			out.HasValue = found
			out.Value = value
		}
	}

	for _, child := range node.Children() {
		resolved := tr.walk(child, opts, problems)
		if resolved == nil {
			continue
		}
		out.Children = append(out.Children, resolved)
	}

	if !out.HasValue && len(out.Children) == 0 && opts.OnEmptyBranch == EmptyBranchOmit {
		if out.Path == "" {
			return out // never omit the synthetic root itself
		}
		return nil
	}
	return out
}

// Lookup finds the resolved node at an exact dotted path within a result
// tree, returning false if the path isn't present (it may have been omitted
// as an empty branch, or never existed).
func (n *ResolvedNode) Lookup(path string) (*ResolvedNode, bool) {
	if path == "" || path == n.Path {
		return n, true
	}
	rel := path
	if n.Path != "" {
		if !strings.HasPrefix(path, n.Path+".") {
			return nil, false
		}
		rel = strings.TrimPrefix(path, n.Path+".")
	}
	segments := strings.SplitN(rel, ".", 2)
	for _, child := range n.Children {
		if child.Name == segments[0] {
			if len(segments) == 1 {
				return child, true
			}
			return child.Lookup(path)
		}
	}
	return nil, false
}
