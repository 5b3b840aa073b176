// Package resctxruntime is the top-level convenience façade over the
// runtime's building blocks (pkg/bundle, pkg/loader, pkg/resctx,
// pkg/resolver, pkg/treeresolve): load a bundle, build a context, resolve a
// resource, in one import. Adapted from the teacher's root-level tsres.go,
// which played the same role over its own bundle/runtime/types packages.
package resctxruntime

import (
	"github.com/resctx/resctx-runtime/pkg/arena"
	"github.com/resctx/resctx-runtime/pkg/bundle"
	"github.com/resctx/resctx-runtime/pkg/cachelistener"
	"github.com/resctx/resctx-runtime/pkg/loader"
	"github.com/resctx/resctx-runtime/pkg/resctx"
	"github.com/resctx/resctx-runtime/pkg/resolver"
	"github.com/resctx/resctx-runtime/pkg/treeresolve"
)

// Type aliases so callers can work entirely through this package without
// reaching into the subpackages directly.
type (
	Bundle        = bundle.Bundle
	LoaderOptions = bundle.LoaderOptions
	Arena         = arena.Arena
	Context       = resctx.Context
	Resolver      = resolver.Resolver
	ResolverOpts  = resolver.Options
	TreeResolver  = treeresolve.TreeResolver
	ResolvedNode  = treeresolve.ResolvedNode
)

// DefaultLoaderOptions returns the default bundle loader options (checksum
// verification on, CRC32).
func DefaultLoaderOptions() LoaderOptions {
	return bundle.DefaultLoaderOptions()
}

// LoadBundle loads and verifies a bundle from a JSON file, then builds the
// arena it describes.
func LoadBundle(path string, opts ...LoaderOptions) (*Arena, error) {
	return bundle.Load(path, opts...)
}

// LoadBundleFromBytes loads and verifies a bundle from an in-memory byte
// slice, returning the raw Bundle (not yet fed through pkg/loader) so
// callers can inspect its metadata before building an arena from it.
func LoadBundleFromBytes(data []byte, opts ...LoaderOptions) (*Bundle, error) {
	return bundle.LoadFromBytes(data, opts...)
}

// ValidateBundle performs structural sanity checks on a loaded bundle.
func ValidateBundle(b *Bundle) error {
	return bundle.Validate(b)
}

// BuildArena feeds an already-loaded bundle's collection through pkg/loader,
// for callers that obtained a Bundle via LoadBundleFromBytes rather than
// LoadBundle (which does this in one step from a file path).
func BuildArena(b *Bundle) (*Arena, error) {
	return loader.Load(b.Collection)
}

// NewContext builds a resolution context from qualifier name/value pairs,
// validated against a's qualifier types.
func NewContext(a *Arena, values map[string]string) (*Context, error) {
	return resctx.New(a, values)
}

// NewResolver builds a Resolver over a with the given context and options.
func NewResolver(a *Arena, ctx *Context, opts ResolverOpts) *Resolver {
	return resolver.New(a, ctx, opts)
}

// NewTreeResolver builds a TreeResolver that walks a's resource tree,
// composing each resource's value with res.
func NewTreeResolver(res *Resolver, a *Arena) *TreeResolver {
	return treeresolve.New(res, a.Tree())
}

// NewCounters returns a cachelistener.Listener that tracks cache hit/miss/
// error counts in memory, suitable for passing as ResolverOpts.Listener.
func NewCounters() *cachelistener.Counters {
	return cachelistener.NewCounters()
}
