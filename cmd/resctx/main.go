// Command resctx loads a compiled resource collection and resolves one
// resource, or the whole resource tree, against a context supplied on the
// command line. It is the runtime's reference CLI, replacing the teacher's
// cmd/example and cmd/language-demo with one tool that exercises the full
// engine (loader, resolver, tree resolver) end to end.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/resctx/resctx-runtime/internal/telemetry"
	"github.com/resctx/resctx-runtime/pkg/cachelistener"
	"github.com/resctx/resctx-runtime/pkg/loader"
	"github.com/resctx/resctx-runtime/pkg/resctx"
	"github.com/resctx/resctx-runtime/pkg/resolver"
	"github.com/resctx/resctx-runtime/pkg/treeresolve"
	"github.com/resctx/resctx-runtime/pkg/wire"
)

func main() {
	collectionPath := flag.String("collection", "", "path to a compiled resource collection JSON file")
	contextFlag := flag.String("context", "", "comma-separated qualifier=value pairs, e.g. env=prod,territory=US")
	resourceID := flag.String("resource", "", "dotted id of a single resource to resolve")
	walkTree := flag.Bool("tree", false, "resolve the whole resource tree instead of one resource")
	suppressNullAsDelete := flag.Bool("suppress-null-as-delete", false, "preserve explicit null in partial candidates instead of treating it as delete")
	verbose := flag.Bool("verbose", false, "enable debug-level development logging")
	printMetrics := flag.Bool("metrics", false, "print cache hit/miss counters to stderr after resolving")
	flag.Parse()

	log, err := telemetry.NewLogger(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "resctx: building logger:", err)
		os.Exit(1)
	}

	if *collectionPath == "" {
		log.Error(nil, "missing required flag", "flag", "-collection")
		flag.Usage()
		os.Exit(2)
	}

	raw, err := os.ReadFile(*collectionPath)
	if err != nil {
		log.Error(err, "reading collection file", "path", *collectionPath)
		os.Exit(1)
	}

	var col wire.Collection
	if err := json.Unmarshal(raw, &col); err != nil {
		log.Error(err, "decoding collection JSON", "path", *collectionPath)
		os.Exit(1)
	}

	a, err := loader.Load(col)
	if err != nil {
		log.Error(err, "loading collection")
		os.Exit(1)
	}
	log.V(1).Info("loaded collection", "resources", a.NumResources(), "qualifiers", a.NumQualifiers())

	ctxValues, err := parseContext(*contextFlag)
	if err != nil {
		log.Error(err, "parsing -context")
		os.Exit(2)
	}
	ctx, err := resctx.New(a, ctxValues)
	if err != nil {
		log.Error(err, "building context")
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	counters := cachelistener.NewCounters()
	listener := cachelistener.Multi(counters, cachelistener.NewPrometheusListener(reg))

	res := resolver.New(a, ctx, resolver.Options{
		SuppressNullAsDelete: *suppressNullAsDelete,
		Listener:             listener,
	})
	log = log.WithValues("correlationID", res.CorrelationID())

	var output any
	if *walkTree {
		tr := treeresolve.New(res, a.Tree())
		root, err := tr.Resolve(treeresolve.Options{})
		if err != nil {
			log.Error(err, "resolving tree")
			os.Exit(1)
		}
		output = root
	} else {
		if *resourceID == "" {
			log.Error(nil, "missing required flag", "flag", "-resource (or pass -tree)")
			os.Exit(2)
		}
		value, found, err := res.ResolveResource(*resourceID)
		if err != nil {
			log.Error(err, "resolving resource", "id", *resourceID)
			os.Exit(1)
		}
		if !found {
			log.Info("resource did not resolve to a value", "id", *resourceID)
			output = nil
		} else {
			output = value
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		log.Error(err, "encoding result")
		os.Exit(1)
	}

	if *printMetrics {
		snap := counters.Snapshot()
		fmt.Fprintf(os.Stderr, "cache hits=%v misses=%v errors=%v clears=%d\n", snap.Hits, snap.Misses, snap.Errors, snap.Clears)
	}
}

func parseContext(s string) (map[string]string, error) {
	values := map[string]string{}
	if s == "" {
		return values, nil
	}
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid context pair %q, expected qualifier=value", pair)
		}
		values[kv[0]] = kv[1]
	}
	return values, nil
}
