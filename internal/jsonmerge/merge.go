// Package jsonmerge implements the partial-merge composition primitive used
// to combine a resource's selected candidates into one composed value (spec
// §4.4.7). The default merge (null deletes a key) is RFC 7396 JSON Merge
// Patch, delegated to evanphx/json-patch/v5's MergePatch — the same library
// Azure-eno uses for its own patch application. The
// suppress-null-as-delete variant RFC 7396 cannot express (it always
// deletes on null) is a small hand-rolled recursive merge instead; see
// mergePreserveNull.
package jsonmerge

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// Options controls composition behavior.
type Options struct {
	// SuppressNullAsDelete, if true, treats an explicit null in a partial
	// candidate as a literal value to merge in rather than a signal to
	// delete the key (spec §9 first open question; default false matches
	// RFC 7396).
	SuppressNullAsDelete bool
}

// CompositionError reports a structural problem combining two candidate
// values — augmenting requires both sides to be JSON objects.
type CompositionError struct {
	Reason string
}

func (e *CompositionError) Error() string { return "jsonmerge: " + e.Reason }

// Augment merges patch onto base following the partial-merge semantics
// described above. Both base and patch must be JSON objects
// (map[string]any); augmenting a scalar or array, or augmenting with a
// scalar or array patch, is a CompositionError — those cases belong to the
// "replace" merge method instead (spec §4.4.7: only objects compose,
// everything else replaces wholesale).
func Augment(base, patch any, opts Options) (any, error) {
	baseObj, ok := base.(map[string]any)
	if !ok {
		return nil, &CompositionError{Reason: fmt.Sprintf("cannot augment onto a non-object base value (%T)", base)}
	}
	patchObj, ok := patch.(map[string]any)
	if !ok {
		return nil, &CompositionError{Reason: fmt.Sprintf("cannot augment with a non-object partial value (%T)", patch)}
	}

	if opts.SuppressNullAsDelete {
		return mergePreserveNull(baseObj, patchObj), nil
	}
	return mergeRFC7396(baseObj, patchObj)
}

func mergeRFC7396(base, patch map[string]any) (any, error) {
	baseJSON, err := json.Marshal(base)
	if err != nil {
		return nil, fmt.Errorf("jsonmerge: marshaling base: %w", err)
	}
	patchJSON, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("jsonmerge: marshaling patch: %w", err)
	}
	merged, err := jsonpatch.MergePatch(baseJSON, patchJSON)
	if err != nil {
		return nil, fmt.Errorf("jsonmerge: applying merge patch: %w", err)
	}
	var out any
	if err := json.Unmarshal(merged, &out); err != nil {
		return nil, fmt.Errorf("jsonmerge: decoding merged value: %w", err)
	}
	return out, nil
}

// mergePreserveNull deep-merges patch onto base like RFC 7396 except that an
// explicit null in patch overwrites the key with null instead of deleting
// it. Nested objects recurse; any other value (including arrays) in patch
// replaces the corresponding base value wholesale.
func mergePreserveNull(base, patch map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(patch))
	for k, v := range base {
		out[k] = v
	}
	for k, pv := range patch {
		if pv == nil {
			out[k] = nil
			continue
		}
		pObj, pIsObj := pv.(map[string]any)
		bObj, bIsObj := out[k].(map[string]any)
		if pIsObj && bIsObj {
			out[k] = mergePreserveNull(bObj, pObj)
			continue
		}
		out[k] = pv
	}
	return out
}
