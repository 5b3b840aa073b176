// Package bundle implements the external bundle format (spec §6): a
// checksum-protected envelope around a compiled collection (pkg/wire),
// suitable for distributing a built resource set as a single file. Adapted
// from the teacher's pkg/bundle/loader.go and pkg/types/types.go, retargeted
// from the teacher's string-keyed CompiledResourceCollection onto this
// runtime's index-based wire.Collection.
package bundle

import (
	"encoding/json"
	"time"

	"github.com/resctx/resctx-runtime/pkg/wire"
)

// Metadata describes how and when a bundle was built.
type Metadata struct {
	DateBuilt   time.Time `json:"dateBuilt"`
	Checksum    string    `json:"checksum"`
	Version     *string   `json:"version,omitempty"`
	Description *string   `json:"description,omitempty"`
}

// MarshalJSON renders DateBuilt as RFC 3339, matching what a non-Go bundle
// producer (or consumer) would expect from a JSON timestamp field.
func (m Metadata) MarshalJSON() ([]byte, error) {
	type alias Metadata
	return json.Marshal(&struct {
		DateBuilt string `json:"dateBuilt"`
		alias
	}{
		DateBuilt: m.DateBuilt.Format(time.RFC3339),
		alias:     alias(m),
	})
}

// UnmarshalJSON parses DateBuilt from RFC 3339.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	type alias Metadata
	aux := &struct {
		DateBuilt string `json:"dateBuilt"`
		*alias
	}{alias: (*alias)(m)}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	t, err := time.Parse(time.RFC3339, aux.DateBuilt)
	if err != nil {
		return err
	}
	m.DateBuilt = t
	return nil
}

// ExportMetadata is optional provenance recorded when a bundle was exported
// from a running system rather than built directly (e.g. a snapshot taken
// for debugging, filtered to a particular context).
type ExportMetadata struct {
	ExportedAt    time.Time      `json:"exportedAt"`
	ExportedFrom  string         `json:"exportedFrom"`
	Type          string         `json:"type"`
	FilterContext map[string]any `json:"filterContext,omitempty"`
}

// Bundle is a compiled collection plus the metadata needed to verify its
// integrity before loading it.
type Bundle struct {
	Metadata       Metadata        `json:"metadata"`
	Collection     wire.Collection `json:"collection"`
	ExportMetadata *ExportMetadata `json:"exportMetadata,omitempty"`
}
