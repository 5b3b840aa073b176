package loader

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/resctx/resctx-runtime/pkg/qualtypes"
	"github.com/resctx/resctx-runtime/pkg/wire"
)

// buildQualifierType constructs the concrete qualtypes.QualifierType strategy
// named by w.Name, configured from w.Config. Only the four qualifier type
// families the runtime ships are recognized here; a collection naming
// anything else fails to load (spec §9: operators and qualifier types are a
// closed set validated at load time, not discovered mid-resolution).
func buildQualifierType(w wire.QualifierType) (qualtypes.QualifierType, error) {
	switch w.Name {
	case "literal":
		var cfg qualtypes.LiteralConfig
		if err := decodeConfig(w.Config, &cfg); err != nil {
			return nil, fmt.Errorf("qualifier type %q: %w", w.Name, err)
		}
		return qualtypes.NewLiteralType(cfg)
	case "territory":
		var cfg qualtypes.TerritoryConfig
		if err := decodeConfig(w.Config, &cfg); err != nil {
			return nil, fmt.Errorf("qualifier type %q: %w", w.Name, err)
		}
		return qualtypes.NewTerritoryType(cfg)
	case "language":
		var cfg qualtypes.LanguageConfig
		if err := decodeConfig(w.Config, &cfg); err != nil {
			return nil, fmt.Errorf("qualifier type %q: %w", w.Name, err)
		}
		return qualtypes.NewLanguageType(cfg), nil
	case "expr":
		name := "expr"
		return qualtypes.NewExprType(name)
	default:
		return nil, fmt.Errorf("qualifier type %q: unknown qualifier type (expected one of literal, territory, language, expr)", w.Name)
	}
}

func decodeConfig(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	return nil
}
