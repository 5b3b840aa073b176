package bundle

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"github.com/resctx/resctx-runtime/pkg/arena"
	"github.com/resctx/resctx-runtime/pkg/loader"
)

// LoaderOptions configures bundle loading behavior.
type LoaderOptions struct {
	SkipChecksumVerification bool
	UseSHA256                bool // if false, uses CRC32 for a smaller, faster checksum
}

// DefaultLoaderOptions returns sensible defaults for bundle loading.
func DefaultLoaderOptions() LoaderOptions {
	return LoaderOptions{
		SkipChecksumVerification: false,
		UseSHA256:                false,
	}
}

// LoadFromFile loads a bundle from a JSON file.
func LoadFromFile(path string, opts ...LoaderOptions) (*Bundle, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bundle: opening file: %w", err)
	}
	defer file.Close()
	return LoadFromReader(file, opts...)
}

// LoadFromReader loads a bundle from a reader.
func LoadFromReader(r io.Reader, opts ...LoaderOptions) (*Bundle, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("bundle: reading data: %w", err)
	}
	return LoadFromBytes(data, opts...)
}

// LoadFromBytes loads a bundle from byte data, verifying its checksum
// unless opts disables that.
func LoadFromBytes(data []byte, opts ...LoaderOptions) (*Bundle, error) {
	options := DefaultLoaderOptions()
	if len(opts) > 0 {
		options = opts[0]
	}

	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("bundle: parsing JSON: %w", err)
	}

	if !options.SkipChecksumVerification {
		if err := verifyIntegrity(&b, options.UseSHA256); err != nil {
			return nil, fmt.Errorf("bundle: integrity check failed: %w", err)
		}
	}

	return &b, nil
}

// Load loads and verifies a bundle from path, then feeds its collection
// through pkg/loader to produce a ready-to-use arena in one step.
func Load(path string, opts ...LoaderOptions) (*arena.Arena, error) {
	b, err := LoadFromFile(path, opts...)
	if err != nil {
		return nil, err
	}
	return loader.Load(b.Collection)
}

func verifyIntegrity(b *Bundle, useSHA256 bool) error {
	collectionData, err := json.Marshal(b.Collection)
	if err != nil {
		return fmt.Errorf("serializing collection for verification: %w", err)
	}

	var calculated string
	if useSHA256 {
		sum := sha256.Sum256(collectionData)
		calculated = hex.EncodeToString(sum[:])
	} else {
		calculated = fmt.Sprintf("%08x", crc32.ChecksumIEEE(collectionData))
	}

	if calculated != b.Metadata.Checksum {
		return fmt.Errorf("checksum mismatch: bundle declares %s, computed %s", b.Metadata.Checksum, calculated)
	}
	return nil
}

// Checksum computes the checksum a Bundle's metadata should declare for a
// given collection, so a bundle-writing tool and this loader always agree
// on the algorithm.
func Checksum(col any, useSHA256 bool) (string, error) {
	data, err := json.Marshal(col)
	if err != nil {
		return "", fmt.Errorf("bundle: serializing collection: %w", err)
	}
	if useSHA256 {
		sum := sha256.Sum256(data)
		return hex.EncodeToString(sum[:]), nil
	}
	return fmt.Sprintf("%08x", crc32.ChecksumIEEE(data)), nil
}

// Validate performs structural sanity checks on a bundle beyond what
// pkg/loader itself validates — that it has both the metadata and content a
// real distributed bundle needs, catching an empty or half-written bundle
// before it reaches the (slower, more detailed) loader validation.
func Validate(b *Bundle) error {
	if b == nil {
		return fmt.Errorf("bundle: nil bundle")
	}
	if b.Metadata.Checksum == "" {
		return fmt.Errorf("bundle: metadata missing checksum")
	}
	if len(b.Collection.Resources) == 0 {
		return fmt.Errorf("bundle: collection contains no resources")
	}
	return nil
}
