package fingerprint

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/myschema/myschema/ir"
)

// SchemaFingerprint represents a fingerprint of the tables a plan was rendered against
type SchemaFingerprint struct {
	Hash string `json:"hash"` // SHA256 of the inspected tables
}

// ComputeFingerprint generates a fingerprint for tables inspected per schema.
// json.Marshal sorts map keys, so the hash does not depend on inspection order.
func ComputeFingerprint(tables map[string]map[string]*ir.InspectedTable) (*SchemaFingerprint, error) {
	hash, err := hashObject(tables)
	if err != nil {
		return nil, fmt.Errorf("failed to compute schema hash: %w", err)
	}

	return &SchemaFingerprint{
		Hash: hash,
	}, nil
}

// hashObject computes a SHA256 hash of any object
func hashObject(obj any) (string, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash), nil
}

// String returns a human-readable representation of the fingerprint
func (f *SchemaFingerprint) String() string {
	if len(f.Hash) >= 8 {
		return fmt.Sprintf("Schema fingerprint: %s", f.Hash[:8])
	}
	return fmt.Sprintf("Schema fingerprint: %s", f.Hash)
}
