package models

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewID creates a record ID in prefix-xxxxxxxxxxxx format (12-char hex).
// Prefixes are usr, prj, mdl, exc, fil.
func NewID(prefix string) (string, error) {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("models: generate ID: %w", err)
	}
	return prefix + "-" + hex.EncodeToString(b), nil
}
