package models

import (
	"encoding/json"
	"fmt"
)

// Document is a free-form JSON object held in a json text column
// (Project.Metadata, Model.Config, Model.Performance).
type Document map[string]interface{}

// EmptyDocument is the stored form of a document with no keys. Document
// columns hold this rather than NULL.
const EmptyDocument = "{}"

// MarshalDocument encodes a document for storage. Nil and empty
// documents encode as "{}".
func MarshalDocument(d Document) (string, error) {
	if len(d) == 0 {
		return EmptyDocument, nil
	}
	data, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("models: marshal document: %w", err)
	}
	return string(data), nil
}

// UnmarshalDocument decodes a stored document column. Empty input decodes
// as an empty document.
func UnmarshalDocument(s string) (Document, error) {
	if s == "" || s == EmptyDocument {
		return Document{}, nil
	}
	var d Document
	if err := json.Unmarshal([]byte(s), &d); err != nil {
		return nil, fmt.Errorf("models: unmarshal document: %w", err)
	}
	return d, nil
}
