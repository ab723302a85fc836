package service

import (
	"encoding/json"
	"fmt"
)

// serverFields are assigned by the service, never by the caller. They are
// stripped before a stored document is re-validated against a closed schema.
var serverFields = []string{"id", "created_at", "updated_at"}

func decodeDocument(doc map[string]any, out any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}

func documentFromModel(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode model: %w", err)
	}
	doc := map[string]any{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	for _, field := range serverFields {
		delete(doc, field)
	}
	return doc, nil
}

func mergeDocuments(base map[string]any, patch map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(patch))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	return merged
}
