package service

import (
	"encoding/json"
	"strconv"
	"strings"
)

// OwnerRefKind tags the four shapes an owner reference can take in a request.
type OwnerRefKind int

const (
	// OwnerRefAbsent means the field was not sent: preserve the existing link.
	OwnerRefAbsent OwnerRefKind = iota
	// OwnerRefClear means an explicit null/empty was sent: remove the link.
	OwnerRefClear
	// OwnerRefByID references the owner by numeric user id.
	OwnerRefByID
	// OwnerRefByDocumentID references the owner by its stable identifier and
	// still needs resolving against the user table.
	OwnerRefByDocumentID
)

// OwnerRef is the normalized owner reference. Callers branch on Kind only,
// never on the raw request shape.
type OwnerRef struct {
	Kind       OwnerRefKind
	UserID     uint
	DocumentID string
}

// NormalizeOwnerRef reduces every accepted owner payload shape to an OwnerRef.
// Accepted shapes: a number, a numeric string, a document-id string, null, and
// nested wrappers ({"connect": ...}, {"set": ...}, {"id": ...},
// {"documentId": ...}) carrying any of the previous, possibly inside a
// one-element array.
func NormalizeOwnerRef(raw json.RawMessage) OwnerRef {
	if raw == nil {
		return OwnerRef{Kind: OwnerRefAbsent}
	}

	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return OwnerRef{Kind: OwnerRefClear}
	}
	return normalizeOwnerValue(value)
}

func normalizeOwnerValue(value interface{}) OwnerRef {
	switch v := value.(type) {
	case nil:
		return OwnerRef{Kind: OwnerRefClear}

	case float64:
		if v <= 0 {
			return OwnerRef{Kind: OwnerRefClear}
		}
		return OwnerRef{Kind: OwnerRefByID, UserID: uint(v)}

	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return OwnerRef{Kind: OwnerRefClear}
		}
		if id, err := strconv.ParseUint(trimmed, 10, 64); err == nil {
			return OwnerRef{Kind: OwnerRefByID, UserID: uint(id)}
		}
		return OwnerRef{Kind: OwnerRefByDocumentID, DocumentID: trimmed}

	case []interface{}:
		// "connect"/"set" wrappers may carry a one-element array.
		if len(v) == 0 {
			return OwnerRef{Kind: OwnerRefClear}
		}
		return normalizeOwnerValue(v[0])

	case map[string]interface{}:
		for _, key := range []string{"connect", "set"} {
			if inner, ok := v[key]; ok {
				return normalizeOwnerValue(inner)
			}
		}
		if id, ok := v["id"]; ok {
			return normalizeOwnerValue(id)
		}
		for _, key := range []string{"documentId", "document_id"} {
			if doc, ok := v[key]; ok {
				return normalizeOwnerValue(doc)
			}
		}
		return OwnerRef{Kind: OwnerRefClear}

	default:
		return OwnerRef{Kind: OwnerRefClear}
	}
}
