package models

import "fmt"

// Document is one record as it travels across the store boundary. The store
// deals only in Documents; typed models are decoded from them here, in one
// place, so legacy field shapes are normalized on the way in and never leak
// into the services.
type Document map[string]interface{}

// DocString extracts a string field, returning "" when absent or mistyped.
func DocString(doc Document, field string) string {
	if v, ok := doc[field].(string); ok {
		return v
	}
	return ""
}

// DocBool extracts a bool field, returning false when absent or mistyped.
func DocBool(doc Document, field string) bool {
	if v, ok := doc[field].(bool); ok {
		return v
	}
	return false
}

// DocInt64 extracts an integer field. Documents round-tripped through JSON
// carry numbers as float64, attributevalue may yield int64 or float64.
func DocInt64(doc Document, field string) int64 {
	switch v := doc[field].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

// DocStringList extracts a list-of-strings field. Older admin-form iterations
// wrote some of these fields as a bare string instead of a list, so a scalar
// is accepted and promoted to a one-element list. Anything else is an error:
// the shape of a legacy record is validated here, never trusted.
func DocStringList(doc Document, field string) ([]string, error) {
	raw, ok := doc[field]
	if !ok || raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case string:
		if v == "" {
			return nil, nil
		}
		return []string{v}, nil
	case []string:
		return v, nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("field %q: list element is %T, want string", field, e)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("field %q: unsupported shape %T", field, raw)
}

// DocStringMap extracts a map-of-strings field (e.g. relationships{uid:label}).
func DocStringMap(doc Document, field string) map[string]string {
	out := map[string]string{}
	switch v := doc[field].(type) {
	case map[string]string:
		for k, s := range v {
			out[k] = s
		}
	case map[string]interface{}:
		for k, e := range v {
			if s, ok := e.(string); ok {
				out[k] = s
			}
		}
	}
	return out
}
