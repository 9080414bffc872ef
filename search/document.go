// Copyright (c) Microsoft. All rights reserved.

package search

import "fmt"

// Document is one search hit: the selected fields plus @search annotations.
type Document map[string]any

// Score returns the relevance score.
func (d Document) Score() float64 {
	s, _ := d["@search.score"].(float64)
	return s
}

// String returns a field as text. Non-string values are formatted.
func (d Document) String(field string) string {
	switch v := d[field].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Strings returns a collection field. A missing or null field yields nil.
func (d Document) Strings(field string) []string {
	switch v := d[field].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			} else if e != nil {
				out = append(out, fmt.Sprint(e))
			}
		}
		return out
	case string:
		return []string{v}
	}
	return nil
}
