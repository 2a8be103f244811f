// Package cache implements the two-tier cache (spec §4.9): an
// in-process LRU L1 with per-namespace bounds and TTLs, and an optional
// Redis-backed L2 that L1 promotes from on read and writes through to.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"sort"
)

// Namespace identifies one of the three cache key families (spec §4.9).
type Namespace string

const (
	NamespaceIntent Namespace = "intent"
	NamespacePart   Namespace = "parts"
	NamespaceSearch Namespace = "search"
)

// hashKey MD5-hashes s and truncates to 16 hex characters (spec §4.9).
func hashKey(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])[:16]
}

// IntentKey builds the cache key for a normalized query's parsed intent.
func IntentKey(normalizedQuery string) string {
	return "intent:" + hashKey(normalizedQuery)
}

// PartKey builds the cache key for an exact-part-number lookup. The
// normalized part number is embedded verbatim (uppercase alphanumeric),
// not hashed, to keep the key human-diagnosable (spec §4.9 example).
func PartKey(normalizedPartNumber string) string {
	return "parts:" + normalizedPartNumber
}

// SearchKey builds the cache key for a full response, folding in page,
// limit, and a canonical encoding of the intent subset and filters that
// influenced retrieval (spec §4.9, §4.10).
func SearchKey(intentSubset map[string]any, filters map[string]any, page, limit int) string {
	canonical := canonicalJSON(map[string]any{
		"intent":  intentSubset,
		"filters": filters,
		"page":    page,
		"limit":   limit,
	})
	return "search:" + hashKey(canonical)
}

// canonicalJSON renders v with sorted map keys so the encoding does not
// depend on map iteration or struct field order (spec §9: a port must
// define a canonical encoding, unlike the source's JSON.stringify).
func canonicalJSON(v any) string {
	b, _ := json.Marshal(sortedKeys(v))
	return string(b)
}

// sortedKeys recursively converts maps into ordered slices of key/value
// pairs so json.Marshal produces a stable byte sequence regardless of
// the input map's iteration order.
func sortedKeys(v any) any {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]kv, 0, len(keys))
		for _, k := range keys {
			out = append(out, kv{K: k, V: sortedKeys(val[k])})
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = sortedKeys(e)
		}
		return out
	default:
		return val
	}
}

type kv struct {
	K string `json:"k"`
	V any    `json:"v"`
}
