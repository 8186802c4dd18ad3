package campaign

// automap.go implements the header auto-detection heuristic that seeds the
// field-mapping UI. It is deliberately greedy and order-sensitive: the
// result is a best-effort proposal for human review, and the pipeline
// accepts a fully overridden mapping.

import "strings"

// AutoMap proposes a field mapping for the given raw CSV headers.
//
// For each canonical field, in enumeration order, it first looks for a
// header whose normalized form (lowercase, stripped of everything outside
// [a-z0-9]) exactly equals the field's normalized name. Failing that, it
// falls back to a keyword match: the field name's space-separated tokens
// must all appear as substrings of the normalized header. The first header
// in rawHeaders order wins, and a header may back more than one field.
//
// The second return value is the number of fields that received a mapping.
func AutoMap(rawHeaders []string) (FieldMapping, int) {
	normalized := make([]string, len(rawHeaders))
	for i, h := range rawHeaders {
		normalized[i] = normalizeHeader(h)
	}

	mapping := make(FieldMapping, len(MappableFields))
	for _, field := range MappableFields {
		if header, ok := matchHeader(field, rawHeaders, normalized); ok {
			mapping[field] = header
		}
	}
	return mapping, len(mapping)
}

// matchHeader finds the first header matching the canonical field, trying a
// direct normalized match before the keyword fallback.
func matchHeader(field Field, rawHeaders, normalized []string) (string, bool) {
	want := normalizeHeader(string(field))
	for i, n := range normalized {
		if n == want {
			return rawHeaders[i], true
		}
	}

	keywords := strings.Fields(strings.ToLower(string(field)))
	for i, n := range normalized {
		if containsAll(n, keywords) {
			return rawHeaders[i], true
		}
	}
	return "", false
}

// containsAll reports whether every keyword appears as a substring of the
// normalized header. Order-independent, not anchored.
func containsAll(header string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(header, normalizeHeader(kw)) {
			return false
		}
	}
	return true
}

// normalizeHeader lowercases s and strips every character outside [a-z0-9],
// so "Email_Address", "email address", and "EmailAddress" all compare equal.
func normalizeHeader(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
