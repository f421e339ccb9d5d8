package imports

import (
	"fmt"
	"strings"
	"unicode"

	domain "github.com/mohammadpnp/debt-import/internal/domain/collection"
)

// FieldMapping maps a file header to the canonical field it feeds.
type FieldMapping map[string]CanonicalField

// NormalizeHeader lowercases a header and folds every run of
// non-alphanumeric characters into a single underscore.
func NormalizeHeader(header string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(header)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}

// AutoMap assigns headers to canonical fields. Fields are visited in
// priority order and each takes the first unclaimed header matching one of
// its patterns, so no field and no header is ever used twice.
func AutoMap(kind domain.ImportKind, headers []string) FieldMapping {
	mapping := make(FieldMapping)

	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = NormalizeHeader(h)
	}

	claimed := make([]bool, len(headers))
	for _, spec := range Fields(kind) {
		for i, col := range normalized {
			if claimed[i] || col == "" {
				continue
			}
			if _, taken := mapping[headers[i]]; taken {
				continue
			}
			if matchesField(spec, col) {
				mapping[headers[i]] = spec.Field
				claimed[i] = true
				break
			}
		}
	}

	return mapping
}

func matchesField(spec FieldSpec, col string) bool {
	for _, exact := range spec.Exact {
		if col == exact {
			return true
		}
	}
	for _, pattern := range spec.Patterns {
		if strings.Contains(col, pattern) {
			return true
		}
	}
	return false
}

// ParseFieldMapping converts a user supplied header -> field mapping and
// rejects unknown fields and fields claimed by more than one header.
// Headers mapped to "" are left unmapped.
func ParseFieldMapping(kind domain.ImportKind, raw map[string]string) (FieldMapping, error) {
	mapping := make(FieldMapping, len(raw))
	owner := make(map[CanonicalField]string, len(raw))

	for header, value := range raw {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		field := CanonicalField(value)
		if _, ok := lookupField(kind, field); !ok {
			return nil, fmt.Errorf("%w: unknown field %q for %s import", ErrInvalidMapping, value, kind)
		}
		if prev, dup := owner[field]; dup {
			return nil, fmt.Errorf("%w: field %q mapped by both %q and %q", ErrInvalidMapping, value, prev, header)
		}
		owner[field] = header
		mapping[header] = field
	}

	return mapping, nil
}

// Strings is the inverse of ParseFieldMapping.
func (m FieldMapping) Strings() map[string]string {
	out := make(map[string]string, len(m))
	for header, field := range m {
		out[header] = string(field)
	}
	return out
}
