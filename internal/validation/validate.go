package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrorSource is one (field path, message) violation. Paths into list
// elements use index notation, e.g. "results[2].marks".
type ErrorSource struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Validate checks a create payload against a descriptor. Every required
// field must be present; server-managed fields must be absent. All
// violations are collected in field declaration order, never just the first.
func Validate(d Descriptor, payload map[string]any) []ErrorSource {
	return validate(d, payload, "", false)
}

// ValidatePartial checks an update payload. Any subset of fields may be
// supplied; every supplied field still obeys its declared rules.
func ValidatePartial(d Descriptor, payload map[string]any) []ErrorSource {
	return validate(d, payload, "", true)
}

func validate(d Descriptor, payload map[string]any, prefix string, partial bool) []ErrorSource {
	var sources []ErrorSource

	declared := make(map[string]bool, len(d.Fields))
	for _, f := range d.Fields {
		declared[f.Name] = true
	}

	for _, f := range d.Fields {
		path := f.Name
		if prefix != "" {
			path = prefix + "." + f.Name
		}

		value, present := payload[f.Name]

		if f.ServerManaged {
			if present {
				sources = append(sources, ErrorSource{path, "is managed by the server and cannot be set"})
			}
			continue
		}

		if !present {
			if f.Required && !partial {
				sources = append(sources, ErrorSource{path, "is required"})
			}
			continue
		}

		sources = append(sources, checkField(f, path, value)...)
	}

	// Unknown keys close the shape. Sorted for a stable violation order.
	var unknown []string
	for key := range payload {
		if !declared[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		sources = append(sources, ErrorSource{path, "is not a recognized field"})
	}

	return sources
}

func checkField(f Field, path string, value any) []ErrorSource {
	switch f.Kind {
	case KindString:
		s, ok := value.(string)
		if !ok {
			return []ErrorSource{{path, "must be a string"}}
		}
		if f.Required && strings.TrimSpace(s) == "" {
			return []ErrorSource{{path, "must not be empty"}}
		}
		if len(f.Enum) > 0 && !contains(f.Enum, s) {
			return []ErrorSource{{path, fmt.Sprintf("must be one of: %s", strings.Join(f.Enum, ", "))}}
		}

	case KindUUID:
		s, ok := value.(string)
		if !ok {
			return []ErrorSource{{path, "must be a string identifier"}}
		}
		if _, err := uuid.Parse(s); err != nil {
			return []ErrorSource{{path, "must be a valid identifier"}}
		}

	case KindInt:
		n, ok := asNumber(value)
		if !ok || n != math.Trunc(n) {
			return []ErrorSource{{path, "must be an integer"}}
		}
		return checkBounds(f, path, n)

	case KindFloat:
		n, ok := asNumber(value)
		if !ok {
			return []ErrorSource{{path, "must be a number"}}
		}
		return checkBounds(f, path, n)

	case KindBool:
		if _, ok := value.(bool); !ok {
			return []ErrorSource{{path, "must be a boolean"}}
		}

	case KindDate:
		s, ok := value.(string)
		if !ok {
			return []ErrorSource{{path, "must be a date string"}}
		}
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return []ErrorSource{{path, "must be a date in YYYY-MM-DD form"}}
		}

	case KindList:
		items, ok := value.([]any)
		if !ok {
			return []ErrorSource{{path, "must be a list"}}
		}
		if len(items) < f.MinLen {
			return []ErrorSource{{path, "must not be empty"}}
		}
		var sources []ErrorSource
		for i, item := range items {
			elemPath := fmt.Sprintf("%s[%d]", path, i)
			obj, ok := item.(map[string]any)
			if !ok {
				sources = append(sources, ErrorSource{elemPath, "must be an object"})
				continue
			}
			if f.Elem != nil {
				// List elements are always validated in full, even on update.
				sources = append(sources, validate(*f.Elem, obj, elemPath, false)...)
			}
		}
		return sources
	}

	return nil
}

func checkBounds(f Field, path string, n float64) []ErrorSource {
	if f.Min != nil && n < *f.Min {
		return []ErrorSource{{path, fmt.Sprintf("must be at least %v", *f.Min)}}
	}
	if f.Max != nil && n > *f.Max {
		return []ErrorSource{{path, fmt.Sprintf("must not exceed %v", *f.Max)}}
	}
	return nil
}

// asNumber accepts the numeric types a decoded JSON payload or test fixture
// may carry.
func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		n, err := v.Float64()
		return n, err == nil
	}
	return 0, false
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// Decode copies a validated payload into a typed request struct via JSON
// round-trip, so handlers bind the raw map once for validation and still
// work with typed fields.
func Decode(payload map[string]any, dst any) error {
	buf, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(buf, dst)
}
