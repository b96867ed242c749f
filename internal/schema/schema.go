// Package schema coerces and validates loosely-typed content records into
// values the rest of the service can trust. Each field is described by an
// Entry: a type tag selecting a default coercion/check pair, an optional
// default used to recover from bad source data, and optional per-field
// overrides for either step.
package schema

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Type tags for supported field kinds.
type Type string

const (
	TypeCustom     Type = "CUSTOM"
	TypeBoolean    Type = "BOOLEAN"
	TypeInteger    Type = "INTEGER"
	TypeFloat      Type = "FLOAT"
	TypeString     Type = "STRING"
	TypeStringList Type = "STRING_LIST"
	TypeImage      Type = "IMAGE"
	TypeURL        Type = "URL"
	TypeURLList    Type = "URL_LIST"
	TypeGoogleFont Type = "GOOGLE_FONT"
	TypeColorHex   Type = "COLOR_HEX"
	TypeDate       Type = "DATE"
)

// ProcessFunc coerces a raw value into the field's canonical shape.
type ProcessFunc func(v any) (any, error)

// CheckFunc reports whether a coerced value is structurally valid.
type CheckFunc func(v any) error

// Entry describes validation for one field.
type Entry struct {
	Type     Type
	Alias    string // output key; falls back to the source key
	Optional bool
	Default  any         // nil means no default: failures are fatal
	Process  ProcessFunc // overrides the type's coercion when set
	Check    CheckFunc   // overrides the type's structural check when set
}

// FieldSchema maps source keys to their validation entries.
type FieldSchema map[string]Entry

// ErrMissingRequiredField marks a required field absent from the source data.
var ErrMissingRequiredField = errors.New("missing required field")

// FieldError is a fatal validation failure for a single field.
type FieldError struct {
	Key   string
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q (value %v): %v", e.Key, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Logf reports recoverable validation events (default fallbacks). Tests may
// swap it out to capture events.
var Logf = log.Printf

type variant struct {
	process ProcessFunc
	check   CheckFunc
}

var (
	colorHexPattern  = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)
	leadingHashes    = regexp.MustCompile(`#+`)
	leadingIntDigits = regexp.MustCompile(`^[+-]?\d+`)
)

var variants = map[Type]variant{
	TypeCustom: {
		process: func(v any) (any, error) { return v, nil },
	},
	TypeBoolean: {
		process: func(v any) (any, error) {
			switch strings.ToUpper(fmt.Sprint(v)) {
			case "TRUE", "YES":
				return true, nil
			}
			return false, nil
		},
		check: func(v any) error { return expectKind[bool](v, "boolean") },
	},
	TypeInteger: {
		process: func(v any) (any, error) { return toInt(v) },
		check:   func(v any) error { return expectKind[int](v, "integer") },
	},
	TypeFloat: {
		process: func(v any) (any, error) { return toFloat(v) },
		check:   func(v any) error { return expectKind[float64](v, "float") },
	},
	TypeString: {
		process: processString,
		check:   checkNonEmptyString,
	},
	TypeStringList: {
		process: processStringList,
		check:   checkStringList,
	},
	TypeImage: {
		process: func(v any) (any, error) {
			if m, ok := v.(map[string]any); ok {
				v = m["contentUrl"]
			}
			s, err := toString(v)
			if err != nil {
				return nil, err
			}
			return strings.TrimSpace(s), nil
		},
		check: checkURI,
	},
	TypeURL: {
		process: func(v any) (any, error) {
			s, err := toString(v)
			if err != nil {
				return nil, err
			}
			return strings.TrimSpace(s), nil
		},
		check: checkURI,
	},
	TypeURLList: {
		process: processStringList,
		check: func(v any) error {
			list, ok := v.([]string)
			if !ok {
				return fmt.Errorf("expected url list, got %T", v)
			}
			for _, s := range list {
				if err := checkURI(s); err != nil {
					return err
				}
			}
			return nil
		},
	},
	TypeGoogleFont: {
		process: func(v any) (any, error) {
			s, err := toString(v)
			if err != nil {
				return nil, err
			}
			return strings.TrimSpace(s), nil
		},
		check: func(v any) error {
			if err := checkURI(v); err != nil {
				return err
			}
			if !strings.HasPrefix(v.(string), "https://fonts.googleapis.com/") {
				return errors.New("not a fonts.googleapis.com url")
			}
			return nil
		},
	},
	TypeColorHex: {
		process: func(v any) (any, error) {
			s, err := toString(v)
			if err != nil {
				return nil, err
			}
			return leadingHashes.ReplaceAllString("#"+strings.TrimSpace(s), "#"), nil
		},
		check: func(v any) error {
			s, ok := v.(string)
			if !ok || !colorHexPattern.MatchString(s) {
				return fmt.Errorf("not a 3- or 6-digit hex color: %v", v)
			}
			return nil
		},
	},
	TypeDate: {
		process: func(v any) (any, error) {
			s, err := toString(v)
			if err != nil {
				return nil, err
			}
			return strings.TrimSpace(s), nil
		},
		check: func(v any) error {
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("expected date string, got %T", v)
			}
			for _, layout := range []string{"2006-01-02", "2006/01/02", "01/02/2006", time.RFC3339} {
				if _, err := time.Parse(layout, s); err == nil {
					return nil
				}
			}
			return fmt.Errorf("unparseable date: %q", s)
		},
	},
}

// Validate coerces and checks one value against its entry. A failure returns
// the entry's default when one is declared (logged as a recoverable event),
// otherwise a *FieldError.
func Validate(value any, entry Entry, label string) (any, error) {
	def, ok := variants[entry.Type]
	if !ok {
		def = variants[TypeCustom]
	}
	process := entry.Process
	if process == nil {
		process = def.process
	}
	check := entry.Check
	if check == nil {
		check = def.check
	}

	if entry.Optional {
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			return strings.TrimSpace(s), nil
		}
		if value == nil {
			return nil, nil
		}
	}

	processed, err := process(value)
	if err == nil && check != nil {
		err = check(processed)
	}
	if err != nil {
		if entry.Default != nil {
			Logf("schema: validation failed for %s (value %v), using default %v: %v", label, value, entry.Default, err)
			return entry.Default, nil
		}
		return nil, &FieldError{Key: label, Value: value, Err: err}
	}
	return processed, nil
}

// ValidateObject validates every key of target against fields. Keys without a
// schema entry pass through unchanged; keys with an entry are written under
// the entry's alias. Required schema fields absent from target are fatal
// unless a default recovers them. Any fatal field failure aborts the object.
func ValidateObject(target map[string]any, fields FieldSchema) (map[string]any, error) {
	out := make(map[string]any, len(target))
	for key, val := range target {
		entry, ok := fields[key]
		if !ok {
			out[key] = val
			continue
		}
		validated, err := Validate(val, entry, key)
		if err != nil {
			return nil, err
		}
		out[outputKey(key, entry)] = validated
	}
	for key, entry := range fields {
		if _, ok := target[key]; ok || entry.Optional {
			continue
		}
		if entry.Default != nil {
			Logf("schema: %s absent, using default %v", key, entry.Default)
			out[outputKey(key, entry)] = entry.Default
			continue
		}
		return nil, &FieldError{Key: key, Err: ErrMissingRequiredField}
	}
	return out, nil
}

// ValidateCollection validates every element of targets. One fatal element
// aborts the whole batch; callers treating this as too strict should filter
// rows before validation rather than expecting a partial result here.
func ValidateCollection(targets []map[string]any, fields FieldSchema) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(targets))
	for i, target := range targets {
		validated, err := ValidateObject(target, fields)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, validated)
	}
	return out, nil
}

func outputKey(key string, entry Entry) string {
	if entry.Alias != "" {
		return entry.Alias
	}
	return key
}

func expectKind[T any](v any, name string) error {
	if _, ok := v.(T); !ok {
		return fmt.Errorf("expected %s, got %T", name, v)
	}
	return nil
}

func toString(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("expected string, got %T", v)
}

func processString(v any) (any, error) {
	s, err := toString(v)
	if err != nil {
		return nil, err
	}
	return strings.TrimSpace(s), nil
}

func checkNonEmptyString(v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", v)
	}
	if s == "" {
		return errors.New("empty string")
	}
	return nil
}

func processStringList(v any) (any, error) {
	switch val := v.(type) {
	case []string:
		out := make([]string, len(val))
		for i, s := range val {
			out[i] = strings.TrimSpace(s)
		}
		return out, nil
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, err := toString(item)
			if err != nil {
				return nil, err
			}
			out = append(out, strings.TrimSpace(s))
		}
		return out, nil
	default:
		s, err := toString(v)
		if err != nil {
			return nil, err
		}
		return []string{strings.TrimSpace(s)}, nil
	}
}

func checkStringList(v any) error {
	list, ok := v.([]string)
	if !ok {
		return fmt.Errorf("expected string list, got %T", v)
	}
	for _, s := range list {
		if s == "" {
			return errors.New("empty list element")
		}
	}
	return nil
}

func checkURI(v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("expected url string, got %T", v)
	}
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return err
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("not an absolute url: %q", s)
	}
	return nil
}

func toInt(v any) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		return int(val), nil
	case string:
		// parseInt semantics: read the leading integer portion.
		m := leadingIntDigits.FindString(strings.TrimSpace(val))
		if m == "" {
			return 0, fmt.Errorf("not a number: %q", val)
		}
		return strconv.Atoi(m)
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}

func toFloat(v any) (float64, error) {
	switch val := v.(type) {
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case float64:
		return val, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", val)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}
