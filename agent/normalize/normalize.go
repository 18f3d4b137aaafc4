// Package normalize reduces tool return values to plain data
// (nil, bool, float64, string, []any, map[string]any) so the router can
// pattern-match on one shape regardless of how a tool answered.
package normalize

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Record is implemented by typed values that know their plain mapping form.
type Record interface {
	Record() map[string]any
}

// Records is implemented by typed collections of records.
type Records interface {
	Records() []map[string]any
}

// Matches the repr a product-like record takes when a tool stringifies it, e.g.
// Root(id=1, name='Pen', price=1.2, category='Office', in_stock=True).
var recordTextPattern = regexp.MustCompile(
	`(?:Root|Product)\(id=(\d+), name='([^']*)', price=([0-9.]+), category='([^']*)', in_stock=(True|False|true|false)\)`,
)

const rootKey = "root"

func Payload(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case bool:
		return val
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case string:
		return fromText(val)
	case json.RawMessage:
		return fromText(string(val))
	case []byte:
		return fromText(string(val))
	case Records:
		return fromMappings(val.Records())
	case Record:
		return fromMapping(val.Record())
	case map[string]any:
		return fromMapping(val)
	case []map[string]any:
		return fromMappings(val)
	case []any:
		out := make([]any, 0, len(val))
		for _, item := range val {
			out = append(out, Payload(item))
		}
		return out
	default:
		return fromUnknown(val)
	}
}

// Structured reports whether a normalized payload is a mapping or a sequence.
func Structured(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	default:
		return false
	}
}

// Text renders a normalized scalar for display.
func Text(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

func fromText(s string) any {
	var decoded any
	if err := json.Unmarshal([]byte(s), &decoded); err == nil {
		return Payload(decoded)
	}
	if rec, ok := parseRecordText(s); ok {
		return rec
	}
	return s
}

func parseRecordText(s string) (map[string]any, bool) {
	m := recordTextPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, false
	}
	price, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return nil, false
	}
	return map[string]any{
		"id":       float64(id),
		"name":     m[2],
		"price":    price,
		"category": m[4],
		"in_stock": strings.EqualFold(m[5], "true"),
	}, true
}

func fromMapping(m map[string]any) any {
	if inner, ok := m[rootKey]; ok && len(m) == 1 {
		return Payload(inner)
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = Payload(v)
	}
	return out
}

func fromMappings(ms []map[string]any) any {
	out := make([]any, 0, len(ms))
	for _, m := range ms {
		out = append(out, fromMapping(m))
	}
	return out
}

func fromUnknown(v any) any {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return string(raw)
	}
	return Payload(decoded)
}
