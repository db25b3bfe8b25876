package rawjson

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Format renders a value as indented JSON. Strings and byte slices are
// treated as already-encoded JSON and re-indented.
func Format(value interface{}) (string, error) {
	if value == nil {
		return "null", nil
	}

	parsed, err := normalize(value)
	if err != nil {
		return "", err
	}

	out, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format: %w", err)
	}
	return string(out), nil
}

// Compact renders a value as single-line JSON
func Compact(value interface{}) (string, error) {
	if value == nil {
		return "null", nil
	}

	parsed, err := normalize(value)
	if err != nil {
		return "", err
	}

	out, err := json.Marshal(parsed)
	if err != nil {
		return "", fmt.Errorf("failed to compact: %w", err)
	}
	return string(out), nil
}

func normalize(value interface{}) (interface{}, error) {
	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return v, nil
	}

	var parsed interface{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return parsed, nil
}

// Truncate shortens a JSON string for single-line display
func Truncate(jsonStr string, maxLen int) string {
	if maxLen < 4 || len(jsonStr) <= maxLen {
		return jsonStr
	}

	// Try to truncate at a reasonable boundary
	truncated := jsonStr[:maxLen-3]

	lastGood := strings.LastIndexAny(truncated, " ,{}[]")
	if lastGood > maxLen/2 {
		truncated = truncated[:lastGood]
	}

	return truncated + "..."
}

// SplitKey splits a pretty-printed line into its key part (including the
// colon) and the remainder, for highlighting. ok is false when the line has
// no key.
func SplitKey(line string) (indent, key, rest string, ok bool) {
	trimmed := strings.TrimLeft(line, " ")
	indent = line[:len(line)-len(trimmed)]
	if !strings.HasPrefix(trimmed, `"`) {
		return indent, "", trimmed, false
	}

	idx := strings.Index(trimmed, `": `)
	if idx < 0 {
		return indent, "", trimmed, false
	}
	return indent, trimmed[:idx+2], trimmed[idx+2:], true
}
