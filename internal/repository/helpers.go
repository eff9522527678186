package repository

import (
	"encoding/json"
	"fmt"
	"time"
)

// timeLayout keeps sub-second precision so events sort by insertion.
const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

// nowUTC returns the current UTC time formatted for storage.
func nowUTC() string {
	return formatTime(time.Now())
}

func marshalAttrs(attrs map[string]any) (string, error) {
	if len(attrs) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(attrs)
	if err != nil {
		return "", fmt.Errorf("encoding attrs: %w", err)
	}
	return string(b), nil
}

func unmarshalAttrs(s string) (map[string]any, error) {
	attrs := map[string]any{}
	if s == "" || s == "{}" {
		return attrs, nil
	}
	if err := json.Unmarshal([]byte(s), &attrs); err != nil {
		return nil, fmt.Errorf("decoding attrs: %w", err)
	}
	return attrs, nil
}
