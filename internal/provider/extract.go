// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pdiddy/proposal-engine/pkg/types"
)

// ExtractObject locates the first balanced top-level JSON object in text and
// parses it. Backends are instructed to return pure JSON but routinely wrap
// it in prose or markdown fencing anyway, so the scanner tolerates anything
// before the first '{' and after its matching '}'. Braces inside JSON string
// literals do not count toward balance.
//
// On failure it returns a *types.MalformedOutputError carrying the full raw
// text for diagnostics.
func ExtractObject(text string) (map[string]any, error) {
	raw, err := firstObject(text)
	if err != nil {
		return nil, &types.MalformedOutputError{Raw: text, Err: err}
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, &types.MalformedOutputError{Raw: text, Err: fmt.Errorf("parsing object: %w", err)}
	}
	return obj, nil
}

// ExtractInto extracts the first JSON object from text and unmarshals it
// into v, which must be a pointer to a struct or map.
func ExtractInto(text string, v any) error {
	raw, err := firstObject(text)
	if err != nil {
		return &types.MalformedOutputError{Raw: text, Err: err}
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return &types.MalformedOutputError{Raw: text, Err: fmt.Errorf("parsing object: %w", err)}
	}
	return nil
}

var errNoObject = errors.New("no JSON object found in response")

// firstObject returns the substring of text spanning the first balanced
// top-level object literal.
func firstObject(text string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, r := range text {
		if start < 0 {
			if r == '{' {
				start = i
				depth = 1
			}
			continue
		}

		if escaped {
			escaped = false
			continue
		}

		switch r {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1], nil
				}
			}
		}
	}

	if start < 0 {
		return "", errNoObject
	}
	return "", errors.New("unbalanced JSON object in response")
}

// StringSlice converts a decoded JSON array value into []string, skipping
// non-string elements. Nil input yields an empty, non-nil slice so consumers
// never need a presence check.
func StringSlice(v any) []string {
	out := []string{}
	arr, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// StringField returns the string under key in a decoded object, or fallback
// when the key is absent or not a string.
func StringField(obj map[string]any, key, fallback string) string {
	if s, ok := obj[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

// FloatField returns the numeric value under key, or fallback when the key
// is absent or not a number.
func FloatField(obj map[string]any, key string, fallback float64) float64 {
	if f, ok := obj[key].(float64); ok {
		return f
	}
	return fallback
}
