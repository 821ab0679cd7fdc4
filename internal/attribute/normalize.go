// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package attribute

import (
	"fmt"
	"strings"
	"unicode"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"

	"github.com/platform-engineering-labs/aws-inventory/pkg/model"
)

// NormalizeValue converts a provider record (typically an SDK struct) into an
// Instance with canonical keys.
func NormalizeValue(record any) (model.Instance, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal instance: %w", err)
	}

	return Normalize(data)
}

// Normalize parses a JSON object into an Instance. Every object key, at any
// depth, is rewritten to snake_case so that PublicIpAddress and
// public_ip_address address the same attribute. Null members are dropped.
func Normalize(data []byte) (model.Instance, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("instance is not valid JSON")
	}

	result := gjson.ParseBytes(data)
	if !result.IsObject() {
		return nil, fmt.Errorf("instance must be a JSON object, got %s", result.Type)
	}

	return model.Instance(normalizeObject(result)), nil
}

func normalizeObject(result gjson.Result) map[string]any {
	fields := make(map[string]any)
	result.ForEach(func(key, val gjson.Result) bool {
		if val.Type == gjson.Null {
			return true
		}
		fields[SnakeCase(key.String())] = normalizeResult(val)
		return true
	})

	return fields
}

func normalizeResult(result gjson.Result) any {
	switch {
	case result.IsObject():
		return normalizeObject(result)
	case result.IsArray():
		items := result.Array()
		values := make([]any, 0, len(items))
		for _, item := range items {
			values = append(values, normalizeResult(item))
		}
		return values
	default:
		return result.Value()
	}
}

// SnakeCase rewrites a CamelCase key to snake_case. Acronym runs stay together
// (ENASupport becomes ena_support) and a digit ends a word (Ipv6Address becomes
// ipv6_address). Keys that are already snake_case are returned unchanged.
func SnakeCase(key string) string {
	runes := []rune(key)

	var b strings.Builder
	b.Grow(len(key) + 4)
	for i, r := range runes {
		if !unicode.IsUpper(r) {
			b.WriteRune(r)
			continue
		}

		if i > 0 {
			prev := runes[i-1]
			nextIsLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextIsLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}
