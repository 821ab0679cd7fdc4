// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package attribute resolves dot-delimited field paths against normalized
// inventory instances.
package attribute

import (
	"strings"

	"github.com/platform-engineering-labs/aws-inventory/pkg/model"
)

const PathSeparator = "."

// Get returns the value found at path inside instance. The second return value
// is false when any segment of the path is missing, when an intermediate value
// is not a mapping, or when the stored value is nil. A missing attribute is an
// expected outcome and never an error.
func Get(instance model.Instance, path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	var current any = instance
	for _, segment := range strings.Split(path, PathSeparator) {
		if segment == "" {
			return nil, false
		}

		fields, ok := asMapping(current)
		if !ok {
			return nil, false
		}

		value, ok := fields[segment]
		if !ok || value == nil {
			return nil, false
		}
		current = value
	}

	return current, true
}

// Lookup binds Get to a single instance.
func Lookup(instance model.Instance) func(path string) (any, bool) {
	return func(path string) (any, bool) {
		return Get(instance, path)
	}
}

func asMapping(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case model.Instance:
		return v, v != nil
	case map[string]any:
		return v, v != nil
	default:
		return nil, false
	}
}
