// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package template expands config templates: nested mappings whose leaves are
// field paths. Expansion keeps the template's shape and replaces every leaf
// with the value its path resolves to.
package template

import (
	"fmt"
	"maps"
	"slices"
)

// Lookup resolves a single field path. The second return value is false when
// the path is absent.
type Lookup func(path string) (any, bool)

// Error reports a template node that is neither a field path nor a mapping.
type Error struct {
	Path  string
	Value any
}

func (e *Error) Error() string {
	return fmt.Sprintf("config template entry %q must be a field path or a mapping, got %T", e.Path, e.Value)
}

type node struct {
	// path is set on leaves, children on mappings
	path     string
	children map[string]*node
}

func (n *node) isLeaf() bool {
	return n.children == nil
}

type Template struct {
	root *node
}

// Compile validates raw and builds a Template from it. Keys are visited in
// sorted order so that the reported error is stable.
func Compile(raw map[string]any) (*Template, error) {
	root, err := compileMapping(raw, "")
	if err != nil {
		return nil, err
	}

	return &Template{root: root}, nil
}

func compileMapping(raw map[string]any, at string) (*node, error) {
	n := &node{children: make(map[string]*node, len(raw))}
	for _, key := range slices.Sorted(maps.Keys(raw)) {
		child, err := compileNode(raw[key], buildPath(at, key))
		if err != nil {
			return nil, err
		}
		n.children[key] = child
	}

	return n, nil
}

func compileNode(value any, at string) (*node, error) {
	switch v := value.(type) {
	case string:
		return &node{path: v}, nil
	case map[string]any:
		return compileMapping(v, at)
	default:
		return nil, &Error{Path: at, Value: value}
	}
}

func buildPath(currentPath, key string) string {
	if currentPath == "" {
		return key
	}
	return currentPath + "." + key
}

// Expand builds a fresh tree with the template's keys. Mappings are always
// kept, even when empty. A leaf whose path is absent becomes nil.
func (t *Template) Expand(lookup Lookup) map[string]any {
	return t.root.expand(lookup).(map[string]any)
}

// Paths returns every field path referenced by the template, sorted.
func (t *Template) Paths() []string {
	var paths []string
	t.root.collect(&paths)
	slices.Sort(paths)

	return slices.Compact(paths)
}

func (n *node) expand(lookup Lookup) any {
	if n.isLeaf() {
		value, ok := lookup(n.path)
		if !ok {
			return nil
		}
		return value
	}

	out := make(map[string]any, len(n.children))
	for key, child := range n.children {
		out[key] = child.expand(lookup)
	}

	return out
}

func (n *node) collect(paths *[]string) {
	if n.isLeaf() {
		*paths = append(*paths, n.path)
		return
	}

	for _, child := range n.children {
		child.collect(paths)
	}
}
