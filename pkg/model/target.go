// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package model

// Target is the record resolved for a single inventory instance. Name and URI
// are only set when their field path resolved on the instance. Config is set
// whenever a config template was requested.
type Target struct {
	Name   any            `json:"name,omitempty" yaml:"name,omitempty"`
	URI    any            `json:"uri,omitempty" yaml:"uri,omitempty"`
	Config map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

func (t Target) HasName() bool {
	return t.Name != nil
}

func (t Target) HasURI() bool {
	return t.URI != nil
}
