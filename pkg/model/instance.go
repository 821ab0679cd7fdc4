// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package model

// Instance is a single inventory entry as a nested attribute mapping. Keys are
// canonical snake_case strings once the instance has been normalized.
type Instance map[string]any

// Filter narrows an inventory query to instances whose attribute Name matches
// one of Values. Filters are evaluated by the provider, never client-side.
type Filter struct {
	Name   string   `json:"name" yaml:"name"`
	Values []string `json:"values" yaml:"values"`
}
