// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptions_QueryFilters(t *testing.T) {
	t.Run("appends running state when no states are given", func(t *testing.T) {
		opts := Options{
			Filters: []Filter{{Name: "tag:Owner", Values: []string{"foo"}}},
		}

		assert.Equal(t, []Filter{
			{Name: "tag:Owner", Values: []string{"foo"}},
			{Name: "instance-state-name", Values: []string{"running"}},
		}, opts.QueryFilters())
	})

	t.Run("uses the requested states", func(t *testing.T) {
		opts := Options{States: []string{"running", "stopped"}}

		assert.Equal(t, []Filter{
			{Name: "instance-state-name", Values: []string{"running", "stopped"}},
		}, opts.QueryFilters())
	})

	t.Run("does not modify the caller's filters", func(t *testing.T) {
		filters := make([]Filter, 1, 4)
		filters[0] = Filter{Name: "tag:Owner", Values: []string{"foo"}}
		opts := Options{Filters: filters}

		_ = opts.QueryFilters()

		assert.Len(t, opts.Filters, 1)
		assert.Equal(t, Filter{}, filters[:2][1])
	})
}

func TestOptions_RequestsTargets(t *testing.T) {
	assert.False(t, Options{}.RequestsTargets())
	assert.False(t, Options{Config: map[string]any{"ssh": map[string]any{}}}.RequestsTargets())
	assert.True(t, Options{Name: "instance_id"}.RequestsTargets())
	assert.True(t, Options{URI: "public_ip_address"}.RequestsTargets())
}
