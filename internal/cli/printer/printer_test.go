// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package printer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/platform-engineering-labs/aws-inventory/internal/cli/display"
	"github.com/platform-engineering-labs/aws-inventory/pkg/model"
)

func testTargets() []model.Target {
	return []model.Target{
		{Name: "i-1", URI: "255.255.255.255", Config: map[string]any{"ssh": map[string]any{"host": "255.255.255.255"}}},
		{Name: "i-2", URI: "127.0.0.1"},
	}
}

func TestMachineReadablePrinter(t *testing.T) {
	targets := testTargets()

	t.Run("prints json objects", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		printer := NewMachineReadablePrinter[[]model.Target](buf, "json")
		err := printer.Print(&targets)
		assert.NoError(t, err)
		expected := `[{"name":"i-1","uri":"255.255.255.255","config":{"ssh":{"host":"255.255.255.255"}}},{"name":"i-2","uri":"127.0.0.1"}]` + "\n"
		assert.Equal(t, expected, buf.String())
	})

	t.Run("prints yaml", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		printer := NewMachineReadablePrinter[[]model.Target](buf, "yaml")
		err := printer.Print(&targets)
		require.NoError(t, err)

		var result []map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &result))
		assert.Equal(t, []map[string]any{
			{"name": "i-1", "uri": "255.255.255.255", "config": map[string]any{"ssh": map[string]any{"host": "255.255.255.255"}}},
			{"name": "i-2", "uri": "127.0.0.1"},
		}, result)

		assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		printer := NewMachineReadablePrinter[[]model.Target](bytes.NewBuffer(nil), "toml")
		assert.EqualError(t, printer.Print(&targets), "unsupported format: toml")
	})
}

func TestHumanReadablePrinter(t *testing.T) {
	display.Disable()

	buf := bytes.NewBuffer(nil)
	err := NewHumanReadablePrinter(buf).PrintTargets(testTargets(), PrintOptions{MaxResults: 10})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "i-1")
	assert.Contains(t, buf.String(), "Showing 2 of 2 total targets")
}
