// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package resolve

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platform-engineering-labs/aws-inventory/internal/cli/printer"
	"github.com/platform-engineering-labs/aws-inventory/pkg/model"
)

type stubInventory struct {
	instances []model.Instance
	filters   []model.Filter
}

func (s *stubInventory) Query(_ context.Context, filters []model.Filter) ([]model.Instance, error) {
	s.filters = filters
	return s.instances, nil
}

func TestValidateResolveOptions(t *testing.T) {
	valid := func() *ResolveOptions {
		return &ResolveOptions{
			Options:        model.Options{Name: "instance_id"},
			OutputConsumer: printer.ConsumerHuman,
			OutputSchema:   "json",
			MaxResults:     10,
		}
	}

	t.Run("accepts valid options", func(t *testing.T) {
		assert.NoError(t, validateResolveOptions(valid()))
	})

	t.Run("max-results must be 0 or positive", func(t *testing.T) {
		opts := valid()
		opts.MaxResults = -1
		assert.EqualError(t, validateResolveOptions(opts), "max-results must be 0 (unlimited) or a positive number")
	})

	t.Run("output-consumer must be 'human' or 'machine'", func(t *testing.T) {
		opts := valid()
		opts.OutputConsumer = "invalid"
		assert.EqualError(t, validateResolveOptions(opts), "output-consumer must be 'human' or 'machine'")
	})

	t.Run("output-schema must be 'json' or 'yaml' for machine consumer", func(t *testing.T) {
		opts := valid()
		opts.OutputConsumer = printer.ConsumerMachine
		opts.OutputSchema = "invalid"
		assert.EqualError(t, validateResolveOptions(opts), "output-schema must be 'json' or 'yaml' for machine consumer")
	})

	t.Run("name or uri is required", func(t *testing.T) {
		opts := valid()
		opts.Options.Name = ""
		assert.EqualError(t, validateResolveOptions(opts), "at least one of --name or --uri is required")
	})

	t.Run("credentials file must exist", func(t *testing.T) {
		opts := valid()
		opts.AWS.Credentials = filepath.Join(t.TempDir(), "foo", "credentials")
		err := validateResolveOptions(opts)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "foo/credentials")
	})
}

func TestParseFilter(t *testing.T) {
	filter, err := parseFilter("tag:Owner=foo")
	require.NoError(t, err)
	assert.Equal(t, model.Filter{Name: "tag:Owner", Values: []string{"foo"}}, filter)

	filter, err = parseFilter("tag:Query=a=b,c")
	require.NoError(t, err)
	assert.Equal(t, model.Filter{Name: "tag:Query", Values: []string{"a=b", "c"}}, filter)

	for _, invalid := range []string{"tag:Owner", "=foo", "tag:Owner="} {
		_, err := parseFilter(invalid)
		assert.Error(t, err, invalid)
	}
}

func TestParseConfigTemplate(t *testing.T) {
	t.Run("inline json", func(t *testing.T) {
		config, err := parseConfigTemplate(`{"ssh": {"host": "public_ip_address"}}`)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"ssh": map[string]any{"host": "public_ip_address"}}, config)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("ssh:\n  host: public_ip_address\n  user: key_name\n"), 0600))

		config, err := parseConfigTemplate("@" + path)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"ssh": map[string]any{"host": "public_ip_address", "user": "key_name"}}, config)
	})

	t.Run("empty flag means no template", func(t *testing.T) {
		config, err := parseConfigTemplate("")
		require.NoError(t, err)
		assert.Nil(t, config)
	})

	t.Run("rejects lists", func(t *testing.T) {
		_, err := parseConfigTemplate(`["public_ip_address"]`)
		assert.Error(t, err)
	})
}

func TestOptionsFromFlags(t *testing.T) {
	command := ResolveCmd()
	require.NoError(t, command.ParseFlags([]string{
		"--name", "public_dns_name",
		"--uri", "public_ip_address",
		"--filter", "tag:Owner=foo",
		"--filter", "vpc-id=vpc-1,vpc-2",
		"--state", "running",
		"--state", "stopped",
		"--config", `{"ssh": {"host": "public_ip_address"}}`,
		"--region", "us-east-2",
		"--output-consumer", "machine",
	}))

	opts, err := optionsFromFlags(command)
	require.NoError(t, err)

	assert.Equal(t, model.Options{
		Name: "public_dns_name",
		URI:  "public_ip_address",
		Filters: []model.Filter{
			{Name: "tag:Owner", Values: []string{"foo"}},
			{Name: "vpc-id", Values: []string{"vpc-1", "vpc-2"}},
		},
		Config: map[string]any{"ssh": map[string]any{"host": "public_ip_address"}},
		States: []string{"running", "stopped"},
	}, opts.Options)
	assert.Equal(t, "us-east-2", opts.AWS.Region)
	assert.Equal(t, printer.ConsumerMachine, opts.OutputConsumer)
	assert.Equal(t, "json", opts.OutputSchema)
	assert.Equal(t, 10, opts.MaxResults)
}

func TestRunResolve_Machine(t *testing.T) {
	inventory := &stubInventory{instances: []model.Instance{
		{"id": "i-1", "ip": "255.255.255.255"},
		{"id": "i-2", "ip": "127.0.0.1"},
	}}
	opts := &ResolveOptions{
		Options:        model.Options{Name: "id", URI: "ip"},
		OutputConsumer: printer.ConsumerMachine,
		OutputSchema:   "json",
	}

	var buf bytes.Buffer
	require.NoError(t, runResolve(context.Background(), &buf, inventory, opts))

	assert.JSONEq(t, `[{"name":"i-1","uri":"255.255.255.255"},{"name":"i-2","uri":"127.0.0.1"}]`, buf.String())
	assert.Equal(t, []model.Filter{{Name: "instance-state-name", Values: []string{"running"}}}, inventory.filters)
}
