// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package resolve

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/platform-engineering-labs/aws-inventory/internal/awsconfig"
	"github.com/platform-engineering-labs/aws-inventory/internal/cli/cmd"
	"github.com/platform-engineering-labs/aws-inventory/internal/cli/printer"
	"github.com/platform-engineering-labs/aws-inventory/internal/resolver"
	"github.com/platform-engineering-labs/aws-inventory/internal/task"
	"github.com/platform-engineering-labs/aws-inventory/pkg/model"
)

type ResolveOptions struct {
	Options        model.Options
	AWS            awsconfig.Config
	OutputConsumer printer.Consumer
	OutputSchema   string
	MaxResults     int
}

func validateResolveOptions(opts *ResolveOptions) error {
	if opts.MaxResults < 0 {
		return fmt.Errorf("max-results must be 0 (unlimited) or a positive number")
	}
	if opts.OutputConsumer != printer.ConsumerHuman && opts.OutputConsumer != printer.ConsumerMachine {
		return fmt.Errorf("output-consumer must be 'human' or 'machine'")
	}
	if opts.OutputConsumer == printer.ConsumerMachine {
		if opts.OutputSchema != "json" && opts.OutputSchema != "yaml" {
			return fmt.Errorf("output-schema must be 'json' or 'yaml' for machine consumer")
		}
	}
	if !opts.Options.RequestsTargets() {
		return fmt.Errorf("at least one of --name or --uri is required")
	}

	return opts.AWS.Validate()
}

// parseFilter parses name=value1,value2. Only the first '=' separates the
// filter name from its values.
func parseFilter(s string) (model.Filter, error) {
	name, values, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" || values == "" {
		return model.Filter{}, fmt.Errorf("invalid filter %q: expected name=value[,value...]", s)
	}

	return model.Filter{Name: name, Values: strings.Split(values, ",")}, nil
}

// parseConfigTemplate accepts an inline YAML or JSON mapping, or @path to read
// the mapping from a file.
func parseConfigTemplate(s string) (map[string]any, error) {
	if s == "" {
		return nil, nil
	}

	data := []byte(s)
	if path, ok := strings.CutPrefix(s, "@"); ok {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config template: %w", err)
		}
	}

	var config map[string]any
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("config template must be a mapping: %w", err)
	}
	if config == nil {
		config = map[string]any{}
	}

	return config, nil
}

func optionsFromFlags(command *cobra.Command) (*ResolveOptions, error) {
	opts := &ResolveOptions{AWS: cmd.AWSConfigFromFlags(command)}

	opts.Options.Name, _ = command.Flags().GetString("name")
	opts.Options.URI, _ = command.Flags().GetString("uri")
	opts.Options.States, _ = command.Flags().GetStringArray("state")

	filters, _ := command.Flags().GetStringArray("filter")
	for _, f := range filters {
		filter, err := parseFilter(f)
		if err != nil {
			return nil, err
		}
		opts.Options.Filters = append(opts.Options.Filters, filter)
	}

	configTemplate, _ := command.Flags().GetString("config")
	config, err := parseConfigTemplate(configTemplate)
	if err != nil {
		return nil, err
	}
	opts.Options.Config = config

	consumer, _ := command.Flags().GetString("output-consumer")
	opts.OutputConsumer = printer.Consumer(consumer)
	opts.OutputSchema, _ = command.Flags().GetString("output-schema")
	opts.MaxResults, _ = command.Flags().GetInt("max-results")

	return opts, nil
}

func ResolveCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve targets from running EC2 instances",
		RunE: func(command *cobra.Command, args []string) error {
			opts, err := optionsFromFlags(command)
			if err != nil {
				return cmd.FlagErrorWrap(err)
			}
			if err := validateResolveOptions(opts); err != nil {
				return cmd.FlagErrorWrap(err)
			}

			inventory, err := task.EC2Inventory(command.Context(), opts.AWS)
			if err != nil {
				return err
			}

			return runResolve(command.Context(), command.OutOrStdout(), inventory, opts)
		},
		Annotations: map[string]string{
			"examples": "{{.Name}} {{.Command}} --name public_dns_name --uri public_ip_address --filter tag:Owner=platform",
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	command.Flags().String("name", "", "Field path resolved into each target's name (e.g. instance_id)")
	command.Flags().String("uri", "", "Field path resolved into each target's uri (e.g. public_ip_address)")
	command.Flags().String("config", "", "Config template as a YAML/JSON mapping of field paths, or @file")
	command.Flags().StringArray("filter", nil, "EC2 filter as name=value[,value...] (repeatable)")
	command.Flags().StringArray("state", nil, "Instance states to include (repeatable, default running)")
	command.Flags().String("output-consumer", string(printer.ConsumerHuman), "Consumer of the command output (human | machine)")
	command.Flags().String("output-schema", "json", "The schema to use for the machine output (json | yaml)")
	command.Flags().Int("max-results", 10, "Maximum number of targets to display in the table (0 = unlimited)")
	cmd.AddAWSFlags(command)

	return command
}

func runResolve(ctx context.Context, w io.Writer, inventory resolver.Inventory, opts *ResolveOptions) error {
	targets, err := resolver.New(inventory).Resolve(ctx, opts.Options)
	if err != nil {
		return err
	}

	if opts.OutputConsumer == printer.ConsumerMachine {
		p := printer.NewMachineReadablePrinter[[]model.Target](w, opts.OutputSchema)
		return p.Print(&targets)
	}

	p := printer.NewHumanReadablePrinter(w)
	return p.PrintTargets(targets, printer.PrintOptions{MaxResults: opts.MaxResults})
}
