// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/aws-inventory/internal/awsconfig"
	"github.com/platform-engineering-labs/aws-inventory/internal/cli/display"
)

var SimpleCmdUsageTemplate = display.Grey("Usage: ") + display.Green("{{.CommandPath}}{{if .HasAvailableLocalFlags}} [OPTIONS]{{end}}{{if .HasAvailableSubCommands}} [COMMAND]{{end}}") + "\n" +
	"{{if .HasAvailableSubCommands}}\n" + display.Gold("Commands:") +
	"{{range $cmd := .Commands}}{{if $cmd.IsAvailableCommand}}\n  " + display.Green("{{rpad $cmd.Name $cmd.NamePadding}}") + "       {{$cmd.Short}}" +
	"{{if (index $cmd.Annotations \"examples\")}}\n                   " +
	display.Grey("  {{formatExamples (index $cmd.Annotations \"examples\") $cmd}}") + "{{end}}" +
	"{{end}}{{end}}\n{{end}}" +
	"{{if .HasAvailableLocalFlags}}\n" + display.Gold("Options:\n") +
	"{{range optionsUsage .LocalFlags}}{{.}}\n{{end}}" +
	"{{end}}" +
	"{{if .HasAvailableInheritedFlags}}\n" + display.Gold("Global options:\n") +
	"{{range optionsUsage .InheritedFlags}}{{.}}\n{{end}}" +
	"{{end}}" +
	display.Links() +
	"\n"

// AddAWSFlags registers the flags shared by every command talking to AWS.
func AddAWSFlags(command *cobra.Command) {
	command.Flags().String("region", "", "AWS region to query (defaults to the shared config or AWS_REGION)")
	command.Flags().String("profile", "", "AWS shared config profile")
	command.Flags().String("credentials", "", "Path to an AWS shared credentials file")
}

func AWSConfigFromFlags(command *cobra.Command) awsconfig.Config {
	cfg := awsconfig.Config{}
	cfg.Region, _ = command.Flags().GetString("region")
	cfg.Profile, _ = command.Flags().GetString("profile")
	cfg.Credentials, _ = command.Flags().GetString("credentials")

	return cfg
}
