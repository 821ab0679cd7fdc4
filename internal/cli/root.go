// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	awsinventory "github.com/platform-engineering-labs/aws-inventory"
	"github.com/platform-engineering-labs/aws-inventory/internal/cli/cmd"
	"github.com/platform-engineering-labs/aws-inventory/internal/cli/display"
	"github.com/platform-engineering-labs/aws-inventory/internal/cli/resolve"
	"github.com/platform-engineering-labs/aws-inventory/internal/cli/task"
	"github.com/platform-engineering-labs/aws-inventory/internal/logging"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     display.Tool,
		Short:   display.Tool + " CLI",
		Long:    display.Tool + ": " + display.Green("Resolve orchestration targets from the EC2 instance inventory"),
		Version: awsinventory.Version,
		PersistentPreRunE: func(command *cobra.Command, args []string) error {
			return setupLogging(command)
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
	rootCmd.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	rootCmd.PersistentFlags().String("log-level", "warn", "Console log level (debug | info | warn | error | off)")
	rootCmd.PersistentFlags().String("log-file", "", "Also write debug logs to this file")
	rootCmd.PersistentFlags().BoolP("no-color", "", false, "Disable colored output")
	rootCmd.SetVersionTemplate(fmt.Sprintf("%s version: %s\ngo version: %s\n", display.Tool, awsinventory.Version, runtime.Version()))

	rootCmd.AddCommand(resolve.ResolveCmd())
	rootCmd.AddCommand(task.TaskCmd())

	return rootCmd
}

func init() {
	cobra.AddTemplateFunc("formatExamples", func(examples string, cmd *cobra.Command) string {
		replaced := strings.ReplaceAll(examples, "{{.Name}}", cmd.Root().Name())
		return strings.ReplaceAll(replaced, "{{.Command}}", cmd.Name())
	})

	cobra.AddTemplateFunc("optionsUsage", optionsUsage)
}

func optionsUsage(f *pflag.FlagSet) []string {
	var usage []string

	longestFlagName := 0
	f.VisitAll(func(flag *pflag.Flag) {
		length := len(flag.Name)
		if flag.Shorthand != "" {
			length += 6
		}

		if length > longestFlagName {
			longestFlagName = length
		}
	})

	longestFlagName += 10

	f.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}

		s := fmt.Sprintf("      --%s ", flag.Name)
		if flag.Shorthand != "" {
			s = fmt.Sprintf("  -%s, --%s ", flag.Shorthand, flag.Name)
		}

		s = fmt.Sprintf("%-*s%s", longestFlagName, s, flag.Usage)
		if flag.DefValue != "" &&
			flag.DefValue != "[]" &&
			flag.DefValue != "false" &&
			flag.Name != "help" &&
			flag.Name != "version" {
			s += display.Grey(fmt.Sprintf(" [default: %q]", flag.DefValue))
		}

		usage = append(usage, s)
	})
	return usage
}

func setupLogging(command *cobra.Command) error {
	if noColor, _ := command.Flags().GetBool("no-color"); noColor {
		display.Disable()
	}

	levelName, _ := command.Flags().GetString("log-level")
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return cmd.FlagErrorWrap(err)
	}

	logFile, _ := command.Flags().GetString("log-file")
	return logging.SetupCLILogging(logging.Config{
		ConsoleLogLevel: level,
		FileLogLevel:    slog.LevelDebug,
		FilePath:        logFile,
	})
}

func Start() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Execute(ctx, newRootCmd())
	stop()
	os.Exit(code)
}

// Execute runs command and maps its error to a process exit code.
func Execute(ctx context.Context, command *cobra.Command) int {
	executed, err := command.ExecuteContextC(ctx)
	if err == nil {
		return 0
	}

	var exitErr *cmd.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	display.Error(err.Error())
	if cmd.IsFlagError(err) && executed != nil {
		fmt.Fprintln(display.Out)
		fmt.Fprint(display.Out, executed.UsageString())
	}

	return 1
}
