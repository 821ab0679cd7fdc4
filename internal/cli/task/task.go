// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package task

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/aws-inventory/internal/cli/cmd"
	invtask "github.com/platform-engineering-labs/aws-inventory/internal/task"
)

func TaskCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "task",
		Short: "Run as a task: read parameters from stdin, write the result to stdout",
		RunE: func(command *cobra.Command, args []string) error {
			return runTask(command.Context(), command.InOrStdin(), command.OutOrStdout(), os.Environ(), invtask.EC2Inventory)
		},
		Annotations: map[string]string{
			"examples": `echo '{"name":"instance_id","uri":"public_ip_address"}' | {{.Name}} {{.Command}}`,
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	return command
}

// runTask always reports through the task result on w. A failed run returns
// an ExitError so that the process exits non-zero without printing twice.
func runTask(ctx context.Context, r io.Reader, w io.Writer, environ []string, factory invtask.InventoryFactory) error {
	var result invtask.Result

	params, err := invtask.ReadParams(r, environ)
	if err != nil {
		result = invtask.Result{Error: invtask.ValidationError(err)}
	} else {
		result = invtask.New(factory).Run(ctx, params)
	}

	if err := result.Write(w); err != nil {
		return err
	}

	if result.Failed() {
		return &cmd.ExitError{Code: 1}
	}

	return nil
}
