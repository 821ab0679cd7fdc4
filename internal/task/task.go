// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package task

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	json "github.com/goccy/go-json"

	"github.com/platform-engineering-labs/aws-inventory/internal/awsconfig"
	"github.com/platform-engineering-labs/aws-inventory/internal/ec2inventory"
	"github.com/platform-engineering-labs/aws-inventory/internal/resolver"
	"github.com/platform-engineering-labs/aws-inventory/pkg/model"
)

// InventoryFactory builds the inventory client for a validated configuration.
type InventoryFactory func(ctx context.Context, cfg awsconfig.Config) (resolver.Inventory, error)

func EC2Inventory(ctx context.Context, cfg awsconfig.Config) (resolver.Inventory, error) {
	awsCfg, err := cfg.ToAwsConfig(ctx)
	if err != nil {
		return nil, err
	}

	return ec2inventory.NewFromConfig(awsCfg), nil
}

type Task struct {
	newInventory InventoryFactory
}

func New(factory InventoryFactory) *Task {
	return &Task{newInventory: factory}
}

// Result holds either the resolved targets or the error to report.
type Result struct {
	Value []model.Target
	Error *Error
}

func (r Result) Failed() bool {
	return r.Error != nil
}

type valueResult struct {
	Value []model.Target `json:"value"`
}

type errorResult struct {
	Error *Error `json:"_error"`
}

// Write encodes the result as {"value": [...]} or {"_error": {...}}.
func (r Result) Write(w io.Writer) error {
	var v any = valueResult{Value: r.Value}
	if r.Failed() {
		v = errorResult{Error: r.Error}
	} else if r.Value == nil {
		v = valueResult{Value: []model.Target{}}
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("failed to write task result: %w", err)
	}

	return nil
}

func (t *Task) Run(ctx context.Context, params *Params) Result {
	cfg := params.AWSConfig()
	if err := cfg.Validate(); err != nil {
		return Result{Error: ValidationError(err)}
	}

	inventory, err := t.newInventory(ctx, cfg)
	if err != nil {
		slog.Error("Failed to configure inventory client", "error", err)
		return Result{Error: ValidationError(err)}
	}

	targets, err := resolver.New(inventory).Resolve(ctx, params.Options())
	if err != nil {
		slog.Error("Failed to resolve targets", "error", err)
		return Result{Error: toError(err)}
	}

	slog.Info("Resolved targets", "count", len(targets))

	return Result{Value: targets}
}
