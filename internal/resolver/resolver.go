// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package resolver

import (
	"context"
	"log/slog"

	"github.com/sourcegraph/conc/iter"

	"github.com/platform-engineering-labs/aws-inventory/internal/attribute"
	"github.com/platform-engineering-labs/aws-inventory/internal/template"
	"github.com/platform-engineering-labs/aws-inventory/pkg/model"
)

// Inventory queries the provider for instances matching filters. Filtering is
// done by the provider and the returned order is preserved by the resolver.
type Inventory interface {
	Query(ctx context.Context, filters []model.Filter) ([]model.Instance, error)
}

type Resolver struct {
	inventory     Inventory
	maxGoroutines int
}

type Option func(*Resolver)

// WithMaxGoroutines bounds the number of instances projected concurrently.
// Zero means one goroutine per CPU.
func WithMaxGoroutines(n int) Option {
	return func(r *Resolver) {
		r.maxGoroutines = n
	}
}

func New(inventory Inventory, opts ...Option) *Resolver {
	r := &Resolver{inventory: inventory}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve queries the inventory and projects every returned instance into a
// Target, in inventory order. Inventory errors are returned unchanged. A
// malformed config template is reported before the inventory is queried.
func (r *Resolver) Resolve(ctx context.Context, options model.Options) ([]model.Target, error) {
	if !options.RequestsTargets() {
		slog.Debug("No name or uri field path requested, returning no targets")
		return []model.Target{}, nil
	}

	var tmpl *template.Template
	if options.HasConfig() {
		var err error
		tmpl, err = template.Compile(options.Config)
		if err != nil {
			return nil, err
		}
		slog.Debug("Compiled config template", "paths", tmpl.Paths())
	}

	filters := options.QueryFilters()
	slog.Debug("Querying inventory", "filters", filters)

	instances, err := r.inventory.Query(ctx, filters)
	if err != nil {
		return nil, err
	}

	mapper := iter.Mapper[model.Instance, model.Target]{MaxGoroutines: r.maxGoroutines}
	targets := mapper.Map(instances, func(instance *model.Instance) model.Target {
		return project(*instance, options, tmpl)
	})

	slog.Debug("Resolved targets", "instances", len(instances), "targets", len(targets))

	return targets, nil
}

func project(instance model.Instance, options model.Options, tmpl *template.Template) model.Target {
	var target model.Target

	if options.Name != "" {
		if name, ok := attribute.Get(instance, options.Name); ok {
			target.Name = name
		}
	}

	if options.URI != "" {
		if uri, ok := attribute.Get(instance, options.URI); ok {
			target.URI = uri
		}
	}

	if tmpl != nil {
		target.Config = tmpl.Expand(attribute.Lookup(instance))
	}

	return target
}
