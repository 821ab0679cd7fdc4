// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package model

const (
	// InstanceStateFilter is the provider filter carrying the lifecycle constraint.
	InstanceStateFilter  = "instance-state-name"
	DefaultInstanceState = "running"
)

// Options describe which instances to query and how each one is projected
// into a Target.
type Options struct {
	Filters []Filter
	Name    string
	URI     string
	Config  map[string]any
	// States defaults to running when empty.
	States []string
}

// RequestsTargets reports whether a name or uri field path was supplied. An
// invocation without either resolves to no targets.
func (o Options) RequestsTargets() bool {
	return o.Name != "" || o.URI != ""
}

func (o Options) HasConfig() bool {
	return o.Config != nil
}

// QueryFilters returns the caller's filters followed by the lifecycle state
// constraint.
func (o Options) QueryFilters() []Filter {
	states := o.States
	if len(states) == 0 {
		states = []string{DefaultInstanceState}
	}

	filters := make([]Filter, 0, len(o.Filters)+1)
	filters = append(filters, o.Filters...)
	filters = append(filters, Filter{Name: InstanceStateFilter, Values: states})

	return filters
}
