// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package task

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/platform-engineering-labs/aws-inventory/internal/awsconfig"
	"github.com/platform-engineering-labs/aws-inventory/pkg/model"
)

// EnvPrefix marks task parameters passed through the environment.
const EnvPrefix = "PT_"

type Params struct {
	Region      string         `json:"region,omitempty"`
	Profile     string         `json:"profile,omitempty"`
	Credentials string         `json:"credentials,omitempty"`
	Filters     []model.Filter `json:"filters,omitempty"`
	Name        string         `json:"name,omitempty"`
	URI         string         `json:"uri,omitempty"`
	Config      map[string]any `json:"config,omitempty"`
	States      []string       `json:"states,omitempty"`
}

func (p *Params) AWSConfig() awsconfig.Config {
	return awsconfig.Config{
		Region:      p.Region,
		Profile:     p.Profile,
		Credentials: p.Credentials,
	}
}

func (p *Params) Options() model.Options {
	return model.Options{
		Filters: p.Filters,
		Name:    p.Name,
		URI:     p.URI,
		Config:  p.Config,
		States:  p.States,
	}
}

// ReadParams decodes the JSON parameter document from r. When r carries no
// document the parameters are collected from PT_ variables in environ.
func ReadParams(r io.Reader, environ []string) (*Params, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read task parameters: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		data = []byte(paramsFromEnv(environ))
	}

	return DecodeParams(data)
}

func DecodeParams(data []byte) (*Params, error) {
	var params Params
	if err := json.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("failed to parse task parameters: %w", err)
	}

	return &params, nil
}

// paramsFromEnv builds a parameter document from PT_<name> variables. Values
// holding a JSON object or array are embedded as JSON, anything else is kept
// as a string. Metaparameters (PT__task and friends) are skipped.
func paramsFromEnv(environ []string) string {
	doc := "{}"
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}

		name := strings.TrimPrefix(key, EnvPrefix)
		if name == "" || strings.HasPrefix(name, "_") {
			continue
		}

		var err error
		trimmed := strings.TrimSpace(value)
		if (strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) && gjson.Valid(trimmed) {
			doc, err = sjson.SetRaw(doc, name, trimmed)
		} else {
			doc, err = sjson.Set(doc, name, value)
		}
		if err != nil {
			slog.Warn("Ignoring task parameter from environment", "name", name, "error", err)
		}
	}

	return doc
}
