// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package printer

import (
	"bytes"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/platform-engineering-labs/aws-inventory/internal/cli/renderer"
	"github.com/platform-engineering-labs/aws-inventory/pkg/model"
)

type Consumer string

const (
	ConsumerHuman   Consumer = "human"
	ConsumerMachine Consumer = "machine"
)

type MachineReadablePrinter[T any] struct {
	w      io.Writer
	format string
}

func NewMachineReadablePrinter[T any](w io.Writer, format string) *MachineReadablePrinter[T] {
	return &MachineReadablePrinter[T]{
		w:      w,
		format: format,
	}
}

func (p *MachineReadablePrinter[T]) Print(v *T) error {
	var data []byte
	var err error
	switch p.format {
	case "json":
		data, err = json.Marshal(v)
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
	case "yaml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err = enc.Encode(v); err != nil {
			return fmt.Errorf("yaml encode: %w", err)
		}
		if err = enc.Close(); err != nil {
			return fmt.Errorf("yaml encode: %w", err)
		}
		data = buf.Bytes()
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}
	_, err = p.w.Write(data)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

type HumanReadablePrinter struct {
	w io.Writer
}

func NewHumanReadablePrinter(w io.Writer) *HumanReadablePrinter {
	return &HumanReadablePrinter{
		w: w,
	}
}

type PrintOptions struct {
	MaxResults int
}

func (p *HumanReadablePrinter) PrintTargets(targets []model.Target, opts PrintOptions) error {
	output, err := renderer.RenderTargets(targets, opts.MaxResults)
	if err != nil {
		return fmt.Errorf("render targets: %w", err)
	}

	if _, err = p.w.Write([]byte(output)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
