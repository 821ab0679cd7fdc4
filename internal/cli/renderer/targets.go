// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package renderer

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/platform-engineering-labs/aws-inventory/internal/cli/display"
	"github.com/platform-engineering-labs/aws-inventory/pkg/model"
)

// RenderTargets renders resolved targets in a table, limited to maxRows if > 0
func RenderTargets(targets []model.Target, maxRows int) (string, error) {
	if len(targets) == 0 {
		return display.Gold("No targets found.\n"), nil
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRowAutoWrap(tw.WrapBreak),
		tablewriter.WithHeaderAutoFormat(tw.Off),
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.On, ShowHeader: tw.On}},
		})))
	table.Header(display.LightBlue("Name"), "URI", "Config")

	effectiveMaxRows := len(targets)
	if maxRows > 0 && maxRows < len(targets) {
		effectiveMaxRows = maxRows
	}

	data := make([][]string, effectiveMaxRows)
	for i := range effectiveMaxRows {
		target := targets[i]

		data[i] = []string{
			display.LightBlue(formatValue(target.Name)),
			formatValue(target.URI),
			formatConfig(target.Config),
		}
	}

	if err := table.Bulk(data); err != nil {
		return "", fmt.Errorf("error rendering targets: %v", err)
	}

	if err := table.Render(); err != nil {
		return "", fmt.Errorf("error rendering targets: %v", err)
	}

	summary := fmt.Sprintf("\n%s Showing %d of %d total targets",
		display.Gold("Summary:"),
		effectiveMaxRows,
		len(targets))

	if maxRows > 0 && len(targets) > maxRows {
		summary += fmt.Sprintf(" (use --max-results %d to see all)", len(targets))
	}

	return buf.String() + summary + "\n", nil
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return display.Grey("-")
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatConfig(config map[string]any) string {
	if config == nil {
		return display.Grey("-")
	}

	data, err := json.Marshal(config)
	if err != nil {
		return display.Red(err.Error())
	}

	return string(data)
}
