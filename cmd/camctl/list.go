// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/camctl/pkg/ux"
	"github.com/AleutianAI/camctl/services/camctl/control"
	"github.com/AleutianAI/camctl/services/camctl/registry"
)

func (c *cli) newListCmd() *cobra.Command {
	var format string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Discover devices and print every adjustable control",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "table" && format != "yaml" && format != "json" {
				return fmt.Errorf("unknown format %q (want table, yaml or json)", format)
			}

			a, err := newApp(c.v, c.configPath, cmd.OutOrStdout(), false)
			if err != nil {
				return err
			}
			defer closeApp(cmd, a)

			reg, err := a.discover(cmd.Context())
			if err != nil {
				return err
			}
			defer reg.Close()

			return writeSnapshot(a.out, reg.Snapshot(), format)
		},
	}
	listCmd.Flags().StringVarP(&format, "output", "o", "table", "table, yaml or json")
	return listCmd
}

func writeSnapshot(out *ux.Printer, snap registry.Snapshot, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(snap.Devices)
	case "yaml":
		enc := yaml.NewEncoder(out.Writer())
		enc.SetIndent(2)
		if err := enc.Encode(snap.Devices); err != nil {
			return err
		}
		return enc.Close()
	}

	if len(snap.Devices) == 0 {
		out.Warning("no capture devices found")
		return nil
	}
	for _, dev := range snap.Devices {
		writeDeviceTable(out, dev)
	}
	return nil
}

var tableHeaders = []string{"ID", "NAME", "KIND", "MIN", "MAX", "STEP", "DEFAULT", "VALUE"}

// levelWidth is the width of the position bar in the rich table.
const levelWidth = 10

func controlRow(d control.Descriptor) []string {
	return []string{
		d.ID.String(),
		d.Name,
		d.Kind.String(),
		strconv.FormatInt(d.Minimum, 10),
		strconv.FormatInt(d.Maximum, 10),
		strconv.FormatInt(d.Step, 10),
		strconv.FormatInt(d.Default, 10),
		d.DisplayValue(),
	}
}

func writeDeviceTable(out *ux.Printer, dev registry.DeviceSnapshot) {
	if out.Mode() == ux.ModePlain {
		w := out.Writer()
		for _, d := range dev.Controls {
			writeTabbed(w, append([]string{dev.Identifier}, controlRow(d)...))
		}
		return
	}

	if len(dev.Controls) == 0 {
		out.Box(dev.Identifier, "no adjustable controls")
		return
	}

	out.Title(dev.Identifier)
	rows := make([][]string, len(dev.Controls))
	for i, d := range dev.Controls {
		rows[i] = append(controlRow(d), ux.Bar(d.Ratio(), levelWidth, ux.ModeRich))
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ux.ColorTealDeep)).
		Headers(append(tableHeaders, "LEVEL")...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return ux.Styles.Subtitle.Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	fmt.Fprintln(out.Writer(), t.Render())
}

func writeTabbed(w io.Writer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, f)
	}
	fmt.Fprintln(w)
}
