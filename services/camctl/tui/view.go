// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AleutianAI/camctl/pkg/ux"
	"github.com/AleutianAI/camctl/services/camctl/control"
	"github.com/AleutianAI/camctl/services/camctl/registry"
)

// gaugeHeight is the number of lines one bordered gauge occupies.
const gaugeHeight = 4

// View implements tea.Model.
func (m Model) View() string {
	snap := m.session.Snapshot()

	var b strings.Builder
	b.WriteString(m.renderTabs(snap))
	b.WriteString("\n")

	footer := m.help.View(m.keys)
	bodyHeight := m.height - lipgloss.Height(footer) - 2

	dev, ok := snap.FocusedDevice()
	switch {
	case !ok:
		b.WriteString(ux.Styles.Muted.Render("No capture devices found."))
	case len(dev.Controls) == 0:
		b.WriteString(ux.Styles.Muted.Render(dev.Identifier + " has no adjustable controls."))
	default:
		b.WriteString(m.renderGauges(dev, bodyHeight))
	}

	b.WriteString("\n")
	b.WriteString(footer)
	return b.String()
}

// renderTabs draws one tab per device, the focused one highlighted.
func (m Model) renderTabs(snap registry.Snapshot) string {
	tabs := make([]string, 0, len(snap.Devices)+1)
	tabs = append(tabs, ux.Styles.Title.Render("camctl"))
	for i, d := range snap.Devices {
		style := ux.Styles.Tab
		if i == snap.Focused {
			style = ux.Styles.ActiveTab
		}
		tabs = append(tabs, style.Render(d.Identifier))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderGauges draws the window of controls that fits in height, scrolled so
// the focused control is always visible.
func (m Model) renderGauges(dev registry.DeviceSnapshot, height int) string {
	visible := max(height/gaugeHeight, 1)
	first := 0
	if dev.Focused >= visible {
		first = dev.Focused - visible + 1
	}
	last := min(first+visible, len(dev.Controls))

	gauges := make([]string, 0, last-first)
	for i := first; i < last; i++ {
		gauges = append(gauges, m.renderGauge(dev.Controls[i], i == dev.Focused))
	}
	return lipgloss.JoinVertical(lipgloss.Left, gauges...)
}

// renderGauge draws one control as a bordered box titled by its name, with a
// bar for its position inside the bounds and its display value.
func (m Model) renderGauge(d control.Descriptor, focused bool) string {
	box := ux.Styles.Box
	title := ux.Styles.Bold.Render(d.Name)
	if focused {
		box = ux.Styles.FocusedBox
		title = ux.Styles.Highlight.Render(d.Name)
	}
	if note := flagNote(d.Flags); note != "" {
		title += " " + ux.Styles.Muted.Render(note)
	}

	label := d.DisplayValue()
	inner := max(m.width-4, 20)
	content := inner - box.GetHorizontalPadding()

	// The bar and its label share one line; lipgloss wraps anything wider.
	gauge := m.gauge
	gauge.Width = max(content-lipgloss.Width(label)-1, 10)
	bar := gauge.ViewAs(d.Ratio()) + " " + label

	return box.Width(inner).Render(title + "\n" + bar)
}

func flagNote(f control.Flags) string {
	switch {
	case f.ReadOnly && f.Inactive:
		return "(read-only, inactive)"
	case f.ReadOnly:
		return "(read-only)"
	case f.Inactive:
		return "(inactive)"
	}
	return ""
}
