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
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AleutianAI/camctl/services/camctl/monitor"
)

// KeyMap binds keys to monitor events. It implements help.KeyMap.
type KeyMap struct {
	Quit            key.Binding
	NextDevice      key.Binding
	PreviousDevice  key.Binding
	NextControl     key.Binding
	PreviousControl key.Binding
	Increase        key.Binding
	Decrease        key.Binding
	Help            key.Binding
}

// DefaultKeyMap returns the vi-style bindings with arrow key aliases.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		NextDevice: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next device"),
		),
		PreviousDevice: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev device"),
		),
		NextControl: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "next control"),
		),
		PreviousControl: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "prev control"),
		),
		Increase: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "increase"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "decrease"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Decrease, k.Increase, k.NextDevice, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextDevice, k.PreviousDevice},
		{k.NextControl, k.PreviousControl},
		{k.Increase, k.Decrease},
		{k.Help, k.Quit},
	}
}

// Event translates a key press into a monitor event.
func (k KeyMap) Event(msg tea.KeyMsg) (monitor.Event, bool) {
	switch {
	case key.Matches(msg, k.Quit):
		return monitor.Quit, true
	case key.Matches(msg, k.NextDevice):
		return monitor.FocusNextDevice, true
	case key.Matches(msg, k.PreviousDevice):
		return monitor.FocusPreviousDevice, true
	case key.Matches(msg, k.NextControl):
		return monitor.FocusNextControl, true
	case key.Matches(msg, k.PreviousControl):
		return monitor.FocusPreviousControl, true
	case key.Matches(msg, k.Increase):
		return monitor.Increase, true
	case key.Matches(msg, k.Decrease):
		return monitor.Decrease, true
	}
	return 0, false
}
