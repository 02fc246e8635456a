// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package tui renders the device monitor as a bubbletea program.
//
// # Description
//
// The model maps the monitor loop onto bubbletea: each key press becomes at
// most one monitor.Event handled by the Session, each tick message asks the
// Session whether a resync is due, and View renders the current snapshot as
// a row of device tabs above one gauge per control.
//
// # Thread Safety
//
// The model is only touched from the bubbletea event loop. Do not access it
// from other goroutines.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AleutianAI/camctl/pkg/ux"
	"github.com/AleutianAI/camctl/services/camctl/monitor"
)

// =============================================================================
// Messages
// =============================================================================

// tickMsg fires when the resync deadline may have passed.
type tickMsg time.Time

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(max(d, time.Millisecond), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// =============================================================================
// Model
// =============================================================================

// Model is the bubbletea model for the monitor.
type Model struct {
	ctx     context.Context
	session *monitor.Session
	keys    KeyMap

	gauge progress.Model
	help  help.Model

	width  int
	height int
}

// NewModel creates a model driving session. ctx is passed to every device
// operation the session performs.
func NewModel(ctx context.Context, session *monitor.Session) Model {
	gauge := progress.New(
		progress.WithSolidFill(string(ux.ColorTealPrimary)),
		progress.WithoutPercentage(),
	)
	gauge.EmptyColor = string(ux.ColorSlate)

	return Model{
		ctx:     ctx,
		session: session,
		keys:    DefaultKeyMap(),
		gauge:   gauge,
		help:    help.New(),
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tick(m.session.Timeout())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Help) {
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		ev, ok := m.keys.Event(msg)
		if !ok {
			return m, nil
		}
		m.session.Handle(m.ctx, ev)
		if m.session.Done() {
			return m, tea.Quit
		}
		return m, nil

	case tickMsg:
		m.session.ResyncIfDue(m.ctx)
		return m, tick(m.session.Timeout())
	}
	return m, nil
}

// =============================================================================
// Program
// =============================================================================

// Options configures Run. A nil *Options uses the process terminal.
type Options struct {
	// Input replaces stdin.
	Input io.Reader

	// Output replaces stdout.
	Output io.Writer
}

// Run shows the monitor in the alternate screen until the operator quits
// or ctx is cancelled.
//
// # Outputs
//
//   - error: nil on quit. Failures to take over the terminal wrap
//     monitor.ErrNoTerminal.
func Run(ctx context.Context, session *monitor.Session, opts *Options) error {
	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if opts != nil {
		if opts.Input != nil {
			programOpts = append(programOpts, tea.WithInput(opts.Input))
		}
		if opts.Output != nil {
			programOpts = append(programOpts, tea.WithOutput(opts.Output))
		}
	}

	p := tea.NewProgram(NewModel(ctx, session), programOpts...)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %w", monitor.ErrNoTerminal, err)
	}
	return nil
}
