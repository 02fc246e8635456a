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
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AleutianAI/camctl/cmd/camctl/config"
	"github.com/AleutianAI/camctl/pkg/ux"
	"github.com/AleutianAI/camctl/services/camctl/monitor"
	"github.com/AleutianAI/camctl/services/camctl/tui"
	"github.com/AleutianAI/camctl/services/camctl/v4l2"
)

// flagKeys maps persistent flags to configuration keys.
var flagKeys = map[string]string{
	"device":       "devices.paths",
	"glob":         "devices.glob",
	"simulate":     "devices.simulate",
	"sim-count":    "devices.sim_count",
	"sim-drift":    "devices.sim_drift",
	"tick":         "monitor.tick",
	"output-style": "monitor.output",
	"log-level":    "logging.level",
	"log-dir":      "logging.dir",
	"log-json":     "logging.json",
	"metrics-file": "telemetry.metrics_file",
	"trace-file":   "telemetry.trace_file",
}

// cli carries state shared by every command of one invocation.
type cli struct {
	v          *viper.Viper
	configPath string

	// isTerminal reports whether the TUI can take over stdin and stdout.
	isTerminal func() bool
}

func newRootCmd() *cobra.Command {
	return buildRootCmd(stdioIsTerminal)
}

func buildRootCmd(isTerminal func() bool) *cobra.Command {
	c := &cli{
		v:          viper.New(),
		isTerminal: isTerminal,
	}

	defaults := config.DefaultConfig()
	rootCmd := &cobra.Command{
		Use:   "camctl",
		Short: "Monitor and adjust camera controls from the terminal",
		Long: `camctl discovers V4L2 capture devices, shows every adjustable control as a
gauge and lets you step values with the keyboard. Values changed by other
programs or by the camera itself are picked up on every tick.

Keys: tab/shift+tab switch device, j/k select control, l/h increase/decrease,
q quits.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          c.runMonitor,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (default ~/.camctl/camctl.yaml if present)")
	pf.StringArray("device", nil, "device node to use instead of the glob (repeatable)")
	pf.String("glob", v4l2.DefaultGlob, "glob selecting device nodes")
	pf.Bool("simulate", false, "use simulated cameras instead of hardware")
	pf.Int("sim-count", defaults.Devices.SimCount, "number of simulated cameras")
	pf.Bool("sim-drift", false, "let simulated exposure wander so resync has work to do")
	pf.Duration("tick", defaults.Monitor.Tick, "resync period")
	pf.String("output-style", defaults.Monitor.Output, "list/watch output: auto, rich or plain")
	pf.String("log-level", defaults.Logging.Level, "debug, info, warn or error")
	pf.String("log-dir", "", "write JSON logs to this directory")
	pf.Bool("log-json", false, "log to stderr as JSON (list and watch)")
	pf.String("metrics-file", "", "write Prometheus metrics to this file on exit")
	pf.String("trace-file", "", "write OpenTelemetry spans to this file")

	for flag, key := range flagKeys {
		if err := c.v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind %s: %v", flag, err))
		}
	}

	rootCmd.AddCommand(
		c.newListCmd(),
		c.newWatchCmd(),
		c.newConfigCmd(),
	)
	return rootCmd
}

// =============================================================================
// camctl
// =============================================================================

func (c *cli) runMonitor(cmd *cobra.Command, _ []string) error {
	if !c.isTerminal() {
		return fmt.Errorf("%w: stdin and stdout must be a terminal (try 'camctl watch')", monitor.ErrNoTerminal)
	}

	a, err := newApp(c.v, c.configPath, cmd.OutOrStdout(), true)
	if err != nil {
		return err
	}
	defer closeApp(cmd, a)

	reg, err := a.discover(cmd.Context())
	if err != nil {
		return err
	}
	defer reg.Close()

	err = tui.Run(cmd.Context(), a.session(reg), nil)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func stdioIsTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

// =============================================================================
// camctl watch
// =============================================================================

func (c *cli) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print control changes detected on every tick until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(c.v, c.configPath, cmd.OutOrStdout(), false)
			if err != nil {
				return err
			}
			defer closeApp(cmd, a)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			reg, err := a.discover(ctx)
			if err != nil {
				return err
			}
			defer reg.Close()

			presenter := monitor.NewLinePresenter(a.out, ctx.Done())
			err = monitor.Run(ctx, a.session(reg), presenter)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

// =============================================================================
// camctl config
// =============================================================================

func (c *cli) newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the camctl config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				var err error
				if path, err = config.DefaultPath(); err != nil {
					return err
				}
			}
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			out := ux.NewPrinter(cmd.OutOrStdout(), ux.ParseMode(c.v.GetString("monitor.output")))
			out.Success("wrote " + path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	configCmd.AddCommand(initCmd)
	return configCmd
}

func closeApp(cmd *cobra.Command, a *app) {
	if err := a.Close(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "camctl: %v\n", err)
	}
}
