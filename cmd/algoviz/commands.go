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
	"fmt"
	"log/slog"

	"github.com/AleutianAI/AlgoViz/cmd/algoviz/config"
	"github.com/AleutianAI/AlgoViz/pkg/logging"
	"github.com/AleutianAI/AlgoViz/pkg/ux"
	"github.com/AleutianAI/AlgoViz/services/visualizer"
	"github.com/spf13/cobra"
)

// Example inputs shown when no arguments are given.
const (
	defaultSortInput    = "5,3,8,4,2"
	defaultSearchInput  = "2,3,4,5,8"
	defaultSearchTarget = "5"
)

// --- Global Command Variables ---
var (
	configPath string
	logLevel   string
	outputMode string

	appConfig *config.Config
	appLogger *logging.Logger

	servePort  int
	serveDebug bool
	jsonOutput bool

	rootCmd = &cobra.Command{
		Use:   "algoviz",
		Short: "Step-by-step visualizations of bubble sort, binary search and an undo stack",
		Long: `AlgoViz runs textbook algorithms and shows every step they take.
Use the sort and search commands in a terminal, edit for the undo stack,
or serve for the browser UI and JSON API.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if appLogger != nil {
				return appLogger.Close()
			}
			return nil
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser UI and the JSON API",
		Args:  cobra.NoArgs,
		RunE:  runServe, // Defined in cmd_serve.go
	}

	sortCmd = &cobra.Command{
		Use:     "sort [numbers]",
		Short:   "Bubble sort a comma-separated list and print every step",
		Example: `  algoviz sort "5,3,8,4,2"`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runSort, // Defined in cmd_sort.go
	}

	searchCmd = &cobra.Command{
		Use:     "search [numbers] [target]",
		Short:   "Binary search a sorted list and print every step",
		Example: `  algoviz search "2,3,4,5,8" 5`,
		Args:    cobra.MaximumNArgs(2),
		RunE:    runSearch, // Defined in cmd_search.go
	}

	editCmd = &cobra.Command{
		Use:   "edit",
		Short: "Interactive text editor with stack-based undo",
		Long: `Type to edit. Every change pushes the previous text onto the undo stack.
  ctrl+z  undo
  ctrl+l  clear history
  esc     quit

When stdin is not a terminal, each input line is an edit; the lines
":undo" and ":clear" run the matching operation.`,
		Args: cobra.NoArgs,
		RunE: runEdit, // Defined in cmd_edit.go
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "algoviz", visualizer.ServiceVersion)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file (default ~/.algoviz/algoviz.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn, error (overrides the config file)")
	rootCmd.PersistentFlags().StringVar(&outputMode, "output", "",
		"Output style: rich, plain, or machine (default: rich on a terminal)")

	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (overrides server.port)")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Run gin in debug mode")

	rootCmd.AddCommand(sortCmd)
	sortCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")

	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")

	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration and installs the logger for every command.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	levelName := cfg.Logging.Level
	if logLevel != "" {
		levelName = logLevel
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return err
	}

	appLogger = logging.New(logging.Config{
		Level:   level,
		LogDir:  cfg.Logging.Dir,
		Service: "algoviz",
		JSON:    cfg.Logging.JSON,
	})
	slog.SetDefault(appLogger.Slog())

	if outputMode != "" {
		ux.SetMode(ux.ParseMode(outputMode))
	} else {
		ux.InitMode()
	}

	appConfig = cfg
	return nil
}

func serviceConfig(cfg *config.Config) visualizer.ServiceConfig {
	return visualizer.ServiceConfig{
		MaxValues:    cfg.Limits.MaxValues,
		MaxTextBytes: cfg.Limits.MaxTextBytes,
		MaxSessions:  cfg.Limits.MaxSessions,
		SessionTTL:   cfg.Limits.SessionTTL,
	}
}

func newService() *visualizer.Service {
	return visualizer.NewService(serviceConfig(appConfig)).WithLogger(appLogger.Slog())
}
