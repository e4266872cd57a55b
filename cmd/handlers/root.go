/*
Copyright © 2025 Your Name

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package handlers

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"cadence/internal/config"
	"cadence/internal/logger"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	quiet   bool
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cfgFile, quiet = "", false
	opts := &generateOptions{}

	rootCmd := &cobra.Command{
		Use:   "cadence <theme>",
		Short: "Generate a social media content calendar from a theme",
		Long: `Cadence turns a brand theme into a day-by-day social media content calendar.

Each day gets a topic, a caption and a set of hashtags drawn from a
category matched to the theme (fitness, mental health, business,
technology, or a generic pool). Captions can optionally be rewritten by a
local or hosted language model; any caption the model cannot rewrite keeps
its template text.

Examples:
  # 30-day plan saved to content_calendar.csv
  cadence "Fitness for Busy Professionals"

  # 14-day plan as JSON
  cadence "Startup Growth Hacks" --days 14 --output plans/startup.json

  # Rewrite captions with a local llama.cpp model
  cadence "Mindful Mornings" --use-llm --model ~/models/mistral-7b-instruct.Q4_K_M.gguf

  # Preview an exported plan
  cadence show content_calendar.csv`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runGenerate(cmd, strings.Join(args, " "), opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .cadence.yaml in . or $HOME)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only print errors")
	opts.bind(rootCmd)

	rootCmd.AddCommand(NewShowCmd())
	rootCmd.AddCommand(NewCategoriesCmd())
	rootCmd.AddCommand(NewServeCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		stop()
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables and sets up logging.
func initConfig() error {
	config.Reset()
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	level := cfg.Logging.Level
	if quiet {
		level = "error"
	}
	logger.Setup(logger.Options{Level: level, Format: cfg.Logging.Format})

	if cfg.App.ConfigFile != "" {
		logger.Debug("Using config file", "path", cfg.App.ConfigFile)
	}
	return nil
}
