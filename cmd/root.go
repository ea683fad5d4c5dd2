// Package cmd holds the webcheck command tree.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/webcheck/backend/config"
	"github.com/webcheck/backend/logging"
)

const appName = "webcheck"

var configPath string

// NewRootCmd builds the command tree. Running it without a subcommand starts
// the server.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Audit web pages for SEO, accessibility and performance",
		Long:          "webcheck fetches a page, scores its SEO, accessibility and performance, samples its links for breakage and suggests improvements.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file (yaml, json or toml)")

	root.AddCommand(newServeCmd(), newAnalyzeCmd(), newVersionCmd())
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadRuntime() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}
