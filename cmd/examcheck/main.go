// Command examcheck replays every catalog sample against a running
// ExamPrep API and exits non-zero when any answer is wrong.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/okian/examprep/internal/examcheck"
	"github.com/spf13/cobra"
)

// Default configuration constants.
const (
	defaultBaseURL      = "http://localhost:8000"
	defaultCheckTimeout = 5 * time.Minute
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	config := &examcheck.Config{}

	cmd := &cobra.Command{
		Use:   "examcheck",
		Short: "Replay catalog samples against the ExamPrep API",
		Long: `Fetches every topic and sample from a running ExamPrep API, submits each
sample's data to POST /solve and compares the answer with the sample's
expected value. Exits non-zero when any sample fails or mismatches.`,
		Example: `  examcheck
  examcheck --url http://localhost:8000 --workers 8 --verbose
  examcheck --log check.log`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd.Context(), config)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&config.BaseURL, "url", defaultBaseURL, "Base URL of the service")
	flags.IntVar(&config.Workers, "workers", examcheck.DefaultWorkers, "Number of concurrent solve requests")
	flags.DurationVar(&config.Timeout, "timeout", examcheck.DefaultTimeout, "HTTP request timeout")
	flags.StringVar(&config.LogFile, "log", "", "Also write log output to this file")
	flags.BoolVar(&config.Verbose, "verbose", false, "Enable verbose logging")
	return cmd
}

func runCheck(parent context.Context, config *examcheck.Config) error {
	closer, err := examcheck.SetupLogging(config.LogFile, config.Verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to setup logging:", err)
		return err
	}
	defer closer.Close()

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, defaultCheckTimeout)
	defer cancel()

	if _, err := examcheck.Run(ctx, config); err != nil {
		fmt.Fprintln(os.Stderr, "Check failed:", err)
		return err
	}
	return nil
}
