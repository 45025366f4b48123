package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yanqian/betterrest/internal/bootstrap"
	"github.com/yanqian/betterrest/internal/domain/bedtime"
	"github.com/yanqian/betterrest/internal/infra/config"
	"github.com/yanqian/betterrest/pkg/logger"
)

var errEstimationFailed = errors.New("estimation failed")

type estimateOptions struct {
	wake      string
	sleepGoal float64
	coffee    int
	clock     string
	modelPath string
	logLevel  string
}

func newEstimateCmd() *cobra.Command {
	opts := estimateOptions{}
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Print the recommended bedtime for one wake time, sleep goal and coffee intake",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEstimate(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.wake, "wake", bedtime.DefaultWakeTime().String(), "Wake-up time as HH:MM")
	cmd.Flags().Float64Var(&opts.sleepGoal, "sleep", bedtime.DefaultSleepGoal, "Desired amount of sleep in hours (4-12, step 0.25)")
	cmd.Flags().IntVar(&opts.coffee, "coffee", bedtime.DefaultCoffee, "Daily coffee intake in cups (1-20)")
	cmd.Flags().StringVar(&opts.clock, "clock", "", "Clock style, 12h or 24h (defaults to bedtime.clockStyle)")
	cmd.Flags().StringVar(&opts.modelPath, "model", "", "Read the sleep model artifact from this file instead of the configured source")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "Log verbosity (debug, info, warn, error)")
	return cmd
}

func runEstimate(cmd *cobra.Command, opts estimateOptions) error {
	wake, err := bedtime.ParseWakeTime(opts.wake)
	if err != nil {
		return fail(cmd, err)
	}
	in := bedtime.Input{WakeTime: wake, SleepGoal: opts.sleepGoal, Coffee: opts.coffee}
	if err := in.Validate(); err != nil {
		return fail(cmd, err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fail(cmd, err)
	}
	if opts.modelPath != "" {
		cfg.Oracle.Source = config.OracleSourceFile
		cfg.Oracle.Path = opts.modelPath
	}
	style := bedtime.ClockStyle(cfg.Bedtime.ClockStyle)
	if opts.clock != "" {
		style = bedtime.ClockStyle(strings.ToLower(opts.clock))
	}
	if !style.Valid() {
		return fail(cmd, fmt.Errorf("unsupported clock style %q", opts.clock))
	}

	log := logger.NewWithWriter(cmd.ErrOrStderr(), opts.logLevel)
	source, cleanup, err := bootstrap.NewOracleLoader(cfg, log)
	if err != nil {
		log.Warn("oracle source unavailable", "error", err)
		fmt.Fprintln(cmd.OutOrStdout(), bedtime.ErrorMessage)
		return errEstimationFailed
	}
	defer cleanup()

	rec, err := bedtime.Estimate(cmd.Context(), source, in, style)
	if err != nil {
		log.Warn("bedtime estimation failed", "error", err)
		fmt.Fprintln(cmd.OutOrStdout(), bedtime.ErrorMessage)
		return errEstimationFailed
	}
	fmt.Fprintln(cmd.OutOrStdout(), rec.Bedtime)
	return nil
}

func fail(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	return err
}
