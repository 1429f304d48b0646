package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/metacatalog/timefmt/internal/datetime"
	"github.com/metacatalog/timefmt/internal/domain"
	"github.com/metacatalog/timefmt/internal/locale"
	"github.com/metacatalog/timefmt/internal/observability"
)

// cli holds the persistent flags shared by every subcommand.
type cli struct {
	clock    domain.Clock
	locale   string
	timezone string
	logLevel string
	logger   *slog.Logger
}

// newRootCmd builds the command tree. clock backs every "now"-relative
// subcommand.
func newRootCmd(clock domain.Clock) *cobra.Command {
	c := &cli{clock: clock}

	root := &cobra.Command{
		Use:           "timefmt",
		Short:         "Locale-aware date, time and duration formatting",
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			c.logger = observability.InitLogger(observability.LogConfig{
				Level:       c.logLevel,
				Format:      "text",
				ServiceName: "timefmt",
				Output:      cmd.ErrOrStderr(),
			})
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.locale, "locale", "l", string(locale.Default), "display locale, e.g. en-US, fr-FR, pt_br")
	flags.StringVar(&c.timezone, "tz", "Local", "IANA zone instants are rendered in")
	flags.StringVar(&c.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		c.formatCmd(),
		c.dateCmd(),
		c.longCmd(),
		c.customCmd(),
		c.relativeCmd(),
		c.calendarCmd(),
		c.intervalCmd(),
		c.durationCmd(),
		c.daysCmd(),
		c.patternCmd(),
		c.timezoneCmd(),
		c.nowCmd(),
		c.localesCmd(),
	)
	return root
}

// formatter builds a Formatter from the persistent flags.
func (c *cli) formatter() (*datetime.Formatter, error) {
	tag, err := locale.Parse(c.locale)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(c.timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTimezone, c.timezone)
	}
	if c.logger != nil {
		c.logger.Debug("formatter ready",
			slog.String("locale", tag.String()),
			slog.String("timezone", loc.String()),
		)
	}
	return datetime.New(
		datetime.WithClock(c.clock),
		datetime.WithLocation(loc),
		datetime.WithLocale(tag),
	), nil
}

// printf writes one line to the command's output.
func printf(cmd *cobra.Command, format string, args ...any) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
}

func parseMillis(name, s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", domain.ErrInvalidInput, name, s)
	}
	return v, nil
}
