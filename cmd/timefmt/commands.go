package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metacatalog/timefmt/internal/datetime"
	"github.com/metacatalog/timefmt/internal/locale"
)

// instantCmd builds a subcommand that renders one epoch-millisecond
// argument with render.
func (c *cli) instantCmd(use, short string, render func(*datetime.Formatter, int64) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <epoch-ms>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := parseMillis("instant", args[0])
			if err != nil {
				return err
			}
			f, err := c.formatter()
			if err != nil {
				return err
			}
			out, err := render(f, ms)
			if err != nil {
				return err
			}
			printf(cmd, "%s", out)
			return nil
		},
	}
}

func (c *cli) formatCmd() *cobra.Command {
	return c.instantCmd("format", "Medium date and short time", func(f *datetime.Formatter, ms int64) (string, error) {
		return f.FormatDateTime(&ms), nil
	})
}

func (c *cli) dateCmd() *cobra.Command {
	return c.instantCmd("date", "Medium date", func(f *datetime.Formatter, ms int64) (string, error) {
		return f.FormatDate(&ms), nil
	})
}

func (c *cli) longCmd() *cobra.Command {
	var pattern string
	cmd := c.instantCmd("long", "Fixed English long form", func(f *datetime.Formatter, ms int64) (string, error) {
		return f.FormatDateTimeLong(ms, pattern)
	})
	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "pattern overriding the default long form")
	return cmd
}

func (c *cli) customCmd() *cobra.Command {
	var pattern string
	cmd := c.instantCmd("custom", "Render with a caller pattern", func(f *datetime.Formatter, ms int64) (string, error) {
		return f.CustomFormatDateTime(&ms, pattern), nil
	})
	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "format pattern, e.g. yyyy-MM-dd HH:mm")
	return cmd
}

func (c *cli) relativeCmd() *cobra.Command {
	return c.instantCmd("relative", "Relative to now, e.g. \"3 hours ago\"", func(f *datetime.Formatter, ms int64) (string, error) {
		return f.RelativeTime(&ms), nil
	})
}

func (c *cli) calendarCmd() *cobra.Command {
	var base string
	cmd := c.instantCmd("calendar", "Calendar distance, e.g. \"Yesterday\"", func(f *datetime.Formatter, ms int64) (string, error) {
		if base == "" {
			return f.RelativeCalendar(ms, nil), nil
		}
		b, err := parseMillis("base", base)
		if err != nil {
			return "", err
		}
		return f.RelativeCalendar(ms, &b), nil
	})
	cmd.Flags().StringVar(&base, "base", "", "epoch ms to measure from (default now)")
	return cmd
}

func (c *cli) intervalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interval <start-ms> <end-ms>",
		Short: "Days and hours between two instants",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseMillis("start", args[0])
			if err != nil {
				return err
			}
			end, err := parseMillis("end", args[1])
			if err != nil {
				return err
			}
			printf(cmd, "%s", datetime.CalculateInterval(start, end))
			return nil
		},
	}
}

func (c *cli) durationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "duration <ms>",
		Short: "Largest-unit duration, e.g. \"1.50 hours\"",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := parseMillis("duration", args[0])
			if err != nil {
				return err
			}
			printf(cmd, "%s", datetime.FormatDuration(ms))
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "human <ms>",
			Short: "Compact duration, e.g. \"1h 1m 1s\"",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ms, err := parseMillis("duration", args[0])
				if err != nil {
					return err
				}
				printf(cmd, "%s", datetime.HumanReadableDuration(ms))
				return nil
			},
		},
		&cobra.Command{
			Use:   "clock <seconds>",
			Short: "HH:mm:ss clock duration",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := parseMillis("seconds", args[0])
				if err != nil {
					return err
				}
				printf(cmd, "%s", datetime.FormatTimeDurationFromSeconds(&s))
				return nil
			},
		},
	)
	return cmd
}

func (c *cli) daysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "days",
		Short: "Day arithmetic relative to now",
	}

	var future bool
	offset := &cobra.Command{
		Use:   "offset <n>",
		Short: "Now shifted by n calendar days, in epoch ms",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseMillis("days", args[0])
			if err != nil {
				return err
			}
			f, err := c.formatter()
			if err != nil {
				return err
			}
			if future {
				printf(cmd, "%d", f.EpochMillisForFutureDays(int(n)))
				return nil
			}
			printf(cmd, "%d", f.EpochMillisForPastDays(int(n)))
			return nil
		},
	}
	offset.Flags().BoolVar(&future, "future", false, "shift forward instead of back")

	cmd.AddCommand(
		c.instantCmd("remaining", "Whole days from now until the instant", func(f *datetime.Formatter, ms int64) (string, error) {
			return fmt.Sprint(f.DaysRemaining(ms)), nil
		}),
		offset,
	)
	return cmd
}

func (c *cli) patternCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pattern",
		Short: "Check and apply format patterns",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "validate <pattern>",
			Short: "Check that a pattern round-trips",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				f, err := c.formatter()
				if err != nil {
					return err
				}
				if err := f.ValidateDateFormat(args[0]); err != nil {
					return err
				}
				printf(cmd, "valid")
				return nil
			},
		},
		&cobra.Command{
			Use:   "parse <value> <pattern>",
			Short: "Parse a value written with a pattern into epoch ms",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				f, err := c.formatter()
				if err != nil {
					return err
				}
				ms, err := f.Parse(args[0], args[1])
				if err != nil {
					return err
				}
				printf(cmd, "%d", ms)
				return nil
			},
		},
	)
	return cmd
}

func (c *cli) timezoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timezone",
		Short: "Abbreviation of the selected zone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := c.formatter()
			if err != nil {
				return err
			}
			printf(cmd, "%s", f.TimeZone())
			return nil
		},
	}
}

func (c *cli) nowCmd() *cobra.Command {
	var unix bool
	cmd := &cobra.Command{
		Use:   "now",
		Short: "Current instant as ISO-8601 and epoch ms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := c.formatter()
			if err != nil {
				return err
			}
			if unix {
				printf(cmd, "%d", f.CurrentUnixInteger())
				return nil
			}
			printf(cmd, "%s %d", f.CurrentISODate(), f.CurrentMillis())
			return nil
		},
	}
	cmd.Flags().BoolVar(&unix, "unix", false, "print whole epoch seconds only")
	return cmd
}

func (c *cli) localesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List supported locales",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, tag := range locale.Supported() {
				printf(cmd, "%s", tag)
			}
			return nil
		},
	}
}
