package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaegashi/readerops/config/readercfg"
	"github.com/yaegashi/readerops/domain/model"
	"github.com/yaegashi/readerops/usecase/reminder"
)

func newCmdReminder() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "reminder",
		Short:              "Manage blogging reminders",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE:               func(cmd *cobra.Command, args []string) error { return fmt.Errorf("invalid command") },
	}
	cmd.PersistentFlags().Int64("blog", 0, "Blog (site) ID")
	cmd.AddCommand(newCmdReminderShow(), newCmdReminderToggle(), newCmdReminderSet())
	return cmd
}

func getReminderBlogID(cmd *cobra.Command) (int64, error) {
	blogID, _ := cmd.Flags().GetInt64("blog")
	if blogID <= 0 {
		return 0, fmt.Errorf("--blog is required")
	}
	return blogID, nil
}

// writeReminder prints the schedule with its summary rendered as markdown.
func writeReminder(cmd *cobra.Command, out *reminder.Output) error {
	view := struct {
		*reminder.Output
		Message string `json:"message"`
	}{out, out.Summary.Markdown()}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}

func newCmdReminderShow() *cobra.Command {
	return &cobra.Command{
		Use:                "show",
		Short:              "Show the reminder schedule of a blog",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := buildReminderUseCase(cmd)
			if err != nil {
				return err
			}
			blogID, err := getReminderBlogID(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), actionTimeout)
			defer cancel()
			out, err := uc.Get(ctx, &reminder.GetInput{BlogID: blogID})
			if err != nil {
				return err
			}
			return writeReminder(cmd, out)
		},
	}
}

func newCmdReminderToggle() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "toggle",
		Short:              "Toggle one reminder day",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			uc, err := buildReminderUseCase(cmd)
			if err != nil {
				return err
			}
			blogID, err := getReminderBlogID(cmd)
			if err != nil {
				return err
			}
			dayStr, _ := cmd.Flags().GetString("day")
			day, err := model.ParseWeekday(dayStr)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), actionTimeout)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "reminder.toggle", fmt.Sprint(blogID))
			defer func() { cleanup(err) }()

			out, err := uc.ToggleDay(ctx, &reminder.ToggleDayInput{BlogID: blogID, Day: day})
			if err != nil {
				return err
			}
			return writeReminder(cmd, out)
		},
	}
	cmd.Flags().String("day", "", "Day of week (mon..sun)")
	_ = cmd.MarkFlagRequired("day")
	return cmd
}

func newCmdReminderSet() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "set",
		Short:              "Replace the reminder schedule",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			uc, err := buildReminderUseCase(cmd)
			if err != nil {
				return err
			}
			blogID, err := getReminderBlogID(cmd)
			if err != nil {
				return err
			}
			dayStrs, _ := cmd.Flags().GetStringSlice("days")
			var days []time.Weekday
			for _, s := range dayStrs {
				if s = strings.TrimSpace(s); s == "" {
					continue
				}
				d, err := model.ParseWeekday(s)
				if err != nil {
					return err
				}
				days = append(days, d)
			}
			clock, _ := cmd.Flags().GetString("time")
			hour, minute, err := readercfg.ParseClock(clock)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), actionTimeout)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "reminder.set", fmt.Sprint(blogID))
			defer func() { cleanup(err) }()

			out, err := uc.Update(ctx, &reminder.UpdateInput{BlogID: blogID, Days: days, Hour: hour, Minute: minute})
			if err != nil {
				return err
			}
			return writeReminder(cmd, out)
		},
	}
	cmd.Flags().StringSlice("days", nil, "Days of week, comma separated (mon,wed,fri)")
	cmd.Flags().String("time", "10:00", "Time of day (HH:MM)")
	return cmd
}
