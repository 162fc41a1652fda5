package main

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yaegashi/readerops/config/envcfg"
	"github.com/yaegashi/readerops/internal/logging"
)

// envConfig holds READEROPS_* values, loaded in PersistentPreRunE.
var envConfig envcfg.Config

// logSink is the log destination opened for this run.
var logSink *logging.Sink

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "readerops",
		Short:   "Reader actions CLI",
		Long:    "Like, bookmark and block reader content, manage the notification cache and blogging reminders.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help by default when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.String("db-url", "file:readerops.yml", "Database URL (env READEROPS_DB_URL) (file:/path/to/readerops.yml | sqlite:/path/to.db)")
	pf.String("log-format", "human", "Log format (human|text|json) (env READEROPS_LOG_FORMAT)")
	pf.String("log-level", "INFO", "Log level (DEBUG|INFO|WARN|ERROR) (env READEROPS_LOG_LEVEL)")
	pf.String("log-output", "-", "Log output (-|none|auto|path) (env READEROPS_LOG_OUTPUT)")
	pf.String("log-dir", "", "Directory for auto and relative log files (env READEROPS_LOG_DIR)")
	pf.Int("log-retention-days", 7, "Days to keep auto-named log files")
	pf.Bool("offline", false, "Treat the network as unavailable (env READEROPS_OFFLINE)")

	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		cfg, err := envcfg.Load()
		if err != nil {
			return err
		}
		envConfig = cfg

		// env overrides flag
		opts := logging.Options{
			Format: flagOrEnv(c, "log-format", cfg.LogFormat),
			Level:  flagOrEnv(c, "log-level", cfg.LogLevel),
			Output: flagOrEnv(c, "log-output", cfg.LogOutput),
			Dir:    flagOrEnv(c, "log-dir", cfg.LogDir),
		}
		opts.RetentionDays, _ = c.Flags().GetInt("log-retention-days")
		sink, err := logging.Open(opts)
		if err != nil {
			return err
		}
		logSink = sink
		l := sink.Logger.With("runId", uuid.NewString())
		c.SetContext(logging.WithLogger(c.Context(), l))
		return nil
	}

	cmd.AddCommand(newCmdVersion())
	cmd.AddCommand(newCmdPost())
	cmd.AddCommand(newCmdBlog())
	cmd.AddCommand(newCmdNote())
	cmd.AddCommand(newCmdReminder())
	return cmd
}

// flagOrEnv returns env when set, otherwise the flag value.
func flagOrEnv(cmd *cobra.Command, name, env string) string {
	if env != "" {
		return env
	}
	if f := findFlag(cmd, name); f != nil {
		return f.Value.String()
	}
	return ""
}

func main() {
	root := newRootCmd()
	root.SetContext(context.Background())
	executed, err := root.ExecuteC()
	closeStore()
	if err != nil {
		ctx := root.Context()
		if executed != nil {
			ctx = executed.Context()
		}
		logging.FromContext(ctx).Errorf(ctx, "Failed: %s", err)
	}
	if logSink != nil {
		_ = logSink.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}
