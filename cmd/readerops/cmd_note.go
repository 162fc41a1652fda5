package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yaegashi/readerops/usecase/note"
)

func newCmdNote() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "note",
		Short:              "Manage the cached notifications",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE:               func(cmd *cobra.Command, args []string) error { return fmt.Errorf("invalid command") },
	}
	cmd.AddCommand(newCmdNoteList(), newCmdNoteGet(), newCmdNoteImport(), newCmdNotePrune())
	return cmd
}

func newCmdNoteList() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "list",
		Short:              "List the latest notifications",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			noteUC, err := buildNoteUseCase(cmd)
			if err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("limit")
			ctx, cancel := context.WithTimeout(cmd.Context(), actionTimeout)
			defer cancel()
			out, err := noteUC.Latest(ctx, &note.LatestInput{Limit: limit})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out.Notes)
		},
	}
	cmd.Flags().Int("limit", note.DefaultLatestLimit, "Maximum number of notifications")
	return cmd
}

func newCmdNoteGet() *cobra.Command {
	return &cobra.Command{
		Use:                "get <note-id>",
		Short:              "Show a notification",
		Args:               cobra.ExactArgs(1),
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			noteUC, err := buildNoteUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), actionTimeout)
			defer cancel()
			out, err := noteUC.Get(ctx, &note.GetInput{ID: args[0]})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}

func newCmdNoteImport() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "import <file>...",
		Short:              "Import notifications from API payload files",
		Args:               cobra.MinimumNArgs(1),
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			noteUC, err := buildNoteUseCase(cmd)
			if err != nil {
				return err
			}
			clearFirst, _ := cmd.Flags().GetBool("clear")

			ctx, cancel := context.WithTimeout(cmd.Context(), actionTimeout)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "note.import", fmt.Sprint(len(args)))
			defer func() { cleanup(err) }()

			payloads := make([]string, len(args))
			g, gctx := errgroup.WithContext(ctx)
			for i, path := range args {
				g.Go(func() error {
					if err := gctx.Err(); err != nil {
						return err
					}
					data, err := os.ReadFile(path)
					if err != nil {
						return fmt.Errorf("read %s: %w", path, err)
					}
					payloads[i] = string(data)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			total := 0
			for i, payload := range payloads {
				out, err := noteUC.Import(ctx, &note.ImportInput{Payload: payload, ClearBeforeSaving: clearFirst && i == 0})
				if err != nil {
					return fmt.Errorf("import %s: %w", args[i], err)
				}
				total += out.Saved
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(note.SaveOutput{Saved: total})
		},
	}
	cmd.Flags().Bool("clear", false, "Clear cached notifications before importing")
	return cmd
}

func newCmdNotePrune() *cobra.Command {
	return &cobra.Command{
		Use:                "prune-placeholders",
		Short:              "Remove placeholder notifications",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			noteUC, err := buildNoteUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), actionTimeout)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "note.prune", "")
			defer func() { cleanup(err) }()
			return noteUC.RemovePlaceholders(ctx)
		},
	}
}
