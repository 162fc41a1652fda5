package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaegashi/readerops/domain/model"
	"github.com/yaegashi/readerops/internal/htmlmsg"
	"github.com/yaegashi/readerops/usecase/blog"
)

func newCmdBlog() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "blog",
		Short:              "Block, unblock and inspect blogs",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE:               func(cmd *cobra.Command, args []string) error { return fmt.Errorf("invalid command") },
	}
	cmd.AddCommand(newCmdBlogBlock(), newCmdBlogUndo(), newCmdBlogList(), newCmdBlogGet())
	return cmd
}

func newCmdBlogBlock() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "block",
		Short:              "Block a blog and drop its cached posts",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			blogUC, err := buildBlogUseCase(cmd)
			if err != nil {
				return err
			}
			blogID, _ := cmd.Flags().GetInt64("blog")
			force, _ := cmd.Flags().GetBool("force")

			ctx, cancel := context.WithTimeout(cmd.Context(), actionTimeout)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "blog.block", fmt.Sprint(blogID))
			defer func() { cleanup(err) }()

			// Resolve the display name before the block removes anything.
			label := fmt.Sprintf("blog %d", blogID)
			if out, gerr := blogUC.Get(ctx, &blog.GetInput{BlogID: blogID}); gerr == nil && out.Blog.Name != "" {
				label = out.Blog.Name
			}

			seq, err := blogUC.Block(ctx, &blog.BlockInput{BlogID: blogID, Force: force})
			if err != nil {
				return err
			}
			return writeOutcomes(cmd, "blog.block", seq, func(*model.BlockedBlogResult) htmlmsg.Message {
				return formatter.Format(htmlmsg.KeyBlogBlocked, label)
			})
		},
	}
	cmd.Flags().Int64("blog", 0, "Blog (site) ID")
	cmd.Flags().Bool("force", false, "Send the request even when the blog is already blocked")
	_ = cmd.MarkFlagRequired("blog")
	return cmd
}

// readBlockResult reads a block result from path ("-" for stdin). It accepts
// the bare result or the outcome lines printed by block, taking the snapshot
// of the LocalStateRecorded line.
func readBlockResult(cmd *cobra.Command, path string) (*model.BlockedBlogResult, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("read block result: %w", err)
		}
		defer f.Close()
		r = f
	}
	dec := json.NewDecoder(r)
	for {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("parse block result: %w", err)
		}
		var line struct {
			Kind     string                   `json:"kind"`
			Snapshot *model.BlockedBlogResult `json:"snapshot"`
		}
		if err := json.Unmarshal(raw, &line); err != nil {
			return nil, fmt.Errorf("parse block result: %w", err)
		}
		if line.Kind != "" {
			if line.Snapshot != nil && line.Snapshot.BlogID != 0 {
				return line.Snapshot, nil
			}
			continue
		}
		var res model.BlockedBlogResult
		if err := json.Unmarshal(raw, &res); err != nil {
			return nil, fmt.Errorf("parse block result: %w", err)
		}
		if res.BlogID != 0 {
			return &res, nil
		}
	}
	return nil, fmt.Errorf("no block result with a blogId found")
}

func newCmdBlogUndo() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "undo",
		Short:              "Undo a block from its recorded result",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			blogUC, err := buildBlogUseCase(cmd)
			if err != nil {
				return err
			}
			path, _ := cmd.Flags().GetString("result")
			res, err := readBlockResult(cmd, path)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), actionTimeout)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "blog.undo", fmt.Sprint(res.BlogID))
			defer func() { cleanup(err) }()

			out, err := blogUC.UndoBlock(ctx, &blog.UndoBlockInput{Result: res})
			if err != nil {
				return err
			}
			label := fmt.Sprintf("blog %d", res.BlogID)
			if g, gerr := blogUC.Get(ctx, &blog.GetInput{BlogID: res.BlogID}); gerr == nil && g.Blog.Name != "" {
				label = g.Blog.Name
			}
			view := struct {
				*blog.UndoBlockOutput
				Message string `json:"message"`
			}{out, formatter.Format(htmlmsg.KeyBlogUnblocked, label).Markdown()}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(view)
		},
	}
	cmd.Flags().String("result", "-", "Block result JSON file (- for stdin)")
	return cmd
}

func newCmdBlogList() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "list",
		Short:              "List blogs",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			blogUC, err := buildBlogUseCase(cmd)
			if err != nil {
				return err
			}
			blocked, _ := cmd.Flags().GetBool("blocked")
			ctx, cancel := context.WithTimeout(cmd.Context(), actionTimeout)
			defer cancel()
			out, err := blogUC.List(ctx, &blog.ListInput{BlockedOnly: blocked})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out.Blogs)
		},
	}
	cmd.Flags().Bool("blocked", false, "Only blocked blogs")
	return cmd
}

func newCmdBlogGet() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "get",
		Short:              "Show a blog",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			blogUC, err := buildBlogUseCase(cmd)
			if err != nil {
				return err
			}
			blogID, _ := cmd.Flags().GetInt64("blog")
			ctx, cancel := context.WithTimeout(cmd.Context(), actionTimeout)
			defer cancel()
			out, err := blogUC.Get(ctx, &blog.GetInput{BlogID: blogID})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out.Blog)
		},
	}
	cmd.Flags().Int64("blog", 0, "Blog (site) ID")
	_ = cmd.MarkFlagRequired("blog")
	return cmd
}
