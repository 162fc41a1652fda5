package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaegashi/readerops/domain/model"
	"github.com/yaegashi/readerops/internal/htmlmsg"
	"github.com/yaegashi/readerops/usecase/post"
)

func newCmdPost() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "post",
		Short:              "Like, bookmark and inspect reader posts",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE:               func(cmd *cobra.Command, args []string) error { return fmt.Errorf("invalid command") },
	}
	cmd.AddCommand(newCmdPostLike(true), newCmdPostLike(false), newCmdPostBookmark(), newCmdPostList(), newCmdPostGet())
	return cmd
}

func addPostKeyFlags(cmd *cobra.Command) {
	cmd.Flags().Int64("blog", 0, "Blog (site) ID")
	cmd.Flags().Int64("post", 0, "Post ID")
	_ = cmd.MarkFlagRequired("blog")
	_ = cmd.MarkFlagRequired("post")
}

func getPostKey(cmd *cobra.Command) model.PostKey {
	blogID, _ := cmd.Flags().GetInt64("blog")
	postID, _ := cmd.Flags().GetInt64("post")
	return model.PostKey{BlogID: blogID, PostID: postID}
}

// postLabel names a post in user-facing messages.
func postLabel(p *model.Post) string {
	switch {
	case p == nil:
		return "the post"
	case p.Title != "":
		return p.Title
	case p.URL != "":
		return p.URL
	default:
		return fmt.Sprintf("post %d", p.ID)
	}
}

func newCmdPostLike(liked bool) *cobra.Command {
	use, short, op, key := "like", "Like a post", "post.like", htmlmsg.KeyPostLiked
	if !liked {
		use, short, op, key = "unlike", "Remove your like from a post", "post.unlike", htmlmsg.KeyPostUnliked
	}
	cmd := &cobra.Command{
		Use:                use,
		Short:              short,
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			postUC, err := buildPostUseCase(cmd)
			if err != nil {
				return err
			}
			k := getPostKey(cmd)
			force, _ := cmd.Flags().GetBool("force")

			ctx, cancel := context.WithTimeout(cmd.Context(), actionTimeout)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, op, fmt.Sprintf("%d/%d", k.BlogID, k.PostID))
			defer func() { cleanup(err) }()

			seq, err := postUC.Like(ctx, &post.LikeInput{BlogID: k.BlogID, PostID: k.PostID, Liked: liked, Force: force})
			if err != nil {
				return err
			}
			return writeOutcomes(cmd, op, seq, func(p *model.Post) htmlmsg.Message {
				return formatter.Format(key, postLabel(p))
			})
		},
	}
	addPostKeyFlags(cmd)
	cmd.Flags().Bool("force", false, "Send the request even when local state already matches")
	return cmd
}

func newCmdPostBookmark() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "bookmark",
		Short:              "Toggle the saved state of a post",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			postUC, err := buildPostUseCase(cmd)
			if err != nil {
				return err
			}
			k := getPostKey(cmd)
			fromList, _ := cmd.Flags().GetBool("from-list")

			ctx, cancel := context.WithTimeout(cmd.Context(), actionTimeout)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "post.bookmark", fmt.Sprintf("%d/%d", k.BlogID, k.PostID))
			defer func() { cleanup(err) }()

			seq, err := postUC.ToggleBookmark(ctx, &post.BookmarkInput{BlogID: k.BlogID, PostID: k.PostID, FromBookmarkList: fromList})
			if err != nil {
				return err
			}
			return writeOutcomes(cmd, "post.bookmark", seq, func(p *model.Post) htmlmsg.Message {
				if p != nil && !p.IsBookmarked {
					return formatter.Format(htmlmsg.KeyPostUnsaved, postLabel(p))
				}
				return formatter.Format(htmlmsg.KeyPostSaved, postLabel(p))
			})
		},
	}
	addPostKeyFlags(cmd)
	cmd.Flags().Bool("from-list", false, "Invoked from the saved posts list")
	return cmd
}

func newCmdPostList() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "list",
		Short:              "List cached posts",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			postUC, err := buildPostUseCase(cmd)
			if err != nil {
				return err
			}
			blogID, _ := cmd.Flags().GetInt64("blog")
			bookmarked, _ := cmd.Flags().GetBool("bookmarked")
			ctx, cancel := context.WithTimeout(cmd.Context(), actionTimeout)
			defer cancel()
			out, err := postUC.List(ctx, &post.ListInput{BlogID: blogID, BookmarkedOnly: bookmarked})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out.Posts)
		},
	}
	cmd.Flags().Int64("blog", 0, "Only posts of this blog ID")
	cmd.Flags().Bool("bookmarked", false, "Only saved posts")
	return cmd
}

func newCmdPostGet() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "get",
		Short:              "Show a cached post",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			postUC, err := buildPostUseCase(cmd)
			if err != nil {
				return err
			}
			k := getPostKey(cmd)
			ctx, cancel := context.WithTimeout(cmd.Context(), actionTimeout)
			defer cancel()
			out, err := postUC.Get(ctx, &post.GetInput{BlogID: k.BlogID, PostID: k.PostID})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out.Post)
		},
	}
	addPostKeyFlags(cmd)
	return cmd
}
