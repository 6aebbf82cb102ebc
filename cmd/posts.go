package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quillforge/writefreely-go/filter"
	"github.com/quillforge/writefreely-go/writefreely"
)

var (
	filterExpr     string
	preset         string
	postTitle      string
	postBody       string
	postCollection string
	postFont       string
	postLang       string
	postToken      string
)

// postsCmd groups post commands
var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Manage posts",
}

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your posts, optionally filtered",
	Long: `List all posts belonging to the authenticated user that match the
filter expression, for example:

  wf posts list --filter 'Views > 100 && HasTag("golang")'`,
	RunE: runPostsList,
}

var postsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single post",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostsGet,
}

var postsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a new post",
	Long: `Publish a new post from --body or standard input. With --collection the
post is created directly in that collection.`,
	RunE: runPostsCreate,
}

var postsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a post",
	Long: `Delete a post. When not logged in, pass the post's edit token with
--token to delete an anonymous post.`,
	Args: cobra.ExactArgs(1),
	RunE: runPostsDelete,
}

var postsMoveCmd = &cobra.Command{
	Use:   "move <id> <collection>",
	Short: "Move a post into a collection",
	Args:  cobra.ExactArgs(2),
	RunE:  runPostsMove,
}

func init() {
	postsCmd.AddCommand(postsListCmd)
	postsCmd.AddCommand(postsGetCmd)
	postsCmd.AddCommand(postsCreateCmd)
	postsCmd.AddCommand(postsDeleteCmd)
	postsCmd.AddCommand(postsMoveCmd)
	rootCmd.AddCommand(postsCmd)

	postsListCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	postsListCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")

	postsCreateCmd.Flags().StringVar(&postTitle, "title", "", "post title")
	postsCreateCmd.Flags().StringVar(&postBody, "body", "", "post body (read from stdin when omitted)")
	postsCreateCmd.Flags().StringVar(&postCollection, "collection", "", "publish into this collection")
	postsCreateCmd.Flags().StringVar(&postFont, "font", "", "post font (sans/serif/wrap/mono/code)")
	postsCreateCmd.Flags().StringVar(&postLang, "lang", "", "post language code")

	postsDeleteCmd.Flags().StringVar(&postToken, "token", "", "post edit token for anonymous posts")
	postsMoveCmd.Flags().StringVar(&postToken, "token", "", "post edit token for anonymous posts")
}

func runPostsList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	handler, err := client.User(ctx)
	if err != nil {
		return err
	}

	posts, err := handler.Posts(ctx)
	if err != nil {
		return err
	}

	// Apply a filter when one is configured
	if expr := resolveFilterExpression(); expr != "" {
		logger.Debug().Str("filter", expr).Msg("Filtering posts")

		f, err := filter.Compile(expr)
		if err != nil {
			return err
		}
		posts, err = f.Apply(posts)
		if err != nil {
			return err
		}
	}

	if len(posts) == 0 {
		fmt.Println("No posts found.")
		return nil
	}

	fmt.Printf("Found %d posts:\n", len(posts))
	fmt.Println(strings.Repeat("-", 80))
	for _, post := range posts {
		printPostLine(post)
	}

	return nil
}

func runPostsGet(cmd *cobra.Command, args []string) error {
	post, err := client.Posts().Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	if post.Title != "" {
		fmt.Printf("# %s\n\n", post.Title)
	}
	fmt.Println(post.Body)
	if len(post.Tags) > 0 {
		fmt.Printf("\nTags: %s\n", strings.Join(post.Tags, ", "))
	}
	return nil
}

func runPostsCreate(cmd *cobra.Command, args []string) error {
	body := postBody
	if body == "" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read post body from stdin: %w", err)
		}
		body = strings.TrimSpace(string(raw))
	}
	if body == "" {
		return fmt.Errorf("post body must not be empty")
	}

	draft := client.Posts().Create(body)
	draft.Title = postTitle
	draft.Font = writefreely.PostAppearance(postFont)
	draft.Lang = postLang
	if postCollection != "" {
		draft.InCollection(postCollection)
	}

	post, err := draft.Publish(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("✓ Published post %s\n", post.ID)
	if post.Token != "" {
		fmt.Printf("Edit token (keep this to edit anonymously): %s\n", post.Token)
	}
	return nil
}

func runPostsDelete(cmd *cobra.Command, args []string) error {
	post := client.Posts().Ref(args[0], postToken)
	if err := post.Delete(context.Background()); err != nil {
		return err
	}

	fmt.Printf("✓ Deleted post %s\n", args[0])
	return nil
}

func runPostsMove(cmd *cobra.Command, args []string) error {
	post := client.Posts().Ref(args[0], postToken)

	result, err := post.MoveTo(context.Background(), args[1])
	if err != nil {
		return err
	}

	if !result.Succeeded() {
		return fmt.Errorf("move rejected (code %d): %s", result.Code, result.ErrorMsg)
	}
	fmt.Printf("✓ Moved post %s into %s\n", args[0], args[1])
	return nil
}

// resolveFilterExpression determines the filter expression to use
func resolveFilterExpression() string {
	// Priority: command line filter > preset > config default
	if filterExpr != "" {
		return filterExpr
	}
	if preset != "" {
		if expression, ok := cfg.Filter.Presets[preset]; ok {
			return expression
		}
		logger.Warn().Str("preset", preset).Msg("Preset not found in config")
		return ""
	}
	return cfg.Filter.DefaultExpression
}

func printPostLine(post writefreely.Post) {
	title := post.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Printf("• %s [%s]", title, post.ID)
	if post.Views > 0 {
		fmt.Printf(" — %d views", post.Views)
	}
	fmt.Println()
	if post.Created != nil {
		fmt.Printf("  Created: %s\n", post.Created.Format("2006-01-02"))
	}
	if len(post.Tags) > 0 {
		fmt.Printf("  Tags: %s\n", strings.Join(post.Tags, ", "))
	}
}
