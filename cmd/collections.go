package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quillforge/writefreely-go/writefreely"
)

var (
	collAlias   string
	collTitle   string
	pinPosition int
	noConfirm   bool
)

// collectionsCmd groups collection commands
var collectionsCmd = &cobra.Command{
	Use:     "collections",
	Aliases: []string{"coll"},
	Short:   "Manage collections",
}

var collectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your collections",
	RunE:  runCollectionsList,
}

var collectionsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new collection",
	Long:  `Create a new collection. At least one of --alias and --title is required.`,
	RunE:  runCollectionsCreate,
}

var collectionsGetCmd = &cobra.Command{
	Use:   "get <alias>",
	Short: "Show a collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionsGet,
}

var collectionsPostsCmd = &cobra.Command{
	Use:   "posts <alias>",
	Short: "List the posts in a collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionsPosts,
}

var collectionsDeleteCmd = &cobra.Command{
	Use:   "delete <alias>",
	Short: "Delete a collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionsDelete,
}

var collectionsPinCmd = &cobra.Command{
	Use:   "pin <alias> <post-id>...",
	Short: "Pin posts to a collection",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runCollectionsPin,
}

var collectionsUnpinCmd = &cobra.Command{
	Use:   "unpin <alias> <post-id>...",
	Short: "Unpin posts from a collection",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runCollectionsUnpin,
}

func init() {
	collectionsCmd.AddCommand(collectionsListCmd)
	collectionsCmd.AddCommand(collectionsCreateCmd)
	collectionsCmd.AddCommand(collectionsGetCmd)
	collectionsCmd.AddCommand(collectionsPostsCmd)
	collectionsCmd.AddCommand(collectionsDeleteCmd)
	collectionsCmd.AddCommand(collectionsPinCmd)
	collectionsCmd.AddCommand(collectionsUnpinCmd)
	rootCmd.AddCommand(collectionsCmd)

	collectionsCreateCmd.Flags().StringVar(&collAlias, "alias", "", "collection alias")
	collectionsCreateCmd.Flags().StringVar(&collTitle, "title", "", "collection title")

	collectionsDeleteCmd.Flags().BoolVar(&noConfirm, "no-confirm", false, "skip confirmation prompt")

	collectionsPinCmd.Flags().IntVar(&pinPosition, "position", 0, "pin position (1-based, 0 for default)")
}

func runCollectionsList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	handler, err := client.User(ctx)
	if err != nil {
		return err
	}

	colls, err := handler.Collections(ctx)
	if err != nil {
		return err
	}

	if len(colls) == 0 {
		fmt.Println("No collections found.")
		return nil
	}

	for _, coll := range colls {
		fmt.Printf("• %s (%s)", coll.Title, coll.Alias)
		if coll.TotalPosts > 0 {
			fmt.Printf(" — %d posts", coll.TotalPosts)
		}
		fmt.Println()
	}
	return nil
}

func runCollectionsCreate(cmd *cobra.Command, args []string) error {
	coll, err := client.Collections().Create(context.Background(), collAlias, collTitle)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Created collection %s\n", coll.Alias)
	return nil
}

func runCollectionsGet(cmd *cobra.Command, args []string) error {
	coll, err := client.Collections().Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", coll.Title, coll.Alias)
	if coll.Description != "" {
		fmt.Println(coll.Description)
	}
	visibility := "unlisted"
	if coll.Public {
		visibility = "public"
	}
	fmt.Printf("Visibility: %s\n", visibility)
	if coll.TotalPosts > 0 {
		fmt.Printf("Posts: %d\n", coll.TotalPosts)
	}
	return nil
}

func runCollectionsPosts(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	coll, err := client.Collections().Get(ctx, args[0])
	if err != nil {
		return err
	}

	posts, err := coll.Posts(ctx)
	if err != nil {
		return err
	}

	if len(posts) == 0 {
		fmt.Println("No posts in this collection.")
		return nil
	}

	fmt.Printf("Found %d posts in %s:\n", len(posts), coll.Alias)
	fmt.Println(strings.Repeat("-", 80))
	for _, post := range posts {
		printPostLine(post)
	}
	return nil
}

func runCollectionsDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	coll, err := client.Collections().Get(ctx, args[0])
	if err != nil {
		return err
	}

	if !noConfirm {
		fmt.Printf("Delete collection %q and all its posts? [y/N]: ", coll.Alias)
		var response string
		fmt.Scanln(&response)
		if strings.ToLower(strings.TrimSpace(response)) != "y" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := coll.Delete(ctx); err != nil {
		return err
	}

	fmt.Printf("✓ Deleted collection %s\n", args[0])
	return nil
}

func runCollectionsPin(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	coll, err := client.Collections().Get(ctx, args[0])
	if err != nil {
		return err
	}

	pins := make([]writefreely.PinPost, 0, len(args)-1)
	for _, id := range args[1:] {
		pin := writefreely.PinPost{ID: id}
		if pinPosition > 0 {
			position := pinPosition
			pin.Position = &position
		}
		pins = append(pins, pin)
	}

	results, err := coll.PinPosts(ctx, pins)
	if err != nil {
		return err
	}

	reportPinResults(results)
	return nil
}

func runCollectionsUnpin(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	coll, err := client.Collections().Get(ctx, args[0])
	if err != nil {
		return err
	}

	results, err := coll.UnpinPosts(ctx, args[1:])
	if err != nil {
		return err
	}

	reportPinResults(results)
	return nil
}

func reportPinResults(results []writefreely.PinResult) {
	for _, result := range results {
		if result.Succeeded() {
			fmt.Printf("✓ %s\n", result.ID)
		} else {
			fmt.Printf("✗ code %d: %s\n", result.Code, result.ErrorMsg)
		}
	}
}
