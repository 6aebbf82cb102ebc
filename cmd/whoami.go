package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/quillforge/writefreely-go/writefreely"
)

// whoamiCmd represents the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated user and account stats",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	handler, err := client.User(ctx)
	if err != nil {
		return err
	}

	info := handler.Info()
	if info == nil {
		fmt.Println("Authenticated, but user info could not be fetched.")
	} else {
		fmt.Printf("Username: %s\n", info.Username)
		if info.Email != "" {
			fmt.Printf("Email:    %s\n", info.Email)
		}
		if info.Created != nil {
			fmt.Printf("Joined:   %s\n", info.Created.Format("2006-01-02"))
		}
	}

	// Fetch posts and collections concurrently
	var (
		posts []writefreely.Post
		colls []writefreely.Collection
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posts, err = handler.Posts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		colls, err = handler.Collections(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to fetch account stats: %w", err)
	}

	fmt.Printf("\nPosts:       %d\n", len(posts))
	fmt.Printf("Collections: %d\n", len(colls))
	for _, coll := range colls {
		fmt.Printf("  • %s (%s)\n", coll.Title, coll.Alias)
	}

	return nil
}
