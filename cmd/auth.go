package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/quillforge/writefreely-go/config"
	"github.com/quillforge/writefreely-go/writefreely"
)

var loginPassword string

// authCmd groups session commands
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the session with the instance",
}

// loginCmd represents the auth login command
var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in and store the access token",
	Long: `Log in to the configured instance with a username and password.
On success the returned access token is written back to the config file,
so subsequent commands run authenticated.`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

// logoutCmd represents the auth logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Invalidate the current session",
	RunE:  runLogout,
}

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(authCmd)

	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password (prompted when omitted)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	username := args[0]

	password := loginPassword
	if password == "" {
		fmt.Printf("Password for %s: ", username)
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimSpace(string(raw))
	}
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}

	authed, err := client.Authenticate(context.Background(), writefreely.LoginAuth{
		Username: username,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	token, _ := authed.Token()
	if err := config.SaveToken(cfgFile, token); err != nil {
		logger.Warn().Err(err).Msg("Failed to store access token in config")
		fmt.Printf("Logged in, but the token could not be saved.\nAccess token: %s\n", token)
		return nil
	}

	client = authed
	fmt.Printf("✓ Logged in as %s\n", username)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	out, err := client.Logout(context.Background())
	if err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	if err := config.SaveToken(cfgFile, ""); err != nil {
		logger.Warn().Err(err).Msg("Failed to clear stored access token")
	}

	client = out
	fmt.Println("✓ Logged out")
	return nil
}
