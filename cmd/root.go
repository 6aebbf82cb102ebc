package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/quillforge/writefreely-go/config"
	"github.com/quillforge/writefreely-go/writefreely"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *writefreely.Client

	version   = "dev"
	buildTime = "unknown"
)

// SetVersion records build metadata for the version and upgrade commands.
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "wf",
	Short: "A command-line client for WriteFreely instances",
	Long: `wf is a CLI for WriteFreely and Write.as-compatible blogging platforms.
It can authenticate against an instance, publish and manage posts, and
organize collections, using a config file for instance and token settings.`,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or ~/.wf/config.yaml)")

	rootCmd.AddCommand(versionCmd)
}

// initializeApp initializes the configuration and the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	var opts []writefreely.Option
	if cfg.Instance.Timeout > 0 {
		opts = append(opts, writefreely.WithTimeout(time.Duration(cfg.Instance.Timeout)*time.Second))
	}
	if cfg.Instance.Token != "" {
		opts = append(opts, writefreely.WithToken(cfg.Instance.Token))
	}
	userAgent := cfg.Instance.UserAgent
	if userAgent == "" {
		userAgent = "wf/" + version
	}
	opts = append(opts, writefreely.WithUserAgent(userAgent))

	client, err = writefreely.NewClient(cfg.Instance.URL, logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create WriteFreely client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; color only when writing to a real terminal
	useColor := cfg.Color && isatty.IsTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !useColor,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// versionCmd prints build information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// no config or client needed
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wf %s (built %s)\n", version, buildTime)
	},
}
