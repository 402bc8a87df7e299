package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mcdev12/clubmanager/go/internal/config"
)

var (
	configPath string
	logLevel   string
	jsonLogs   bool

	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "clubmanager",
	Short: "Manage your fantasy football club and its transfers",
	Long: `clubmanager signs you in to the club API, shows your team and the
transfer market, lists and unlists your players, and buys listed players.

Run "clubmanager serve" to expose the same operations over HTTP with live
notifications on /ws/notifications.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Debug().Err(err).Msg("could not load .env file")
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}

		setupLogging(cfg.Level(), jsonLogs)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Write logs as JSON instead of console output")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(marketCmd)
	rootCmd.AddCommand(serveCmd)
}

func setupLogging(level zerolog.Level, asJSON bool) {
	if !asJSON {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	zerolog.SetGlobalLevel(level)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
