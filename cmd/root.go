package cmd

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	config "task-board.com/task-board/internal/configs"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:           "task-board",
	Short:         "Task board service with a recipe browser",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil {
			log.Debug(".env file not found, using environment variables")
		}
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", os.Getenv("TASKBOARD_CONFIG_FILE"), "YAML config file overlaid on the environment")
}

// loadConfig reads the configuration and applies the log level. Invalid
// configuration is fatal.
func loadConfig() config.Config {
	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	return cfg
}
