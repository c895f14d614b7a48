package cmd

import (
	"fmt"
	"os"
	"stripper/config"
	"stripper/database"
	"stripper/logger"

	"github.com/spf13/cobra"
)

var (
	cfgFile           string
	dbPath            string // Bound to --dbpath flag
	appLogPathFlag    string
	serverLogPathFlag string
	logLevelFlag      string
)

var rootCmd = &cobra.Command{
	Use:   "stripper",
	Short: "Strip comment lines and debug statements from source files",
	Long: `stripper removes whole-line comments and bare console/print debug calls
from JavaScript, TypeScript, CSS, HTML and Python sources.

It works on a single file, on a document piped through stdin, or recursively
over a project tree, and writes back only the files whose content changed.
Rewritten files are backed up in a local history database so a run can be
restored later.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(cfgFile, appLogPathFlag, serverLogPathFlag, logLevelFlag); err != nil {
			return fmt.Errorf("failed to initialize config in PersistentPreRunE: %w", err)
		}
		if dbPath != "" {
			expandedPath, err := config.ExpandTilde(dbPath)
			if err != nil {
				logger.Error("Error expanding tilde in --dbpath flag '%s': %v. Using original.", dbPath, err)
				expandedPath = dbPath
			}
			config.AppConfig.Database.Path = expandedPath
			logger.Info("PersistentPreRunE: Using database path from --dbpath flag: '%s'", expandedPath)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if err := database.CloseDB(); err != nil {
			logger.Error("Closing history database: %v", err)
		}
	},
}

// openHistory opens the run history database when history is enabled.
// It returns false when history is disabled or the database cannot be opened;
// in the latter case the error is logged and commands continue without backups.
func openHistory() bool {
	if !config.AppConfig.History.Enabled {
		return false
	}
	if database.DB != nil {
		return true
	}
	path := config.AppConfig.Database.Path
	if path == "" {
		path = config.GetDefaultConfigPaths().DBPath
	}
	if err := database.InitDB(path); err != nil {
		logger.Error("History database unavailable at %s: %v", path, err)
		return false
	}
	logger.Info("History database initialized at: %s", path)
	return true
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/stripper/config.yaml or ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "dbpath", "", "path to the SQLite history database (overrides config/default)")
	rootCmd.PersistentFlags().StringVar(&appLogPathFlag, "app-log", "", "path for the application log file (overrides config/default)")
	rootCmd.PersistentFlags().StringVar(&serverLogPathFlag, "server-log", "", "path for the API server log file (overrides config/default)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: DEBUG, INFO, WARN, ERROR (overrides config/default)")
}
