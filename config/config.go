package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"stripper/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DefaultPaths struct {
	ConfigDir     string
	LogPathApp    string
	LogPathServer string
	DBPath        string
	LogLevel      string
}

type Configuration struct {
	Strip struct {
		Mode     string `mapstructure:"mode"`
		LogMatch string `mapstructure:"log_match"`
		DryRun   bool   `mapstructure:"dry_run"`
	} `mapstructure:"strip"`
	Walk struct {
		SkipDirs  []string `mapstructure:"skip_dirs"`
		Gitignore bool     `mapstructure:"gitignore"`
		Include   []string `mapstructure:"include"`
	} `mapstructure:"walk"`
	History struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"history"`
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Server struct {
		Port    string `mapstructure:"port"`
		LogPath string `mapstructure:"log_path"`
	} `mapstructure:"server"`
	Logging struct {
		AppLogPath string `mapstructure:"app_log_path"`
		Level      string `mapstructure:"level"`
	} `mapstructure:"logging"`
}

var AppConfig Configuration

// ExpandTilde replaces a leading "~" with the user's home directory.
func ExpandTilde(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

func GetDefaultConfigPaths() DefaultPaths {
	var paths DefaultPaths
	userConfigDirBase, err := os.UserConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not get user config dir: %v. Using current directory.\n", err)
		userConfigDirBase = "."
	}

	userConfigDir, err := ExpandTilde(userConfigDirBase)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in user config dir '%s': %v. Using potentially literal path.\n", userConfigDirBase, err)
		userConfigDir = userConfigDirBase
	}

	paths.ConfigDir = filepath.Join(userConfigDir, "stripper")
	logDir := filepath.Join(paths.ConfigDir, "logs")

	paths.LogPathApp = filepath.Join(logDir, "app.log")
	paths.LogPathServer = filepath.Join(logDir, "server.log")
	paths.DBPath = filepath.Join(paths.ConfigDir, "history.db")
	paths.LogLevel = "INFO"
	return paths
}

// setDefaults registers every key with its default so that environment
// variables are picked up by Unmarshal even without a config file.
func setDefaults(v *viper.Viper, defaults DefaultPaths) {
	v.SetDefault("strip.mode", "both")
	v.SetDefault("strip.log_match", "prefix")
	v.SetDefault("strip.dry_run", false)
	v.SetDefault("walk.skip_dirs", []string{})
	v.SetDefault("walk.gitignore", false)
	v.SetDefault("walk.include", []string{})
	v.SetDefault("history.enabled", true)
	v.SetDefault("database.path", defaults.DBPath)
	v.SetDefault("server.port", "8779")
	v.SetDefault("server.log_path", defaults.LogPathServer)
	v.SetDefault("logging.app_log_path", defaults.LogPathApp)
	v.SetDefault("logging.level", defaults.LogLevel)
}

// loadDotEnv reads a .env file from the working directory, if present, into
// the process environment. Variables already set are not overridden.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: Could not load .env file: %v\n", err)
	}
}

// Load reads configuration into a fresh Configuration without touching
// AppConfig or the loggers. cfgFile may be empty.
func Load(cfgFile string) (Configuration, string, error) {
	var cfg Configuration
	v := viper.New()

	defaults := GetDefaultConfigPaths()
	setDefaults(v, defaults)

	if cfgFile != "" {
		expandedCfgFile, err := ExpandTilde(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in config file path '%s': %v. Trying original path.\n", cfgFile, err)
			expandedCfgFile = cfgFile
		}
		v.SetConfigFile(expandedCfgFile)
		v.SetConfigType("yaml")
	} else {
		v.AddConfigPath(defaults.ConfigDir)
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	loadDotEnv()
	v.AutomaticEnv()
	v.SetEnvPrefix("STRIPPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	configUsedMsg := "Using default/environment configuration."
	readErr := v.ReadInConfig()
	if readErr == nil {
		configUsedMsg = fmt.Sprintf("Using config file: %s", v.ConfigFileUsed())
	} else {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(readErr, &notFound) {
			if cfgFile != "" {
				fmt.Fprintf(os.Stderr, "Warning: Config file specified by flag (%s) not found: %v\n", cfgFile, readErr)
			}
		} else if cfgFile != "" {
			return cfg, "", fmt.Errorf("reading config file %s: %w", cfgFile, readErr)
		} else {
			fmt.Fprintf(os.Stderr, "Error reading config file %s: %v\n", v.ConfigFileUsed(), readErr)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, "", fmt.Errorf("unable to decode config into struct: %w", err)
	}

	for _, p := range []*string{&cfg.Database.Path, &cfg.Server.LogPath, &cfg.Logging.AppLogPath} {
		expanded, err := ExpandTilde(*p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in '%s': %v.\n", *p, err)
			continue
		}
		*p = expanded
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)
	return cfg, configUsedMsg, nil
}

// Init loads configuration into AppConfig, applies flag overrides and
// (re)initializes the global loggers.
func Init(cfgFile string, flagAppLogPath, flagServerLogPath, flagLogLevel string) error {
	cfg, configUsedMsg, err := Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: Error loading configuration: %v\n", err)
		return err
	}
	AppConfig = cfg

	if flagAppLogPath != "" {
		if expanded, err := ExpandTilde(flagAppLogPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in --app-log path '%s': %v. Using original path.\n", flagAppLogPath, err)
			AppConfig.Logging.AppLogPath = flagAppLogPath
		} else {
			AppConfig.Logging.AppLogPath = expanded
		}
	}
	if flagServerLogPath != "" {
		if expanded, err := ExpandTilde(flagServerLogPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in --server-log path '%s': %v. Using original path.\n", flagServerLogPath, err)
			AppConfig.Server.LogPath = flagServerLogPath
		} else {
			AppConfig.Server.LogPath = expanded
		}
	}
	if flagLogLevel != "" {
		AppConfig.Logging.Level = strings.ToUpper(flagLogLevel)
	}

	if err := logger.InitGlobalLoggers(AppConfig.Logging.AppLogPath, AppConfig.Server.LogPath, AppConfig.Logging.Level); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: Failed to initialize global loggers with final config: %v\n", err)
		return fmt.Errorf("failed to initialize global loggers with final config: %w", err)
	}

	logger.Info(configUsedMsg)
	if flagAppLogPath != "" || flagServerLogPath != "" || flagLogLevel != "" {
		logger.Info("Log path/level flags may have overridden config file/defaults.")
	}
	if !AppConfig.History.Enabled {
		logger.Info("Run history DISABLED; rewritten files will not be backed up.")
	}
	if AppConfig.Strip.DryRun {
		logger.Warn("strip.dry_run is set; no file will be written.")
	}

	logger.Debug("Final AppConfig Initialized: %+v", AppConfig)
	return nil
}
