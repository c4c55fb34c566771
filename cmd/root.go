package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/skinstore/internal/config"
	"github.com/zjrosen/skinstore/internal/log"
	"github.com/zjrosen/skinstore/internal/paths"
)

const defaultConfigPath = ".skinstore/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	dataDir   string
	debugFlag bool
	cfg       config.Config
	cfgErr    error

	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "skinstore",
	Short: "Save, load and apply skins from a persistent skin registry",
	Long: `skinstore keeps a named registry of skins (texture, cape and geometry)
in a single binary file.

  load <json> <png> <geometryName>   make a skin from files the current skin
  save <name>                        save the current skin under a new name
  test <name>                        make a saved skin the current skin`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logCleanup != nil {
			logCleanup()
			logCleanup = nil
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .skinstore/config.yaml, then ~/.config/skinstore/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "",
		"directory relative paths resolve against")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write a debug log")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("data_dir", defaults.DataDir)
	viper.SetDefault("store_file", defaults.StoreFile)
	viper.SetDefault("live_slot", defaults.LiveSlot)
	viper.SetDefault("geometry_prefix", defaults.GeometryPrefix)
	viper.SetDefault("corrupt_store", defaults.CorruptStore)
	viper.SetDefault("log.file", defaults.Log.File)
	viper.SetDefault("log.level", defaults.Log.Level)

	viper.SetEnvPrefix("SKINSTORE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if flag := rootCmd.PersistentFlags().Lookup("data-dir"); flag != nil && flag.Changed {
		_ = viper.BindPFlag("data_dir", flag)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .skinstore/config.yaml (current directory)
		// 2. ~/.config/skinstore/config.yaml (user config)
		if _, err := os.Stat(defaultConfigPath); err == nil {
			viper.SetConfigFile(defaultConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "skinstore"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	cfgErr = nil
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			cfgErr = fmt.Errorf("reading config: %w", err)
		}
	}

	cfg = config.Config{}
	if err := viper.Unmarshal(&cfg); err != nil && cfgErr == nil {
		cfgErr = fmt.Errorf("decoding config: %w", err)
	}
}

// setup validates the loaded config and starts debug logging.
func setup(_ *cobra.Command, _ []string) error {
	if cfgErr != nil {
		return cfgErr
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if debugFlag || os.Getenv("SKINSTORE_DEBUG") != "" {
		logPath := paths.Resolve(cfg.DataDir, cfg.Log.File)
		cleanup, err := log.Init(logPath)
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		logCleanup = cleanup
		level, _ := log.ParseLevel(cfg.Log.Level)
		log.SetMinLevel(level)
		log.Info(log.CatConfig, "skinstore starting", "version", version, "config", viper.ConfigFileUsed(), "dataDir", cfg.DataDir)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
