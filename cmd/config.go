package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/josephgoksu/dayplan/internal/config"
	"github.com/spf13/viper"
)

const (
	configName = ".dayplan"
	envPrefix  = "DAYPLAN"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig config.AppConfig

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// A missing .env is fine.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix) // e.g. DAYPLAN_STORAGE_BACKEND
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	cfgFileFlag := viper.GetString("config")
	if cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		viper.SetConfigName(configName)
		if info, err := os.Stat(config.LocalDir); err == nil && info.IsDir() {
			viper.AddConfigPath(config.LocalDir)
		}
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			// Defaults and environment only.
		case cfgFileFlag != "" && os.IsNotExist(err):
			fmt.Fprintln(os.Stderr, "Error: Specified config file not found:", cfgFileFlag)
			os.Exit(1)
		default:
			fmt.Fprintln(os.Stderr, "Error reading config file:", viper.ConfigFileUsed(), "-", err)
			os.Exit(1)
		}
	}

	if err := loadConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err)
		os.Exit(1)
	}
}

func setDefaults() {
	viper.SetDefault("storage.backend", config.DefaultBackend)
	viper.SetDefault("storage.format", config.DefaultFormat)
	viper.SetDefault("storage.path", "")
	viper.SetDefault("seed.dir", "")

	viper.SetDefault("server.host", config.DefaultServerHost)
	viper.SetDefault("server.port", config.DefaultServerPort)
	viper.SetDefault("server.allowedOrigins", config.DefaultAllowedOrigins)
	viper.SetDefault("server.watch", true)

	viper.SetDefault("view.suggestions", config.DefaultSuggestions)
	viper.SetDefault("view.histogramDays", config.DefaultHistogramDays)

	viper.SetDefault("calendar.name", config.DefaultCalendarName)
	viper.SetDefault("calendar.credentialsFile", "")
	viper.SetDefault("calendar.tokenFile", "")
}

// loadConfig unmarshals viper into GlobalAppConfig and validates it.
func loadConfig() error {
	var cfg config.AppConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	GlobalAppConfig = cfg
	return nil
}

// GetConfig returns a pointer to the global config.AppConfig instance.
func GetConfig() *config.AppConfig {
	return &GlobalAppConfig
}
