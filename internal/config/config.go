package config

import (
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Extract
		Database
		Schedule
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Extract struct {
		ClippingsPath string
		OutputDir     string
		Format        string
	}
	Database struct {
		Path string
	}
	Schedule struct {
		Enabled bool
		Spec    string // Cron format: "0 * * * *" = hourly
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("clippings_path", DefaultClippingsPath)
	v.SetDefault("output_dir", DefaultOutputDir)
	v.SetDefault("export_format", DefaultFormat)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("schedule_enabled", false)
	v.SetDefault("schedule_spec", "0 * * * *") // Hourly at :00

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Extract: Extract{
			ClippingsPath: v.GetString("CLIPPINGS_PATH"),
			OutputDir:     v.GetString("OUTPUT_DIR"),
			Format:        v.GetString("EXPORT_FORMAT"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Schedule: Schedule{
			Enabled: v.GetBool("SCHEDULE_ENABLED"),
			Spec:    v.GetString("SCHEDULE_SPEC"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
