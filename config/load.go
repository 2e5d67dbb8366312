package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load builds Options from the environment. A .env file in the current
// directory is loaded first when present; SCAFFOLDFY_* variables override
// it. Flag values are applied by the caller on top of the result.
func Load() (*Options, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("config: loading .env: %w", err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix("SCAFFOLDFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("target_dir", ".")
	v.SetDefault("dry_run", false)
	v.SetDefault("force", false)
	v.SetDefault("exec_timeout", "10s")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	var opts Options
	if err := v.Unmarshal(&opts); err != nil {
		return nil, fmt.Errorf("config: decoding options: %w", err)
	}

	opts.ApplyDefaults()
	return &opts, nil
}
