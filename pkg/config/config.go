package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config holds everything the pipeline needs to run.
type Config struct {
	MessageDir  string   `mapstructure:"message_dir"`
	OutputDir   string   `mapstructure:"output_dir"`
	InitialYear int      `mapstructure:"initial_year"`
	Keywords    []string `mapstructure:"keywords"`
	VocabFile   string   `mapstructure:"vocab_file"`
}

// Build loads configuration in ascending precedence: defaults, .env,
// the YAML config file, then command-line flags.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	// A missing .env is fine.
	_ = gotenv.Load()

	v := viper.New()
	v.SetDefault("message_dir", "messages")
	v.SetDefault("output_dir", "output")
	v.SetDefault("initial_year", 2016)
	v.SetDefault("keywords", []string{"银行"})

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("analyzer")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Only a named config file is required to exist.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// Flag names differ from config keys, so bind them explicitly.
	if flags != nil {
		bindings := map[string]string{
			"message_dir":  "messages",
			"output_dir":   "output",
			"initial_year": "year",
			"vocab_file":   "vocab",
		}
		for key, name := range bindings {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.InitialYear <= 0 {
		return nil, fmt.Errorf("initial_year must be positive, got %d", cfg.InitialYear)
	}
	return &cfg, nil
}
