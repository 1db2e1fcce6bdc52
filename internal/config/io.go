package config

import (
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Load reads the configuration once at startup. When envFile exists its
// values are applied first (.env, .yaml and .json are understood), then
// every key is read from the process environment.
func Load(envFile string) (Config, error) {
	cfg := Default()

	if envFile != "" {
		_, err := os.Stat(envFile)
		switch {
		case err == nil:
			if err := cleanenv.ReadConfig(envFile, &cfg); err != nil {
				return Config{}, errors.Wrapf(err, "read %s", envFile)
			}
			return cfg, nil
		case !os.IsNotExist(err):
			return Config{}, errors.Wrapf(err, "stat %s", envFile)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "read environment")
	}

	return cfg, nil
}

// Summary renders cfg as YAML with secrets masked.
func Summary(cfg Config) ([]byte, error) {
	masked := cfg
	masked.DB.Password = mask(cfg.DB.Password)
	masked.APIToken = mask(cfg.APIToken)
	return yaml.Marshal(masked)
}

func mask(s string) string {
	if s == "" {
		return "(empty)"
	}
	return "(set)"
}
