package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Musixmatch MusixmatchConfig `yaml:"musixmatch"`
	Log        LogConfig        `yaml:"log"`

	OutputDir      string   `yaml:"output_dir"      env:"OUTPUT_DIR"      env-default:"output"`
	CachePath      string   `yaml:"cache_path"      env:"CACHE_PATH"`
	IgnoredPhrases []string `yaml:"ignored_phrases" env:"IGNORED_PHRASES" env-separator:","`
}

type MusixmatchConfig struct {
	BaseURL  string        `yaml:"base_url"  env:"MUSIXMATCH_API_URL"   env-default:"http://api.musixmatch.com/ws/1.1/"`
	APIKey   string        `yaml:"api_key"   env:"MUSIXMATCH_API_KEY"`
	PageSize int           `yaml:"page_size" env:"MUSIXMATCH_PAGE_SIZE" env-default:"100"`
	Timeout  time.Duration `yaml:"timeout"   env:"HTTP_TIMEOUT"         env-default:"0s"`
}

type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// Load reads .env (if present) into the environment and then fills a Config.
// With a non-empty path the YAML file is read first and the environment
// overrides it.
func Load(path string) (*Config, error) {
	loadEnvFile(".env")

	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, "config file %s", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, errors.Wrap(err, "read env")
	}
	return &cfg, nil
}

// loadEnvFile never overrides variables already set in the process.
func loadEnvFile(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		log.WithField("component", "config").Warnf("could not load %s: %v", path, err)
	}
}
