package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DefaultProjectDir = "."
	DefaultIdeaDir    = ".idea"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
)

// DBConfig holds the values interpolated into the local data source.
// They are copied verbatim: no validation, no escaping.
type DBConfig struct {
	User string `yaml:"user" env:"DB_USER"`
	Port string `yaml:"port" env:"DB_PORT"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"IDECONFIG_LOG_LEVEL"`
	Format string `yaml:"format" env:"IDECONFIG_LOG_FORMAT"`
}

type Config struct {
	ProjectDir string    `yaml:"project_dir" env:"IDECONFIG_PROJECT_DIR"`
	IdeaDir    string    `yaml:"idea_dir"`
	DB         DBConfig  `yaml:"db"`
	Log        LogConfig `yaml:"log"`
}

// Load đọc file YAML (nếu có), sau đó ghi đè bằng biến môi trường.
// An empty path skips the file entirely.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config %s: %w", path, err)
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.ProjectDir == "" {
		c.ProjectDir = DefaultProjectDir
	}
	if c.IdeaDir == "" {
		c.IdeaDir = DefaultIdeaDir
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

// Path returns the location of an IDE settings file, e.g. Path("php.xml").
func (c *Config) Path(name string) string {
	if filepath.IsAbs(c.IdeaDir) {
		return filepath.Join(c.IdeaDir, name)
	}
	return filepath.Join(c.ProjectDir, c.IdeaDir, name)
}
