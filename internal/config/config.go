// Package config loads vislog settings from a YAML file, a .env file and the
// environment, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all vislog settings.
type Config struct {
	ImageDir string   `yaml:"img_dir"`
	PlotDir  string   `yaml:"plot_dir"`
	Format   string   `yaml:"file_format"`
	Width    int      `yaml:"width"`
	Height   int      `yaml:"height"`
	Pip      []string `yaml:"pip_command"`
	// Exclude lists extra path fragments that mark dependency code.
	Exclude  []string       `yaml:"exclude"`
	Artifact ArtifactConfig `yaml:"artifact"`
}

// ArtifactConfig configures optional S3-compatible uploads.
type ArtifactConfig struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// Enabled reports whether enough is configured to upload.
func (a ArtifactConfig) Enabled() bool {
	return a.Endpoint != "" && a.Bucket != ""
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ImageDir: "img",
		PlotDir:  "plots",
		Format:   ".png",
		Width:    800,
		Height:   600,
		Pip:      []string{"python", "-m", "pip", "freeze"},
		Artifact: ArtifactConfig{Region: "us-east-1", UseSSL: true},
	}
}

// Load reads .env (if present), then the YAML file at path (if path is set
// and exists), then VISLOG_* environment overrides.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)

		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, err
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("decode config %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.Format != "" && !strings.HasPrefix(cfg.Format, ".") {
		cfg.Format = "." + cfg.Format
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.ImageDir, "VISLOG_IMG_DIR")
	setString(&cfg.PlotDir, "VISLOG_PLOT_DIR")
	setString(&cfg.Format, "VISLOG_FORMAT")
	setString(&cfg.Artifact.Endpoint, "VISLOG_S3_ENDPOINT")
	setString(&cfg.Artifact.Region, "VISLOG_S3_REGION")
	setString(&cfg.Artifact.AccessKey, "VISLOG_S3_ACCESS_KEY")
	setString(&cfg.Artifact.SecretKey, "VISLOG_S3_SECRET_KEY")
	setString(&cfg.Artifact.Bucket, "VISLOG_S3_BUCKET")
	setString(&cfg.Artifact.Prefix, "VISLOG_S3_PREFIX")

	if raw := strings.TrimSpace(os.Getenv("VISLOG_PIP_COMMAND")); raw != "" {
		cfg.Pip = strings.Fields(raw)
	}

	if raw := strings.TrimSpace(os.Getenv("VISLOG_S3_USE_SSL")); raw != "" {
		useSSL, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("VISLOG_S3_USE_SSL: %w", err)
		}

		cfg.Artifact.UseSSL = useSSL
	}

	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}
