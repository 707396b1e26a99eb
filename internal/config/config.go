package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	DBPath       string `json:"db_path" env:"NOTEBOOK_DB_PATH"`
	ReportPath   string `json:"report_path" env:"NOTEBOOK_REPORT_PATH" env-default:"users_report.xlsx"`
	OpenReport   bool   `json:"open_report" env:"NOTEBOOK_OPEN_REPORT"`
	PasswordHash string `json:"password_hash" env:"NOTEBOOK_PASSWORD_HASH" env-default:"plain"`
	WebPort      int    `json:"web_port" env:"NOTEBOOK_WEB_PORT" env-default:"8080"`
}

func Default() Config {
	return Config{ReportPath: "users_report.xlsx", PasswordHash: "plain", WebPort: 8080}
}

func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "notebook", "config.json"), nil
}

func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

// Load reads the config file at path and applies NOTEBOOK_* environment
// overrides. A missing file yields the defaults plus the environment.
func Load(path string) (Config, error) {
	var config Config

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return Config{}, err
		}
		if err := cleanenv.ReadEnv(&config); err != nil {
			return Config{}, fmt.Errorf("read env: %w", err)
		}
		return config, nil
	}

	if err := cleanenv.ReadConfig(path, &config); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return config, nil
}

// ReadFile reads only the file at path, without environment overrides, over
// the defaults. It is the baseline that Save may write back.
func ReadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, err
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func Save(path string, cfg Config) error {
	if err := EnsureDir(path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
