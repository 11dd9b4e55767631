package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"TICTACTOE_LOG_LEVEL" env-default:"warn"`
	SaveFile string  `yaml:"save-file" env:"TICTACTOE_SAVE_FILE" env-default:"savegame.json"`
	Storage  Storage `yaml:"storage"`
}

type Storage struct {
	Backend    string `yaml:"backend" env:"TICTACTOE_STORAGE_BACKEND" env-default:"file"`
	Redis      Redis  `yaml:"redis"`
	SQLitePath string `yaml:"sqlite-path" env:"TICTACTOE_SQLITE_PATH" env-default:"savegame.db"`
}

type Redis struct {
	Host string `yaml:"host" env:"TICTACTOE_REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"TICTACTOE_REDIS_PORT" env-default:"6379"`
}

// Load - reads the config file when it exists, otherwise falls back
// to environment variables and defaults. The game must run without a
// config file present.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}

		return config, nil
	}

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("unable to read environment: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
