package internal

import (
	"fmt"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

type Config struct {
	LogLevel        string        `env:"LOG_LEVEL,default=INFO" validate:"required"`
	Host            string        `env:"HOST,default=localhost" validate:"required"`
	Port            int           `env:"PORT,default=3000" validate:"min=1,max=65535"`
	SummonThreshold int           `env:"SUMMON_THRESHOLD,default=5" validate:"min=1"`
	RibbitWindow    time.Duration `env:"RIBBIT_WINDOW,default=30s" validate:"gt=0"`
	BufferSize      int           `env:"BUFFER_SIZE,default=64" validate:"min=1"`
	SinkTimeout     time.Duration `env:"SINK_TIMEOUT,default=1s" validate:"gt=0"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=200ms" validate:"gt=0"`
	LimitMessages   *int          `env:"LIMIT_MESSAGES,default=20" validate:"omitempty,min=1"`
}

// LoadConfig reads an optional .env file, then the environment.
func LoadConfig(filenames ...string) (Config, error) {
	_ = godotenv.Load(filenames...)
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
