package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_BASE_URL targets a running pond; empty starts one in-process
	BaseURL string `envconfig:"E2E_BASE_URL"`
	// E2E_DEBUG_JSON dumps every JSON response body
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
	// E2E_SUMMON_THRESHOLD only applies to the in-process pond
	SummonThreshold int `envconfig:"E2E_SUMMON_THRESHOLD" default:"5"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
