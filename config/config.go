package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ListenAddr     string   `envconfig:"LISTEN_ADDR" default:":5000"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" required:"true"`
	PostgresURL    string   `envconfig:"POSTGRES_URL" required:"true"`
	JWTKey         string   `envconfig:"JWT_KEY" required:"true"`
	PublicBaseURL  string   `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:5000"`
	Debug          bool     `envconfig:"DEBUG" default:"false"`

	// Game defaults applied to new sessions unless overridden per session.
	MinPlayers          int `envconfig:"MIN_PLAYERS" default:"2"`
	MaxPlayers          int `envconfig:"MAX_PLAYERS" default:"6"`
	ButtonBlockingSecs  int `envconfig:"BUTTON_BLOCKING_SECS" default:"3"`
	ThinkingSecs        int `envconfig:"THINKING_SECS" default:"5"`
	AutoStartSecs       int `envconfig:"AUTO_START_SECS" default:"60"`
	UsePingPenalty      bool `envconfig:"USE_PING_PENALTY" default:"false"`
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
