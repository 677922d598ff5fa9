package config

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port           string `env:"PORT,            default=8080"`
	Env            string `env:"ENV,             default=development"`
	JWTSecret      string `env:"JWT_SECRET,      required"`
	LogLevel       string `env:"LOG_LEVEL,       default=info"`
	PublicOrigin   string `env:"PUBLIC_ORIGIN,   default=localhost:5173"`
	Currency       string `env:"CURRENCY,        default=USD"`
	RestaurantName string `env:"RESTAURANT_NAME, default=MesaPOS"`
	NotifyWorkers  int    `env:"NOTIFY_WORKERS,  default=4"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=restaurant_pos"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Development reports whether the server runs with developer conveniences
// such as pretty console logs.
func (c *Config) Development() bool { return c.Env == "development" }

// Load reads an optional .env file, then the process environment.
// Variables already set in the environment win over the file.
func Load(ctx context.Context, files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		// A missing .env is normal outside local development.
		_ = godotenv.Load(f)
	}

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
