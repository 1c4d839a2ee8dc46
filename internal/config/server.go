package config

import "github.com/caarlos0/env/v11"

type ServerConfig struct {
	PostgresDSN string `env:"POSTGRES_DSN,required,notEmpty"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	AccessTokenSecret string `env:"ACCESS_TOKEN_SECRET,required,notEmpty"`
	AccessTokenTTLMin int    `env:"ACCESS_TOKEN_TTL_MINUTES" envDefault:"1440"`

	AdminAPIKey string `env:"ADMIN_API_KEY"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
