package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Env holds settings read from the process environment. A .env file in the
// working directory is loaded first if present; variables already set in
// the environment win over it.
type Env struct {
	DSN       string `env:"MEDCOST_DB_URL"`
	LogFormat string `env:"MEDCOST_LOG_FORMAT" envDefault:"text"`
	Verbose   bool   `env:"MEDCOST_VERBOSE"`
}

// FromEnv parses Env from the environment. A missing .env file is not an
// error; an unreadable or malformed one is.
func FromEnv() (Env, error) {
	return fromEnv(".env")
}

func fromEnv(dotenv string) (Env, error) {
	if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Env{}, fmt.Errorf("load %s: %w", dotenv, err)
	}

	e, err := env.ParseAs[Env]()
	if err != nil {
		return Env{}, fmt.Errorf("parse environment: %w", err)
	}
	return e, nil
}
