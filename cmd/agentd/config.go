package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

type PostgresConfig struct {
	Host     string `json:"host"`
	Port     uint   `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DbName   string `json:"db_name"`
}

func (p PostgresConfig) DbUrl() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		p.User, p.Password, p.Host, p.Port, p.DbName,
	)
}

type Duration struct{ time.Duration }

// [Duration] implements [json.Marshaler]
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		if err != nil {
			return err
		}
		return nil
	default:
		return errors.New("invalid duration")
	}
}

type JwtConfig struct {
	TokenLifetime  Duration `json:"token_lifetime"`
	PrivateKeyPath string   `json:"private_key_path"`
	PublicKeyPath  string   `json:"public_key_path"`
}

type Config struct {
	Mode     string         `json:"mode"`
	Addr     string         `json:"addr"`
	LogFile  string         `json:"log_file"`
	Postgres PostgresConfig `json:"postgres"`
	Jwt      JwtConfig      `json:"jwt"`
}

func (c Config) Development() bool {
	return c.Mode == "development"
}

func (c Config) Fields() logrus.Fields {
	return logrus.Fields{
		"mode":     c.Mode,
		"addr":     c.Addr,
		"log_file": c.LogFile,
		"postgres": fmt.Sprintf("%s:%d/%s", c.Postgres.Host, c.Postgres.Port, c.Postgres.DbName),
	}
}
