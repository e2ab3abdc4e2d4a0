// Package config reads the harness settings from the environment and an
// optional YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"connector-bench/bench"

	"gopkg.in/yaml.v3"
)

const ResultFile = "bench_results_go.json"

type Config struct {
	MySQL    bench.ConnConfig
	Postgres bench.ConnConfig // Host empty disables the Postgres baseline
	Sampler  bench.Sampler

	Drivers    []string // empty means every registered driver
	Workload   string
	LogLevel   string
	ResultPath string
}

type fileConfig struct {
	Sampler struct {
		MinSamples *int           `yaml:"min_samples"`
		MaxTime    *time.Duration `yaml:"max_time"`
		TargetRME  *float64       `yaml:"target_rme"`
	} `yaml:"sampler"`
	Drivers []string `yaml:"drivers"`
}

func Default() Config {
	return Config{
		MySQL: bench.ConnConfig{
			Host:     "localhost",
			Port:     3306,
			User:     "root",
			Database: "bench",
		},
		Postgres: bench.ConnConfig{
			Port:     5432,
			User:     "postgres",
			Database: "bench",
		},
		Sampler:    bench.DefaultSampler(),
		Workload:   "select 1",
		LogLevel:   "info",
		ResultPath: filepath.Join(".", ResultFile),
	}
}

// Load applies BENCH_CONFIG (if set) and then environment variables over the defaults.
func Load() (Config, error) {
	c := Default()

	if path := os.Getenv("BENCH_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("read config: %w", err)
		}
		if err := c.apply(data); err != nil {
			return c, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := conn(&c.MySQL, "TEST_DB"); err != nil {
		return c, err
	}
	if err := conn(&c.Postgres, "TEST_PG"); err != nil {
		return c, err
	}

	if v := os.Getenv("BENCH_DRIVERS"); v != "" {
		c.Drivers = splitList(v)
	}
	setString(&c.Workload, "BENCH_WORKLOAD")
	setString(&c.LogLevel, "BENCH_LOG_LEVEL")
	if v := os.Getenv("PROJ_PATH"); v != "" {
		c.ResultPath = filepath.Join(v, ResultFile)
	}
	return c, nil
}

func (c *Config) apply(data []byte) error {
	var f fileConfig
	if err := yaml.Unmarshal(data, &f); err != nil {
		return err
	}
	if f.Sampler.MinSamples != nil {
		c.Sampler.MinSamples = *f.Sampler.MinSamples
	}
	if f.Sampler.MaxTime != nil {
		c.Sampler.MaxTime = *f.Sampler.MaxTime
	}
	if f.Sampler.TargetRME != nil {
		c.Sampler.TargetRME = *f.Sampler.TargetRME
	}
	if len(f.Drivers) > 0 {
		c.Drivers = f.Drivers
	}
	return nil
}

func conn(c *bench.ConnConfig, prefix string) error {
	setString(&c.Host, prefix+"_HOST")
	setString(&c.User, prefix+"_USER")
	setString(&c.Password, prefix+"_PASSWORD")
	setString(&c.Database, prefix+"_DATABASE")
	setBool(&c.TLS, prefix+"_TLS")
	if v := os.Getenv(prefix + "_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s_PORT: %w", prefix, err)
		}
		c.Port = port
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		*dst = err == nil && b
	}
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
