package config

import (
	"os"
	"strings"
)

// Loader returns the raw key/value settings the config is built from
type Loader interface {
	Load() (map[string]string, error)
}

// EnvLoader reads the process environment.
// The .env file is applied to the environment by main before loading.
type EnvLoader struct{}

func (EnvLoader) Load() (map[string]string, error) {
	envs := make(map[string]string)
	for _, env := range os.Environ() {
		key, val, _ := strings.Cut(env, "=")
		envs[key] = val
	}
	return envs, nil
}

// MapLoader serves a fixed set of values
type MapLoader map[string]string

func (l MapLoader) Load() (map[string]string, error) {
	envs := make(map[string]string, len(l))
	for k, v := range l {
		envs[k] = v
	}
	return envs, nil
}
