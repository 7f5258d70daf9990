// Package config defines the application configuration structures and
// loading logic. Configuration is read with viper from an optional YAML
// file and PARCELO_-prefixed environment variables (environment wins),
// then validated with go-playground/validator before use.
package config
