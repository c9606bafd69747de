// Package config loads processing settings from stylekit.toml or
// stylekit.yaml.
package config
