// Package config loads the credresolver command's own configuration from
// multiple sources (YAML file, environment variables, CLI flags) with
// precedence: CLI flags > YAML config > Environment variables > Defaults.
// It does not hold API credentials; those are resolved by package credentials.
package config
