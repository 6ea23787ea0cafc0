// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Unset fields fall back to the defaults in Default, and the PORT
// environment variable overrides server.port.
package config
