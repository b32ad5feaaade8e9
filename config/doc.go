// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Zero values are replaced with the package defaults before validation.
// Several named spawn sets (points of interest plus a destination) can be
// configured and one is selected by name at startup.
package config
