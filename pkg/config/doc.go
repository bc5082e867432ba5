// Package config loads environment-driven configuration.
//
// Load parses any struct with `env` tags (github.com/caarlos0/env/v11) and
// caches the result per type, so repeated calls are cheap. LoadEnv reads
// .env files with github.com/joho/godotenv before parsing; variables already
// present in the process environment always win.
//
//	if err := config.LoadEnv("./.env.local"); err != nil {
//	    return err
//	}
//
//	var s config.Settings
//	if err := config.Load(&s); err != nil {
//	    return err
//	}
//	if err := s.Validate(); err != nil {
//	    return err
//	}
//
// Settings carries everything the csvcheck command needs: message locale,
// log setup, validation groups and the backend of the unique side-table.
//
// Use ResetCache or Reload in tests after changing the environment.
package config
