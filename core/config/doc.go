// Package config loads environment variables into typed structs.
//
// Parsing is done by caarlos0/env, so fields are described with `env` and
// `envDefault` tags and nested structs are walked. A .env file in the working
// directory is read with godotenv before the first parse; variables that are
// already set in the process environment win over the file.
//
//	type WidgetConfig struct {
//		MaxRetries  int    `env:"WIDGET_MAX_RETRIES" envDefault:"3"`
//		DefaultLang string `env:"WIDGET_DEFAULT_LANG" envDefault:"en"`
//	}
//
//	var cfg WidgetConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// The result is cached per type: the environment is parsed once per struct
// type and every later Load of that type copies the cached value. MustLoad
// panics instead of returning the error and is meant for program startup.
package config
