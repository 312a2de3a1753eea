// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/spark/core/config"
//
//	var app config.App
//	config.MustLoad(&app)
//
//	if app.IsProduction() {
//		// enable process-lifetime caches
//	}
//
// Custom configuration types work the same way:
//
//	type ServerConfig struct {
//		Port int `env:"PORT" envDefault:"8080"`
//	}
//
//	var srv ServerConfig
//	if err := config.Load(&srv); err != nil {
//		log.Fatal(err)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime;
// different types are cached independently.
package config
