package config

import "strings"

// EnvProduction is the environment name that switches on process-lifetime
// caching for asset timestamps and compiled templates.
const EnvProduction = "production"

// App is the framework configuration consumed by reverse routing and the
// view layer: the runtime environment and the public static root.
type App struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
	StaticDir   string `env:"STATIC_DIR" envDefault:"./public"`
}

// IsProduction reports whether the app runs in the production environment.
func (a App) IsProduction() bool {
	return strings.EqualFold(a.Environment, EnvProduction)
}
