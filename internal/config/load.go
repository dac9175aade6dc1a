package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix is the prefix for all environment variables read by Load,
// e.g. NUTRILOG_SERVER_PORT or NUTRILOG_DATABASE_URL.
const envPrefix = "NUTRILOG"

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables take
// precedence over values from the config file, and both override the
// built-in defaults.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal only sees keys viper already knows about, so keys without
	// a default (secrets in particular) must be bound explicitly for their
	// environment variables to be picked up.
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; everything can come from the
		// environment. Any other read error is fatal.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// configKeys lists every configuration key, kept in sync with the Config
// struct tags.
var configKeys = []string{
	"server.port",
	"server.log_level",
	"database.url",
	"auth.jwt_secret",
	"auth.token_lifetime_minutes",
	"auth.bcrypt_cost",
	"nutrition.base_url",
	"nutrition.timeout_seconds",
	"nutrition.search_page_size",
	"resolver.fuzzy_accept_score",
	"resolver.fuzzy_floor_score",
	"resolver.top_candidates",
	"resolver.max_options",
	"resolver.plausible_kcal_max",
	"resolver.robust_min_evidence",
	"resolver.auto_accept_confidence",
	"resolver.small_number_max",
	"resolver.max_manual_kcal_100g",
	"resolver.max_serving_grams",
	"resolver.max_meal_grams",
}

// setDefaults registers defaults for everything that has a sensible one.
// Secrets (database URL, JWT secret) have no default on purpose.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("auth.token_lifetime_minutes", 60)

	v.SetDefault("nutrition.base_url", "https://world.openfoodfacts.org")
	v.SetDefault("nutrition.timeout_seconds", 15)
	v.SetDefault("nutrition.search_page_size", 10)

	v.SetDefault("resolver.max_manual_kcal_100g", 2000)
	v.SetDefault("resolver.max_serving_grams", 2000)
	v.SetDefault("resolver.max_meal_grams", 5000)
}
