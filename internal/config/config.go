package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"  validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"      validate:"required"`
	Nutrition NutritionConfig `mapstructure:"nutrition" validate:"required"`
	Resolver  ResolverConfig  `mapstructure:"resolver"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	BCryptCost           int    `mapstructure:"bcrypt_cost"            validate:"omitempty,gte=4,lte=31"`
}

// NutritionConfig contains settings for the external nutrition database client.
type NutritionConfig struct {
	BaseURL        string `mapstructure:"base_url"         validate:"required,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"  validate:"required,gt=0"`
	SearchPageSize int    `mapstructure:"search_page_size" validate:"required,gte=1,lte=25"`
}

// ResolverConfig tunes the matching pipeline and the sanity limits applied
// to user-entered values. Zero values fall back to the built-in defaults.
type ResolverConfig struct {
	FuzzyAcceptScore     int     `mapstructure:"fuzzy_accept_score"     validate:"omitempty,gte=0,lte=100"`
	FuzzyFloorScore      int     `mapstructure:"fuzzy_floor_score"      validate:"omitempty,gte=0,lte=100"`
	TopCandidates        int     `mapstructure:"top_candidates"         validate:"omitempty,gt=0"`
	MaxOptions           int     `mapstructure:"max_options"            validate:"omitempty,gt=0"`
	PlausibleKcalMax     float64 `mapstructure:"plausible_kcal_max"     validate:"omitempty,gt=0"`
	RobustMinEvidence    int     `mapstructure:"robust_min_evidence"    validate:"omitempty,gt=0"`
	AutoAcceptConfidence int     `mapstructure:"auto_accept_confidence" validate:"omitempty,gte=0,lte=100"`
	SmallNumberMax       float64 `mapstructure:"small_number_max"       validate:"omitempty,gt=0"`

	MaxManualKcal100g float64 `mapstructure:"max_manual_kcal_100g" validate:"omitempty,gt=0"`
	MaxServingGrams   float64 `mapstructure:"max_serving_grams"    validate:"omitempty,gt=0"`
	MaxMealGrams      float64 `mapstructure:"max_meal_grams"       validate:"omitempty,gt=0"`
}
