package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// FieldEncryptionKey is the hex-encoded 32-byte key used to encrypt
	// monetary snapshot fields at rest.
	FieldEncryptionKey string

	// Metal price oracle settings.
	MetalPriceAPIURL           string
	MetalPriceCacheTTL         time.Duration
	FallbackGoldPricePerGram   decimal.Decimal
	FallbackSilverPricePerGram decimal.Decimal

	DefaultCurrency string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "zakapp-backend")
	viper.SetDefault("FIELD_ENCRYPTION_KEY", "")
	viper.SetDefault("METAL_PRICE_API_URL", "")
	viper.SetDefault("METAL_PRICE_CACHE_TTL", "24h")
	viper.SetDefault("FALLBACK_GOLD_PRICE_PER_GRAM", "65.00")
	viper.SetDefault("FALLBACK_SILVER_PRICE_PER_GRAM", "0.85")
	viper.SetDefault("DEFAULT_CURRENCY", "USD")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.FieldEncryptionKey = viper.GetString("FIELD_ENCRYPTION_KEY")
	if cfg.FieldEncryptionKey == "" {
		log.Println("Warning: FIELD_ENCRYPTION_KEY not set. Snapshot values cannot be stored.")
	}

	cfg.MetalPriceAPIURL = viper.GetString("METAL_PRICE_API_URL")
	if cfg.MetalPriceAPIURL == "" {
		log.Println("Warning: METAL_PRICE_API_URL not set. Fallback metal prices will be used.")
	}

	cacheTTLStr := viper.GetString("METAL_PRICE_CACHE_TTL")
	cacheTTL, err := time.ParseDuration(cacheTTLStr)
	if err != nil {
		cacheTTL = 24 * time.Hour
		log.Printf("Warning: Invalid value for METAL_PRICE_CACHE_TTL ('%s'). Defaulting to %s.\n", cacheTTLStr, cacheTTL)
	}
	cfg.MetalPriceCacheTTL = cacheTTL

	fallbackGold, err := decimal.NewFromString(viper.GetString("FALLBACK_GOLD_PRICE_PER_GRAM"))
	if err != nil || !fallbackGold.IsPositive() {
		fallbackGold = decimal.NewFromFloat(65.00)
		log.Printf("Warning: Invalid FALLBACK_GOLD_PRICE_PER_GRAM. Defaulting to %s.\n", fallbackGold)
	}
	cfg.FallbackGoldPricePerGram = fallbackGold

	fallbackSilver, err := decimal.NewFromString(viper.GetString("FALLBACK_SILVER_PRICE_PER_GRAM"))
	if err != nil || !fallbackSilver.IsPositive() {
		fallbackSilver = decimal.NewFromFloat(0.85)
		log.Printf("Warning: Invalid FALLBACK_SILVER_PRICE_PER_GRAM. Defaulting to %s.\n", fallbackSilver)
	}
	cfg.FallbackSilverPricePerGram = fallbackSilver

	cfg.DefaultCurrency = viper.GetString("DEFAULT_CURRENCY")

	return cfg, nil
}
