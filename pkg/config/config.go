package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv   string
	LogLevel string

	GRPCPort int
	HTTPPort int

	InventoryURL     string
	InventoryTimeout time.Duration

	// InventoryPort and InventorySeed configure the inventory mock.
	InventoryPort int
	InventorySeed string

	Cart CartStore

	// StorefrontGRPCAddr is dialed by the gateway.
	StorefrontGRPCAddr string
}

// CartStore selects and configures the backend holding the persisted cart slot.
type CartStore struct {
	Backend string
	Slot    string
	Dir     string

	RedisAddr   string
	RedisPrefix string

	PostgresHost string
	PostgresPort int
	PostgresUser string
	PostgresPass string
	PostgresDB   string
}

func Load() Config {
	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		GRPCPort: getEnvInt("GRPC_PORT", 8081),

		InventoryURL:     getEnv("INVENTORY_URL", "http://localhost:3333"),
		InventoryTimeout: getEnvDuration("INVENTORY_TIMEOUT", 10*time.Second),
		InventoryPort:    getEnvInt("INVENTORY_PORT", 3333),
		InventorySeed:    getEnv("INVENTORY_SEED", ""),

		Cart: CartStore{
			Backend:      getEnv("CART_STORE", "file"),
			Slot:         getEnv("CART_SLOT", "cart"),
			Dir:          getEnv("CART_DIR", "./data"),
			RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPrefix:  getEnv("REDIS_PREFIX", "storefront:"),
			PostgresHost: getEnv("POSTGRES_HOST", "localhost"),
			PostgresPort: getEnvInt("POSTGRES_PORT", 5432),
			PostgresUser: getEnv("POSTGRES_USER", "shopping"),
			PostgresPass: getEnv("POSTGRES_PASSWORD", "shoppingpassword"),
			PostgresDB:   getEnv("POSTGRES_DB", "shopping_db"),
		},

		StorefrontGRPCAddr: getEnv("STOREFRONT_GRPC_ADDR", "localhost:8081"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return def
	}
	return d
}
