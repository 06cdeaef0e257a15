// Paquete config centraliza la carga de variables de entorno usadas por los binarios.
package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

// Config agrega los parámetros de la API y del conciliador.
type Config struct {
	HTTPAddress string
	LogLevel    string

	StoreBackend string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	AutoMigrate      bool

	MongoURI string
	MongoDB  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SesionPrefix       string
	SesionTTL          time.Duration
	SesionCookieSegura bool
	PinInicial         string

	RateLimitEnabled       bool
	RateLimitMaxActions    int
	RateLimitWindowSeconds int
	RateLimitKeyPrefix     string

	APIFootballKey        string
	APIFootballURL        string
	APIFootballLiga       int
	APIFootballTimeout    time.Duration
	APIFootballPorSegundo float64

	ZonaHoraria *time.Location

	ConciliadorIntervalo      time.Duration
	ConciliadorMetricsAddress string
}

func defaults(v *viper.Viper) {
	v.SetDefault("HTTP_ADDRESS", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_BACKEND", BackendPostgres)
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("POSTGRES_USER", "quinielas")
	v.SetDefault("POSTGRES_PASSWORD", "quinielas")
	v.SetDefault("POSTGRES_DB", "quinielas")
	v.SetDefault("POSTGRES_SSLMODE", "disable")
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DB", "quinielas")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SESION_PREFIX", "sesion:admin")
	v.SetDefault("SESION_TTL", "12h")
	v.SetDefault("SESION_COOKIE_SEGURA", false)
	v.SetDefault("PIN_INICIAL", "")
	v.SetDefault("ANTIFRAUDE_RATE_LIMIT_ENABLED", true)
	v.SetDefault("ANTIFRAUDE_RATE_LIMIT_MAX", 10)
	v.SetDefault("ANTIFRAUDE_RATE_LIMIT_WINDOW", 60)
	v.SetDefault("ANTIFRAUDE_RATE_LIMIT_PREFIX", "ratelimit:envios")
	v.SetDefault("API_FOOTBALL_KEY", "")
	v.SetDefault("API_FOOTBALL_URL", "https://v3.football.api-sports.io")
	v.SetDefault("API_FOOTBALL_LIGA", 262)
	v.SetDefault("API_FOOTBALL_TIMEOUT", "10s")
	v.SetDefault("API_FOOTBALL_RPS", 1.0)
	v.SetDefault("ZONA_HORARIA", "America/Mexico_City")
	v.SetDefault("CONCILIADOR_INTERVALO", "5m")
	v.SetDefault("CONCILIADOR_METRICS_ADDRESS", ":9090")
}

// Load lee .env si existe y después el entorno; el entorno siempre gana.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	defaults(v)
	v.AutomaticEnv()

	cfg := Config{
		HTTPAddress:               v.GetString("HTTP_ADDRESS"),
		LogLevel:                  v.GetString("LOG_LEVEL"),
		StoreBackend:              strings.ToLower(strings.TrimSpace(v.GetString("STORE_BACKEND"))),
		PostgresHost:              v.GetString("POSTGRES_HOST"),
		PostgresPort:              v.GetString("POSTGRES_PORT"),
		PostgresUser:              v.GetString("POSTGRES_USER"),
		PostgresPassword:          v.GetString("POSTGRES_PASSWORD"),
		PostgresDB:                v.GetString("POSTGRES_DB"),
		PostgresSSLMode:           v.GetString("POSTGRES_SSLMODE"),
		AutoMigrate:               v.GetBool("DB_AUTO_MIGRATE"),
		MongoURI:                  v.GetString("MONGO_URI"),
		MongoDB:                   v.GetString("MONGO_DB"),
		RedisAddr:                 v.GetString("REDIS_ADDR"),
		RedisPassword:             v.GetString("REDIS_PASSWORD"),
		RedisDB:                   v.GetInt("REDIS_DB"),
		SesionPrefix:              v.GetString("SESION_PREFIX"),
		SesionTTL:                 v.GetDuration("SESION_TTL"),
		SesionCookieSegura:        v.GetBool("SESION_COOKIE_SEGURA"),
		PinInicial:                strings.TrimSpace(v.GetString("PIN_INICIAL")),
		RateLimitEnabled:          v.GetBool("ANTIFRAUDE_RATE_LIMIT_ENABLED"),
		RateLimitMaxActions:       v.GetInt("ANTIFRAUDE_RATE_LIMIT_MAX"),
		RateLimitWindowSeconds:    v.GetInt("ANTIFRAUDE_RATE_LIMIT_WINDOW"),
		RateLimitKeyPrefix:        v.GetString("ANTIFRAUDE_RATE_LIMIT_PREFIX"),
		APIFootballKey:            v.GetString("API_FOOTBALL_KEY"),
		APIFootballURL:            v.GetString("API_FOOTBALL_URL"),
		APIFootballLiga:           v.GetInt("API_FOOTBALL_LIGA"),
		APIFootballTimeout:        v.GetDuration("API_FOOTBALL_TIMEOUT"),
		APIFootballPorSegundo:     v.GetFloat64("API_FOOTBALL_RPS"),
		ConciliadorIntervalo:      v.GetDuration("CONCILIADOR_INTERVALO"),
		ConciliadorMetricsAddress: v.GetString("CONCILIADOR_METRICS_ADDRESS"),
	}

	if cfg.StoreBackend != BackendPostgres && cfg.StoreBackend != BackendMongo {
		return Config{}, fmt.Errorf("config: STORE_BACKEND invalido %q (postgres o mongo)", cfg.StoreBackend)
	}
	if cfg.SesionTTL <= 0 {
		return Config{}, fmt.Errorf("config: SESION_TTL invalido %q", v.GetString("SESION_TTL"))
	}
	if cfg.ConciliadorIntervalo <= 0 {
		return Config{}, fmt.Errorf("config: CONCILIADOR_INTERVALO invalido %q", v.GetString("CONCILIADOR_INTERVALO"))
	}

	zona, err := time.LoadLocation(v.GetString("ZONA_HORARIA"))
	if err != nil {
		return Config{}, fmt.Errorf("config: ZONA_HORARIA invalida: %w", err)
	}
	cfg.ZonaHoraria = zona

	return cfg, nil
}

func (c Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.PostgresUser,
		c.PostgresPassword,
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresDB,
		c.PostgresSSLMode,
	)
}
