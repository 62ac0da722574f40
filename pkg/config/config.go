package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Cache   CacheConfig
	Reports ReportsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env         string // development, staging, production
	Name        string
	LogLevel    string
	SwaggerFile string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT para el token de operador.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	BodyLimitMB int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CacheConfig configuración de la caché derivada y de la caché de páginas.
type CacheConfig struct {
	Backend       string // memory | redis
	RedisHost     string
	RedisPort     int
	RedisPassword string
	RedisDB       int
	DatesTTL      time.Duration
	TreeTTL       time.Duration
	PageTTL       time.Duration
}

// UsesRedis indica si la caché se comparte vía Redis.
func (c CacheConfig) UsesRedis() bool {
	return strings.EqualFold(c.Backend, "redis")
}

// ReportsConfig parámetros de presentación de los reportes.
type ReportsConfig struct {
	// ShopAliases mapea un nombre de tienda crudo a su nombre de presentación.
	ShopAliases   map[string]string
	ExcludedShops []string
	FocusShop     string
	// PDFFontFile TTF con glifos japoneses para la exportación PDF; vacío usa helvetica.
	PDFFontFile string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	aliases, err := parseAliases(getString(v, "SHOP_ALIASES", "加治=加治木"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Env:         getString(v, "APP_ENV", "development"),
			Name:        getString(v, "APP_NAME", "changerank"),
			LogLevel:    getString(v, "LOG_LEVEL", "info"),
			SwaggerFile: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "changerank"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "changerank"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			BodyLimitMB: getInt(v, "HTTP_BODY_LIMIT_MB", 32),
		},
		Cache: CacheConfig{
			Backend:       getString(v, "CACHE_BACKEND", "memory"),
			RedisHost:     getString(v, "REDIS_HOST", "localhost"),
			RedisPort:     getInt(v, "REDIS_PORT", 6379),
			RedisPassword: getString(v, "REDIS_PASSWORD", ""),
			RedisDB:       getInt(v, "REDIS_DB", 0),
			DatesTTL:      time.Duration(getInt(v, "CACHE_DATES_TTL_HOURS", 24)) * time.Hour,
			TreeTTL:       time.Duration(getInt(v, "CACHE_TREE_TTL_HOURS", 168)) * time.Hour,
			PageTTL:       time.Duration(getInt(v, "PAGE_CACHE_TTL_HOURS", 24)) * time.Hour,
		},
		Reports: ReportsConfig{
			ShopAliases:   aliases,
			ExcludedShops: splitList(getString(v, "REPORT_EXCLUDED_SHOPS", "IMPORT_TEST_STORE")),
			FocusShop:     getString(v, "REPORT_FOCUS_SHOP", "日向"),
			PDFFontFile:   getString(v, "PDF_FONT_FILE", ""),
		},
	}

	if cfg.Cache.Backend != "memory" && !cfg.Cache.UsesRedis() {
		return nil, fmt.Errorf("CACHE_BACKEND inválido: %q (memory|redis)", cfg.Cache.Backend)
	}
	return cfg, nil
}

// parseAliases interpreta "crudo=mostrado,crudo2=mostrado2".
func parseAliases(raw string) (map[string]string, error) {
	out := make(map[string]string)
	for _, pair := range splitList(raw) {
		from, to, ok := strings.Cut(pair, "=")
		from, to = strings.TrimSpace(from), strings.TrimSpace(to)
		if !ok || from == "" || to == "" {
			return nil, fmt.Errorf("SHOP_ALIASES: par inválido %q", pair)
		}
		out[from] = to
	}
	return out, nil
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
