package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	CatalogSourceFile     = "file"
	CatalogSourcePostgres = "postgres"

	defaultMaxLineQty = 99
)

type Config struct {
	Env      string
	DB       DBConfig
	Telegram TelegramConfig
	Catalog  CatalogConfig
	Log      LogConfig
	Order    OrderConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type TelegramConfig struct {
	Token string
	Lang  string // default UI language for new chats: "zh" or "en"
}

// CatalogConfig says where the menu is loaded from at startup.
type CatalogConfig struct {
	Source string // "file" or "postgres"
	Path   string // YAML file, used when Source is "file"
}

type LogConfig struct {
	Level  string
	Format string
	Output string // stdout, stderr or a file path; empty picks per front end
}

type OrderConfig struct {
	MaxLineQty int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxQty, err := strconv.Atoi(getEnv("MAX_LINE_QTY", strconv.Itoa(defaultMaxLineQty)))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_LINE_QTY: %w", err)
	}
	if maxQty < 1 {
		return nil, fmt.Errorf("invalid MAX_LINE_QTY: must be >= 1, got %d", maxQty)
	}

	source := strings.ToLower(getEnv("CATALOG_SOURCE", CatalogSourceFile))
	if source != CatalogSourceFile && source != CatalogSourcePostgres {
		return nil, fmt.Errorf("invalid CATALOG_SOURCE: %q", source)
	}

	return &Config{
		Env: getEnv("APP_ENV", "development"),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     port,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "restaurant"),
		},
		Telegram: TelegramConfig{
			Token: getEnv("TOKEN", ""),
			Lang:  getEnv("LANG_DEFAULT", "zh"),
		},
		Catalog: CatalogConfig{
			Source: source,
			Path:   getEnv("CATALOG_PATH", "menu.yaml"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
			Output: getEnv("LOG_OUTPUT", ""),
		},
		Order: OrderConfig{
			MaxLineQty: maxQty,
		},
	}, nil
}

// LogOutput is where logs go. The console front end owns stdout, so unless
// LOG_OUTPUT says otherwise it logs to stderr; the bot logs to stdout.
func (c *Config) LogOutput() string {
	if c.Log.Output != "" {
		return c.Log.Output
	}
	if c.Telegram.Token == "" {
		return "stderr"
	}
	return "stdout"
}

// UsesDB reports whether startup needs a Postgres pool.
func (c *Config) UsesDB() bool {
	return c.Catalog.Source == CatalogSourcePostgres
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
