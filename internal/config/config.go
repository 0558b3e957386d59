package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"minblog/internal/storage"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`
	StaticDir  string `env:"STATIC_DIR" envDefault:"internal/web/static"`
	RootURL    string `env:"ROOT_URL"`

	DatabaseDriver string `env:"DB_DRIVER" envDefault:"sqlite"`
	DatabaseDSN    string `env:"DB_DSN" envDefault:"blog.db"`
	DatabaseDebug  bool   `env:"DB_DEBUG" envDefault:"false"`

	CacheHTML string `env:"CACHE_HTML"`

	AdminEnforce      bool   `env:"ADMIN_ENFORCE" envDefault:"false"`
	AdminUser         string `env:"ADMIN_USER" envDefault:"admin"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`

	LogRequests bool `env:"LOG_REQUESTS" envDefault:"true"`

	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

const envPrefix = "BLOG_"

// Load reads BLOG_* variables, after merging an optional dotenv file into the
// process environment. Variables already set win over the file.
func Load(dotenvPaths ...string) (Config, error) {
	for _, path := range dotenvPaths {
		if strings.TrimSpace(path) == "" {
			continue
		}
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load dotenv %q: %w", path, err)
		}
	}

	return Parse(env.Options{Prefix: envPrefix})
}

// Parse is Load without dotenv handling; tests pass Environment directly.
func Parse(opts env.Options) (Config, error) {
	if opts.Prefix == "" {
		opts.Prefix = envPrefix
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.DatabaseDriver = strings.ToLower(strings.TrimSpace(cfg.DatabaseDriver))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case storage.DriverSQLite, storage.DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.DatabaseDriver)
	}
	if strings.TrimSpace(c.DatabaseDSN) == "" {
		return errors.New("database dsn is required")
	}
	if c.AdminEnforce && strings.TrimSpace(c.AdminPasswordHash) == "" {
		return errors.New("admin password hash is required when admin access is enforced")
	}
	return nil
}
