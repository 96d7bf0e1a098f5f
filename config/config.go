// Package config loads service settings from an optional TOML file and the
// environment. Environment variables win over the file.
package config

import (
	"crypto/tls"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/redis/go-redis/v9"
)

// Storage backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendTable  = "table"
)

// PathEnv names the variable holding the TOML file path.
const PathEnv = "FOCUSFLOW_CONFIG"

var ErrMissingSetting = errors.New("config: missing setting")

// Config holds every tunable of the service.
type Config struct {
	Debug      bool   `toml:"debug"`
	ListenAddr string `toml:"listen-addr"`
	Pprof      bool   `toml:"pprof"`
	// CORSOrigins defaults to "*".
	CORSOrigins []string `toml:"cors-origins"`

	Storage       Storage       `toml:"storage"`
	Events        Events        `toml:"events"`
	Parser        Parser        `toml:"parser"`
	Notifications Notifications `toml:"notifications"`

	// SeedFile is a YAML dataset used when nothing has been saved yet.
	SeedFile string `toml:"seed-file"`
	// IdempotencyTTL enables Idempotency-Key tracking in Redis.
	IdempotencyTTL time.Duration `toml:"idempotency-ttl"`
}

type Storage struct {
	Backend          string        `toml:"backend"`
	RedisConn        string        `toml:"redis"`
	KeyPrefix        string        `toml:"key-prefix"`
	SQLitePath       string        `toml:"sqlite-path"`
	ConnectionString string        `toml:"connection-string"`
	Table            string        `toml:"table"`
	Partition        string        `toml:"partition"`
	CacheTTL         time.Duration `toml:"cache-ttl"`
}

type Events struct {
	Queue   string `toml:"queue"`
	Channel string `toml:"channel"`
}

type Parser struct {
	URL     string        `toml:"url"`
	Timeout time.Duration `toml:"timeout"`
}

type Notifications struct {
	ToastTTL   time.Duration `toml:"toast-ttl"`
	MaxEntries int           `toml:"max-entries"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		ListenAddr:  ":8080",
		CORSOrigins: []string{"*"},
		Storage: Storage{
			Backend:    BackendMemory,
			KeyPrefix:  "focusflow:",
			SQLitePath: "data/focusflow.db",
			Table:      "FocusFlowState",
			Partition:  "focusflow",
		},
		Parser: Parser{Timeout: 8 * time.Second},
		Notifications: Notifications{
			ToastTTL:   5 * time.Second,
			MaxEntries: 100,
		},
	}
}

// Load reads the file named by FOCUSFLOW_CONFIG, if any, then applies the
// environment and validates the result.
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	if path, ok := lookup(PathEnv); ok && strings.TrimSpace(path) != "" {
		if err := loadFile(strings.TrimSpace(path), &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	boolean := func(name string, dst *bool) error {
		v, ok := lookup(name)
		if !ok || v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		*dst = b
		return nil
	}
	duration := func(name string, dst *time.Duration) error {
		v, ok := lookup(name)
		if !ok || v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid %s: %q", name, v)
		}
		*dst = d
		return nil
	}

	if err := boolean("DEBUG", &cfg.Debug); err != nil {
		return err
	}
	if err := boolean("PPROF", &cfg.Pprof); err != nil {
		return err
	}
	if v, ok := lookup("PORT"); ok && v != "" {
		cfg.ListenAddr = ":" + strings.TrimPrefix(v, ":")
	}
	if v, ok := lookup("CORS_ORIGINS"); ok && v != "" {
		cfg.CORSOrigins = splitList(v)
	}

	str("STORAGE_BACKEND", &cfg.Storage.Backend)
	str("REDIS_CONNECTION_STRING", &cfg.Storage.RedisConn)
	str("REDIS_KEY_PREFIX", &cfg.Storage.KeyPrefix)
	str("SQLITE_PATH", &cfg.Storage.SQLitePath)
	str("STORAGE_CONNECTION_STRING", &cfg.Storage.ConnectionString)
	str("STATE_TABLE", &cfg.Storage.Table)
	str("STATE_PARTITION", &cfg.Storage.Partition)
	if err := duration("CACHE_TTL", &cfg.Storage.CacheTTL); err != nil {
		return err
	}

	str("EVENTS_QUEUE", &cfg.Events.Queue)
	str("EVENTS_CHANNEL", &cfg.Events.Channel)

	str("PARSER_URL", &cfg.Parser.URL)
	if err := duration("PARSE_TIMEOUT", &cfg.Parser.Timeout); err != nil {
		return err
	}

	if err := duration("TOAST_TTL", &cfg.Notifications.ToastTTL); err != nil {
		return err
	}
	if v, ok := lookup("MAX_NOTIFICATIONS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MAX_NOTIFICATIONS: %w", err)
		}
		if n <= 0 {
			return fmt.Errorf("invalid MAX_NOTIFICATIONS: must be greater than zero")
		}
		cfg.Notifications.MaxEntries = n
	}

	str("SEED_FILE", &cfg.SeedFile)
	return duration("IDEMPOTENCY_TTL", &cfg.IdempotencyTTL)
}

// Validate checks that every selected feature has what it needs.
func (c Config) Validate() error {
	c.Storage.Backend = strings.ToLower(c.Storage.Backend)
	switch c.Storage.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.Storage.RedisConn == "" {
			return fmt.Errorf("%w: redis connection string for the redis backend", ErrMissingSetting)
		}
	case BackendSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("%w: sqlite path", ErrMissingSetting)
		}
	case BackendTable:
		if c.Storage.ConnectionString == "" || c.Storage.Table == "" {
			return fmt.Errorf("%w: storage connection string and table for the table backend", ErrMissingSetting)
		}
	default:
		return fmt.Errorf("config: unknown storage backend %q", c.Storage.Backend)
	}
	if c.Storage.CacheTTL > 0 && c.Storage.RedisConn == "" {
		return fmt.Errorf("%w: redis connection string for the cache", ErrMissingSetting)
	}
	if c.IdempotencyTTL > 0 && c.Storage.RedisConn == "" {
		return fmt.Errorf("%w: redis connection string for idempotency keys", ErrMissingSetting)
	}
	if c.Events.Queue != "" && c.Storage.ConnectionString == "" {
		return fmt.Errorf("%w: storage connection string for the events queue", ErrMissingSetting)
	}
	if c.Events.Channel != "" && c.Storage.RedisConn == "" {
		return fmt.Errorf("%w: redis connection string for the events channel", ErrMissingSetting)
	}
	if c.Parser.Timeout <= 0 || c.Notifications.ToastTTL <= 0 || c.Notifications.MaxEntries <= 0 {
		return errors.New("config: timeouts and limits must be greater than zero")
	}
	return nil
}

// BackendName returns the normalized storage backend.
func (c Config) BackendName() string {
	return strings.ToLower(c.Storage.Backend)
}

// RedisOptions accepts either a redis:// URL or the Azure Cache form
// "host:port,password=...,ssl=True".
func RedisOptions(conn string) (*redis.Options, error) {
	if opts, err := redis.ParseURL(conn); err == nil {
		return opts, nil
	}
	parts := strings.Split(conn, ",")
	addr := strings.TrimSpace(parts[0])
	if addr == "" {
		return nil, fmt.Errorf("%w: redis address", ErrMissingSetting)
	}
	opts := &redis.Options{Addr: addr}
	for _, p := range parts[1:] {
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(kv[0])) {
		case "password":
			opts.Password = kv[1]
		case "ssl":
			if strings.EqualFold(strings.TrimSpace(kv[1]), "true") {
				opts.TLSConfig = &tls.Config{}
			}
		}
	}
	return opts, nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
