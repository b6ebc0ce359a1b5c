package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/bnema/whatsavings/internal/domain"
)

const (
	envPrefix = "WHATSAVINGS"

	// legacyAuthorizedNumberEnv is the variable older deployments set in
	// their .env file.
	legacyAuthorizedNumberEnv = "ALLOWED_NUMBER"

	SecretsBackendFile  = "file"
	SecretsBackendPass  = "pass"
	SecretsBackendChain = "chain"
	SecretsBackendRedis = "redis"

	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

type Config struct {
	AuthorizedNumber string
	CommandPrefix    string
	Session          SessionConfig
	Gateway          GatewayConfig
	Secrets          SecretsConfig
	Redis            RedisConfig
	Ledger           LedgerConfig
	NATS             NATSConfig
	Log              LogConfig
}

type SessionConfig struct {
	Name       string
	RetryDelay time.Duration
}

type GatewayConfig struct {
	URL              string
	Token            string
	HandshakeTimeout time.Duration
	SendTimeout      time.Duration
	PongWait         time.Duration
}

type SecretsConfig struct {
	Backend string
	Dir     string
}

type RedisConfig struct {
	Addrs     []string
	Password  string
	DB        int
	Namespace string
}

type LedgerConfig struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type NATSConfig struct {
	URL     string
	Subject string
}

func (c NATSConfig) Enabled() bool {
	return strings.TrimSpace(c.URL) != ""
}

type LogConfig struct {
	Level  string
	Format string
}

// LoadOptions points at optional files. An empty ConfigFile searches the
// default locations and tolerates a missing file; an explicit one must exist.
type LoadOptions struct {
	ConfigFile string
	EnvFile    string
}

// Load reads the .env file, then the config file, then the environment.
// Later sources win.
func Load(opts LoadOptions) (Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return Config{}, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("authorized_number", envPrefix+"_AUTHORIZED_NUMBER", legacyAuthorizedNumberEnv); err != nil {
		return Config{}, fmt.Errorf("bind authorized number env: %w", err)
	}

	if err := readConfigFile(v, opts.ConfigFile); err != nil {
		return Config{}, err
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %q: %w", path, err)
	}

	return nil
}

func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file %q: %w", path, err)
		}
		return nil
	}

	v.SetConfigName("config")
	if dir, err := DefaultDir(); err == nil {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	return nil
}

func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(home, ".config", "whatsavings"), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("authorized_number", "")
	v.SetDefault("command.prefix", domain.DefaultCommandPrefix)
	v.SetDefault("session.name", "default")
	v.SetDefault("session.retry_delay", 3*time.Second)
	v.SetDefault("gateway.url", "")
	v.SetDefault("gateway.token", "")
	v.SetDefault("gateway.handshake_timeout", 15*time.Second)
	v.SetDefault("gateway.send_timeout", 20*time.Second)
	v.SetDefault("gateway.pong_wait", 60*time.Second)
	v.SetDefault("secrets.backend", SecretsBackendFile)
	v.SetDefault("secrets.dir", "")
	v.SetDefault("redis.addrs", []string{})
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.namespace", "whatsavings")
	v.SetDefault("ledger.driver", "mysql")
	v.SetDefault("ledger.dsn", "")
	v.SetDefault("ledger.max_open_conns", 25)
	v.SetDefault("ledger.max_idle_conns", 10)
	v.SetDefault("ledger.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("nats.url", "")
	v.SetDefault("nats.subject", "whatsavings.deposits")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", LogFormatConsole)
}

func fromViper(v *viper.Viper) Config {
	cfg := Config{
		AuthorizedNumber: domain.DigitsOnly(v.GetString("authorized_number")),
		CommandPrefix:    strings.TrimSpace(v.GetString("command.prefix")),
		Session: SessionConfig{
			Name:       strings.TrimSpace(v.GetString("session.name")),
			RetryDelay: v.GetDuration("session.retry_delay"),
		},
		Gateway: GatewayConfig{
			URL:              strings.TrimSpace(v.GetString("gateway.url")),
			Token:            v.GetString("gateway.token"),
			HandshakeTimeout: v.GetDuration("gateway.handshake_timeout"),
			SendTimeout:      v.GetDuration("gateway.send_timeout"),
			PongWait:         v.GetDuration("gateway.pong_wait"),
		},
		Secrets: SecretsConfig{
			Backend: strings.ToLower(strings.TrimSpace(v.GetString("secrets.backend"))),
			Dir:     strings.TrimSpace(v.GetString("secrets.dir")),
		},
		Redis: RedisConfig{
			Addrs:     splitList(v.GetStringSlice("redis.addrs")),
			Password:  v.GetString("redis.password"),
			DB:        v.GetInt("redis.db"),
			Namespace: v.GetString("redis.namespace"),
		},
		Ledger: LedgerConfig{
			Driver:          strings.TrimSpace(v.GetString("ledger.driver")),
			DSN:             v.GetString("ledger.dsn"),
			MaxOpenConns:    v.GetInt("ledger.max_open_conns"),
			MaxIdleConns:    v.GetInt("ledger.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("ledger.conn_max_lifetime"),
		},
		NATS: NATSConfig{
			URL:     strings.TrimSpace(v.GetString("nats.url")),
			Subject: strings.TrimSpace(v.GetString("nats.subject")),
		},
		Log: LogConfig{
			Level:  strings.ToLower(strings.TrimSpace(v.GetString("log.level"))),
			Format: strings.ToLower(strings.TrimSpace(v.GetString("log.format"))),
		},
	}

	if cfg.Secrets.Dir == "" {
		if dir, err := DefaultDir(); err == nil {
			cfg.Secrets.Dir = filepath.Join(dir, "secrets")
		}
	}

	return cfg
}

// splitList accepts both YAML lists and comma separated env values.
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}

	return out
}

func (c Config) Validate() error {
	var errs []error

	if c.Session.RetryDelay <= 0 {
		errs = append(errs, errors.New("session.retry_delay must be positive"))
	}
	if c.Session.Name == "" {
		errs = append(errs, errors.New("session.name is required"))
	}

	switch c.Secrets.Backend {
	case SecretsBackendFile, SecretsBackendPass, SecretsBackendChain:
	case SecretsBackendRedis:
		if len(c.Redis.Addrs) == 0 {
			errs = append(errs, errors.New("redis.addrs is required for the redis secrets backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported secrets.backend %q", c.Secrets.Backend))
	}

	switch c.Log.Format {
	case LogFormatJSON, LogFormatConsole:
	default:
		errs = append(errs, fmt.Errorf("unsupported log.format %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, errors.Join(errs...))
	}

	return nil
}

// ValidateRun adds the settings only the bot loop needs.
func (c Config) ValidateRun() error {
	var errs []error

	if c.AuthorizedNumber == "" {
		errs = append(errs, errors.New("authorized_number is required"))
	}
	if c.Gateway.URL == "" {
		errs = append(errs, errors.New("gateway.url is required"))
	}
	if strings.TrimSpace(c.Ledger.DSN) == "" {
		errs = append(errs, errors.New("ledger.dsn is required"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, errors.Join(errs...))
	}

	return nil
}
