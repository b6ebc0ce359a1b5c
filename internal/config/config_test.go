package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/whatsavings/internal/domain"
)

func isolate(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{
		"WHATSAVINGS_AUTHORIZED_NUMBER",
		"ALLOWED_NUMBER",
		"WHATSAVINGS_LEDGER_DSN",
		"WHATSAVINGS_LEDGER_DRIVER",
		"WHATSAVINGS_SESSION_RETRY_DELAY",
		"WHATSAVINGS_SECRETS_BACKEND",
		"WHATSAVINGS_REDIS_ADDRS",
		"WHATSAVINGS_GATEWAY_URL",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	return home
}

func writeFile(t *testing.T, dir string, name string, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultCommandPrefix, cfg.CommandPrefix)
	assert.Equal(t, "default", cfg.Session.Name)
	assert.Equal(t, 3*time.Second, cfg.Session.RetryDelay)
	assert.Equal(t, SecretsBackendFile, cfg.Secrets.Backend)
	assert.Equal(t, filepath.Join(home, ".config", "whatsavings", "secrets"), cfg.Secrets.Dir)
	assert.Equal(t, "mysql", cfg.Ledger.Driver)
	assert.Equal(t, 25, cfg.Ledger.MaxOpenConns)
	assert.Equal(t, "whatsavings.deposits", cfg.NATS.Subject)
	assert.False(t, cfg.NATS.Enabled())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, LogFormatConsole, cfg.Log.Format)
}

func TestLoadReadsDefaultConfigFileFromHome(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".config", "whatsavings")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	writeFile(t, dir, "config.yaml", "authorized_number: \"+62 812-3456\"\nledger:\n  driver: sqlite\n")

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "628123456", cfg.AuthorizedNumber)
	assert.Equal(t, "sqlite", cfg.Ledger.Driver)
}

func TestLoadEnvironmentOverridesConfigFile(t *testing.T) {
	home := isolate(t)
	path := writeFile(t, home, "bot.yaml", `
authorized_number: "6281111"
session:
  retry_delay: 5s
ledger:
  dsn: "from-file"
`)
	t.Setenv("WHATSAVINGS_LEDGER_DSN", "from-env")
	t.Setenv("WHATSAVINGS_SESSION_RETRY_DELAY", "1500ms")

	cfg, err := Load(LoadOptions{ConfigFile: path})
	require.NoError(t, err)

	assert.Equal(t, "6281111", cfg.AuthorizedNumber)
	assert.Equal(t, "from-env", cfg.Ledger.DSN)
	assert.Equal(t, 1500*time.Millisecond, cfg.Session.RetryDelay)
}

func TestLoadAcceptsLegacyAuthorizedNumberVariable(t *testing.T) {
	isolate(t)
	t.Setenv("ALLOWED_NUMBER", "62812-0000")

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "628120000", cfg.AuthorizedNumber)
}

func TestLoadReadsEnvFile(t *testing.T) {
	home := isolate(t)
	path := writeFile(t, home, "bot.env", "WHATSAVINGS_AUTHORIZED_NUMBER=62899\nWHATSAVINGS_GATEWAY_URL=ws://127.0.0.1:8080/ws\n")

	cfg, err := Load(LoadOptions{EnvFile: path})
	require.NoError(t, err)

	assert.Equal(t, "62899", cfg.AuthorizedNumber)
	assert.Equal(t, "ws://127.0.0.1:8080/ws", cfg.Gateway.URL)
}

func TestLoadFailsOnMissingExplicitFiles(t *testing.T) {
	home := isolate(t)

	_, err := Load(LoadOptions{EnvFile: filepath.Join(home, "missing.env")})
	assert.ErrorContains(t, err, "load env file")

	_, err = Load(LoadOptions{ConfigFile: filepath.Join(home, "missing.yaml")})
	assert.ErrorContains(t, err, "read config file")
}

func TestLoadSplitsRedisAddrsFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("WHATSAVINGS_SECRETS_BACKEND", "redis")
	t.Setenv("WHATSAVINGS_REDIS_ADDRS", "redis-a:6379, redis-b:6379")

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"redis-a:6379", "redis-b:6379"}, cfg.Redis.Addrs)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	isolate(t)
	t.Setenv("WHATSAVINGS_SECRETS_BACKEND", "vault")

	_, err := Load(LoadOptions{})
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.ErrorContains(t, err, `unsupported secrets.backend "vault"`)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := Config{
		Session: SessionConfig{Name: "default", RetryDelay: time.Second},
		Secrets: SecretsConfig{Backend: SecretsBackendFile},
		Log:     LogConfig{Format: LogFormatJSON},
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid"},
		{name: "zero retry delay", mutate: func(c *Config) { c.Session.RetryDelay = 0 }, wantErr: "session.retry_delay must be positive"},
		{name: "empty session", mutate: func(c *Config) { c.Session.Name = "" }, wantErr: "session.name is required"},
		{name: "redis without addrs", mutate: func(c *Config) { c.Secrets.Backend = SecretsBackendRedis }, wantErr: "redis.addrs is required"},
		{name: "unknown log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: `unsupported log.format "xml"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, domain.ErrInvalidConfig)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateRunRequiresBotSettings(t *testing.T) {
	t.Parallel()

	err := Config{}.ValidateRun()
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.ErrorContains(t, err, "authorized_number is required")
	assert.ErrorContains(t, err, "gateway.url is required")
	assert.ErrorContains(t, err, "ledger.dsn is required")

	err = Config{
		AuthorizedNumber: "62812",
		Gateway:          GatewayConfig{URL: "ws://gateway"},
		Ledger:           LedgerConfig{DSN: "file:savings.db"},
	}.ValidateRun()
	assert.NoError(t, err)
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b", "c"}, splitList([]string{"a, b", "", " c "}))
	assert.Nil(t, splitList(nil))
}
