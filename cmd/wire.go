package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bnema/whatsavings/internal/adapters/gateway/ws"
	"github.com/bnema/whatsavings/internal/adapters/ledger/sqlledger"
	"github.com/bnema/whatsavings/internal/adapters/publish/natspub"
	tomlrepo "github.com/bnema/whatsavings/internal/adapters/repo/toml"
	chainstore "github.com/bnema/whatsavings/internal/adapters/secrets/chain"
	filestore "github.com/bnema/whatsavings/internal/adapters/secrets/file"
	passstore "github.com/bnema/whatsavings/internal/adapters/secrets/pass"
	redisstore "github.com/bnema/whatsavings/internal/adapters/secrets/redis"
	"github.com/bnema/whatsavings/internal/application"
	"github.com/bnema/whatsavings/internal/config"
	"github.com/bnema/whatsavings/internal/domain"
	"github.com/bnema/whatsavings/internal/logging"
	"github.com/bnema/whatsavings/internal/ports"
)

const natsClientName = "whatsavings"

type loadOptions struct {
	configFile string
	envFile    string
}

// app carries what every command needs once configuration is loaded.
// Adapters are opened per command so a parse or version call never touches
// the network.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	clock  ports.Clock

	// dialer overrides the websocket transport in tests.
	dialer ports.Transport
}

func (a *app) load(opts loadOptions) error {
	cfg, err := config.Load(config.LoadOptions{ConfigFile: opts.configFile, EnvFile: opts.envFile})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("wire logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	if a.clock == nil {
		a.clock = ports.SystemClock{}
	}

	return nil
}

func noopCleanup() {}

func (a *app) secretStore() (ports.SecretStore, func(), error) {
	switch a.cfg.Secrets.Backend {
	case config.SecretsBackendFile:
		return filestore.NewStore(a.cfg.Secrets.Dir), noopCleanup, nil
	case config.SecretsBackendPass:
		return passstore.NewStore(), noopCleanup, nil
	case config.SecretsBackendChain:
		store, err := chainstore.NewStoreChecked(passstore.NewStore(), filestore.NewStore(a.cfg.Secrets.Dir))
		if err != nil {
			return nil, nil, fmt.Errorf("wire secret store chain: %w", err)
		}
		return store, noopCleanup, nil
	case config.SecretsBackendRedis:
		client, err := redisstore.NewClient(redisstore.Options{
			Addrs:    a.cfg.Redis.Addrs,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("wire redis secret store: %w", err)
		}
		return redisstore.NewStore(client, a.cfg.Redis.Namespace), func() { _ = client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("%w: unsupported secrets backend %q", domain.ErrInvalidConfig, a.cfg.Secrets.Backend)
	}
}

func (a *app) credentialRepository() (*tomlrepo.CredentialRepository, func(), error) {
	store, cleanup, err := a.secretStore()
	if err != nil {
		return nil, nil, err
	}

	return tomlrepo.NewCredentialRepository(store, a.cfg.Session.Name), cleanup, nil
}

func (a *app) openLedger(ctx context.Context) (*sqlledger.Ledger, error) {
	ledger, err := sqlledger.Open(ctx, sqlledger.Config{
		Driver:          a.cfg.Ledger.Driver,
		DSN:             a.cfg.Ledger.DSN,
		MaxOpenConns:    a.cfg.Ledger.MaxOpenConns,
		MaxIdleConns:    a.cfg.Ledger.MaxIdleConns,
		ConnMaxLifetime: a.cfg.Ledger.ConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("wire ledger: %w", err)
	}

	return ledger, nil
}

// publisher returns nil when no NATS url is configured.
func (a *app) publisher() (ports.DepositPublisher, func(), error) {
	if !a.cfg.NATS.Enabled() {
		return nil, noopCleanup, nil
	}

	conn, err := natspub.Connect(a.cfg.NATS.URL, natsClientName)
	if err != nil {
		return nil, nil, fmt.Errorf("wire deposit publisher: %w", err)
	}

	return natspub.NewPublisher(conn, a.cfg.NATS.Subject), func() { _ = conn.Drain() }, nil
}

func (a *app) transport() (ports.Transport, error) {
	if a.dialer != nil {
		return a.dialer, nil
	}

	transport, err := ws.NewTransport(ws.Config{
		URL:              a.cfg.Gateway.URL,
		Token:            a.cfg.Gateway.Token,
		HandshakeTimeout: a.cfg.Gateway.HandshakeTimeout,
		SendTimeout:      a.cfg.Gateway.SendTimeout,
		PongWait:         a.cfg.Gateway.PongWait,
	}, a.logger.Named("gateway"))
	if err != nil {
		return nil, fmt.Errorf("wire gateway transport: %w", err)
	}

	return transport, nil
}

func (a *app) parser() *domain.AmountParser {
	return domain.NewAmountParser(a.cfg.CommandPrefix)
}

func (a *app) pipeline(ledger ports.Ledger, publisher ports.DepositPublisher) *application.DepositPipeline {
	opts := []application.PipelineOption{application.WithPipelineLogger(a.logger.Named("pipeline"))}
	if publisher != nil {
		opts = append(opts, application.WithPublisher(publisher))
	}

	return application.NewDepositPipeline(
		application.NewClassifier(a.cfg.AuthorizedNumber),
		a.parser(),
		application.NewRecorder(ledger, a.clock),
		application.NewConfirmer(),
		opts...,
	)
}

func (a *app) lifecycle(transport ports.Transport, credentials ports.CredentialStore, handler application.MessageHandler) *application.LifecycleManager {
	return application.NewLifecycleManager(transport, credentials, handler,
		application.WithRetryDelay(a.cfg.Session.RetryDelay),
		application.WithClock(a.clock),
		application.WithLogger(a.logger.Named("lifecycle")),
	)
}
