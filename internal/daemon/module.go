package daemon

import (
	"context"

	"github.com/matheus3301/chatlens/internal/answer"
	"github.com/matheus3301/chatlens/internal/api"
	"github.com/matheus3301/chatlens/internal/bus"
	"github.com/matheus3301/chatlens/internal/config"
	"github.com/matheus3301/chatlens/internal/corpus"
	"github.com/matheus3301/chatlens/internal/llm"
	"github.com/matheus3301/chatlens/internal/lock"
	"github.com/matheus3301/chatlens/internal/logging"
	"github.com/matheus3301/chatlens/internal/retrieval"
	"github.com/matheus3301/chatlens/internal/session"
	"github.com/matheus3301/chatlens/internal/status"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Params holds the resolved session configuration passed to the fx module.
type Params struct {
	SessionName string
	SocketPath  string         // optional override for testing; empty = use default
	Config      *config.Config // optional; nil = load ~/.chatlens/config.toml
}

// Module returns the fx module for the daemon, composing all providers and lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("daemon",
		fx.Supply(p),
		fx.Provide(
			provideLogger,
			provideConfig,
			provideBus,
			provideStateMachine,
			provideLock,
			provideHolder,
			provideGenerator,
			provideAnalyzer,
			NewServer,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideLogger(p Params) (*zap.Logger, error) {
	return logging.New(session.LogPath(p.SessionName), p.SessionName)
}

func provideConfig(p Params, logger *zap.Logger) (*config.Config, error) {
	if p.Config != nil {
		return p.Config, p.Config.Validate()
	}
	cfg, err := config.LoadOrDefault(session.ConfigPath())
	if err != nil {
		return nil, err
	}
	logger.Info("config loaded",
		zap.String("path", session.ConfigPath()),
		zap.String("backend", cfg.Retrieval.Backend),
		zap.Int("top_k", cfg.Retrieval.TopK),
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model),
		zap.Duration("llm_timeout", cfg.LLM.Timeout.Duration),
	)
	return cfg, nil
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideStateMachine(b *bus.Bus) *status.Machine {
	return status.NewMachine(b)
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	if err := session.EnsureDir(p.SessionName); err != nil {
		return nil, err
	}
	logger.Info("acquiring session lock", zap.String("session", p.SessionName))
	l, err := lock.Acquire(session.Dir(p.SessionName))
	if err != nil {
		return nil, err
	}
	logger.Info("session lock acquired")
	return l, nil
}

func provideHolder(cfg *config.Config, b *bus.Bus, m *status.Machine, logger *zap.Logger) *corpus.Holder {
	return corpus.NewHolder(corpus.Options{
		Backend: cfg.Retrieval.Backend,
		Retrieval: retrieval.Options{
			K:         cfg.Retrieval.TopK,
			Stopwords: cfg.Retrieval.Stopwords,
		},
		Bus:    b,
		Status: m,
		Logger: logger.Named("corpus"),
	})
}

func provideGenerator(cfg *config.Config, logger *zap.Logger) (*answer.Generator, error) {
	return answer.New(answer.Options{
		LLM: llm.Config{
			Provider: cfg.LLM.Provider,
			Model:    cfg.LLM.Model,
			BaseURL:  cfg.LLM.BaseURL,
		},
		Timeout:           cfg.LLM.Timeout.Duration,
		KeyEnv:            cfg.LLM.APIKeyEnv,
		RequestsPerMinute: cfg.LLM.RequestsPerMinute,
		Logger:            logger.Named("answer"),
	})
}

func provideAnalyzer(p Params, holder *corpus.Holder, gen *answer.Generator, b *bus.Bus, logger *zap.Logger) *api.Analyzer {
	return api.NewAnalyzer(p.SessionName, holder, gen, b, logger.Named("api"))
}

func registerLifecycle(lc fx.Lifecycle, srv *Server, lk *lock.Lock, holder *corpus.Holder, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// Start gRPC server in background.
			go func() {
				if err := srv.Start(); err != nil {
					logger.Error("gRPC server error", zap.Error(err))
				}
			}()
			logger.Info("daemon ready, waiting for an export")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			srv.Stop(ctx)
			if err := holder.Close(); err != nil {
				logger.Warn("error releasing corpus", zap.Error(err))
			}
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("daemon stopped")
			_ = logger.Sync()
			return nil
		},
	})
}
