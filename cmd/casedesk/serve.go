package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/casedesk/casedesk/internal/cases"
	"github.com/casedesk/casedesk/internal/classifier"
	"github.com/casedesk/casedesk/internal/config"
	"github.com/casedesk/casedesk/internal/db"
	dbsqlc "github.com/casedesk/casedesk/internal/db/sqlc"
	"github.com/casedesk/casedesk/internal/documents"
	"github.com/casedesk/casedesk/internal/handlers"
	"github.com/casedesk/casedesk/internal/ingest"
	"github.com/casedesk/casedesk/internal/logger"
	"github.com/casedesk/casedesk/internal/message"
	"github.com/casedesk/casedesk/internal/message/event"
	"github.com/casedesk/casedesk/internal/n8n"
	"github.com/casedesk/casedesk/internal/server"
)

func runServe() {
	fx.New(
		fx.Provide(
			provideConfig,
			provideLogger,
			provideDBConn,
			provideDBQueries,
			event.NewHub,
			provideMessageService,
			cases.NewService,
			provideN8NClient,
			provideDocumentService,
			provideClassifier,
			provideIngestService,
			provideServerHandler(handlers.NewPingHandler),
			provideServerHandler(handlers.NewN8NWebhookHandler),
			provideServerHandler(handlers.NewMessageHandler),
			provideServerHandler(handlers.NewCaseHandler),
			provideServerHandler(handlers.NewDocumentHandler),
			provideServerHandler(handlers.NewRAGHandler),
			provideServerHandler(handlers.NewSwaggerHandler),
			provideServer,
		),
		fx.Invoke(startServer),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger.With(slog.String("component", "fx"))}
		}),
	).Run()
}

func provideServerHandler(fn any) any {
	return fx.Annotate(
		fn,
		fx.As(new(server.Handler)),
		fx.ResultTags(`group:"server_handlers"`),
	)
}

func provideConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

func provideDBConn(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	conn, err := db.Open(context.Background(), cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	lc.Append(fx.Hook{OnStop: func(ctx context.Context) error { conn.Close(); return nil }})
	return conn, nil
}

func provideDBQueries(conn *pgxpool.Pool) *dbsqlc.Queries { return dbsqlc.New(conn) }

func provideMessageService(log *slog.Logger, queries *dbsqlc.Queries, hub *event.Hub) *message.DBService {
	return message.NewService(log, queries, hub)
}

func provideN8NClient(log *slog.Logger, cfg config.Config) *n8n.Client {
	return n8n.NewClient(log, cfg.N8N)
}

func provideDocumentService(log *slog.Logger, queries *dbsqlc.Queries, client *n8n.Client) *documents.Service {
	return documents.NewService(log, queries, client)
}

func provideClassifier(log *slog.Logger, cfg config.Config) classifier.Classifier {
	if !cfg.Classifier.Enabled() {
		log.Warn("classifier api key not set; messages will be stored without case links")
	}
	return classifier.New(log, cfg.Classifier)
}

func provideIngestService(log *slog.Logger, cfg config.Config, messages *message.DBService, caseService *cases.Service, cls classifier.Classifier) *ingest.Service {
	return ingest.NewService(log, messages, caseService, cls, cfg.Ingest.ClassifyTimeout())
}

type serverParams struct {
	fx.In
	Logger         *slog.Logger
	Config         config.Config
	ServerHandlers []server.Handler `group:"server_handlers"`
}

func provideServer(params serverParams) *server.Server {
	return server.NewServer(params.Logger, params.Config, params.ServerHandlers...)
}

func startServer(lc fx.Lifecycle, logger *slog.Logger, srv *server.Server, shutdowner fx.Shutdowner) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("starting casedesk", slog.String("version", version), slog.String("commit", commit))
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server failed", slog.Any("error", err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Stop(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server stop: %w", err)
			}
			return nil
		},
	})
}
