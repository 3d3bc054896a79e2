// Package bootstrap assembles the service: configuration, logging, data
// store, Redis, repositories, handlers and the HTTP server.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/steadycalls/opsbrain/internal/api"
	"github.com/steadycalls/opsbrain/internal/audit"
	"github.com/steadycalls/opsbrain/internal/auth"
	"github.com/steadycalls/opsbrain/internal/config"
	"github.com/steadycalls/opsbrain/internal/database"
	"github.com/steadycalls/opsbrain/internal/events"
	"github.com/steadycalls/opsbrain/internal/handlers"
	"github.com/steadycalls/opsbrain/internal/logger"
	"github.com/steadycalls/opsbrain/internal/metrics"
	"github.com/steadycalls/opsbrain/internal/repository"
	"github.com/steadycalls/opsbrain/internal/webhooks"
)

const shutdownTimeout = 10 * time.Second

// App is the assembled service.
type App struct {
	cfg    *config.Config
	log    logger.Logger
	store  *database.Store
	redis  *redis.Client
	server *http.Server
}

// New loads configuration and wires every component. A missing or
// unreachable database is not fatal; the service starts degraded and keeps
// retrying on use.
func New() (*App, error) {
	cfg, err := config.Load(config.GetConfigPath("config.yml"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Development: cfg.Debug})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	store := database.New(cfg.Database.URL, log)
	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(migrateCtx, store); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	redisClient := newRedisClient(cfg, log)

	tokens, err := auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL.Std())
	if err != nil {
		return nil, fmt.Errorf("init auth: %w", err)
	}

	m := metrics.New()
	publisher := events.NewPublisher(redisClient, log)

	auditLogs := repository.NewAuditLogs(store, log)
	recorder := audit.NewRecorder(auditLogs, log)

	users := repository.NewUsers(store, log, cfg.Auth.OwnerOpenID)
	accounts := repository.NewAccounts(store, log)
	projects := repository.NewProjects(store, log)
	domains := repository.NewDomains(store, log)
	pages := repository.NewPages(store, log)
	keywords := repository.NewKeywords(store, log)
	briefs := repository.NewBriefs(store, log)
	posts := repository.NewPosts(store, log)
	tasks := repository.NewTasks(store, log)
	issues := repository.NewIssues(store, log)
	prospects := repository.NewProspects(store, log)
	links := repository.NewLinks(store, log)
	emails := repository.NewEmails(store, log)
	gbps := repository.NewGBPs(store, log)
	calls := repository.NewCalls(store, log)
	invoices := repository.NewInvoices(store, log)
	webhookEvents := repository.NewWebhookEvents(store, log)
	subscriptions := repository.NewWebhookSubscriptions(store, log)
	deliveries := repository.NewWebhookDeliveryLogs(store, log)

	intake := webhooks.NewIntake(webhookEvents, publisher, log)

	router := api.New(api.Deps{
		Config:  cfg,
		Log:     log,
		Store:   store,
		Metrics: m,
		Tokens:  tokens,

		Auth:         handlers.NewAuthHandler(users, tokens, recorder, log),
		Accounts:     handlers.NewAccountsHandler(accounts, projects, recorder, publisher, log),
		Domains:      handlers.NewDomainsHandler(domains, pages, recorder, publisher, log),
		Content:      handlers.NewContentHandler(keywords, briefs, posts, recorder, publisher, log),
		Tasks:        handlers.NewTasksHandler(tasks, recorder, publisher, log),
		Issues:       handlers.NewIssuesHandler(issues, recorder, publisher, log),
		LinkBuilding: handlers.NewLinkBuildingHandler(prospects, links, emails, recorder, publisher, log),
		GBPs:         handlers.NewGBPsHandler(gbps, calls, recorder, publisher, log),
		Billing:      handlers.NewBillingHandler(invoices, recorder, publisher, log),
		Webhooks:     handlers.NewWebhooksHandler(intake, webhookEvents, subscriptions, deliveries, m, log),
		Audit:        handlers.NewAuditHandler(auditLogs, log),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
	}

	return &App{
		cfg:    cfg,
		log:    log,
		store:  store,
		redis:  redisClient,
		server: server,
	}, nil
}

// Run serves until SIGINT/SIGTERM, then shuts down gracefully.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server listening",
			logger.String("addr", a.server.Addr),
			logger.Bool("store_available", a.store.Available(context.Background())))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		a.log.Info("shutting down", logger.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	a.close()
	return nil
}

func (a *App) close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("failed to close store", logger.Error(err))
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn("failed to close redis", logger.Error(err))
		}
	}
	_ = a.log.Sync()
}

// newRedisClient connects to Redis when enabled. Connection trouble is
// logged, not fatal: event publishing is best effort.
func newRedisClient(cfg *config.Config, log logger.Logger) *redis.Client {
	if !cfg.Redis.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, events disabled", logger.Error(err))
		_ = client.Close()
		return nil
	}

	log.Info("redis connected", logger.String("address", cfg.Redis.Address))
	return client
}
