package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"food-assistant/internal/chat/catalog"
	"food-assistant/internal/chat/fallback"
	"food-assistant/internal/chat/orders"
	"food-assistant/internal/chat/router"
	"food-assistant/internal/chat/session"
	"food-assistant/internal/common/config"
	"food-assistant/internal/common/database"
	"food-assistant/internal/common/genai"
	"food-assistant/internal/common/logger"
	"food-assistant/internal/common/observability"
	"food-assistant/internal/models"
	"food-assistant/pkg/registry"
)

// application is the assembled dependency graph for one process.
type application struct {
	router  *router.Router
	checks  []database.Pinger
	closers []func() error
}

func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
}

type wiring struct {
	cfg      *config.Config
	log      logger.Logger
	attempts int
	delay    time.Duration
	app      *application

	pg    *database.PostgresClient
	redis *database.RedisClient
	es    *database.ElasticsearchClient
}

// buildApplication connects every configured backend, retrying each up to
// attempts times, and assembles the chat router.
func buildApplication(ctx context.Context, cfg *config.Config, obs *observability.Observability, log logger.Logger, attempts int) (*application, error) {
	w := &wiring{cfg: cfg, log: log, attempts: attempts, delay: 2 * time.Second, app: &application{}}

	app, err := w.build(ctx, obs)
	if err != nil {
		w.app.Close()
		return nil, err
	}
	return app, nil
}

func (w *wiring) build(ctx context.Context, obs *observability.Observability) (*application, error) {
	aliases, menu, err := loadChatRegistry(w.cfg.Chat.RegistryPath)
	if err != nil {
		return nil, err
	}

	source, err := w.catalogSource(ctx, menu)
	if err != nil {
		return nil, err
	}
	store, err := w.sessionStore(ctx)
	if err != nil {
		return nil, err
	}
	repo, err := w.orderRepository(ctx)
	if err != nil {
		return nil, err
	}
	generator, err := w.generator(ctx)
	if err != nil {
		return nil, err
	}

	w.app.router = router.New(router.Config{
		GuestUserID:         w.cfg.Chat.GuestUserID,
		Restaurant:          w.cfg.Chat.Restaurant,
		Region:              w.cfg.Chat.ServiceRegion,
		Aliases:             aliases,
		PartialDisplayLimit: w.cfg.Chat.PartialDisplayLimit,
	}, router.Dependencies{
		Sessions:      store,
		Catalog:       source,
		Orders:        repo,
		Fallback:      fallback.NewResponder(generator, w.log),
		Observability: obs,
	}, w.log)
	return w.app, nil
}

// loadChatRegistry returns the default aliases when no registry is configured.
func loadChatRegistry(path string) ([]catalog.Alias, []models.MenuItem, error) {
	if path == "" {
		return catalog.DefaultAliases(), nil, nil
	}

	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load chat registry: %w", err)
	}

	aliases := make([]catalog.Alias, 0, len(reg.Aliases))
	for _, a := range reg.Aliases {
		aliases = append(aliases, catalog.Alias{Name: a.Name, Keywords: a.Keywords})
	}
	if len(aliases) == 0 {
		aliases = catalog.DefaultAliases()
	}

	menu := make([]models.MenuItem, 0, len(reg.Menu))
	for _, m := range reg.Menu {
		menu = append(menu, models.MenuItem{ID: m.ID, Name: m.Name, Price: m.Price, Category: m.Category})
	}
	return aliases, menu, nil
}

func (w *wiring) catalogSource(ctx context.Context, menu []models.MenuItem) (catalog.Source, error) {
	var source catalog.Source
	switch w.cfg.Catalog.Backend {
	case config.BackendStatic:
		source = catalog.StaticSource(menu)
	case config.BackendElasticsearch:
		es, err := w.elasticsearch(ctx)
		if err != nil {
			return nil, err
		}
		source = catalog.NewElasticsearchSource(es.Client, w.cfg.Catalog.Index, w.cfg.Catalog.MaxItems, w.log)
	default:
		pg, err := w.postgres(ctx)
		if err != nil {
			return nil, err
		}
		source = catalog.NewPostgresSource(pg.DB, w.log)
	}

	if !w.cfg.Catalog.CacheEnabled {
		return source, nil
	}
	rdb, err := w.redisClient(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.NewCachedSource(source, rdb.Client, config.GetDuration(w.cfg.Catalog.CacheTTL), w.log), nil
}

func (w *wiring) sessionStore(ctx context.Context) (session.Store, error) {
	if w.cfg.Session.Backend != config.BackendRedis {
		return session.NewMemoryStore(w.cfg.Session.Shards), nil
	}
	rdb, err := w.redisClient(ctx)
	if err != nil {
		return nil, err
	}
	return session.NewRedisStore(rdb.Client, w.cfg.Session.KeyPrefix, config.GetDuration(w.cfg.Session.TTL)), nil
}

func (w *wiring) orderRepository(ctx context.Context) (orders.Repository, error) {
	if w.cfg.Orders.Backend == config.BackendNone {
		return orders.UnavailableRepository{}, nil
	}
	pg, err := w.postgres(ctx)
	if err != nil {
		return nil, err
	}
	return orders.NewPostgresRepository(pg.DB, w.log), nil
}

// generator returns nil when generative replies are not configured.
func (w *wiring) generator(ctx context.Context) (genai.Generator, error) {
	g := w.cfg.APIs.GenAI
	gen, err := genai.New(ctx, genai.Config{
		Provider:    g.Provider,
		BaseURL:     g.BaseURL,
		APIKey:      g.APIKey,
		Model:       g.Model,
		Timeout:     config.GetDuration(g.Timeout),
		MaxRetries:  g.MaxRetries,
		MaxTokens:   g.MaxTokens,
		Temperature: g.Temperature,
	}, w.log)
	if errors.Is(err, genai.ErrGenAIDisabled) {
		w.log.Info("generative replies disabled", map[string]interface{}{"provider": g.Provider})
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}
	return gen, nil
}

func (w *wiring) postgres(ctx context.Context) (*database.PostgresClient, error) {
	if w.pg != nil {
		return w.pg, nil
	}
	err := retryWithBackoff(func() error {
		pg, err := database.NewPostgres(w.cfg.Database.Postgres)
		if err != nil {
			return err
		}
		if err := pg.Ping(ctx); err != nil {
			_ = pg.Close()
			return err
		}
		w.pg = pg
		return nil
	}, w.attempts, w.delay, w.log, "PostgreSQL connection")
	if err != nil {
		return nil, err
	}
	w.register(w.pg, w.pg.Close)
	w.log.Info("PostgreSQL connected successfully", nil)
	return w.pg, nil
}

func (w *wiring) redisClient(ctx context.Context) (*database.RedisClient, error) {
	if w.redis != nil {
		return w.redis, nil
	}
	rdb := database.NewRedis(w.cfg.Database.Redis)
	err := retryWithBackoff(func() error {
		return rdb.Ping(ctx)
	}, w.attempts, w.delay, w.log, "Redis connection")
	if err != nil {
		_ = rdb.Close()
		return nil, err
	}
	w.redis = rdb
	w.register(rdb, rdb.Close)
	w.log.Info("Redis connected successfully", nil)
	return rdb, nil
}

func (w *wiring) elasticsearch(ctx context.Context) (*database.ElasticsearchClient, error) {
	if w.es != nil {
		return w.es, nil
	}
	err := retryWithBackoff(func() error {
		es, err := database.NewElasticsearch(w.cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		if err := es.Ping(ctx); err != nil {
			return err
		}
		w.es = es
		return nil
	}, w.attempts, w.delay, w.log, "Elasticsearch connection")
	if err != nil {
		return nil, err
	}
	w.register(w.es, nil)
	w.log.Info("Elasticsearch connected successfully", nil)
	return w.es, nil
}

func (w *wiring) register(p database.Pinger, closer func() error) {
	w.app.checks = append(w.app.checks, p)
	if closer != nil {
		w.app.closers = append(w.app.closers, closer)
	}
}
