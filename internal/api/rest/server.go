// Package rest provides functionality for initializing a server for the link resolution service.
package rest

import (
	"compress/gzip"
	"expvar"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/danilovkiri/dk_go_link_resolver/internal/api/rest/handlers"
	"github.com/danilovkiri/dk_go_link_resolver/internal/api/rest/middleware"
	"github.com/danilovkiri/dk_go_link_resolver/internal/config"
	aliasService "github.com/danilovkiri/dk_go_link_resolver/internal/service/alias/v1"
	collectionsService "github.com/danilovkiri/dk_go_link_resolver/internal/service/collections/v1"
	guardService "github.com/danilovkiri/dk_go_link_resolver/internal/service/guard/v1"
	metricsService "github.com/danilovkiri/dk_go_link_resolver/internal/service/metrics/v1"
	resolverService "github.com/danilovkiri/dk_go_link_resolver/internal/service/resolver/v1"
	secretaryService "github.com/danilovkiri/dk_go_link_resolver/internal/service/secretary/v1"
	sessionService "github.com/danilovkiri/dk_go_link_resolver/internal/service/session/v1"
	"github.com/danilovkiri/dk_go_link_resolver/internal/storage"
)

var (
	serverStart = time.Now()
	publishOnce sync.Once
)

// uptime returns time in seconds since the server start-up.
func uptime() interface{} {
	return int64(time.Since(serverStart).Seconds())
}

// InitServer returns a http.Server object ready to be listening and serving.
func InitServer(cfg *config.Config, st storage.Storage) (server *http.Server, err error) {
	allocator := aliasService.InitAllocator()
	linkGuard := guardService.InitGuard(nil)
	aggregator, err := metricsService.InitAggregator(st, metricsService.DefaultRecordTimeout, nil)
	if err != nil {
		return nil, err
	}
	resolverProcessor, err := resolverService.InitResolver(allocator, linkGuard, aggregator, st, nil)
	if err != nil {
		return nil, err
	}
	collectionsProcessor, err := collectionsService.InitCollections(allocator, linkGuard, st)
	if err != nil {
		return nil, err
	}
	sec, err := secretaryService.NewSecretaryService(cfg.SecretConfig)
	if err != nil {
		return nil, err
	}
	registrar, err := sessionService.InitRegistry(sec, cfg.SecretConfig.SessionTTL, nil)
	if err != nil {
		return nil, err
	}
	linkHandler, err := handlers.InitLinkHandler(resolverProcessor, collectionsProcessor, registrar, cfg.ServerConfig)
	if err != nil {
		return nil, err
	}
	cookieHandler, err := middleware.NewCookieHandler(registrar)
	if err != nil {
		return nil, err
	}
	r := chi.NewRouter()
	r.Use(cookieHandler.CookieHandle)
	r.Use(chiMiddleware.Compress(gzip.BestSpeed, "application/json", "text/plain"))
	r.Use(middleware.Decompress)
	r.Post("/", linkHandler.HandlePostURL())
	r.Post("/api/shorten", linkHandler.JSONHandlePostURL())
	r.Post("/api/collection", linkHandler.JSONHandlePostCollection())
	r.Post("/api/session", linkHandler.HandlePostSession())
	r.Get("/collection/{alias}", linkHandler.HandleGetCollection())
	r.Get("/collection/{alias}/{index}", linkHandler.HandleGetCollectionItem())
	r.Post("/unlock/{alias}", linkHandler.HandleUnlockURL())
	r.Get("/api/user/urls", linkHandler.HandleGetURLsByUserID())
	r.Delete("/api/user/urls/{alias}", linkHandler.HandleDeleteURL())
	r.Delete("/api/user/collections/{alias}", linkHandler.HandleDeleteCollection())
	r.Get("/api/links/{alias}/stats", linkHandler.HandleGetURLStats())
	r.Get("/api/recent", linkHandler.HandleGetRecent())
	r.Get("/ping", linkHandler.HandlePingDB())
	r.Get("/{alias}", linkHandler.HandleGetURL())
	r.Mount("/debug", chiMiddleware.Profiler()) // see https://github.com/go-chi/chi/blob/master/middleware/profiler.go
	publishOnce.Do(func() {
		expvar.Publish("system.uptime", expvar.Func(uptime))
	})

	srv := &http.Server{
		Addr:         cfg.ServerConfig.ServerAddress,
		Handler:      r,
		IdleTimeout:  60 * time.Second,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return srv, nil
}
