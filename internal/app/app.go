package app

import (
	"fmt"
	"net/http"

	"github.com/fplcore/analysis-api/internal/config"
	"github.com/fplcore/analysis-api/internal/infrastructure/snapshot/fs"
	"github.com/fplcore/analysis-api/internal/interfaces/httpapi"
	"github.com/fplcore/analysis-api/internal/platform/cache"
	"github.com/fplcore/analysis-api/internal/platform/logging"
	"github.com/fplcore/analysis-api/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	snapshots := fs.NewProvider(cfg.DataDir, logger)

	scheduleSvc := usecase.NewScheduleService(snapshots, logger)
	analysisSvc := usecase.NewAnalysisService(snapshots, scheduleSvc, cfg.Season, cfg.RecentGameweeks, logger)

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	handler := httpapi.NewHandler(analysisSvc, store, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
