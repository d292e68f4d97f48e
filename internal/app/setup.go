// Package app contains the application setup for the catalog service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/ankitjagtap00/Machine-test-ProductCat/internal/config"
	"github.com/ankitjagtap00/Machine-test-ProductCat/internal/service"
	"github.com/ankitjagtap00/Machine-test-ProductCat/internal/store"
	"github.com/ankitjagtap00/Machine-test-ProductCat/internal/transport/rest"
	"github.com/ankitjagtap00/Machine-test-ProductCat/pkg/server"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependencies struct {
	CategoryService service.CategoryService
	ProductService  service.ProductService
	Logger          *slog.Logger
}

func SetupDependencies(dbPool *pgxpool.Pool, logger *slog.Logger) *Dependencies {
	categoryStore := store.NewPgCategoryStore(dbPool)
	productStore := store.NewPgProductStore(dbPool)

	return &Dependencies{
		CategoryService: service.NewCategories(categoryStore),
		ProductService:  service.NewProducts(productStore, categoryStore),
		Logger:          logger,
	}
}

// SetupHTTPHandler initializes the router and routes for the catalog service.
// Used by tests to exercise the full HTTP surface without a listener.
func SetupHTTPHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the catalog service.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	rest.NewCategoryHandler(deps.CategoryService, deps.Logger).RegisterRoutes(mux)
	rest.NewProductHandler(deps.ProductService, deps.Logger).RegisterRoutes(mux)
	mux.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// SetupHTTPServer creates and configures an HTTP server for the catalog service.
func SetupHTTPServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHTTPHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
