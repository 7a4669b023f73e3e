package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"vet-management/internal/adapters/storage/collections"
	"vet-management/internal/domain/owners"
	"vet-management/internal/domain/pets"
	"vet-management/internal/domain/reports"
	"vet-management/internal/domain/visits"
	"vet-management/internal/middleware"
	"vet-management/internal/platform/logger"
	"vet-management/internal/ports/storage"
)

type Options struct {
	// Store es el backend de colecciones (archivos JSON, Postgres o
	// memoria); lo elige main según configuración.
	Store storage.Store

	// Logger puede ser nil (sin log de requests).
	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	if opts.Logger != nil {
		r.Use(middleware.RequestLog(opts.Logger))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Repos por colección sobre el mismo store
	ownersRepo := collections.NewOwnersRepo(opts.Store)
	petsRepo := collections.NewPetsRepo(opts.Store)
	visitsRepo := collections.NewVisitsRepo(opts.Store)

	// Services por módulo
	ownersSvc := owners.NewService(ownersRepo)
	petsSvc := pets.NewService(petsRepo, ownersSvc)
	visitsSvc := visits.NewService(visitsRepo, petsRepo)
	reportsSvc := reports.NewService(visitsRepo, petsRepo, ownersRepo)

	// Rutas por módulo
	owners.RegisterRoutes(r, ownersSvc)
	pets.RegisterRoutes(r, petsSvc)
	visits.RegisterRoutes(r, visitsSvc)
	reports.RegisterRoutes(r, reportsSvc)

	return r
}
