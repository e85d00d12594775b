package http

import (
	"net/http"

	"folio/internal/auth"
	"folio/internal/config"
	"folio/internal/http/handler"
	mw "folio/internal/http/middleware"
	"folio/internal/kv"
	"folio/internal/portfolio"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, store kv.Store) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(mw.RequestLogger)
	r.Use(mw.CORS())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Not found"}`))
	})

	contacts := &portfolio.ContactService{Store: store}
	projects := &portfolio.ProjectService{Store: store}
	analytics := &portfolio.AnalyticsService{Store: store, Contacts: contacts}
	health := &portfolio.HealthService{Store: store}

	ch := &handler.ContactHandler{Svc: contacts}
	ph := &handler.ProjectHandler{Svc: projects}
	ah := &handler.AnalyticsHandler{Svc: analytics}
	hh := &handler.HealthHandler{Svc: health}

	routes := func(r chi.Router) {
		r.Post("/contact", ch.Submit)
		r.Get("/projects", ph.List)
		r.Post("/analytics/visit", ah.RecordVisit)
		r.Get("/health", hh.Check)

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireBearer)

			r.Get("/contacts", ch.AdminList)
			r.Put("/contacts/{id}", ch.UpdateStatus)
			r.Post("/projects", ph.Upsert)
			r.Delete("/projects/{id}", ph.Delete)
			r.Get("/analytics", ah.Report)
		})
	}

	if cfg.BasePath != "" {
		r.Route(cfg.BasePath, routes)
	} else {
		routes(r)
	}

	return r
}
