package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Pushkar3232/SitePilot-sub001/internal/adapter/api/handler"
	"github.com/Pushkar3232/SitePilot-sub001/internal/adapter/api/middleware"
	"github.com/Pushkar3232/SitePilot-sub001/internal/pkg/config"
	"github.com/Pushkar3232/SitePilot-sub001/internal/usecase"
)

// NewRouter creates and configures the main HTTP router for the dashboard API.
func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	websiteService *usecase.WebsiteService,
	pageService *usecase.PageService,
	componentService *usecase.ComponentService,
	memberService *usecase.MemberService,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logging(logger))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	websitesHandler := handler.NewWebsitesHandler(websiteService, logger)
	pagesHandler := handler.NewPagesHandler(pageService, logger)
	componentsHandler := handler.NewComponentsHandler(componentService, logger)
	membersHandler := handler.NewMembersHandler(memberService, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret, logger))
		r.Use(middleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst, logger))

		r.Get("/websites", websitesHandler.List)
		r.Post("/websites", websitesHandler.Create)
		r.Delete("/websites/{websiteID}", websitesHandler.Delete)

		r.Get("/websites/{websiteID}/pages", pagesHandler.List)
		r.Post("/websites/{websiteID}/pages", pagesHandler.Insert)
		r.Post("/websites/{websiteID}/pages/reorder", pagesHandler.Reorder)
		r.Post("/pages/{pageID}/move", pagesHandler.Move)
		r.Post("/pages/{pageID}/home", pagesHandler.SetHome)
		r.Delete("/pages/{pageID}", pagesHandler.Delete)

		r.Get("/pages/{pageID}/components", componentsHandler.List)
		r.Post("/pages/{pageID}/components", componentsHandler.Insert)
		r.Post("/pages/{pageID}/components/reorder", componentsHandler.Reorder)
		r.Post("/components/{componentID}/move", componentsHandler.Move)
		r.Post("/components/{componentID}/reparent", componentsHandler.Reparent)
		r.Delete("/components/{componentID}", componentsHandler.Delete)

		r.Get("/team", membersHandler.List)
		r.Post("/team", membersHandler.Add)
		r.Delete("/team/{userID}", membersHandler.Remove)
		r.Put("/team/{userID}/role", membersHandler.ChangeRole)
	})

	return r
}
