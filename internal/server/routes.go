package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"

	"keywatch/internal/handlers"
	"keywatch/internal/handlers/api"
	"keywatch/internal/metrics"
	"keywatch/internal/store"
)

// keywordPrefixes are the mount points of the keyword API. /api/keywords is
// what the browser page and older clients call.
var keywordPrefixes = []string{"/keywords", "/api/keywords"}

// RegisterRoutes registers all application routes against the given store.
func (s *Server) RegisterRoutes(keywords store.Store) {
	m := metrics.New(keywords)

	keywordHandler := api.NewKeywordHandler(keywords, m)
	pageHandler := handlers.NewKeywordPageHandler(keywords, s.Cfg)
	healthHandler := handlers.NewHealthHandler(keywords)

	for _, prefix := range keywordPrefixes {
		keywordHandler.Register(s.App.Group(prefix))
	}

	s.App.Get("/", pageHandler.Index)
	s.App.Get("/healthz", healthHandler.Check)
	s.App.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
}
