package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/Guilhem-Bonnet/Episode-Browser/internal/app"
	"github.com/Guilhem-Bonnet/Episode-Browser/internal/ports"
)

// HistoryReader est optionnel: il expose la pile d'historique de la page.
type HistoryReader interface {
	History() []string
}

type Server struct {
	logger  zerolog.Logger
	session *app.SyncLoop
	cache   *app.FeedCache
	bus     ports.EventBus
	history HistoryReader
}

func NewServer(logger zerolog.Logger, session *app.SyncLoop, cache *app.FeedCache, bus ports.EventBus, history HistoryReader) *Server {
	return &Server{logger: logger, session: session, cache: cache, bus: bus, history: history}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(hlog.NewHandler(s.logger))
	r.Use(hlog.RequestIDHandler("request_id", "Request-Id"))
	r.Use(hlog.RemoteAddrHandler("remote_ip"))
	r.Use(hlog.UserAgentHandler("user_agent"))
	r.Use(hlog.AccessHandler(accessLogFn))

	r.Route("/api/v1", func(r chi.Router) {
		// Le flux SSE reste ouvert: pas de timeout de requête.
		r.Get("/events", s.handleEvents)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(defaultRequestTimeout))
			r.Get("/health", s.handleHealth)
			r.Get("/version", s.handleVersion)
			r.Get("/openapi.json", s.handleOpenAPI)

			if s.cache != nil {
				NewShowsHandler(s.cache).Routes(r)
			}
			if s.session != nil {
				NewSessionHandler(s.session, s.history).Routes(r)
			}
		})
	})

	return r
}
