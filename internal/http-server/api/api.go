package api

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"LeadDesk/internal/config"
	"LeadDesk/internal/http-server/handlers/errors"
	"LeadDesk/internal/http-server/handlers/key"
	"LeadDesk/internal/http-server/handlers/lead"
	"LeadDesk/internal/http-server/handlers/preview"
	"LeadDesk/internal/http-server/handlers/property"
	"LeadDesk/internal/http-server/handlers/session"
	"LeadDesk/internal/http-server/middleware/authenticate"
	"LeadDesk/internal/http-server/middleware/timeout"
	"LeadDesk/internal/lib/sl"
	"LeadDesk/internal/ws"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	authenticate.Authenticate
	session.Core
	lead.Core
	property.Core
	preview.Core
	key.Core
}

func New(conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	// Crawler-facing preview route; plain HTML, no JSON middleware.
	router.Get("/empreendimento/{slug}/{id}", preview.Property(log, handler, conf.Site.WebURL))

	router.Route("/api/v1", func(v1 chi.Router) {
		// Public widget surface.
		v1.Group(func(pub chi.Router) {
			pub.Use(timeout.Timeout(10))
			pub.Use(render.SetContentType(render.ContentTypeJSON))

			pub.Route("/chat", func(r chi.Router) {
				r.Post("/start", session.Start(log, handler))
				r.Get("/{session}", session.Transcript(log, handler))
				r.Delete("/{session}", session.Close(log, handler))
				r.Post("/{session}/message", session.Message(log, handler))
			})
			pub.Post("/leads/relay", lead.Relay(log, handler))
		})

		// WebSocket upgrade; must stay outside the request timeout.
		v1.Get("/chat/{session}/ws", session.Events(log, hub))

		// Admin surface.
		v1.Group(func(admin chi.Router) {
			admin.Use(timeout.Timeout(15))
			admin.Use(render.SetContentType(render.ContentTypeJSON))
			admin.Use(authenticate.New(log, handler))

			admin.Route("/properties", func(r chi.Router) {
				r.Get("/", property.List(log, handler))
				r.Post("/", property.Create(log, handler))
				r.Get("/{id}", property.Get(log, handler))
				r.Put("/{id}", property.Update(log, handler))
				r.Delete("/{id}", property.Delete(log, handler))
			})
			admin.Get("/leads", lead.List(log, handler))
			admin.Post("/key/new", key.Generate(log, handler))
		})
	})

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  router,
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
