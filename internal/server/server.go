package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/PixelPet_Go/internal/game"
	"github.com/osse101/PixelPet_Go/internal/handler"
	"github.com/osse101/PixelPet_Go/internal/metrics"
	"github.com/osse101/PixelPet_Go/internal/sse"
)

// Options configures the HTTP surface
type Options struct {
	Port             int
	APIKey           string
	ServiceName      string
	TrustedProxies   []string
	RateLimitRPS     float64
	RateLimitBurst   int
	WSOriginPatterns []string
	ReadinessChecks  map[string]handler.HealthChecker
}

type Server struct {
	httpServer *http.Server
}

// NewServer wires the pet routes, the event stream and the snapshot socket
func NewServer(opts Options, gameService game.Service, hub *sse.Hub) *Server {
	r := chi.NewRouter()

	ips := NewClientIP(opts.TrustedProxies)
	abuse := NewAbuseTracker()
	limiter := NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst)

	r.Use(SecurityHeadersMiddleware)
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)
	r.Use(RateLimitMiddleware(ips, limiter, abuse))
	r.Use(AuthMiddleware(opts.APIKey, ips, abuse))
	r.Use(BodyLimitMiddleware(MaxRequestBodyBytes))

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(opts.ReadinessChecks))
	r.Get("/version", handler.HandleVersion(opts.ServiceName))
	r.Handle("/metrics", promhttp.Handler())

	pets := handler.NewPetHandler(gameService)
	investments := handler.NewInvestmentHandler(gameService)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/session", func(r chi.Router) {
			r.Post("/connect", pets.HandleConnect)
			r.Post("/disconnect", pets.HandleDisconnect)
		})
		r.Get("/state", pets.HandleGetState)
		r.Post("/sync", pets.HandleSync)
		r.Get("/mood", pets.HandleGetMood)

		r.Route("/pet", func(r chi.Router) {
			r.Post("/", pets.HandleCreatePet)
			r.Post("/actions/{kind}", pets.HandlePerformAction)
			r.Post("/glasses", pets.HandleMintGlasses)
			r.Post("/challenge", pets.HandleStartChallenge)
			r.Post("/challenge/hit", pets.HandleHitChallenge)
			r.Delete("/challenge", pets.HandleCancelChallenge)
		})

		r.Route("/investment", func(r chi.Router) {
			r.Get("/", investments.HandleGetInvestment)
			r.Post("/", investments.HandleStartInvestment)
			r.Get("/options", investments.HandleGetOptions)
			r.Post("/claim", investments.HandleClaimInvestment)
		})

		r.Get("/events", sse.Handler(hub))
		r.Get("/ws", handler.HandleSnapshotStream(gameService, opts.WSOriginPatterns))
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           r,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
