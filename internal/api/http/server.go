// Package httpapi serves the weather story API over Fiber.
package httpapi

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wxstory/internal/cache"
	"wxstory/internal/metrics"
	"wxstory/internal/story"
	"wxstory/internal/weather"
)

// Server is the HTTP front end over the weather service and story
// generator.
type Server struct {
	app     *fiber.App
	svc     *weather.Service
	gen     *story.Generator
	cache   *cache.Cache
	metrics *metrics.Collector
	log     *slog.Logger
	version string
	offline bool
}

// Options carries the server's collaborators.
type Options struct {
	Service   *weather.Service
	Generator *story.Generator
	Cache     *cache.Cache
	Metrics   *metrics.Collector
	Log       *slog.Logger
	Version   string
	Offline   bool
}

// NewServer builds the Fiber app with middleware and routes registered.
func NewServer(opts Options) *Server {
	if opts.Log == nil {
		opts.Log = slog.Default()
	}

	s := &Server{
		svc:     opts.Service,
		gen:     opts.Generator,
		cache:   opts.Cache,
		metrics: opts.Metrics,
		log:     opts.Log,
		version: opts.Version,
		offline: opts.Offline,
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "wxstory",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	s.app.Use(logger.New())
	s.app.Use(recover.New())
	s.app.Use(cors.New())

	s.registerRoutes()
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return s
}

// Listen blocks serving on the port until shutdown.
func (s *Server) Listen(port string) error {
	return s.app.Listen(":" + port)
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
