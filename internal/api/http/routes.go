package httpapi

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"wxstory/internal/cache"
	"wxstory/internal/story"
	"wxstory/internal/weather"
)

var validate = validator.New()

func (s *Server) registerRoutes() {
	api := s.app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"version": s.version,
		})
	})

	api.Get("/story", s.handleStory)
	api.Get("/forecast", s.handleForecast)
	api.Get("/alerts", s.handleAlerts)
}

// locationQuery holds the location query parameter shared by all data
// endpoints.
type locationQuery struct {
	Location string `validate:"required"`
}

func parseLocationQuery(c *fiber.Ctx) (locationQuery, error) {
	q := locationQuery{Location: c.Query("location")}
	if err := validate.Struct(q); err != nil {
		return q, errors.New("location query parameter is required")
	}
	return q, nil
}

func (s *Server) handleStory(c *fiber.Ctx) error {
	start := time.Now()
	q, err := parseLocationQuery(c)
	if err != nil {
		s.metrics.RecordAPIRequest("story", "400")
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	verbose := c.QueryBool("verbose")

	key := cache.StoryKey(q.Location)
	if cached, ok := cache.Get[story.WeatherStory](s.cache, key, cache.TTLStory); ok {
		s.metrics.RecordCacheLookup(cache.KeyKind(key), "hit")
		s.metrics.RecordAPIRequest("story", "200")
		s.metrics.ObserveAPIDuration("story", time.Since(start))
		return c.JSON(cached)
	}
	s.metrics.RecordCacheLookup(cache.KeyKind(key), "miss")

	pack, err := s.svc.Assemble(c.Context(), q.Location, s.offline)
	if err != nil {
		return s.dataError(c, "story", q.Location, err)
	}

	result := s.gen.Generate(c.Context(), pack, story.Request{
		Query:   q.Location,
		Verbose: verbose,
	})

	if err := s.cache.Set(key, result); err != nil {
		s.log.Warn("caching story failed", "location", q.Location, "error", err)
	}

	s.metrics.RecordAPIRequest("story", "200")
	s.metrics.ObserveAPIDuration("story", time.Since(start))
	return c.JSON(result)
}

func (s *Server) handleForecast(c *fiber.Ctx) error {
	start := time.Now()
	q, err := parseLocationQuery(c)
	if err != nil {
		s.metrics.RecordAPIRequest("forecast", "400")
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	pack, err := s.svc.Assemble(c.Context(), q.Location, s.offline)
	if err != nil {
		return s.dataError(c, "forecast", q.Location, err)
	}

	s.metrics.RecordAPIRequest("forecast", "200")
	s.metrics.ObserveAPIDuration("forecast", time.Since(start))
	return c.JSON(pack)
}

func (s *Server) handleAlerts(c *fiber.Ctx) error {
	start := time.Now()
	q, err := parseLocationQuery(c)
	if err != nil {
		s.metrics.RecordAPIRequest("alerts", "400")
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	pack, err := s.svc.Assemble(c.Context(), q.Location, s.offline)
	if err != nil {
		return s.dataError(c, "alerts", q.Location, err)
	}

	alerts := pack.Alerts
	if alerts == nil {
		alerts = []weather.Alert{}
	}

	s.metrics.RecordAPIRequest("alerts", "200")
	s.metrics.ObserveAPIDuration("alerts", time.Since(start))
	return c.JSON(fiber.Map{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

// dataError maps any propagated fetch failure to a 500 with a JSON error
// body; handlers never leak partial data.
func (s *Server) dataError(c *fiber.Ctx, endpoint, location string, err error) error {
	s.metrics.RecordAPIRequest(endpoint, "500")
	if errors.Is(err, weather.ErrNotFound) {
		return fiber.NewError(fiber.StatusInternalServerError, "location not found: "+location)
	}
	s.log.Error("assembling weather data failed", "endpoint", endpoint, "location", location, "error", err)
	return fiber.NewError(fiber.StatusInternalServerError, "upstream weather data unavailable")
}
