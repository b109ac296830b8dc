package api

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"wwo-weather/internal/collector"
	"wwo-weather/internal/report"
	"wwo-weather/internal/storage"
	"wwo-weather/internal/weather"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector interface {
	Collect(ctx context.Context, q weather.Query) (*collector.Result, error)
}

type LocationLister interface {
	ListLocations() ([]storage.SavedLocation, error)
}

type Server struct {
	router    *gin.Engine
	server    *http.Server
	collector Collector
	locations LocationLister
	apiKey    string
	port      int
}

type ServerConfig struct {
	Port      int
	Collector Collector
	Locations LocationLister
	APIKey    string
}

type weatherResponse struct {
	Location string                   `json:"location"`
	Label    string                   `json:"label"`
	Days     int                      `json:"days"`
	Current  weather.CurrentCondition `json:"current"`
	Forecast []weather.DayForecast    `json:"forecast"`
}

func NewServer(cfg ServerConfig) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	s := &Server{
		router:    router,
		collector: cfg.Collector,
		locations: cfg.Locations,
		apiKey:    cfg.APIKey,
		port:      cfg.Port,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthHandler)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api/v1")
	{
		api.GET("/weather", s.weatherHandler)
		api.GET("/report", s.reportHandler)
		api.GET("/locations", s.locationsHandler)
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.router,
	}

	log.Printf("API server starting on port %d", s.port)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now(),
	})
}

// query resolves ?location=&days= with the same defaults as the command line.
func (s *Server) query(c *gin.Context) weather.Query {
	var args []string
	if location := c.Query("location"); location != "" {
		args = append(args, location)
		if days := c.Query("days"); days != "" {
			args = append(args, days)
		}
	} else if days := c.Query("days"); days != "" {
		args = append(args, weather.DefaultLocation, days)
	}
	return weather.ResolveQuery(args, s.apiKey)
}

func (s *Server) weatherHandler(c *gin.Context) {
	q := s.query(c)
	result, err := s.collector.Collect(c.Request.Context(), q)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, weatherResponse{
		Location: q.Location,
		Label:    result.Label,
		Days:     q.Days,
		Current:  result.Record.Current(),
		Forecast: result.Record.Weather,
	})
}

func (s *Server) reportHandler(c *gin.Context) {
	result, err := s.collector.Collect(c.Request.Context(), s.query(c))
	if err != nil {
		s.writeError(c, err)
		return
	}

	var buf bytes.Buffer
	report.Full(&buf, result.Record, result.Label)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}

func (s *Server) locationsHandler(c *gin.Context) {
	if s.locations == nil {
		c.JSON(http.StatusOK, []storage.SavedLocation{})
		return
	}

	locs, err := s.locations.ListLocations()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, locs)
}

func (s *Server) writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{
		"error": err.Error(),
		"kind":  weather.Kind(err),
	})
}

func statusFor(err error) int {
	switch weather.Kind(err) {
	case "config":
		return http.StatusServiceUnavailable
	case "transport":
		return http.StatusGatewayTimeout
	case "http_status", "decode", "api":
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
