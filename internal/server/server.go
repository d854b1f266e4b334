// Package server exposes the normalized dataset over HTTP for map front
// ends: range listings with visibility, per-range stevner, and GeoJSON
// markers, all filterable by the from/to date interval.
package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkleiven/stevnekart/internal/event"
	"github.com/mkleiven/stevnekart/internal/filter"
	"github.com/mkleiven/stevnekart/internal/geojson"
	"github.com/mkleiven/stevnekart/internal/logger"
	"github.com/mkleiven/stevnekart/internal/skytebane"
	"github.com/mkleiven/stevnekart/internal/spatial"
)

// DefaultRadiusKm bounds the near-point search when no radius is given.
const DefaultRadiusKm = 50.0

// Server serves one loaded dataset. The dataset is an immutable snapshot;
// reloading means restarting, matching the fetch-once pipeline.
type Server struct {
	ranges []*skytebane.Range
}

// New creates a Server over a normalized dataset.
func New(ranges []*skytebane.Range) *Server {
	return &Server{ranges: ranges}
}

// BaneView is a range as presented by the API: the marker data, the
// visibility verdict under the requested filter, and the filtered stevner.
type BaneView struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Lat        float64        `json:"lat"`
	Long       float64        `json:"long"`
	Categories []string       `json:"categories,omitempty"`
	Visible    bool           `json:"visible"`
	Stevner    []*event.Event `json:"stevner"`
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())
	r.Use(corsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"ranges": len(s.ranges),
		})
	})

	api := r.Group("/api/v1")
	{
		api.GET("/baner", s.listBaner)
		api.GET("/baner/:id/stevner", s.listStevner)
		api.GET("/markers", s.markers)
	}

	return r
}

// listBaner handles GET /api/v1/baner
func (s *Server) listBaner(c *gin.Context) {
	f, ranges, ok := s.selection(c)
	if !ok {
		return
	}

	views := make([]*BaneView, 0, len(ranges))
	visible := 0
	for _, r := range ranges {
		v := &BaneView{
			ID:         r.ID,
			Name:       r.Name,
			Lat:        r.Lat,
			Long:       r.Long,
			Categories: r.Categories,
			Visible:    f.RangeVisible(r),
			Stevner:    f.Apply(r.Events),
		}
		if v.Stevner == nil {
			v.Stevner = []*event.Event{}
		}
		if v.Visible {
			visible++
		}
		views = append(views, v)
	}

	c.JSON(http.StatusOK, gin.H{
		"filter":  f.String(),
		"count":   len(views),
		"visible": visible,
		"baner":   views,
	})
}

// listStevner handles GET /api/v1/baner/:id/stevner
func (s *Server) listStevner(c *gin.Context) {
	f, ok := parseFilter(c)
	if !ok {
		return
	}

	r := skytebane.FindByID(s.ranges, c.Param("id"))
	if r == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown bane: %s", c.Param("id"))})
		return
	}

	stevner := f.Apply(r.Events)
	if stevner == nil {
		stevner = []*event.Event{}
	}
	c.JSON(http.StatusOK, gin.H{
		"bane_id": r.ID,
		"filter":  f.String(),
		"count":   len(stevner),
		"stevner": stevner,
	})
}

// markers handles GET /api/v1/markers
func (s *Server) markers(c *gin.Context) {
	f, ranges, ok := s.selection(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, geojson.FromRanges(ranges, f))
}

// selection parses the filter and the optional near/radius_km params and
// returns the candidate ranges.
func (s *Server) selection(c *gin.Context) (*filter.Filter, []*skytebane.Range, bool) {
	f, ok := parseFilter(c)
	if !ok {
		return nil, nil, false
	}

	near := c.Query("near")
	if near == "" {
		return f, s.ranges, true
	}

	lat, long, err := parseNear(near)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, nil, false
	}

	radius := DefaultRadiusKm
	if raw := c.Query("radius_km"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil || radius <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid radius_km: %q", raw)})
			return nil, nil, false
		}
	}

	var nearby []*skytebane.Range
	for _, r := range s.ranges {
		if spatial.WithinRadius(r.Lat, r.Long, lat, long, radius) {
			nearby = append(nearby, r)
		}
	}
	return f, nearby, true
}

// parseFilter reads and validates the from/to query params.
func parseFilter(c *gin.Context) (*filter.Filter, bool) {
	f := &filter.Filter{
		From: c.Query("from"),
		To:   c.Query("to"),
	}
	if err := f.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return f, true
}

// parseNear parses a "lat,long" query value.
func parseNear(s string) (lat, long float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid near value: %q (want \"lat,long\")", s)
	}
	lat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid near latitude: %q", parts[0])
	}
	long, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid near longitude: %q", parts[1])
	}
	return lat, long, nil
}

// requestLogger logs each request through the structured logger.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.IncrCounter("http.requests")
		if c.Writer.Status() >= 500 {
			logger.IncrCounter("http.errors")
		}
		logger.Info("request", logger.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		})
	}
}

// corsMiddleware lets the map front end call the API from another origin.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
