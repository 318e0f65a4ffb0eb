// Package api serves beach recommendations as JSON over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/ngmaloney/beach-terminal/internal/beaches"
	"github.com/ngmaloney/beach-terminal/internal/crowd"
	"github.com/ngmaloney/beach-terminal/internal/models"
	"github.com/ngmaloney/beach-terminal/internal/scoring"
)

var validate = validator.New()

// Loader provides current conditions for beaches
type Loader interface {
	Load(ctx context.Context, beach models.Beach, force bool) *models.BeachConditions
	LoadAll(ctx context.Context, list []models.Beach, force bool) []*models.BeachConditions
}

// Server is the HTTP front end
type Server struct {
	router *chi.Mux
	loader Loader
	logger *slog.Logger
	loc    *time.Location
	now    func() time.Time
}

// NewServer wires the routes
func NewServer(loader Loader, logger *slog.Logger, loc *time.Location) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if loc == nil {
		loc = time.Local
	}
	s := &Server{
		router: chi.NewRouter(),
		loader: loader,
		logger: logger.With("component", "api"),
		loc:    loc,
		now:    time.Now,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.logRequests)

	s.router.Get("/health", s.handleHealth)
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/beaches", s.handleBeaches)
		r.Get("/beaches/{id}/windows", s.handleWindows)
		r.Get("/best", s.handleBest)
		r.Get("/crowd", s.handleCrowd)
	})
	return s
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type nearQuery struct {
	Lat float64 `validate:"min=-90,max=90"`
	Lon float64 `validate:"min=-180,max=180"`
}

// handleBeaches lists every beach, or ranks them by distance when both
// lat and lon are given.
func (s *Server) handleBeaches(w http.ResponseWriter, r *http.Request) {
	rawLat, rawLon := r.URL.Query().Get("lat"), r.URL.Query().Get("lon")
	if rawLat == "" && rawLon == "" {
		writeJSON(w, http.StatusOK, beaches.All())
		return
	}

	var q nearQuery
	var errLat, errLon error
	q.Lat, errLat = strconv.ParseFloat(rawLat, 64)
	q.Lon, errLon = strconv.ParseFloat(rawLon, 64)
	if errLat != nil || errLon != nil {
		writeError(w, http.StatusBadRequest, errors.New("lat and lon must both be numbers"))
		return
	}
	if err := validate.Struct(q); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, beaches.Nearest(q.Lat, q.Lon))
}

type windowsResponse struct {
	Beach     models.Beach         `json:"beach"`
	Activity  models.Activity      `json:"activity"`
	Windows   []scoring.TimeWindow `json:"windows"`
	AllPassed bool                 `json:"all_passed"`
	Message   string               `json:"message,omitempty"`
	Stale     models.SourceAge     `json:"stale_for"`
	Errors    []string             `json:"errors,omitempty"`
}

func (s *Server) handleWindows(w http.ResponseWriter, r *http.Request) {
	beach, err := beaches.ByID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	activity, err := activityParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	bc := s.loader.Load(r.Context(), beach, false)
	result := scoring.BuildWindows(activity, beach.ID, bc.Snapshots, s.now().In(s.loc))
	windows := result.Windows
	if windows == nil {
		windows = []scoring.TimeWindow{}
	}
	writeJSON(w, http.StatusOK, windowsResponse{
		Beach:     beach,
		Activity:  activity,
		Windows:   windows,
		AllPassed: result.AllPassed,
		Message:   result.Message(),
		Stale:     bc.Age,
		Errors:    bc.Errors,
	})
}

type bestResponse struct {
	Activity models.Activity        `json:"activity"`
	Best     *scoring.BeachRanking  `json:"best,omitempty"`
	Rankings []scoring.BeachRanking `json:"rankings"`
}

func (s *Server) handleBest(w http.ResponseWriter, r *http.Request) {
	activity, err := activityParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	byBeach := make(map[string][]models.ConditionSnapshot)
	for _, bc := range s.loader.LoadAll(r.Context(), beaches.All(), false) {
		byBeach[bc.Beach.ID] = bc.Snapshots
	}

	now := s.now().In(s.loc)
	resp := bestResponse{
		Activity: activity,
		Rankings: scoring.RankBeaches(activity, byBeach, now),
	}
	if best, ok := scoring.BestNow(activity, byBeach, now); ok {
		resp.Best = &best
	}
	if resp.Rankings == nil {
		resp.Rankings = []scoring.BeachRanking{}
	}
	writeJSON(w, http.StatusOK, resp)
}

type crowdQuery struct {
	Month   int `validate:"min=1,max=12"`
	Weekday int `validate:"min=0,max=6"` // 0 is Sunday
	Hour    int `validate:"min=0,max=23"`
}

type crowdResponse struct {
	Month   int     `json:"month"`
	Weekday int     `json:"weekday"`
	Hour    int     `json:"hour"`
	Crowd   float64 `json:"crowd"`
	Level   string  `json:"level"`
}

func (s *Server) handleCrowd(w http.ResponseWriter, r *http.Request) {
	now := s.now().In(s.loc)
	q := crowdQuery{Month: int(now.Month()), Weekday: int(now.Weekday()), Hour: now.Hour()}

	for name, dst := range map[string]*int{"month": &q.Month, "weekday": &q.Weekday, "hour": &q.Hour} {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("%s must be an integer", name))
			return
		}
		*dst = v
	}
	if err := validate.Struct(q); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	v := crowd.Estimate(time.Month(q.Month), time.Weekday(q.Weekday), q.Hour)
	writeJSON(w, http.StatusOK, crowdResponse{
		Month:   q.Month,
		Weekday: q.Weekday,
		Hour:    q.Hour,
		Crowd:   v,
		Level:   string(crowd.LevelOf(v)),
	})
}

func activityParam(r *http.Request) (models.Activity, error) {
	raw := r.URL.Query().Get("activity")
	if raw == "" {
		return models.Swimming, nil
	}
	return models.ParseActivity(raw)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"took", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
