package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/couchcryptid/climate-insights-service/internal/climate"
	"github.com/couchcryptid/climate-insights-service/internal/domain"
	"github.com/couchcryptid/climate-insights-service/internal/insights"
)

const (
	defaultNearest = 5
	maxListLimit   = 50
)

var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	cities, err := s.api.Cities(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, map[string]any{"cities": cities, "count": len(cities)})
}

func (s *Server) handleCity(w http.ResponseWriter, r *http.Request) {
	report, err := s.api.City(r.Context(), r.PathValue("city"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, report)
}

func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	month, ok := climate.MonthFromName(r.PathValue("month"))
	if !ok {
		s.writeError(w, r, badRequest("unknown month %q", r.PathValue("month")))
		return
	}
	report, err := s.api.Month(r.Context(), r.PathValue("city"), month)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, report)
}

func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	date, err := domain.ParseDateKey(r.PathValue("date"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	report, err := s.api.Day(r.Context(), r.PathValue("city"), date)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.Derivations.WithLabelValues("http").Inc()
	sharedobs.WriteJSON(w, http.StatusOK, report)
}

func (s *Server) handleAlternatives(w http.ResponseWriter, r *http.Request) {
	date, limit, err := dateAndLimit(r, climate.DefaultAlternativesLimit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	alts, err := s.api.Alternatives(r.Context(), r.PathValue("city"), date, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if alts == nil {
		alts = []climate.Alternative{}
	}
	sharedobs.WriteJSON(w, http.StatusOK, map[string]any{"date": date, "alternatives": alts})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	date, limit, err := dateAndLimit(r, climate.DefaultCompareLimit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	scores, err := s.api.Compare(r.Context(), r.PathValue("city"), date, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if scores == nil {
		scores = []climate.CityScore{}
	}
	sharedobs.WriteJSON(w, http.StatusOK, map[string]any{"date": date, "cities": scores})
}

func (s *Server) handleNarrative(w http.ResponseWriter, r *http.Request) {
	date, err := domain.ParseDateKey(r.PathValue("date"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	n, err := s.api.Narrate(r.Context(), r.PathValue("city"), date)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, n)
}

func (s *Server) handleNearest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		s.writeError(w, r, badRequest("lat must be a number"))
		return
	}
	lon, err := strconv.ParseFloat(q.Get("lon"), 64)
	if err != nil {
		s.writeError(w, r, badRequest("lon must be a number"))
		return
	}
	n, err := intParam(r, "n", defaultNearest)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cities, err := s.api.Nearest(r.Context(), lat, lon, n)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, map[string]any{"cities": cities})
}

func (s *Server) handleGeocode(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		s.writeError(w, r, badRequest("q is required"))
		return
	}
	n, err := intParam(r, "n", defaultNearest)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.api.Geocode(r.Context(), query, n)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, res)
}

func dateAndLimit(r *http.Request, def int) (domain.DateKey, int, error) {
	date, err := domain.ParseDateKey(r.PathValue("date"))
	if err != nil {
		return domain.DateKey{}, 0, err
	}
	limit, err := intParam(r, "limit", def)
	return date, limit, err
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxListLimit {
		return 0, badRequest("%s must be an integer between 1 and %d", name, maxListLimit)
	}
	return n, nil
}

// writeError maps err to a status code and writes {"error": msg}.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, errBadRequest), errors.Is(err, domain.ErrInvalidDate), errors.Is(err, insights.ErrInvalidInput):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, insights.ErrGeocodingDisabled):
		status, msg = http.StatusServiceUnavailable, err.Error()
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	sharedobs.WriteJSON(w, status, map[string]string{"error": msg})
}
