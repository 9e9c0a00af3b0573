package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/KaramelBytes/countrydash/internal/analysis"
	"github.com/KaramelBytes/countrydash/internal/dataset"
	"github.com/KaramelBytes/countrydash/internal/export"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, status int) {
	s.logger.Warn("request error",
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err))
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeDownload(w http.ResponseWriter, d *export.Download) {
	w.Header().Set("Content-Type", d.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, d.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(d.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(d.Data)
}

// view applies the request's filter/sort parameters to the current Dataset.
func (s *Server) view(r *http.Request) (dataset.View, error) {
	q := r.URL.Query()
	limit := 0
	if l := q.Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil {
			return dataset.View{}, fmt.Errorf("invalid limit: %s", l)
		}
		limit = n
	}
	query, err := dataset.NewQuery(q["min"], q["range"], q.Get("sort"), q.Get("order"), limit)
	if err != nil {
		return dataset.View{}, err
	}
	ds, _ := s.current()
	return query.Apply(ds.View()), nil
}

type healthResponse struct {
	Status    string    `json:"status"`
	DatasetID string    `json:"dataset_id"`
	Source    string    `json:"source"`
	FetchedAt time.Time `json:"fetched_at"`
	Rows      int       `json:"rows"`
	LastError string    `json:"last_error,omitempty"`
}

func (s *Server) health() healthResponse {
	ds, err := s.current()
	h := healthResponse{Status: "ok", DatasetID: ds.ID, Source: ds.Source, FetchedAt: ds.FetchedAt, Rows: ds.Len()}
	if err != nil {
		h.Status = "degraded"
		h.LastError = err.Error()
	}
	return h
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.health())
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.Refresh(r.Context()); err != nil {
		s.logger.Warn("refresh failed, serving empty dataset", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, s.health())
}

type columnInfo struct {
	Key   string       `json:"key"`
	Label string       `json:"label"`
	Kind  dataset.Kind `json:"kind"`
}

func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	cols := dataset.Columns()
	out := make([]columnInfo, len(cols))
	for i, c := range cols {
		out[i] = columnInfo{Key: c.Key(), Label: c.Label(), Kind: c.Kind()}
	}
	writeJSON(w, http.StatusOK, out)
}

type countriesResponse struct {
	Count int                  `json:"count"`
	Total int                  `json:"total"`
	Rows  []dataset.CountryRow `json:"rows"`
}

func (s *Server) handleCountries(w http.ResponseWriter, r *http.Request) {
	v, err := s.view(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, countriesResponse{Count: v.Len(), Total: v.Dataset().Len(), Rows: v.Rows()})
}

// statsResponse uses pointers so undefined (NaN) statistics encode as null.
type statsResponse struct {
	Column string   `json:"column"`
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean"`
	Median *float64 `json:"median"`
	StdDev *float64 `json:"stddev"`
	Min    *float64 `json:"min"`
	Max    *float64 `json:"max"`
}

func nullable(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	col, err := dataset.ParseColumn(chi.URLParam(r, "column"))
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}
	v, err := s.view(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	sum, err := analysis.Stats(v, col)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{
		Column: col.Key(),
		Count:  sum.Count,
		Mean:   nullable(sum.Mean),
		Median: nullable(sum.Median),
		StdDev: nullable(sum.StdDev),
		Min:    nullable(sum.Min),
		Max:    nullable(sum.Max),
	})
}

func (s *Server) handleDescribe(w http.ResponseWriter, r *http.Request) {
	v, err := s.view(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write([]byte(analysis.Describe(v, analysis.DefaultReportOptions()).Markdown()))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}
	v, err := s.view(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	d, err := export.Table(v, format)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeDownload(w, d)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, err := dataset.ParseColumn(q.Get("x"))
	if err != nil {
		s.respondError(w, r, fmt.Errorf("x: %w", err), http.StatusBadRequest)
		return
	}
	y, err := dataset.ParseColumn(q.Get("y"))
	if err != nil {
		s.respondError(w, r, fmt.Errorf("y: %w", err), http.StatusBadRequest)
		return
	}
	kind := export.ChartBar
	if k := q.Get("kind"); k != "" {
		if kind, err = export.ParseChartKind(k); err != nil {
			s.respondError(w, r, err, http.StatusBadRequest)
			return
		}
	}
	v, err := s.view(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	opt := s.chart
	opt.Title = q.Get("title")
	d, err := export.Chart(v, x, y, kind, opt)
	if err != nil {
		status := http.StatusInternalServerError
		if !y.Numeric() || errors.Is(err, export.ErrUnknownChartKind) {
			status = http.StatusBadRequest
		}
		s.respondError(w, r, err, status)
		return
	}
	writeDownload(w, d)
}

// handleMarkers returns a JSON array of export.Marker, or a GeoJSON
// FeatureCollection with ?geojson=1. Rows at (0, 0) have no position and are
// left out, so the marker count may be lower than the view's row count.
func (s *Server) handleMarkers(w http.ResponseWriter, r *http.Request) {
	v, err := s.view(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	if b, _ := strconv.ParseBool(r.URL.Query().Get("geojson")); b {
		data, err := export.MarkersGeoJSON(v)
		if err != nil {
			s.respondError(w, r, err, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/geo+json")
		_, _ = w.Write(data)
		return
	}
	writeJSON(w, http.StatusOK, export.Markers(v))
}
