package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cfb-realignment/realign-cli/internal/conference"
	"github.com/cfb-realignment/realign-cli/internal/geo"
	"github.com/cfb-realignment/realign-cli/internal/store"
)

type distanceRequest struct {
	From geo.Point `json:"from"`
	To   geo.Point `json:"to"`
	Unit string    `json:"unit"`
}

type pointsRequest struct {
	Origin *geo.Point  `json:"origin,omitempty"`
	Points []geo.Point `json:"points"`
	Unit   string      `json:"unit"`
}

type milesResponse struct {
	Miles float64 `json:"miles"`
}

type centerResponse struct {
	Center                geo.Point `json:"center"`
	AvgDistanceFromCenter *float64  `json:"avgDistanceFromCenter,omitempty"`
}

type hullResponse struct {
	Hull   geo.Hull    `json:"hull"`
	Closed []geo.Point `json:"closed"`
}

type nearestRequest struct {
	Point  geo.Point  `json:"point"`
	Cities []geo.City `json:"cities,omitempty"`
}

type nearestResponse struct {
	City  geo.City `json:"city"`
	Miles float64  `json:"miles"`
}

type analyzeRequest struct {
	Conferences []conference.Conference `json:"conferences"`
	Sport       string                  `json:"sport,omitempty"`
	Year        int                     `json:"year,omitempty"`
	Details     bool                    `json:"details,omitempty"`
}

type analyzeResponse struct {
	Stats     []conference.Stats        `json:"stats"`
	Summaries []conference.YearSummary  `json:"summaries"`
	Details   []conference.SchoolDetail `json:"details,omitempty"`
}

func parseUnit(w http.ResponseWriter, s string) (geo.Unit, bool) {
	unit, err := geo.ParseUnit(s)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return 0, false
	}
	return unit, true
}

// checkPoints rejects degree coordinates outside [-90, 90] and [-180, 180].
// Radian inputs are not range checked.
func checkPoints(w http.ResponseWriter, unit geo.Unit, pts ...geo.Point) bool {
	if unit != geo.Degrees {
		return true
	}
	for _, p := range pts {
		if !p.Valid() {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("point %s out of range", p))
			return false
		}
	}
	return true
}

func (s *Server) handleDistance(w http.ResponseWriter, r *http.Request) {
	var req distanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	unit, ok := parseUnit(w, req.Unit)
	if !ok || !checkPoints(w, unit, req.From, req.To) {
		return
	}
	writeJSON(w, http.StatusOK, milesResponse{Miles: geo.Distance(req.From, req.To, unit)})
}

func (s *Server) handleAverage(w http.ResponseWriter, r *http.Request) {
	var req pointsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Origin == nil {
		writeError(w, http.StatusBadRequest, "origin is required")
		return
	}
	unit, ok := parseUnit(w, req.Unit)
	if !ok || !checkPoints(w, unit, *req.Origin) || !checkPoints(w, unit, req.Points...) {
		return
	}
	avg, err := geo.AverageDistance(*req.Origin, req.Points, unit)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, milesResponse{Miles: avg})
}

func (s *Server) handlePairwise(w http.ResponseWriter, r *http.Request) {
	var req pointsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	unit, ok := parseUnit(w, req.Unit)
	if !ok || !checkPoints(w, unit, req.Points...) {
		return
	}
	avg, err := geo.AveragePairwiseDistance(req.Points, unit)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, milesResponse{Miles: avg})
}

func (s *Server) handleCenter(w http.ResponseWriter, r *http.Request) {
	var req pointsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !checkPoints(w, geo.Degrees, req.Points...) {
		return
	}
	center, err := geo.GeographicCenter(req.Points)
	if err != nil {
		s.fail(w, err)
		return
	}
	resp := centerResponse{Center: center}
	// Same as geo.AverageDistanceFromCenter, inlined to return the center too.
	if len(req.Points) > 1 {
		avg, err := geo.AverageDistance(center, req.Points, geo.Degrees)
		if err != nil {
			s.fail(w, err)
			return
		}
		resp.AvgDistanceFromCenter = &avg
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHull(w http.ResponseWriter, r *http.Request) {
	var req pointsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !checkPoints(w, geo.Degrees, req.Points...) {
		return
	}
	hull := geo.ConvexHull(req.Points)
	writeJSON(w, http.StatusOK, hullResponse{Hull: hull, Closed: hull.Closed()})
}

func (s *Server) handleNearestCity(w http.ResponseWriter, r *http.Request) {
	var req nearestRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !checkPoints(w, geo.Degrees, req.Point) {
		return
	}
	cities := req.Cities
	if len(cities) == 0 {
		cities = s.cities
	}
	city, err := geo.FindNearestCity(req.Point, cities)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nearestResponse{
		City:  city,
		Miles: geo.Distance(req.Point, city.Point, geo.Degrees),
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	confs := conference.FilterByYear(conference.FilterBySport(req.Conferences, req.Sport), req.Year)

	stats, err := s.analyzer.AnalyzeAll(r.Context(), confs)
	if err != nil {
		s.fail(w, err)
		return
	}

	resp := analyzeResponse{Stats: stats, Summaries: conference.SummarizeByYear(stats)}
	if req.Details {
		for i, c := range confs {
			resp.Details = append(resp.Details, conference.SchoolDetails(c, stats[i])...)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	filter := store.RunFilter{Label: r.URL.Query().Get("label")}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		filter.Limit = n
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "offset must be a non-negative integer")
			return
		}
		filter.Offset = n
	}
	runs, err := s.store.ListRuns(r.Context(), filter)
	if err != nil {
		s.fail(w, err)
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}
