package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/plaza/internal/export"
	"github.com/UnknownOlympus/plaza/internal/geocoding"
	"github.com/UnknownOlympus/plaza/internal/mapview"
	"github.com/UnknownOlympus/plaza/internal/models"
	"github.com/UnknownOlympus/plaza/internal/service"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	zipContentType  = "application/zip"
)

var (
	errMissingFile  = errors.New("the upload must contain a \"file\" field")
	errInvalidJSON  = errors.New("the request body is not valid JSON")
	errInvalidLimit = errors.New("limit must be a positive integer")
	errEmptyQuery   = errors.New("the q parameter is required")
)

// viewRequest is the body of the view and export endpoints.
type viewRequest struct {
	service.ViewQuery
	ShowPrices bool `json:"show_prices"`
}

// marker is a development ready to be placed on the map.
type marker struct {
	Reference   string             `json:"ref"`
	Coordinates models.Coordinates `json:"coordinates"`
	HTML        string             `json:"html"`
}

type viewResponse struct {
	*service.ViewResult
	Markers []marker `json:"markers"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Fields       []models.Field
		MaxLeftCards int
		Places       bool
	}{models.FilterFields, mapview.MaxLeftCards, s.places != nil}

	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		s.log.ErrorContext(r.Context(), "Failed to render dashboard", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Errorf("the file exceeds the upload limit of %d bytes", tooLarge.Limit))
			return
		}
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("failed to parse upload: %w", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, errMissingFile)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("failed to read upload: %w", err))
		return
	}

	study, err := s.studies.Load(r.Context(), header.Filename, data)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, s.studies.Summarize(study))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := s.historyLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.writeError(w, r, http.StatusBadRequest, errInvalidLimit)
			return
		}
		limit = min(parsed, maxHistoryLimit)
	}

	records, err := s.studies.History(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	if records == nil {
		records = []models.StudyRecord{}
	}

	s.writeJSON(w, r, http.StatusOK, records)
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	study, err := s.studies.Get(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, s.studies.Options(study))
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	req, result, ok := s.computeView(w, r)
	if !ok {
		return
	}

	markers := make([]marker, 0, len(result.Visible))
	for _, dev := range result.Visible {
		html, err := mapview.MarkerHTML(dev, req.ShowPrices)
		if err != nil {
			s.writeError(w, r, http.StatusInternalServerError, err)
			return
		}
		markers = append(markers, marker{Reference: dev.Reference, Coordinates: dev.Coordinates, HTML: html})
	}

	s.writeJSON(w, r, http.StatusOK, viewResponse{ViewResult: result, Markers: markers})
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	_, result, ok := s.computeView(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, result.Visible); err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	s.writeAttachment(w, r, xlsxContentType, "promociones.xlsx", &buf)
}

func (s *Server) handleExportCards(w http.ResponseWriter, r *http.Request) {
	_, result, ok := s.computeView(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCards(&buf, result.Visible); err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	s.writeAttachment(w, r, zipContentType, "tarjetas.zip", &buf)
}

func (s *Server) handleMapLayer(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	layer := mapview.NewTileLayer(mapview.Layer(query.Get("layer")), mapview.Style(query.Get("style")))

	s.writeJSON(w, r, http.StatusOK, layer)
}

func (s *Server) handlePlaces(w http.ResponseWriter, r *http.Request) {
	if s.places == nil {
		s.writeError(w, r, http.StatusNotFound, geocoding.ErrPlacesDisabled)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		s.writeError(w, r, http.StatusBadRequest, errEmptyQuery)
		return
	}

	start := time.Now()
	places, err := s.places.Search(r.Context(), query)
	s.metrics.PlacesSeconds.WithLabelValues(s.placesName).Observe(time.Since(start).Seconds())

	switch {
	case errors.Is(err, geocoding.ErrEmptyResponse):
		places = []models.Place{}
	case err != nil:
		s.writeError(w, r, http.StatusBadGateway, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, places)
}

// computeView decodes a view request and evaluates it. It writes the error response itself
// and reports false when the request cannot be served.
func (s *Server) computeView(w http.ResponseWriter, r *http.Request) (viewRequest, *service.ViewResult, bool) {
	var req viewRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			s.writeError(w, r, http.StatusBadRequest, errInvalidJSON)
			return req, nil, false
		}
	}

	result, err := s.studies.View(r.Context(), r.PathValue("id"), req.ViewQuery)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return req, nil, false
	}
	return req, result, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrStudyNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUnreadableStudy),
		errors.Is(err, service.ErrNoCoordinateColumn),
		errors.Is(err, service.ErrNoReferenceColumn):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInvalidAction):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.ErrorContext(r.Context(), "failed to write reply", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.log.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "error", err)
	} else {
		s.log.InfoContext(r.Context(), "Request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	s.writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

func (s *Server) writeAttachment(w http.ResponseWriter, r *http.Request, contentType, name string, body *bytes.Buffer) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
	if _, err := body.WriteTo(w); err != nil {
		s.log.ErrorContext(r.Context(), "failed to write reply", "error", err)
	}
}
