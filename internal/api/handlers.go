package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"edadash/app"
	"edadash/domain/chart"
	"edadash/internal/errors"
)

// columnsResponse describes the configured schema
type columnsResponse struct {
	Required []string `json:"required"`
	Date     string   `json:"date"`
	Count    string   `json:"count"`
	Session  string   `json:"session"`
	Label    string   `json:"label"`
}

// dashboardResponse is one rerun plus its ECharts options
type dashboardResponse struct {
	*app.View
	Options map[chart.Kind]map[string]interface{} `json:"options,omitempty"`
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"uploads": a.uploads.Len(),
	})
}

func (a *App) handleColumns(w http.ResponseWriter, r *http.Request) {
	s := a.dashboard.Schema()
	writeJSON(w, http.StatusOK, columnsResponse{
		Required: s.Required(),
		Date:     s.Date,
		Count:    s.Count,
		Session:  s.Session,
		Label:    s.Label,
	})
}

// handleDashboard runs the pipeline for the query's widget state
func (a *App) handleDashboard(w http.ResponseWriter, r *http.Request) {
	view, err := a.run(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboardResponse{View: view, Options: a.charts.Options(view.Charts)})
}

// handleChartOption returns the ECharts option of a single chart
func (a *App) handleChartOption(w http.ResponseWriter, r *http.Request) {
	kind, ok := chart.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		writeError(w, errors.NotFound("chart "+chi.URLParam(r, "kind")))
		return
	}

	view, err := a.run(r)
	if err != nil {
		writeError(w, err)
		return
	}
	switch {
	case view.Halted:
		writeError(w, errors.MissingInput(view.Advisory))
		return
	case !view.Ready():
		writeError(w, errors.MissingColumns(view.MissingColumns))
		return
	}

	option, err := a.charts.Generate(view.Charts, kind)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, option)
}

// handleUpload stores a raw dataset file and returns its ID for later reruns
func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxBytes := a.config.Data.MaxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, errors.InvalidInput("No file uploaded"))
		return
	}
	defer file.Close()

	if header.Size > maxBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{
			"error": "file exceeds the upload limit",
			"code":  errors.CodeInvalidInput,
		})
		return
	}

	name := filepath.Base(header.Filename)
	if !app.IsSupportedFile(name) {
		writeError(w, errors.UnsupportedFormat(name, fmt.Errorf("only .csv and .xlsx files are accepted")))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, errors.Wrap(err, "failed to read upload"))
		return
	}

	stored := a.uploads.Put(name, data)
	log.Printf("[API] Stored upload %s (%s, %d bytes)", stored.ID, stored.Name, len(stored.Data))
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":   stored.ID,
		"name": stored.Name,
		"size": len(stored.Data),
	})
}

func (a *App) run(r *http.Request) (*app.View, error) {
	req := app.ParseRequest(r.URL.Query())
	src, warnings := req.Source(a.uploads)
	view, err := a.dashboard.Run(r.Context(), src, req.Selection)
	if err != nil {
		return nil, err
	}
	view.Warnings = append(warnings, view.Warnings...)
	return view, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	log.Printf("[API] %v", err)
	writeJSON(w, errors.HTTPStatus(err), map[string]string{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}
