package ui

import (
	"html/template"
	"log"
	"net/http"

	"edadash/app"
	"edadash/domain/chart"
	"edadash/internal/errors"

	"github.com/gin-gonic/gin"
)

// pageData is everything index.html renders
type pageData struct {
	Title       string
	Request     app.Request
	View        *app.View
	Options     map[chart.Kind]map[string]interface{}
	Kinds       []chart.Kind
	Help        template.HTML
	MaxUploadMB int
	Links       map[string]template.URL
}

// dashboardResponse is the JSON form of a rerun
type dashboardResponse struct {
	*app.View
	Options map[chart.Kind]map[string]interface{} `json:"options,omitempty"`
}

// request reads the widget state, applying the configured default path when
// the path input was never submitted
func (s *Server) request(c *gin.Context) app.Request {
	q := c.Request.URL.Query()
	req := app.ParseRequest(q)
	if !q.Has("path") {
		req.Path = s.config.Data.DefaultPath
	}
	return req
}

// run executes one rerun for the request
func (s *Server) run(c *gin.Context, req app.Request) (*app.View, error) {
	src, warnings := req.Source(s.uploads)
	view, err := s.dashboard.Run(c.Request.Context(), src, req.Selection)
	if err != nil {
		return nil, err
	}
	view.Warnings = append(warnings, view.Warnings...)
	return view, nil
}

// handleIndex renders the dashboard page for the current widget state
func (s *Server) handleIndex(c *gin.Context) {
	req := s.request(c)
	data := pageData{
		Title:       PageTitle,
		Request:     req,
		Kinds:       chart.Kinds(),
		Help:        s.help,
		MaxUploadMB: s.config.Data.MaxUploadMB,
		Links:       links(req),
	}

	view, err := s.run(c, req)
	if err != nil {
		log.Printf("[handleIndex] Run failed: %v", err)
		data.View = &app.View{Error: err.Error()}
		s.renderTemplate(c, errors.HTTPStatus(err), "index.html", data)
		return
	}

	data.View = view
	data.Options = s.charts.Options(view.Charts)
	s.renderTemplate(c, http.StatusOK, "index.html", data)
}

// handleDashboardJSON returns the rerun as JSON with ECharts options
func (s *Server) handleDashboardJSON(c *gin.Context) {
	view, err := s.run(c, s.request(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboardResponse{View: view, Options: s.charts.Options(view.Charts)})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"uploads": s.uploads.Len(),
	})
}

// links builds the export URLs carrying the current widget state
func links(req app.Request) map[string]template.URL {
	query := req.Query().Encode()
	suffix := ""
	if query != "" {
		suffix = "?" + query
	}

	out := map[string]template.URL{
		"csv":  template.URL("/export/dataset.csv" + suffix),
		"xlsx": template.URL("/export/summary.xlsx" + suffix),
		"json": template.URL("/api/dashboard" + suffix),
	}
	for _, k := range chart.Kinds() {
		out[string(k)] = template.URL("/charts/" + string(k) + ".png" + suffix)
	}
	return out
}

func abortWithError(c *gin.Context, err error) {
	log.Printf("[%s] %v", c.FullPath(), err)
	c.AbortWithStatusJSON(errors.HTTPStatus(err), gin.H{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}
