package ui

import (
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"edadash/adapters/echarts"
	"edadash/adapters/render"
	"edadash/internal/config"
	"edadash/ports"

	"github.com/gin-gonic/gin"
)

// PageTitle is the heading of the dashboard page
const PageTitle = "Python Session Interval EDA"

// Server represents the web server for the dashboard
type Server struct {
	router        *gin.Engine
	config        *config.Config
	dashboard     ports.DashboardRunner
	uploads       ports.UploadStore
	charts        *echarts.Generator
	renderer      *render.Renderer
	templates     *template.Template
	embeddedFiles fs.FS
	help          template.HTML
}

// NewServer creates a new web server instance. embeddedFiles must hold
// ui/templates, ui/static and ui/content.
func NewServer(cfg *config.Config, dashboard ports.DashboardRunner, store ports.UploadStore, embeddedFiles fs.FS) (*Server, error) {
	s := &Server{
		router:        gin.New(),
		config:        cfg,
		dashboard:     dashboard,
		uploads:       store,
		charts:        echarts.NewGenerator(nil),
		renderer:      render.NewRenderer(),
		embeddedFiles: embeddedFiles,
	}

	if err := s.parseTemplates(); err != nil {
		return nil, err
	}
	help, err := loadHelp(embeddedFiles)
	if err != nil {
		return nil, err
	}
	s.help = help

	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func (s *Server) parseTemplates() error {
	funcMap := template.FuncMap{
		"add":   func(a, b int) int { return a + b },
		"upper": strings.ToUpper,
		"contains": func(list []string, item string) bool {
			for _, v := range list {
				if v == item {
					return true
				}
			}
			return false
		},
		"colorLabel": func(col string) string {
			if col == "" {
				return "None"
			}
			return col
		},
	}

	templatesFS, err := fs.Sub(s.embeddedFiles, "ui/templates")
	if err != nil {
		return fmt.Errorf("failed to create templates filesystem: %w", err)
	}

	files, err := fs.Glob(templatesFS, "*.html")
	if err != nil {
		return fmt.Errorf("failed to glob templates: %w", err)
	}
	log.Printf("[TemplateInit] Found %d template files: %v", len(files), files)

	s.templates, err = template.New("").Funcs(funcMap).ParseFS(templatesFS, "*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	return nil
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Logger())
	s.router.Use(gin.Recovery())
	s.router.MaxMultipartMemory = s.config.Data.MaxUploadBytes()

	staticFS, err := fs.Sub(s.embeddedFiles, "ui/static")
	if err != nil {
		log.Printf("[setupMiddleware] Error creating static filesystem: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.POST("/upload", s.handleUpload)

	s.router.GET("/api/dashboard", s.handleDashboardJSON)
	s.router.GET("/charts/:file", s.handleChartPNG)

	s.router.GET("/export/dataset.csv", s.handleExportCSV)
	s.router.GET("/export/summary.xlsx", s.handleExportXLSX)

	s.router.GET("/healthz", s.handleHealth)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	log.Printf("Starting dashboard on http://%s", addr)
	return s.router.Run(addr)
}
