package ui

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"edadash/adapters/export"
	"edadash/app"
	"edadash/domain/chart"
	"edadash/internal/errors"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// loadedView runs the pipeline and rejects halted runs, which have nothing
// to export
func (s *Server) loadedView(c *gin.Context) (*app.View, bool) {
	view, err := s.run(c, s.request(c))
	if err != nil {
		abortWithError(c, err)
		return nil, false
	}
	if view.Halted {
		abortWithError(c, errors.MissingInput(view.Advisory))
		return nil, false
	}
	return view, true
}

// handleChartPNG renders one chart as an image
func (s *Server) handleChartPNG(c *gin.Context) {
	file := c.Param("file")
	kind, ok := chart.ParseKind(strings.TrimSuffix(file, ".png"))
	if !ok || !strings.HasSuffix(file, ".png") {
		abortWithError(c, errors.NotFound("chart "+file))
		return
	}

	view, ok := s.loadedView(c)
	if !ok {
		return
	}
	if !view.Ready() {
		abortWithError(c, errors.MissingColumns(view.MissingColumns))
		return
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, view.Charts, kind); err != nil {
		abortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// handleExportCSV downloads the loaded dataset with coerced dates
func (s *Server) handleExportCSV(c *gin.Context) {
	view, ok := s.loadedView(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, view.Dataset); err != nil {
		abortWithError(c, err)
		return
	}
	attachment(c, "dataset.csv")
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// handleExportXLSX downloads the summary workbook
func (s *Server) handleExportXLSX(c *gin.Context) {
	view, ok := s.loadedView(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, export.NewWorkbook(view)); err != nil {
		abortWithError(c, err)
		return
	}
	attachment(c, "summary.xlsx")
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func attachment(c *gin.Context, name string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
}
