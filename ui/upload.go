package ui

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"edadash/app"
	"edadash/internal/errors"

	"github.com/gin-gonic/gin"
)

// handleUpload stores a dataset file and reruns the page with it selected
func (s *Server) handleUpload(c *gin.Context) {
	maxBytes := s.config.Data.MaxUploadBytes()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+1<<20)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		log.Printf("[handleUpload] FAILED - No file uploaded: %v", err)
		abortWithError(c, errors.InvalidInput("No file uploaded"))
		return
	}
	defer file.Close()

	if header.Size > maxBytes {
		log.Printf("[handleUpload] FAILED - File too large: %d bytes", header.Size)
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("File size (%.1f MB) exceeds the %dMB limit", float64(header.Size)/(1024*1024), s.config.Data.MaxUploadMB),
			"code":  errors.CodeInvalidInput,
		})
		return
	}

	name := filepath.Base(header.Filename)
	if !app.IsSupportedFile(name) {
		log.Printf("[handleUpload] FAILED - Invalid file extension: %s", name)
		abortWithError(c, errors.UnsupportedFormat(name, fmt.Errorf("only CSV (.csv) and Excel (.xlsx) files are allowed")))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		abortWithError(c, errors.Wrap(err, "failed to read upload"))
		return
	}

	stored := s.uploads.Put(name, data)

	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		c.JSON(http.StatusCreated, gin.H{"id": stored.ID, "name": stored.Name, "size": len(stored.Data)})
		return
	}

	req := app.Request{
		UploadID: stored.ID,
		Selection: app.Selection{
			X:     c.PostForm("x"),
			Y:     c.PostForm("y"),
			Color: c.PostForm("color"),
		},
	}
	c.Redirect(http.StatusSeeOther, "/?"+req.Query().Encode())
}
