package app

import (
	"log"
	"net/url"
	"strconv"
	"strings"

	"edadash/internal/uploads"
)

// uploadExpiredWarning is shown when a rerun names an upload that is gone
const uploadExpiredWarning = "The uploaded file is no longer available. Please upload it again."

// Request is the full widget state carried in a dashboard URL
type Request struct {
	Sample   bool
	UploadID string
	Path     string
	Selection
}

// UploadLookup resolves stored uploads by ID
type UploadLookup interface {
	Get(id string) (*uploads.File, error)
}

// ParseRequest reads the widget state from query parameters
func ParseRequest(q url.Values) Request {
	sample, _ := strconv.ParseBool(q.Get("sample"))
	return Request{
		Sample:   sample || q.Get("sample") == "on",
		UploadID: strings.TrimSpace(q.Get("upload")),
		Path:     q.Get("path"),
		Selection: Selection{
			X:     q.Get("x"),
			Y:     q.Get("y"),
			Color: q.Get("color"),
		},
	}
}

// Query encodes the request back into query parameters, omitting empty ones
func (r Request) Query() url.Values {
	q := url.Values{}
	if r.Sample {
		q.Set("sample", "true")
	}
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	set("upload", r.UploadID)
	set("path", r.Path)
	set("x", r.X)
	set("y", r.Y)
	set("color", r.Color)
	return q
}

// Source resolves the request into a data source. An upload ID that the
// store no longer holds is dropped with a warning.
func (r Request) Source(store UploadLookup) (Source, []string) {
	src := Source{UseSample: r.Sample, Path: r.Path}
	var warnings []string

	if r.UploadID != "" && store != nil {
		file, err := store.Get(r.UploadID)
		if err != nil {
			log.Printf("[Request] Upload %s unavailable: %v", r.UploadID, err)
			warnings = append(warnings, uploadExpiredWarning)
		} else {
			src.Upload = &Upload{ID: file.ID, Name: file.Name, Data: file.Data}
		}
	}
	return src, warnings
}
