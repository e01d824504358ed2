package ports

import (
	"context"

	"edadash/app"
	"edadash/domain/dataset"
	"edadash/internal/uploads"
)

// DashboardRunner executes one rerun of the dashboard pipeline
type DashboardRunner interface {
	Run(ctx context.Context, src app.Source, sel app.Selection) (*app.View, error)
	Schema() dataset.Schema
}

// UploadStore holds uploaded files between reruns
type UploadStore interface {
	Put(name string, data []byte) *uploads.File
	Get(id string) (*uploads.File, error)
	Len() int
}
