package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"edadash/adapters/coercer"
	"edadash/adapters/excel"
	"edadash/domain/dataset"
	"edadash/internal/errors"
	"edadash/internal/logging"
)

var loaderLog = logging.For("Loader")

// NoInputAdvisory is shown when no data source was supplied
const NoInputAdvisory = "Please upload a file, enter a valid file path, or use sample data."

// dateIssueWarning is shown when the date column cannot be coerced at all
const dateIssueWarning = "Date parsing issue: Please ensure %s is in a standard format (e.g., MM/DD/YYYY)."

// SupportedExtensions lists the file types the loader reads
var SupportedExtensions = []string{".csv", ".xlsx"}

// IsSupportedFile reports whether name has a readable extension
func IsSupportedFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range SupportedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Upload is a file received through the upload control
type Upload struct {
	ID   string
	Name string
	Data []byte
}

// Source is the data-source part of the widget state. Precedence is
// sample, then upload, then path.
type Source struct {
	UseSample bool
	Upload    *Upload
	Path      string
}

// Label describes the source for display and logs
func (s Source) Label() string {
	switch {
	case s.UseSample:
		return "sample data"
	case s.Upload != nil:
		return s.Upload.Name
	case strings.TrimSpace(s.Path) != "":
		return strings.TrimSpace(s.Path)
	}
	return ""
}

// LoadResult is a loaded, date-coerced dataset plus any warnings
type LoadResult struct {
	Dataset  *dataset.Dataset
	Source   string
	Dates    coercer.DateCoercion
	Warnings []string
}

// Loader resolves a Source into a Dataset
type Loader struct {
	schema  dataset.Schema
	coercer *coercer.TypeCoercer
	root    string
}

// NewLoader creates a loader for the given schema
func NewLoader(schema dataset.Schema) *Loader {
	return &Loader{
		schema:  schema,
		coercer: coercer.NewTypeCoercer(coercer.DefaultCoercionConfig()),
	}
}

// RestrictPaths confines path sources to root. Relative paths are resolved
// against it. An empty root allows any path.
func (l *Loader) RestrictPaths(root string) {
	l.root = strings.TrimSpace(root)
}

// Load resolves the source and coerces the date column. It returns an error
// with code MISSING_INPUT when no usable source was given.
func (l *Loader) Load(ctx context.Context, src Source) (*LoadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ds, err := l.read(src)
	if err != nil {
		return nil, err
	}

	result := &LoadResult{Dataset: ds, Source: src.Label()}

	report, err := l.coercer.CoerceDates(ds, l.schema.Date)
	if err != nil {
		loaderLog.Warn("Date coercion skipped for %s: %v", result.Source, err)
		result.Warnings = append(result.Warnings, fmt.Sprintf(dateIssueWarning, l.schema.Date))
	} else if w := report.Warning(); w != "" {
		loaderLog.Warn("%s: %s", result.Source, w)
		result.Warnings = append(result.Warnings, w)
	}
	result.Dates = report

	loaderLog.Debug("Loaded %s (%d columns, %d rows)", result.Source, len(ds.Columns()), ds.Len())
	return result, nil
}

func (l *Loader) read(src Source) (*dataset.Dataset, error) {
	if src.UseSample {
		return dataset.Sample(l.schema), nil
	}

	if src.Upload != nil {
		reader := excel.NewDataReader(src.Upload.Name)
		ds, err := reader.Read(bytes.NewReader(src.Upload.Data))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read upload %s", src.Upload.Name)
		}
		return ds, nil
	}

	path := strings.TrimSpace(src.Path)
	if path != "" {
		resolved, err := l.resolvePath(path)
		if err != nil {
			return nil, err
		}
		path = resolved
		if _, err := os.Stat(path); err == nil {
			ds, err := excel.NewDataReader(path).ReadFile(path)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to read %s", path)
			}
			return ds, nil
		}
		loaderLog.Info("Path does not exist: %s", path)
	}

	return nil, errors.MissingInput(NoInputAdvisory)
}

// resolvePath applies the root restriction. Paths that do not exist are
// returned unchanged so the caller halts as for any missing file.
func (l *Loader) resolvePath(path string) (string, error) {
	if l.root == "" {
		return path, nil
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.root, path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve %s", path)
	}
	if _, err := os.Stat(abs); err != nil {
		return abs, nil
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	root, err := filepath.Abs(l.root)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve data root %s", l.root)
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		loaderLog.Warn("Rejected path outside %s: %s", root, abs)
		return "", errors.InvalidInput(fmt.Sprintf("path %s is outside the data directory", path))
	}
	return abs, nil
}
