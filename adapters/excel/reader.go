package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"edadash/adapters/coercer"
	"edadash/domain/dataset"
	"edadash/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading spreadsheet and CSV files
type DataReader struct {
	name     string
	fileType string // "xlsx" or "csv"
	coercer  *coercer.TypeCoercer
}

// NewDataReader creates a reader for the given file name. Names ending in
// "csv" are read as CSV, anything else as a spreadsheet.
func NewDataReader(name string) *DataReader {
	return &DataReader{
		name:     name,
		fileType: FileType(name),
		coercer:  coercer.NewTypeCoercer(coercer.DefaultCoercionConfig()),
	}
}

// FileType resolves the parser for a file name
func FileType(name string) string {
	if strings.HasSuffix(strings.ToLower(name), "csv") {
		return "csv"
	}
	return "xlsx"
}

// ReadFile reads a dataset from a local path
func (r *DataReader) ReadFile(path string) (*dataset.Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "%s file not found: %s", strings.ToUpper(r.fileType), path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()
	return r.Read(f)
}

// Read parses the stream and types every column
func (r *DataReader) Read(src io.Reader) (*dataset.Dataset, error) {
	log.Printf("[DataReader] Starting to read %s file: %s", r.fileType, r.name)

	data, err := r.ReadData(src)
	if err != nil {
		return nil, err
	}
	return r.ToDataset(data), nil
}

// ReadData reads raw string rows from CSV or spreadsheet input
func (r *DataReader) ReadData(src io.Reader) (*ExcelData, error) {
	switch r.fileType {
	case "csv":
		return r.readCSVData(src)
	default:
		return r.readExcelData(src)
	}
}

// readExcelData reads the first sheet of a workbook
func (r *DataReader) readExcelData(src io.Reader) (*ExcelData, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, errors.UnsupportedFormat(r.name, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.UnsupportedFormat(r.name, fmt.Errorf("workbook has no sheets"))
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %s", sheets[0])
	}
	log.Printf("[DataReader] Sheet %s read in %.2fms (%d rows)", sheets[0], float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

// readCSVData reads CSV data into structured format
func (r *DataReader) readCSVData(src io.Reader) (*ExcelData, error) {
	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV input")
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.UnsupportedFormat(r.name, err)
	}
	log.Printf("[DataReader] CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

// processRows splits the header from the data rows
func (r *DataReader) processRows(rows [][]string) (*ExcelData, error) {
	if len(rows) == 0 {
		return nil, errors.InvalidInput(fmt.Sprintf("%s has no header row", r.name))
	}

	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
		if headers[i] == "" {
			headers[i] = fmt.Sprintf("Unnamed: %d", i)
		}
	}

	dataRows := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		cells := make([]string, len(headers))
		for j := range cells {
			if j < len(row) {
				cells[j] = strings.TrimSpace(row[j])
			}
		}
		dataRows = append(dataRows, cells)
	}

	log.Printf("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &ExcelData{
		Headers: headers,
		Rows:    dataRows,
	}, nil
}

// ToDataset types each column and builds the dataset
func (r *DataReader) ToDataset(data *ExcelData) *dataset.Dataset {
	typed := make([][]dataset.Value, len(data.Headers))
	for j := range data.Headers {
		raw := make([]string, len(data.Rows))
		for i, row := range data.Rows {
			raw[i] = row[j]
		}
		typed[j] = r.coercer.CoerceColumn(raw)
	}

	rows := make([][]dataset.Value, len(data.Rows))
	for i := range rows {
		row := make([]dataset.Value, len(data.Headers))
		for j := range row {
			row[j] = typed[j][i]
		}
		rows[i] = row
	}
	return dataset.New(data.Headers, rows)
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
