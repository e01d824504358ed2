package excel

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"edadash/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sessionCSV = `Entered Interval,Exited Interval,Entry Count,Time in Session,OTO/Non OTO,Workshop Date
11:00 - 11:15,13:45 - 14:00,10,30 - 59,Non OTO,01/15/2025
10:45 - 11:00,12:00 - 12:15,5,0 - 29,OTO,01/16/2025
11:30 - 11:45,12:30 - 12:45,8,60 - 89,Non OTO,01/16/2025
`

func TestFileType(t *testing.T) {
	assert.Equal(t, "csv", FileType("data.csv"))
	assert.Equal(t, "csv", FileType("DATA.CSV"))
	assert.Equal(t, "xlsx", FileType("data.xlsx"))
	assert.Equal(t, "xlsx", FileType("data.txt"))
}

func TestReadCSV(t *testing.T) {
	ds, err := NewDataReader("sessions.csv").Read(strings.NewReader(sessionCSV))
	require.NoError(t, err)

	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, "Entry Count", ds.Columns()[2])

	count, ok := ds.Cell(1, "Entry Count")
	require.True(t, ok)
	n, isNum := count.AsFloat64()
	assert.True(t, isNum)
	assert.Equal(t, 5.0, n)

	label, _ := ds.Cell(0, "OTO/Non OTO")
	assert.Equal(t, "Non OTO", label.String())
}

func TestReadCSVRaggedAndBlankRows(t *testing.T) {
	input := "\xef\xbb\xbfa,b,c\n1,2\n,,\n4,5,6,7\n"
	ds, err := NewDataReader("x.csv").Read(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, ds.Columns())
	assert.Equal(t, 2, ds.Len())
	c, _ := ds.Cell(0, "c")
	assert.True(t, c.IsMissing())
}

func TestReadCSVHeaderOnly(t *testing.T) {
	ds, err := NewDataReader("x.csv").Read(strings.NewReader("a,b\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())

	_, err = NewDataReader("x.csv").Read(strings.NewReader(""))
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestReadWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Entry Count", "Time in Session", "Workshop Date"},
		{10, "30 - 59", "01/15/2025"},
		{5, "0 - 29", "01/16/2025"},
	}
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	ds, err := NewDataReader("upload.xlsx").Read(buf)
	require.NoError(t, err)

	assert.Equal(t, 2, ds.Len())
	count, _ := ds.Cell(0, "Entry Count")
	n, ok := count.AsFloat64()
	assert.True(t, ok)
	assert.Equal(t, 10.0, n)
}

func TestReadWorkbookGarbage(t *testing.T) {
	_, err := NewDataReader("notes.txt").Read(strings.NewReader("just text"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeUnsupportedFormat, errors.GetCode(err))
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.csv")
	require.NoError(t, os.WriteFile(path, []byte(sessionCSV), 0o600))

	ds, err := NewDataReader(path).ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())

	_, err = NewDataReader("missing.csv").ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
