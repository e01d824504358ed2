package excel

// ExcelData holds a sheet as raw trimmed strings before typing
type ExcelData struct {
	Headers []string   // Column headers
	Rows    [][]string // Data rows, each len(Headers) long
}
