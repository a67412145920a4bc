package export

// Dataset defines tabular export content shared by the CSV and PDF
// renderers. Rows are keyed by header name.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}
