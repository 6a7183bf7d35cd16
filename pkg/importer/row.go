package importer

// Row is one decoded spreadsheet row: header-derived key to trimmed cell
// text. Decoders must omit blank cells so key presence mirrors cell presence
// in the file.
type Row map[string]string

// Get returns the trimmed cell value for key, or "" when absent.
func (r Row) Get(key string) string {
	return r[key]
}

// Has reports whether the row carries a non-blank cell under key.
func (r Row) Has(key string) bool {
	_, ok := r[key]
	return ok
}
