package encoding

import (
	"strings"
)

// ColumnNameSeparator separates the entries of the column names blob.
const ColumnNameSeparator = "\t"

// DecodeColumnNames splits the column names blob of a recording header.
// Format: [Name1: UTF-8] \t [Name2: UTF-8] \t ... (no count prefix, no terminator)
//
// The names are returned exactly as stored: the count is not forced to match the
// header's column count, and empty names produced by repeated separators are kept.
// An empty blob yields a single empty name.
//
// Parameters:
//   - blob: The raw bytes following the column names size field
//
// Returns:
//   - []string: The decoded column names (in file order)
func DecodeColumnNames(blob []byte) []string {
	return strings.Split(string(blob), ColumnNameSeparator)
}

// EncodeColumnNames joins names into a column names blob.
//
// Parameters:
//   - names: The ordered list of column names
//
// Returns:
//   - []byte: The tab-separated blob
func EncodeColumnNames(names []string) []byte {
	return []byte(strings.Join(names, ColumnNameSeparator))
}
