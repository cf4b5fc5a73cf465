package importer

import "fmt"

// InvalidFormatError is a structural parse failure: the file claimed a
// recognized format by extension but could not be parsed as one.
type InvalidFormatError struct {
	Format string // "JSON", "CSV", "XML", "Excel", "Word"
	Err    error
}

func (e *InvalidFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Invalid %s format: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("Invalid %s format", e.Format)
}

func (e *InvalidFormatError) Unwrap() error { return e.Err }

// NoAccountsError means the file parsed cleanly but yielded zero usable
// records after deduplication. Distinct from a structural parse failure so
// the caller can tell "bad file" from "no matches".
type NoAccountsError struct {
	Ext string
}

func (e *NoAccountsError) Error() string {
	return fmt.Sprintf("No account data found in the %s file. Please ensure the file contains valid account information.", e.Ext)
}
