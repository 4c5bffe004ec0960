package core

import (
	"fmt"
	"strings"
)

// LoadError wraps any failure to read the input as a spreadsheet at all
// (corrupt file, wrong format, unreadable sheet). It is fatal to the run.
type LoadError struct {
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load workbook: %v", e.Cause)
}

func (e *LoadError) Unwrap() error { return e.Cause }

// SchemaError reports required columns absent from the header row.
// Missing always enumerates every absent column, not just the first.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("required columns missing: %s", strings.Join(e.Missing, ", "))
}

// EmptySelectionError reports that a weighting analysis matched no rows for
// the requested account-code prefix. It is fatal to the weighting step only;
// the class-variation analysis remains valid independently.
type EmptySelectionError struct {
	Prefix string
}

func (e *EmptySelectionError) Error() string {
	return fmt.Sprintf("no accounts found with code prefix %q", e.Prefix)
}

// ReportGenerationError wraps a failure of the external report collaborator.
// It never invalidates the already-computed tables.
type ReportGenerationError struct {
	Cause error
}

func (e *ReportGenerationError) Error() string {
	return fmt.Sprintf("report generation failed: %v", e.Cause)
}

func (e *ReportGenerationError) Unwrap() error { return e.Cause }
