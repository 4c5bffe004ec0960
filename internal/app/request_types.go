package app

import "io"

// AnalyzeRequest carries one uploaded trial balance into the pipeline.
type AnalyzeRequest struct {
	// Input is the raw workbook stream. The service reads it fully; each
	// analysis operates on its own copy with no cross-run aliasing.
	Input io.Reader

	// CSV marks the input as a CSV export instead of an .xlsx workbook.
	CSV bool

	// ParentPrefix selects the parent account for the subaccount weighting
	// analysis. Empty uses the service default (trade receivables, 1305).
	ParentPrefix string

	// PreviewRows caps the preview table returned for display. Zero uses
	// the service default.
	PreviewRows int
}
