package app

import "context"

// ApplicationService is the single interface all UI adapters (web, CLI) call.
// It decouples presentation from the pipeline. Implementations must contain
// no display logic of any kind.
//
// AnalyzeWorkbook and GenerateReport are deliberately separate operations:
// re-running the aggregation never re-triggers the model call and vice versa,
// and a report call outstanding for one analysis never blocks a new upload.
type ApplicationService interface {
	// AnalyzeWorkbook runs the full pipeline on one uploaded trial balance:
	// load and normalize rows, extract company metadata, aggregate class
	// variations, and weigh subaccounts under the requested parent prefix.
	// Only loader failures are fatal; the weighting step failing leaves the
	// other tables intact and is reported inside the result.
	AnalyzeWorkbook(ctx context.Context, req AnalyzeRequest) (*AnalysisResult, error)

	// GenerateReport formats the analysis tables into a prompt payload and
	// asks the report collaborator for a narrative document.
	GenerateReport(ctx context.Context, analysis *AnalysisResult) (*ReportResult, error)
}
