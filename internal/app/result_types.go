package app

import "balance-insight/internal/core"

// AnalysisResult is returned by AnalyzeWorkbook. All tables are values owned
// by this analysis run; nothing persists across uploads.
type AnalysisResult struct {
	Company core.CompanyInfo      `json:"company"`
	Rows    []core.BalanceRow     `json:"-"`
	Preview []core.BalanceRow     `json:"preview"`
	Classes []core.ClassVariation `json:"classes"`

	// Weighting is nil when the weighting step failed; WeightingError then
	// carries the reason. The class-variation table stays valid regardless.
	Weighting      *core.WeightingResult `json:"weighting,omitempty"`
	WeightingError string                `json:"weighting_error,omitempty"`
}

// ReportResult is returned by GenerateReport.
type ReportResult struct {
	Payload string                `json:"payload"`
	Report  *core.NarrativeReport `json:"report"`
}
