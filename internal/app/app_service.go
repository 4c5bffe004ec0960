package app

import (
	"context"
	"errors"

	"balance-insight/internal/ai"
	"balance-insight/internal/core"
)

const (
	defaultPreviewRows  = 5
	defaultParentPrefix = "1305" // trade receivables
)

type appService struct {
	loader       *core.Loader
	agent        ai.ReportGenerator
	parentPrefix string
}

// NewAppService constructs an appService that satisfies ApplicationService.
// parentPrefix overrides the default weighting target when non-empty.
func NewAppService(loader *core.Loader, agent ai.ReportGenerator, parentPrefix string) ApplicationService {
	if parentPrefix == "" {
		parentPrefix = defaultParentPrefix
	}
	return &appService{
		loader:       loader,
		agent:        agent,
		parentPrefix: parentPrefix,
	}
}

// AnalyzeWorkbook runs loader → {metadata, aggregator, weighting} over one
// uploaded file. The grid is read once; the metadata extractor and the row
// loader both work from it independently.
func (s *appService) AnalyzeWorkbook(ctx context.Context, req AnalyzeRequest) (*AnalysisResult, error) {
	grid, err := s.readGrid(req)
	if err != nil {
		return nil, err
	}

	rows, err := s.loader.ParseGrid(grid)
	if err != nil {
		return nil, err
	}

	result := &AnalysisResult{
		Company: core.ExtractCompanyInfo(grid),
		Rows:    rows,
		Preview: previewOf(rows, req.PreviewRows),
		Classes: core.ClassVariations(rows),
	}

	prefix := req.ParentPrefix
	if prefix == "" {
		prefix = s.parentPrefix
	}
	weighting, err := core.SubaccountWeights(rows, prefix)
	if err != nil {
		// Fatal to the weighting step only; the class table stands.
		var empty *core.EmptySelectionError
		if !errors.As(err, &empty) {
			return nil, err
		}
		result.WeightingError = err.Error()
		return result, nil
	}
	result.Weighting = weighting
	return result, nil
}

// GenerateReport builds the prompt payload from the analysis tables and calls
// the report collaborator. The payload is returned alongside the narrative so
// the display layer can show exactly what the model was given.
func (s *appService) GenerateReport(ctx context.Context, analysis *AnalysisResult) (*ReportResult, error) {
	payload := core.BuildReportPayload(analysis.Company, analysis.Classes, analysis.Weighting)

	report, err := s.agent.GenerateReport(ctx, payload)
	if err != nil {
		return nil, err
	}
	return &ReportResult{Payload: payload, Report: report}, nil
}

func (s *appService) readGrid(req AnalyzeRequest) ([][]string, error) {
	if req.CSV {
		return core.ReadCSVGrid(req.Input)
	}
	return core.ReadGrid(req.Input)
}

func previewOf(rows []core.BalanceRow, n int) []core.BalanceRow {
	if n <= 0 {
		n = defaultPreviewRows
	}
	if len(rows) < n {
		n = len(rows)
	}
	preview := make([]core.BalanceRow, n)
	copy(preview, rows[:n])
	return preview
}
