package web

import (
	"encoding/csv"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"balance-insight/internal/app"
	"balance-insight/internal/core"

	"github.com/google/uuid"
)

const maxUploadSize = 20 << 20 // 20 MB

// createAnalysis handles POST /api/analyses — accepts one uploaded trial
// balance (.xlsx or .csv), runs the pipeline, stores the result under a fresh
// analysis ID, and returns the derived tables.
func (h *Handler) createAnalysis(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, r, "request too large or malformed", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["file"]
	if len(files) != 1 {
		writeError(w, r, "exactly one file must be provided", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	fh := files[0]

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".xlsx" && ext != ".csv" {
		writeError(w, r, "unsupported file type "+ext+"; accepted: .xlsx, .csv",
			"UNSUPPORTED_TYPE", http.StatusUnsupportedMediaType)
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeError(w, r, "failed to open uploaded file", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	result, err := h.svc.AnalyzeWorkbook(r.Context(), app.AnalyzeRequest{
		Input:        f,
		CSV:          ext == ".csv",
		ParentPrefix: r.FormValue("prefix"),
	})
	if err != nil {
		h.writeAnalysisError(w, r, err)
		return
	}

	id := uuid.NewString()
	h.store.put(id, result)

	writeJSON(w, analysisResponse{AnalysisID: id, AnalysisResult: result})
}

// getAnalysis handles GET /api/analyses/{id} — re-fetches the stored tables
// without re-running the pipeline.
func (h *Handler) getAnalysis(w http.ResponseWriter, r *http.Request) {
	id := analysisID(r)
	result, ok := h.store.get(id)
	if !ok {
		writeError(w, r, "analysis not found or expired", "NOT_FOUND", http.StatusNotFound)
		return
	}
	writeJSON(w, analysisResponse{AnalysisID: id, AnalysisResult: result})
}

// exportAnalysis handles GET /api/analyses/{id}/export?table=classes|subaccounts
// and streams the requested table as CSV.
func (h *Handler) exportAnalysis(w http.ResponseWriter, r *http.Request) {
	result, ok := h.store.get(analysisID(r))
	if !ok {
		writeError(w, r, "analysis not found or expired", "NOT_FOUND", http.StatusNotFound)
		return
	}

	table := r.URL.Query().Get("table")
	switch table {
	case "", "classes":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="class-variations.csv"`)
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"Code", "Name", "Opening", "Closing", "Variation", "Variation %"})
		for _, c := range result.Classes {
			_ = cw.Write([]string{
				c.AccountCode,
				csvSafe(c.AccountName),
				c.OpeningBalance.String(),
				c.ClosingBalance.String(),
				c.VariationTotal.String(),
				c.VariationPercent.String(),
			})
		}
		cw.Flush()

	case "subaccounts":
		if result.Weighting == nil {
			writeError(w, r, "subaccount weighting unavailable: "+result.WeightingError,
				"EMPTY_SELECTION", http.StatusUnprocessableEntity)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="subaccount-weights.csv"`)
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"Code", "Counterparty", "Closing", "Contribution %"})
		for _, s := range result.Weighting.Weights {
			_ = cw.Write([]string{
				s.AccountCode,
				csvSafe(s.PartyName),
				s.ClosingBalance.String(),
				s.ContributionPercent.StringFixed(2),
			})
		}
		cw.Flush()

	default:
		writeError(w, r, "unknown table "+table, "BAD_REQUEST", http.StatusBadRequest)
	}
}

// writeAnalysisError maps pipeline error types to HTTP responses.
func (h *Handler) writeAnalysisError(w http.ResponseWriter, r *http.Request, err error) {
	var schemaErr *core.SchemaError
	if errors.As(err, &schemaErr) {
		writeError(w, r, schemaErr.Error(), "SCHEMA_ERROR", http.StatusUnprocessableEntity)
		return
	}
	var loadErr *core.LoadError
	if errors.As(err, &loadErr) {
		writeError(w, r, loadErr.Error(), "LOAD_FAILED", http.StatusBadRequest)
		return
	}
	writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
}

type analysisResponse struct {
	AnalysisID string `json:"analysis_id"`
	*app.AnalysisResult
}

// csvSafe prevents CSV formula injection by prefixing cells that begin with a
// formula-triggering character with a single quote.
func csvSafe(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
