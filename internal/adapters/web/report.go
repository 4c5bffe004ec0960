package web

import (
	"errors"
	"net/http"

	"balance-insight/internal/core"
)

// generateReport handles POST /api/analyses/{id}/report — asks the report
// collaborator for a narrative over the stored tables. A collaborator failure
// gets its own error code; the analysis itself stays retrievable, so the
// display layer keeps showing the computed tables alongside the error.
func (h *Handler) generateReport(w http.ResponseWriter, r *http.Request) {
	result, ok := h.store.get(analysisID(r))
	if !ok {
		writeError(w, r, "analysis not found or expired", "NOT_FOUND", http.StatusNotFound)
		return
	}

	report, err := h.svc.GenerateReport(r.Context(), result)
	if err != nil {
		var genErr *core.ReportGenerationError
		if errors.As(err, &genErr) {
			writeError(w, r, genErr.Error(), "REPORT_FAILED", http.StatusBadGateway)
			return
		}
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}

	writeJSON(w, report)
}
