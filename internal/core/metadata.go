package core

import "strings"

// metadataRows is how many preamble rows the extractor is allowed to look at.
// It matches the loader's default header skip.
const metadataRows = 7

// ExtractCompanyInfo reads the workbook preamble (first column of the first
// metadataRows rows, no headers assumed) into a CompanyInfo. The convention
// is an explicit offset table so the file layout stays visible and adjustable.
// An offset beyond the grid simply leaves that field empty — a short or
// malformed preamble must never fail the analysis; downstream formatting
// substitutes a placeholder for anything missing.
func ExtractCompanyInfo(grid [][]string) CompanyInfo {
	var info CompanyInfo

	offsets := map[int]*string{
		0: &info.Title,
		1: &info.CompanyName,
		2: &info.TaxID,
		3: &info.Period,
	}

	limit := len(grid)
	if limit > metadataRows {
		limit = metadataRows
	}

	for offset, field := range offsets {
		if offset >= limit || len(grid[offset]) == 0 {
			continue
		}
		*field = strings.TrimSpace(grid[offset][0])
	}
	return info
}
