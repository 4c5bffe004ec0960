package core

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// NumericMode selects how numeric cells are coerced. The two modes are
// mutually exclusive per configured source variant; callers pick one
// explicitly rather than the loader guessing from file shape.
type NumericMode int

const (
	// NumericLenient parses cells as plain decimals; a cell that fails to
	// parse becomes a null value and the row survives.
	NumericLenient NumericMode = iota

	// NumericLocale first strips "." thousands separators (the export format
	// that uses dot-grouped integers with no decimal point) before parsing.
	NumericLocale
)

// ParseNumericMode maps a configuration string to a NumericMode.
func ParseNumericMode(s string) (NumericMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lenient", "lenient-null":
		return NumericLenient, nil
	case "locale", "locale-stripped":
		return NumericLocale, nil
	default:
		return NumericLenient, fmt.Errorf("unknown numeric mode %q", s)
	}
}

// LoaderConfig controls header skipping and numeric coercion.
type LoaderConfig struct {
	// HeaderSkip is the number of metadata rows that precede the column
	// header row. The trial balance exporter writes 7.
	HeaderSkip int

	NumericMode NumericMode
}

// DefaultLoaderConfig matches the standard trial balance export shape.
func DefaultLoaderConfig() LoaderConfig {
	return LoaderConfig{HeaderSkip: 7, NumericMode: NumericLenient}
}

// Loader turns a raw workbook grid into normalized BalanceRows.
type Loader struct {
	cfg LoaderConfig
}

func NewLoader(cfg LoaderConfig) *Loader {
	if cfg.HeaderSkip <= 0 {
		cfg.HeaderSkip = 7
	}
	return &Loader{cfg: cfg}
}

// requiredColumns is the whitelist of columns the pipeline selects.
// ColPartyName is intentionally absent: aggregate rows carry no counterparty.
var requiredColumns = []string{
	ColLevel,
	ColTransactional,
	ColAccountCode,
	ColAccountName,
	ColPartyID,
	ColOpeningBalance,
	ColDebitMovement,
	ColCreditMovement,
	ColClosingBalance,
}

// ReadGrid reads the first sheet of an .xlsx workbook into a string grid.
// Any failure to open or read the sheet is a *LoadError.
func ReadGrid(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &LoadError{Cause: err}
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &LoadError{Cause: fmt.Errorf("read sheet %q: %w", sheet, err)}
	}
	return rows, nil
}

// ReadCSVGrid reads a CSV export into the same grid shape as ReadGrid.
// Ragged rows are allowed; the exporter pads metadata rows inconsistently.
// Empty rows within the preamble must carry separators ("," padding, as
// spreadsheet CSV exports write them) to hold their position: fully blank
// lines are dropped by the CSV reader and would shift the header row.
func ReadCSVGrid(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, &LoadError{Cause: err}
	}
	return rows, nil
}

// ReadWorkbook is the one-shot form of ReadGrid + ParseGrid.
func (l *Loader) ReadWorkbook(r io.Reader) ([]BalanceRow, error) {
	grid, err := ReadGrid(r)
	if err != nil {
		return nil, err
	}
	return l.ParseGrid(grid)
}

// ParseGrid skips the metadata preamble, locates the whitelisted columns on
// the header row, and normalizes every data row. A row whose numeric cell
// fails coercion is kept with a null in that field; only a missing header
// column or a grid too short to contain one is fatal.
func (l *Loader) ParseGrid(grid [][]string) ([]BalanceRow, error) {
	if len(grid) <= l.cfg.HeaderSkip {
		return nil, &LoadError{Cause: fmt.Errorf(
			"sheet has %d rows, header expected at row %d", len(grid), l.cfg.HeaderSkip+1)}
	}

	header := grid[l.cfg.HeaderSkip]
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	cell := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []BalanceRow
	for _, row := range grid[l.cfg.HeaderSkip+1:] {
		if isBlank(row) {
			continue
		}
		out = append(out, BalanceRow{
			Level:          cell(row, ColLevel),
			Transactional:  cell(row, ColTransactional),
			AccountCode:    cell(row, ColAccountCode),
			AccountName:    cell(row, ColAccountName),
			PartyID:        cell(row, ColPartyID),
			PartyName:      cell(row, ColPartyName),
			OpeningBalance: l.parseAmount(cell(row, ColOpeningBalance)),
			DebitMovement:  l.parseAmount(cell(row, ColDebitMovement)),
			CreditMovement: l.parseAmount(cell(row, ColCreditMovement)),
			ClosingBalance: l.parseAmount(cell(row, ColClosingBalance)),
		})
	}
	return out, nil
}

// parseAmount coerces a cell to a decimal. Failures yield a null value,
// never an error: one bad cell must not abort the run.
func (l *Loader) parseAmount(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}
	}
	if l.cfg.NumericMode == NumericLocale {
		// Dot-grouped integers, e.g. "1.234.567" -> "1234567".
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, " ", "")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
