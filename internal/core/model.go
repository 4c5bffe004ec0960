package core

import "github.com/shopspring/decimal"

// Hierarchy level labels as they appear in the source trial balance files.
// The exporter writes Spanish labels; they are data values, not UI strings.
const (
	LevelClass      = "Clase"
	LevelGroup      = "Grupo"
	LevelAccount    = "Cuenta"
	LevelSubaccount = "Subcuenta"
)

// Source column headers. The exporter emits these exact names on the header
// row that follows the metadata preamble.
const (
	ColLevel          = "Nivel"
	ColTransactional  = "Transaccional"
	ColAccountCode    = "Código cuenta contable"
	ColAccountName    = "Nombre cuenta contable"
	ColPartyID        = "Identificación"
	ColPartyName      = "Nombre tercero"
	ColOpeningBalance = "Saldo inicial"
	ColDebitMovement  = "Movimiento débito"
	ColCreditMovement = "Movimiento crédito"
	ColClosingBalance = "Saldo final"
)

// BalanceRow is one normalized row of the uploaded trial balance.
// String fields are always string-typed regardless of the original cell type
// (a numeric tax ID becomes its digit string). Numeric fields are NullDecimal:
// Valid=false means the cell failed coercion — the row is kept anyway.
//
// ClosingBalance is expected to approximate OpeningBalance + DebitMovement −
// CreditMovement, but the pipeline trusts the file's own closing figure and
// never corrects it.
type BalanceRow struct {
	Level          string              `json:"level"`
	Transactional  string              `json:"transactional"`
	AccountCode    string              `json:"account_code"`
	AccountName    string              `json:"account_name"`
	PartyID        string              `json:"party_id"`
	PartyName      string              `json:"party_name,omitempty"`
	OpeningBalance decimal.NullDecimal `json:"opening_balance"`
	DebitMovement  decimal.NullDecimal `json:"debit_movement"`
	CreditMovement decimal.NullDecimal `json:"credit_movement"`
	ClosingBalance decimal.NullDecimal `json:"closing_balance"`
}

// ClassVariation is one aggregated line of the class-variation report,
// keyed by (AccountCode, AccountName) at the "Clase" hierarchy level.
// All four numeric fields are already rounded for display: balances and
// VariationTotal to whole units, VariationPercent to a whole percent.
// A class whose summed opening balance is zero reports exactly 0%.
type ClassVariation struct {
	AccountCode      string          `json:"account_code"`
	AccountName      string          `json:"account_name"`
	OpeningBalance   decimal.Decimal `json:"opening_balance"`
	ClosingBalance   decimal.Decimal `json:"closing_balance"`
	VariationTotal   decimal.Decimal `json:"variation_total"`
	VariationPercent decimal.Decimal `json:"variation_percent"`
}

// SubaccountWeight is one line of the subaccount weighting analysis:
// a row under the requested parent prefix with its closing balance (rounded to
// whole units) and its contribution relative to the parent closing balance
// (rounded to 2 decimal places). The parent row itself is included at 100.00.
type SubaccountWeight struct {
	AccountCode         string          `json:"account_code"`
	PartyName           string          `json:"party_name"`
	ClosingBalance      decimal.Decimal `json:"closing_balance"`
	ContributionPercent decimal.Decimal `json:"contribution_percent"`
}

// WeightingResult is the output of the subaccount weighting analyzer.
// ParentAssumed is true when no row's code exactly equals the requested prefix
// and the parent balance was taken from the first matching row in source order
// (the legacy positional convention); consumers should surface it as a caveat.
type WeightingResult struct {
	Prefix        string             `json:"prefix"`
	ParentCode    string             `json:"parent_code"`
	ParentClosing decimal.Decimal    `json:"parent_closing"`
	ParentAssumed bool               `json:"parent_assumed"`
	Weights       []SubaccountWeight `json:"weights"`
}

// CompanyInfo holds the descriptive fields extracted from the workbook's
// metadata preamble. Any field may be empty when the preamble is short or
// malformed; extraction never fails the analysis.
type CompanyInfo struct {
	Title       string `json:"title"`
	CompanyName string `json:"company_name"`
	TaxID       string `json:"tax_id"`
	Period      string `json:"period"`
}

// NarrativeReport is the structured document the report collaborator returns.
type NarrativeReport struct {
	Summary         string   `json:"summary" jsonschema_description:"Narrative summary of the total and percentage variations across account classes"`
	RelevantClasses []string `json:"relevant_classes" jsonschema_description:"Account class codes or names whose variation deserves the reader's attention"`
	KeyObservations string   `json:"key_observations" jsonschema_description:"Notable subaccount concentrations and any caveats about the underlying figures"`
}
