package core

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// SubaccountWeights computes each subaccount's contribution to its parent
// account's closing balance.
//
// Selection keeps every row whose account code starts with prefix, in source
// order. The parent balance is taken from the row whose code exactly equals
// the prefix when one exists; otherwise it falls back to the first matching
// row — the source files conventionally list the parent total line before its
// children, and ParentAssumed is set so callers can surface the assumption.
//
// The parent row is included in the output at 100.00. Contribution is
// closing / parent closing × 100 rounded to 2 decimal places (0 when the
// parent closing balance is zero); closing balances are rounded to whole
// units. The result is ordered by contribution descending, ties keeping
// source order.
func SubaccountWeights(rows []BalanceRow, prefix string) (*WeightingResult, error) {
	var selected []BalanceRow
	for _, r := range rows {
		if strings.HasPrefix(r.AccountCode, prefix) {
			selected = append(selected, r)
		}
	}
	if len(selected) == 0 {
		return nil, &EmptySelectionError{Prefix: prefix}
	}

	parent := selected[0]
	assumed := true
	for _, r := range selected {
		if r.AccountCode == prefix {
			parent = r
			assumed = false
			break
		}
	}

	parentClosing := decimal.Zero
	if parent.ClosingBalance.Valid {
		parentClosing = parent.ClosingBalance.Decimal
	}

	weights := make([]SubaccountWeight, 0, len(selected))
	for _, r := range selected {
		closing := decimal.Zero
		if r.ClosingBalance.Valid {
			closing = r.ClosingBalance.Decimal
		}

		contribution := decimal.Zero
		if !parentClosing.IsZero() {
			contribution = closing.Div(parentClosing).Mul(hundred)
		}

		weights = append(weights, SubaccountWeight{
			AccountCode:         r.AccountCode,
			PartyName:           r.PartyName,
			ClosingBalance:      closing.Round(0),
			ContributionPercent: contribution.Round(2),
		})
	}

	sort.SliceStable(weights, func(i, j int) bool {
		return weights[i].ContributionPercent.GreaterThan(weights[j].ContributionPercent)
	})

	return &WeightingResult{
		Prefix:        prefix,
		ParentCode:    parent.AccountCode,
		ParentClosing: parentClosing.Round(0),
		ParentAssumed: assumed,
		Weights:       weights,
	}, nil
}
