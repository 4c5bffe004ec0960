package core

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

type groupKey struct {
	code string
	name string
}

// ClassVariations aggregates the class-variation report: only rows at the
// top "Clase" hierarchy level participate.
func ClassVariations(rows []BalanceRow) []ClassVariation {
	return LevelVariations(rows, LevelClass)
}

// LevelVariations groups rows of the given hierarchy level by the pair
// (account code, account name), sums opening and closing balances, and
// derives total and percentage variation. Grouping by the pair rather than
// by code alone tolerates minor name variants under one code without
// silently merging distinct codes.
//
// Null balances sum as zero. Output order is the insertion order of each
// group's first occurrence; the sums themselves are order-independent.
//
// VariationPercent is variation / opening × 100. A group whose summed
// opening balance is exactly zero has no defined percentage; it is reported
// as 0 rather than a division fault. All display fields are rounded to whole
// units, the percentage after the zero substitution.
func LevelVariations(rows []BalanceRow, level string) []ClassVariation {
	type totals struct {
		opening decimal.Decimal
		closing decimal.Decimal
	}

	sums := make(map[groupKey]*totals)
	var order []groupKey

	for _, r := range rows {
		if r.Level != level {
			continue
		}
		k := groupKey{code: r.AccountCode, name: r.AccountName}
		t, ok := sums[k]
		if !ok {
			t = &totals{}
			sums[k] = t
			order = append(order, k)
		}
		if r.OpeningBalance.Valid {
			t.opening = t.opening.Add(r.OpeningBalance.Decimal)
		}
		if r.ClosingBalance.Valid {
			t.closing = t.closing.Add(r.ClosingBalance.Decimal)
		}
	}

	out := make([]ClassVariation, 0, len(order))
	for _, k := range order {
		t := sums[k]
		variation := t.closing.Sub(t.opening)

		percent := decimal.Zero
		if !t.opening.IsZero() {
			percent = variation.Div(t.opening).Mul(hundred)
		}

		out = append(out, ClassVariation{
			AccountCode:      k.code,
			AccountName:      k.name,
			OpeningBalance:   t.opening.Round(0),
			ClosingBalance:   t.closing.Round(0),
			VariationTotal:   variation.Round(0),
			VariationPercent: percent.Round(0),
		})
	}
	return out
}
