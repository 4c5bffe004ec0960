package core_test

import (
	"testing"

	"balance-insight/internal/core"

	"github.com/shopspring/decimal"
)

func row(level, code, name string, opening, closing float64) core.BalanceRow {
	return core.BalanceRow{
		Level:          level,
		AccountCode:    code,
		AccountName:    name,
		OpeningBalance: decimal.NewNullDecimal(decimal.NewFromFloat(opening)),
		ClosingBalance: decimal.NewNullDecimal(decimal.NewFromFloat(closing)),
	}
}

func TestClassVariations_RoundNumbers(t *testing.T) {
	rows := []core.BalanceRow{
		row(core.LevelClass, "11", "Disponible", 1000, 1200),
		row(core.LevelClass, "13", "Deudores", 0, 500),
		row(core.LevelClass, "22", "Proveedores", -200, -100),
		// Non-class levels must not participate.
		row(core.LevelGroup, "1105", "Caja", 99999, 99999),
	}

	got := core.ClassVariations(rows)
	if len(got) != 3 {
		t.Fatalf("expected 3 classes, got %d", len(got))
	}

	tests := []struct {
		code      string
		variation int64
		percent   int64
	}{
		{"11", 200, 20},
		{"13", 500, 0},  // zero opening balance reports exactly 0%
		{"22", 100, -50}, // sign preserved for negative opening balance
	}

	for i, tt := range tests {
		c := got[i]
		if c.AccountCode != tt.code {
			t.Errorf("row %d: expected code %s, got %s", i, tt.code, c.AccountCode)
		}
		if !c.VariationTotal.Equal(decimal.NewFromInt(tt.variation)) {
			t.Errorf("class %s: expected variation %d, got %s", tt.code, tt.variation, c.VariationTotal)
		}
		if !c.VariationPercent.Equal(decimal.NewFromInt(tt.percent)) {
			t.Errorf("class %s: expected percent %d, got %s", tt.code, tt.percent, c.VariationPercent)
		}
	}
}

func TestClassVariations_GroupsByCodeAndName(t *testing.T) {
	rows := []core.BalanceRow{
		row(core.LevelClass, "11", "Disponible", 100, 150),
		row(core.LevelClass, "11", "Disponible", 200, 250),
		// Same name under a different code must stay a separate group.
		row(core.LevelClass, "12", "Disponible", 50, 50),
	}

	got := core.ClassVariations(rows)
	if len(got) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(got))
	}
	if !got[0].OpeningBalance.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected summed opening 300, got %s", got[0].OpeningBalance)
	}
	if !got[0].ClosingBalance.Equal(decimal.NewFromInt(400)) {
		t.Errorf("expected summed closing 400, got %s", got[0].ClosingBalance)
	}
	if got[1].AccountCode != "12" {
		t.Errorf("expected second group code 12, got %s", got[1].AccountCode)
	}
}

func TestClassVariations_OrderIndependentSums(t *testing.T) {
	rows := []core.BalanceRow{
		row(core.LevelClass, "11", "Disponible", 100, 150),
		row(core.LevelClass, "13", "Deudores", 300, 330),
		row(core.LevelClass, "11", "Disponible", 200, 250),
	}
	permuted := []core.BalanceRow{rows[2], rows[1], rows[0]}

	a := core.ClassVariations(rows)
	b := core.ClassVariations(permuted)

	if len(a) != len(b) {
		t.Fatalf("group counts differ: %d vs %d", len(a), len(b))
	}
	sums := func(vs []core.ClassVariation) map[string]string {
		m := make(map[string]string)
		for _, v := range vs {
			m[v.AccountCode] = v.OpeningBalance.String() + "/" + v.ClosingBalance.String()
		}
		return m
	}
	sa, sb := sums(a), sums(b)
	for code, v := range sa {
		if sb[code] != v {
			t.Errorf("class %s: sums differ after permutation: %s vs %s", code, v, sb[code])
		}
	}
}

func TestClassVariations_NullBalancesSumAsZero(t *testing.T) {
	rows := []core.BalanceRow{
		{
			Level:          core.LevelClass,
			AccountCode:    "14",
			AccountName:    "Inventarios",
			OpeningBalance: decimal.NullDecimal{}, // coercion failure upstream
			ClosingBalance: decimal.NewNullDecimal(decimal.NewFromInt(800)),
		},
		row(core.LevelClass, "14", "Inventarios", 500, 200),
	}

	got := core.ClassVariations(rows)
	if len(got) != 1 {
		t.Fatalf("expected 1 group, got %d", len(got))
	}
	if !got[0].OpeningBalance.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected opening 500, got %s", got[0].OpeningBalance)
	}
	if !got[0].ClosingBalance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected closing 1000, got %s", got[0].ClosingBalance)
	}
}

func TestLevelVariations_GroupsAnyRequestedLevel(t *testing.T) {
	rows := []core.BalanceRow{
		row(core.LevelClass, "13", "Deudores", 100, 200),
		row(core.LevelGroup, "1305", "Clientes", 80, 160),
	}

	got := core.LevelVariations(rows, core.LevelGroup)
	if len(got) != 1 {
		t.Fatalf("expected 1 group, got %d", len(got))
	}
	if got[0].AccountCode != "1305" {
		t.Errorf("expected code 1305, got %s", got[0].AccountCode)
	}
	if !got[0].VariationPercent.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected percent 100, got %s", got[0].VariationPercent)
	}
}

func TestClassVariations_RoundsForDisplay(t *testing.T) {
	rows := []core.BalanceRow{
		row(core.LevelClass, "11", "Disponible", 1000.4, 1200.6),
	}

	got := core.ClassVariations(rows)
	if !got[0].OpeningBalance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected opening rounded to 1000, got %s", got[0].OpeningBalance)
	}
	if !got[0].ClosingBalance.Equal(decimal.NewFromInt(1201)) {
		t.Errorf("expected closing rounded to 1201, got %s", got[0].ClosingBalance)
	}
	// Percent derives from unrounded sums: 200.2/1000.4*100 = 20.01... -> 20.
	if !got[0].VariationPercent.Equal(decimal.NewFromInt(20)) {
		t.Errorf("expected percent 20, got %s", got[0].VariationPercent)
	}
}
