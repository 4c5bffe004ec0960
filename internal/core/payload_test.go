package core_test

import (
	"strings"
	"testing"

	"balance-insight/internal/core"

	"github.com/shopspring/decimal"
)

func samplePayloadInputs() (core.CompanyInfo, []core.ClassVariation, *core.WeightingResult) {
	info := core.CompanyInfo{
		CompanyName: "ACME SAS",
		TaxID:       "900123456-7",
		Period:      "Enero 2024",
	}
	classes := []core.ClassVariation{
		{
			AccountCode:      "13",
			AccountName:      "Deudores",
			OpeningBalance:   decimal.NewFromInt(1000),
			ClosingBalance:   decimal.NewFromInt(1200),
			VariationTotal:   decimal.NewFromInt(200),
			VariationPercent: decimal.NewFromInt(20),
		},
	}
	weighting := &core.WeightingResult{
		Prefix:        "1305",
		ParentCode:    "1305",
		ParentClosing: decimal.NewFromInt(1000),
		Weights: []core.SubaccountWeight{
			{AccountCode: "130505", PartyName: "Cliente A", ClosingBalance: decimal.NewFromInt(600), ContributionPercent: decimal.RequireFromString("60")},
		},
	}
	return info, classes, weighting
}

func TestBuildReportPayload_ContainsAllTables(t *testing.T) {
	info, classes, weighting := samplePayloadInputs()
	payload := core.BuildReportPayload(info, classes, weighting)

	for _, want := range []string{
		"ACME SAS", "900123456-7", "Enero 2024",
		"13", "Deudores", "1200", "20",
		"1305", "130505", "Cliente A", "60.00",
	} {
		if !strings.Contains(payload, want) {
			t.Errorf("payload missing %q:\n%s", want, payload)
		}
	}
	// Title was absent: the placeholder must stand in.
	if !strings.Contains(payload, core.MissingFieldPlaceholder) {
		t.Errorf("payload missing placeholder for absent title:\n%s", payload)
	}
}

func TestBuildReportPayload_Deterministic(t *testing.T) {
	info, classes, weighting := samplePayloadInputs()
	a := core.BuildReportPayload(info, classes, weighting)
	b := core.BuildReportPayload(info, classes, weighting)
	if a != b {
		t.Error("payload must be deterministic for identical inputs")
	}
}

func TestBuildReportPayload_NilWeighting(t *testing.T) {
	info, classes, _ := samplePayloadInputs()
	payload := core.BuildReportPayload(info, classes, nil)
	if !strings.Contains(payload, "not available for this analysis") {
		t.Errorf("payload must state that weighting is unavailable:\n%s", payload)
	}
}

func TestBuildReportPayload_AssumedParentNote(t *testing.T) {
	info, classes, weighting := samplePayloadInputs()
	weighting.ParentAssumed = true
	weighting.ParentCode = "130505"

	payload := core.BuildReportPayload(info, classes, weighting)
	if !strings.Contains(payload, "first row under the prefix") {
		t.Errorf("payload must carry the assumed-parent caveat:\n%s", payload)
	}
}
