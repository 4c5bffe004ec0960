package core

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// MissingFieldPlaceholder is substituted for any company metadata field the
// preamble did not provide, so the report collaborator never sees a blank.
const MissingFieldPlaceholder = "information not available"

// BuildReportPayload renders the analysis tables into one deterministic text
// block used verbatim as the report collaborator's prompt body. Every row's
// numeric fields are legible as plain text. weighting may be nil when that
// step failed; the payload says so instead of omitting the section silently.
func BuildReportPayload(info CompanyInfo, classes []ClassVariation, weighting *WeightingResult) string {
	var b strings.Builder

	orPlaceholder := func(s string) string {
		if strings.TrimSpace(s) == "" {
			return MissingFieldPlaceholder
		}
		return s
	}

	fmt.Fprintf(&b, "Report: %s\n", orPlaceholder(info.Title))
	fmt.Fprintf(&b, "Company: %s\n", orPlaceholder(info.CompanyName))
	fmt.Fprintf(&b, "Tax ID: %s\n", orPlaceholder(info.TaxID))
	fmt.Fprintf(&b, "Period: %s\n", orPlaceholder(info.Period))

	b.WriteString("\nVariation by account class:\n")
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Code\tName\tOpening\tClosing\tVariation\tVariation %")
	for _, c := range classes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			c.AccountCode, c.AccountName,
			c.OpeningBalance.String(), c.ClosingBalance.String(),
			c.VariationTotal.String(), c.VariationPercent.String())
	}
	tw.Flush()

	b.WriteString("\n")
	if weighting == nil {
		b.WriteString("Subaccount weighting: not available for this analysis.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Subaccount weighting under account %s (parent closing balance %s):\n",
		weighting.Prefix, weighting.ParentClosing.String())
	if weighting.ParentAssumed {
		fmt.Fprintf(&b, "Note: no row matches code %s exactly; the first row under the prefix was taken as the parent total.\n",
			weighting.Prefix)
	}
	tw = tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Code\tCounterparty\tClosing\tContribution %")
	for _, w := range weighting.Weights {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			w.AccountCode, w.PartyName,
			w.ClosingBalance.String(), w.ContributionPercent.StringFixed(2))
	}
	tw.Flush()

	return b.String()
}
