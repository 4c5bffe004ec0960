package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"balance-insight/internal/ai"
	"balance-insight/internal/app"
	"balance-insight/internal/core"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// analyze runs the full pipeline against a trial balance file from the
// command line: the one-shot equivalent of the upload form.
func main() {
	_ = godotenv.Load()

	var (
		prefix      = flag.String("prefix", "", "parent account code prefix for subaccount weighting (default 1305)")
		numericMode = flag.String("numeric-mode", "lenient", "numeric coercion mode: lenient or locale")
		preview     = flag.Int("preview", 5, "rows of the normalized table to print")
		withReport  = flag.Bool("report", false, "also generate the narrative report (requires OPENAI_API_KEY)")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <trial-balance.xlsx|.csv>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg := core.DefaultLoaderConfig()
	mode, err := core.ParseNumericMode(*numericMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg.NumericMode = mode

	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("open: %v", err)
	}
	defer f.Close()

	svc := app.NewAppService(core.NewLoader(cfg), ai.NewAgent(os.Getenv("OPENAI_API_KEY")), "")

	ctx := context.Background()
	result, err := svc.AnalyzeWorkbook(ctx, app.AnalyzeRequest{
		Input:        f,
		CSV:          strings.EqualFold(filepath.Ext(path), ".csv"),
		ParentPrefix: *prefix,
		PreviewRows:  *preview,
	})
	if err != nil {
		log.Fatalf("analyze: %v", err)
	}

	printAnalysis(result)

	if *withReport {
		fmt.Println("\nGenerating report...")
		report, err := svc.GenerateReport(ctx, result)
		if err != nil {
			log.Fatalf("report: %v", err)
		}
		fmt.Println("\n=== Narrative report ===")
		fmt.Println(report.Report.Summary)
		if len(report.Report.RelevantClasses) > 0 {
			fmt.Println("\nRelevant classes:", strings.Join(report.Report.RelevantClasses, ", "))
		}
		if report.Report.KeyObservations != "" {
			fmt.Println("\nKey observations:")
			fmt.Println(report.Report.KeyObservations)
		}
	}
}

func printAnalysis(result *app.AnalysisResult) {
	orDash := func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	}

	fmt.Printf("Company: %s  Tax ID: %s  Period: %s\n",
		orDash(result.Company.CompanyName), orDash(result.Company.TaxID), orDash(result.Company.Period))

	fmt.Printf("\nNormalized rows (first %d of %d):\n", len(result.Preview), len(result.Rows))
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Level\tCode\tName\tOpening\tClosing")
	for _, row := range result.Preview {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			row.Level, row.AccountCode, row.AccountName,
			nullableString(row.OpeningBalance), nullableString(row.ClosingBalance))
	}
	tw.Flush()

	fmt.Println("\nVariation by account class:")
	tw = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Code\tName\tOpening\tClosing\tVariation\tVariation %")
	for _, c := range result.Classes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			c.AccountCode, c.AccountName,
			c.OpeningBalance.String(), c.ClosingBalance.String(),
			c.VariationTotal.String(), c.VariationPercent.String())
	}
	tw.Flush()

	if result.Weighting == nil {
		fmt.Printf("\nSubaccount weighting unavailable: %s\n", result.WeightingError)
		return
	}

	fmt.Printf("\nSubaccount weighting under %s (parent closing %s):\n",
		result.Weighting.Prefix, result.Weighting.ParentClosing.String())
	if result.Weighting.ParentAssumed {
		fmt.Printf("Note: parent total assumed from first row under prefix (%s)\n", result.Weighting.ParentCode)
	}
	tw = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Code\tCounterparty\tClosing\tContribution %")
	for _, s := range result.Weighting.Weights {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			s.AccountCode, s.PartyName, s.ClosingBalance.String(), s.ContributionPercent.StringFixed(2))
	}
	tw.Flush()
}

func nullableString(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}
	return d.Decimal.String()
}
