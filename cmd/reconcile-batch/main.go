package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/sellerdesk/recon_backend/config"
	"github.com/sellerdesk/recon_backend/models"
	"github.com/sellerdesk/recon_backend/models/imports"
	"github.com/sellerdesk/recon_backend/models/reports"
	"github.com/sellerdesk/recon_backend/utils"
	"github.com/sellerdesk/recon_backend/workflow"
)

// reconcile-batch runs one reconciliation over local files, for sellers who
// script their month-end close instead of using the HTTP upload surface.
func main() {
	orderPath := flag.String("order", "", "Order report file (csv/xlsx). Required.")
	paymentPaths := flag.String("payments", "", "Comma-separated payment report files (xlsx/csv). Required.")
	costPath := flag.String("cost-sheet", "", "Optional: base price/cost sheet (csv/xlsx) with SKU and Cost columns.")
	fallbackCost := flag.String("fallback-cost", "0", "Default product cost for SKUs missing from the cost sheet.")
	packagingCost := flag.String("packaging-cost", "5", "Packaging cost charged on every order.")
	outPath := flag.String("out", "", "Optional: write the XLSX report to this path.")
	summaryOnly := flag.Bool("summary-only", false, "Print only the summary JSON, not the full record list.")
	flag.Parse()

	if *orderPath == "" || *paymentPaths == "" {
		fmt.Fprintln(os.Stderr, "both -order and -payments are required")
		flag.Usage()
		os.Exit(2)
	}

	engineCfg, err := parseEngineConfig(*fallbackCost, *packagingCost)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	input := workflow.ReconcileInput{}
	input.Orders, err = readTable(*orderPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for _, p := range utils.SplitAndTrim(*paymentPaths) {
		wb, err := readWorkbook(p)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		input.Payments = append(input.Payments, wb)
	}
	if *costPath != "" {
		input.CostSheet, err = readTable(*costPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	result, err := workflow.ProcessReconciliationWorkflow(config.GetLogger(), engineCfg, input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reconciliation failed: %v\n", err)
		os.Exit(1)
	}

	for _, w := range result.Warnings {
		fmt.Fprintln(os.Stderr, "warning: "+w)
	}

	var payload any = result.Summary
	if !*summaryOnly {
		payload = map[string]any{
			"summary": result.Summary,
			"records": result.Records,
		}
	}
	out, err := utils.MarshalToJSONIndent(payload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(out)

	if *outPath != "" {
		if err := writeReport(*outPath, result); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write report: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "report written to "+*outPath)
	}
}

func parseEngineConfig(fallbackCost, packagingCost string) (workflow.ReconcileConfig, error) {
	cfg := workflow.ReconcileConfig{}
	fallback, err := decimal.NewFromString(fallbackCost)
	if err != nil {
		return cfg, fmt.Errorf("-fallback-cost must be numeric: %w", err)
	}
	packaging, err := decimal.NewFromString(packagingCost)
	if err != nil {
		return cfg, fmt.Errorf("-packaging-cost must be numeric: %w", err)
	}
	cfg.FallbackProductCost = fallback
	cfg.PackagingCost = packaging
	return cfg, nil
}

func readTable(path string) (*models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return imports.ReadTableAuto(f, path)
}

func readWorkbook(path string) (*models.Workbook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return imports.ReadWorkbookAuto(f, path)
}

func writeReport(path string, result *workflow.ReconcileResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return reports.WriteReconciliationReport(f, result.Records, result.Summary)
}
