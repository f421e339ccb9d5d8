package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	app "github.com/mohammadpnp/debt-import/internal/application/imports"
)

const batchCSV = "Client,Debtor Name,Email,Account Number,Original Balance,Current Balance\n" +
	"Acme,John Doe,john@example.com,A1,100,80\n" +
	"Acme,,,A2,50,50\n" +
	"Acme,John Doe,john@example.com,A3,50,50\n"

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPreviewCommand(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "batch.csv", batchCSV)
	out, err := execute(t, "preview", "--file", path, "--kind", "portfolio", "--rows", "1")
	if err != nil {
		t.Fatalf("expected no error, got %v: %s", err, out)
	}

	var got app.PreviewImportOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unexpected json: %v\n%s", err, out)
	}
	if got.Mapping["Account Number"] != "account_number" || got.TotalRows != 3 || len(got.Rows) != 1 {
		t.Fatalf("unexpected preview: %+v", got)
	}
}

func TestRunCommandDryRun(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "batch.csv", batchCSV)
	out, err := execute(t, "run", "--file", path, "--kind", "portfolio", "--portfolio-name", "Q1", "--dry-run")
	if err != nil {
		t.Fatalf("expected no error, got %v: %s", err, out)
	}

	var got app.ImportResult
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unexpected json: %v\n%s", err, out)
	}
	if got.Success != 2 || len(got.Errors) != 1 || !strings.HasPrefix(got.Errors[0], "Row 2:") {
		t.Fatalf("unexpected result: %+v", got)
	}
	if got.PortfolioID == "" {
		t.Fatal("expected portfolio id")
	}
}

func TestRunCommandDryRunDebtsAndVendors(t *testing.T) {
	t.Parallel()

	debts := writeTemp(t, "debts.csv", "Debtor Name,Account Number,Balance\nJane Roe,B1,75\n")
	out, err := execute(t, "run", "--file", debts, "--kind", "debts", "--dry-run")
	if err != nil {
		t.Fatalf("expected no error, got %v: %s", err, out)
	}
	if !strings.Contains(out, `"success": 1`) {
		t.Fatalf("unexpected output: %s", out)
	}

	vendors := writeTemp(t, "vendors.csv", "Vendor Name,Email\nLone Star Legal,info@lonestar.example\n")
	out, err = execute(t, "run", "--file", vendors, "--kind", "vendors", "--dry-run")
	if err != nil {
		t.Fatalf("expected no error, got %v: %s", err, out)
	}
	if !strings.Contains(out, `"success": 1`) {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestRunCommandRejectsBadInput(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "batch.csv", batchCSV)

	if _, err := execute(t, "run", "--file", path, "--kind", "loans", "--dry-run"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if _, err := execute(t, "run", "--file", path, "--mapping", "{", "--dry-run"); err == nil {
		t.Fatal("expected error for bad mapping json")
	}
	if _, err := execute(t, "run", "--file", path, "--dry-run"); err == nil {
		t.Fatal("expected error without a portfolio name")
	}
}

func TestTemplateCommand(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "vendors.xlsx")
	out, err := execute(t, "template", "--kind", "vendors", "--format", "xlsx", "--out", target)
	if err != nil {
		t.Fatalf("expected no error, got %v: %s", err, out)
	}
	if !strings.Contains(out, "wrote "+target) {
		t.Fatalf("unexpected output: %s", out)
	}

	table, err := decodeFile(target)
	if err != nil {
		t.Fatalf("expected template to decode, got %v", err)
	}
	if table.Headers[0] != "vendor_name" {
		t.Fatalf("unexpected headers: %v", table.Headers)
	}

	out, err = execute(t, "template", "--kind", "portfolio", "--out", "-")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(out, "client_name,debtor_name") {
		t.Fatalf("unexpected csv template: %q", out)
	}
}
