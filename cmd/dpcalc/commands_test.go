package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"brecho/internal/domain/payroll"
	"brecho/internal/domain/severance"
	"brecho/internal/domain/tax"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	if cmd.Use != "dpcalc" || cmd.Short == "" {
		t.Fatalf("unexpected root command %q", cmd.Use)
	}
	want := map[string]bool{"folha": false, "decimo-terceiro": false, "ferias": false, "impostos": false, "rescisao": false, "tabelas": false}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %s", name)
		}
	}
}

func TestMonthlyCommand(t *testing.T) {
	out, err := run(t, "folha", "--salario", "3000", "--vt", "6")
	if err != nil {
		t.Fatalf("folha: %v", err)
	}
	var result payroll.MonthlyResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if !result.NetPay.Equal(decimal.RequireFromString("2530.04")) {
		t.Fatalf("expected net 2530.04, got %s", result.NetPay)
	}
}

func TestMonthlyCommandValidation(t *testing.T) {
	_, err := run(t, "folha", "--salario", "0", "--percentual-hora-extra", "120")
	var verr *tax.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Issues) != 2 || verr.Issues[0].Field != "percentual_hora_extra" || verr.Issues[1].Field != "salario_bruto" {
		t.Fatalf("unexpected issues %+v", verr.Issues)
	}

	if _, err := run(t, "folha", "--salario", "tres mil"); err == nil || !strings.Contains(err.Error(), "--salario") {
		t.Fatalf("expected flag parse error, got %v", err)
	}
}

func TestVacationCommandDefaultsToThirtyDays(t *testing.T) {
	out, err := run(t, "ferias", "--salario", "3000", "--abono")
	if err != nil {
		t.Fatalf("ferias: %v", err)
	}
	var result payroll.VacationResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Days != 30 || !result.CashOut.Sold {
		t.Fatalf("unexpected vacation %+v", result)
	}
	if !result.Net.Equal(decimal.RequireFromString("4797.37")) {
		t.Fatalf("expected net 4797.37, got %s", result.Net)
	}
}

func TestSeveranceCommand(t *testing.T) {
	out, err := run(t, "rescisao",
		"--salario", "3000",
		"--admissao", "2020-01-15",
		"--demissao", "2024-06-20",
		"--tipo", "acordo",
		"--fgts", "5000",
		"--ferias-vencidas",
		"--meses-ferias", "6",
	)
	if err != nil {
		t.Fatalf("rescisao: %v", err)
	}
	var result severance.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !result.Summary.FGTS.Penalty.Equal(decimal.RequireFromString("1000")) || !result.Summary.FGTS.Withdrawal.Equal(decimal.RequireFromString("5000")) {
		t.Fatalf("unexpected FGTS %+v", result.Summary.FGTS)
	}
	if result.Summary.UnemploymentInsurance {
		t.Fatal("mutual agreement must not grant unemployment insurance")
	}
}

func TestRegimesCommand(t *testing.T) {
	out, err := run(t, "impostos", "--faturamento", "5000")
	if err != nil {
		t.Fatalf("impostos: %v", err)
	}
	var result tax.RegimeResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Recommendation != tax.RegimeMEI {
		t.Fatalf("expected MEI, got %q", result.Recommendation)
	}
}

func TestTablesCommandYAMLRoundTrip(t *testing.T) {
	out, err := run(t, "tabelas", "--formato", "yaml")
	if err != nil {
		t.Fatalf("tabelas: %v", err)
	}
	path := filepath.Join(t.TempDir(), "tables.yaml")
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded, err := tax.LoadTables(path)
	if err != nil {
		t.Fatalf("reload printed tables: %v", err)
	}
	if !loaded.INSS.Cap.Equal(decimal.RequireFromString("951.63")) {
		t.Fatalf("unexpected cap %s", loaded.INSS.Cap)
	}

	if _, err := run(t, "tabelas", "--formato", "xml"); err == nil {
		t.Fatal("expected unknown format error")
	}
}

func TestTablesOverrideFile(t *testing.T) {
	if _, err := run(t, "--tables", filepath.Join(t.TempDir(), "missing.yaml"), "tabelas"); err == nil {
		t.Fatal("expected missing tables file to fail")
	}
	if _, err := run(t, "--tables", "../../configs/tax_tables_2025.yaml", "impostos", "--faturamento", "20000", "--atividade", "servicos"); err != nil {
		t.Fatalf("expected shipped tables to load: %v", err)
	}
}
