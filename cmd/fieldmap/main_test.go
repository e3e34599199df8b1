// Package main provides end-to-end tests for the FieldMap CLI.
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/fieldmap/internal/cli"
	"github.com/leapstack-labs/fieldmap/internal/cli/config"
)

// newProject creates an isolated project directory, chdirs into it and
// writes a small policy export. Config state is reset so each test loads
// its own defaults.
func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	csv := "保单号,签单保费,是否续保,联系电话,未知列甲\n" +
		"P001,1200.5,是,13800138000,x\n" +
		"P002,890,否,,y\n" +
		"P003,1500,是,13900139000,z\n"
	if err := os.WriteFile(filepath.Join(dir, "policies.csv"), []byte(csv), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return dir
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil {
		t.Errorf("version command error = %v", err)
	}
	if !strings.Contains(out, "FieldMap") {
		t.Errorf("version output should contain 'FieldMap', got: %s", out)
	}
}

func TestHelpCommand(t *testing.T) {
	out, err := runCLI(t, "--help")
	if err != nil {
		t.Errorf("help command error = %v", err)
	}
	for _, expected := range []string{"analyze", "validate", "mappings", "learn", "fill-phones", "runs"} {
		if !strings.Contains(out, expected) {
			t.Errorf("help output should contain %q, got: %s", expected, out)
		}
	}
}

func TestAnalyzeCommand(t *testing.T) {
	dir := newProject(t)

	out, err := runCLI(t, "analyze", "policies.csv", "--format", "json")
	if err != nil {
		t.Fatalf("analyze command error = %v", err)
	}

	var result struct {
		Mappings []struct {
			FieldName string `json:"field_name"`
			CnName    string `json:"cn_name"`
			IsMapped  bool   `json:"is_mapped"`
		} `json:"mappings"`
		Stats struct {
			Total int `json:"total"`
		} `json:"stats"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("analyze output is not valid JSON: %v\n%s", err, out)
	}
	if result.Stats.Total != 5 {
		t.Errorf("expected 5 scored fields, got %d", result.Stats.Total)
	}

	byCn := make(map[string]string)
	for _, m := range result.Mappings {
		byCn[m.CnName] = m.FieldName
	}
	if byCn["保单号"] != "policy_number" {
		t.Errorf("保单号 should map to policy_number, got %q", byCn["保单号"])
	}
	if byCn["签单保费"] != "written_premium" {
		t.Errorf("签单保费 should map to written_premium, got %q", byCn["签单保费"])
	}
	if byCn["是否续保"] != "is_renewal" {
		t.Errorf("是否续保 should map to is_renewal, got %q", byCn["是否续保"])
	}

	for _, artifact := range []string{
		"policies_mappings.json",
		"policies_report.html",
		"policies_quality.md",
	} {
		if _, err := os.Stat(filepath.Join(dir, "output", artifact)); err != nil {
			t.Errorf("expected artifact %s: %v", artifact, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, ".fieldmap", "state.db")); err != nil {
		t.Errorf("expected state database: %v", err)
	}
}

func TestAnalyzeLearnPersistsFallbacks(t *testing.T) {
	dir := newProject(t)

	if _, err := runCLI(t, "analyze", "policies.csv", "--learn", "--format", "json"); err != nil {
		t.Fatalf("analyze --learn error = %v", err)
	}

	customPath := filepath.Join(dir, "field_mappings", "custom.json")
	data, err := os.ReadFile(customPath)
	if err != nil {
		t.Fatalf("expected custom table at %s: %v", customPath, err)
	}
	if !strings.Contains(string(data), "未知列甲") {
		t.Errorf("custom table should contain the learned field, got: %s", data)
	}

	// Once learned, the field resolves from the custom table.
	config.ResetConfig()
	out, err := runCLI(t, "mappings", "未知列甲", "--format", "json")
	if err != nil {
		t.Fatalf("mappings lookup error = %v", err)
	}
	if !strings.Contains(out, "custom.json") {
		t.Errorf("learned entry should come from custom.json, got: %s", out)
	}
}

func TestValidateCommand(t *testing.T) {
	newProject(t)

	if _, err := runCLI(t, "analyze", "policies.csv", "--format", "json"); err != nil {
		t.Fatalf("analyze command error = %v", err)
	}

	config.ResetConfig()
	out, err := runCLI(t, "validate", filepath.Join("output", "policies_mappings.json"), "--format", "json")
	if err != nil {
		t.Fatalf("validate command error = %v", err)
	}

	var result struct {
		Scores []struct {
			SourceName string `json:"source_name"`
			Overall    int    `json:"overall"`
		} `json:"scores"`
		Stats struct {
			Total    int     `json:"total"`
			AvgScore float64 `json:"avg_score"`
		} `json:"stats"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("validate output is not valid JSON: %v\n%s", err, out)
	}
	if result.Stats.Total != 5 {
		t.Errorf("expected 5 scored fields, got %d", result.Stats.Total)
	}
	for _, s := range result.Scores {
		if s.SourceName == "保单号" && s.Overall != 100 {
			t.Errorf("exact match 保单号 should score 100, got %d", s.Overall)
		}
	}
}

func TestMappingsCommand(t *testing.T) {
	newProject(t)

	out, err := runCLI(t, "mappings", "--format", "json")
	if err != nil {
		t.Fatalf("mappings command error = %v", err)
	}
	if !strings.Contains(out, "builtin") {
		t.Errorf("mappings output should list the builtin table, got: %s", out)
	}

	config.ResetConfig()
	out, err = runCLI(t, "mappings", "保单号", "--format", "json")
	if err != nil {
		t.Fatalf("mappings lookup error = %v", err)
	}
	if !strings.Contains(out, "policy_number") {
		t.Errorf("lookup output should contain policy_number, got: %s", out)
	}
}

func TestMappingsUnknownField(t *testing.T) {
	newProject(t)

	if _, err := runCLI(t, "mappings", "不存在的字段"); err == nil {
		t.Error("expected an error for an unknown field")
	}
}

func TestFillPhonesCommand(t *testing.T) {
	dir := newProject(t)

	out, err := runCLI(t, "fill-phones", "policies.csv", "--format", "json")
	if err != nil {
		t.Fatalf("fill-phones command error = %v", err)
	}

	var result struct {
		Output  string `json:"output"`
		Columns []struct {
			Column string `json:"column"`
			Filled int    `json:"filled"`
			Kept   int    `json:"kept"`
		} `json:"columns"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("fill-phones output is not valid JSON: %v\n%s", err, out)
	}
	if len(result.Columns) != 1 || result.Columns[0].Column != "联系电话" {
		t.Fatalf("expected one filled column 联系电话, got: %+v", result.Columns)
	}
	if result.Columns[0].Filled != 1 || result.Columns[0].Kept != 2 {
		t.Errorf("expected 1 filled and 2 kept, got: %+v", result.Columns[0])
	}

	filled, err := os.ReadFile(filepath.Join(dir, "policies_filled.csv"))
	if err != nil {
		t.Fatalf("expected filled output file: %v", err)
	}
	if strings.Contains(string(filled), ",,") {
		t.Errorf("filled file should not contain empty phone cells, got: %s", filled)
	}
}

func TestRunsCommand(t *testing.T) {
	newProject(t)

	if _, err := runCLI(t, "analyze", "policies.csv", "--format", "json"); err != nil {
		t.Fatalf("analyze command error = %v", err)
	}

	config.ResetConfig()
	out, err := runCLI(t, "runs", "--format", "json")
	if err != nil {
		t.Fatalf("runs command error = %v", err)
	}
	if !strings.Contains(out, "policies.csv") {
		t.Errorf("runs output should contain the analyzed file, got: %s", out)
	}
	if !strings.Contains(out, "completed") {
		t.Errorf("runs output should contain a completed run, got: %s", out)
	}
}
