package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "missing.yaml")))
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCatalogCommand(t *testing.T) {
	out, _, err := execute(t, "catalog")
	if err != nil {
		t.Fatalf("catalog error: %v", err)
	}
	for _, want := range []string{"===== Family Plan =====", "- Group Classes: $20.00", "- Specialized Training Programs: $80.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("catalog output missing %q:\n%s", want, out)
		}
	}
}

func TestQuoteCommand_JSON(t *testing.T) {
	out, errOut, err := execute(t, "quote",
		"--item", "family=Specialized Training Programs",
		"--item", "FAMILY=specialized training programs,Pilates",
		"--json",
	)
	if err != nil {
		t.Fatalf("quote error: %v\n%s", err, errOut)
	}

	var v quoteView
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if v.Total != "228.40" {
		t.Errorf("total = %s, want 228.40", v.Total)
	}
	if v.GroupDiscounts["Family"] != "24.00" {
		t.Errorf("group discount = %s, want 24.00", v.GroupDiscounts["Family"])
	}
	if len(v.Items) != 2 || len(v.Items[1].Ignored) != 1 || v.Items[1].Ignored[0] != "Pilates" {
		t.Errorf("items = %+v", v.Items)
	}
	if !strings.HasPrefix(v.ID, "q_") {
		t.Errorf("id = %s, want q_ prefix", v.ID)
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version error: %v", err)
	}
	if !strings.Contains(out, "gymprice") {
		t.Errorf("version output = %q", out)
	}
}
