package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

// execute runs a fresh command tree with isolated config and store paths.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	if err != nil {
		t.Logf("stderr: %s", errOut.String())
	}
	return out.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("MEDIATOR_STORE_PATH", filepath.Join(dir, "history.db"))
	t.Setenv("MEDIATOR_OUTPUT_DIR", filepath.Join(dir, "out"))
	t.Setenv("MEDIATOR_LOGGING_LEVEL", "error")
	return dir
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCmd()
	want := []string{"build", "history", "leaves", "outcomes", "serve", "sweep"}
	got := map[string]bool{}
	for _, c := range root.Commands() {
		got[c.Name()] = true
	}
	for _, name := range want {
		if !got[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestBuild_FromParamsFile(t *testing.T) {
	dir := isolate(t)
	out, err := execute(t, "build", "--params", "testdata/symmetric.yaml")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	path := filepath.Join(dir, "out", "Mediator_bargaining_n=3.efg")
	if !strings.Contains(out, "Wrote "+path) {
		t.Errorf("output missing path:\n%s", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("efg not written: %v", err)
	}
	if !strings.HasPrefix(string(data), `EFG 2 R "Mediator_bargaining_n=3"`) {
		t.Errorf("unexpected efg header:\n%s", data)
	}
	if !strings.Contains(out, "General war") || !strings.Contains(out, "0.6667") {
		t.Errorf("outcome table missing:\n%s", out)
	}
}

func TestBuild_InlineFlagsToStdout(t *testing.T) {
	isolate(t)
	out, err := execute(t, "build", "--m", "1,1,1", "--x", "0,0,1", "--mediator", "0.5", "--stdout")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(out, `t "" 5 "peace" { 0.5, 0.5, 0.5 }`) {
		t.Errorf("peace terminal missing:\n%s", out)
	}
}

func TestBuild_OutFlagOverridesConfig(t *testing.T) {
	isolate(t)
	outDir := filepath.Join(t.TempDir(), "custom")
	if _, err := execute(t, "build", "-p", "testdata/symmetric.yaml", "-o", outDir); err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "Mediator_bargaining_n=3.efg")); err != nil {
		t.Errorf("efg not in -o dir: %v", err)
	}
}

func TestBuild_Errors(t *testing.T) {
	isolate(t)
	cases := map[string][]string{
		"no params":        {"build"},
		"params and flags": {"build", "-p", "testdata/symmetric.yaml", "--m", "1,1,1"},
		"zero capacity":    {"build", "--m", "1,0,1", "--x", "0,0,1"},
		"short vector":     {"build", "--m", "1,1", "--x", "0,0,1"},
		"bad format":       {"build", "-p", "testdata/symmetric.yaml", "--format", "html"},
		"missing file":     {"build", "-p", "testdata/nope.yaml"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := execute(t, args...); err == nil {
				t.Errorf("%v: expected error", args)
			}
		})
	}
}

func TestOutcomes_Markdown(t *testing.T) {
	isolate(t)
	out, err := execute(t, "outcomes", "-p", "testdata/symmetric.yaml", "--format", "markdown")
	if err != nil {
		t.Fatalf("outcomes: %v", err)
	}
	for _, want := range []string{"| Outcome", "war(0, 1, 2)", "war(0, 1)", "peace", "0.7500"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestLeaves_CSV(t *testing.T) {
	isolate(t)
	out, err := execute(t, "leaves", "-p", "testdata/symmetric.yaml", "--format", "csv")
	if err != nil {
		t.Fatalf("leaves: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 28 {
		t.Fatalf("lines = %d, want header + 27:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "1,accept,accept,accept,Peace,peace") {
		t.Errorf("first leaf = %q", lines[1])
	}
}

func TestLeaves_Words(t *testing.T) {
	isolate(t)
	out, err := execute(t, "leaves", "-p", "testdata/symmetric.yaml", "--words")
	if err != nil {
		t.Fatalf("leaves: %v", err)
	}
	if !strings.Contains(out, "P0 accepts, P1 attacks P0, P2 attacks P0") {
		t.Errorf("profile in words missing:\n%s", out)
	}
	// Footers are upper-cased in terminal tables.
	if !strings.Contains(strings.ToLower(out), "peace 1, dyadic 9, general 17") {
		t.Errorf("summary footer missing:\n%s", out)
	}
}

func TestSweepAndHistory(t *testing.T) {
	dir := isolate(t)
	out, err := execute(t, "sweep", "-f", "testdata/batch.yaml", "--parallel", "2", "--record")
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if !strings.Contains(out, "Recorded 2 run(s)") {
		t.Errorf("sweep output:\n%s", out)
	}
	for _, name := range []string{"symmetric", "strong-first"} {
		p := filepath.Join(dir, "out", name, "Mediator_bargaining_n=3.efg")
		if _, err := os.Stat(p); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}

	out, err = execute(t, "history", "--format", "csv")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("history lines = %d, want 3:\n%s", len(lines), out)
	}
	if !strings.Contains(out, "strong-first") || !strings.Contains(out, "(2, 1, 1)") {
		t.Errorf("history missing scenario row:\n%s", out)
	}
}

func TestHistory_ShowRun(t *testing.T) {
	isolate(t)
	out, err := execute(t, "build", "-p", "testdata/symmetric.yaml", "--record")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	idx := strings.Index(out, "Recorded run ")
	if idx < 0 {
		t.Fatalf("no run id in output:\n%s", out)
	}
	id := strings.TrimSpace(out[idx+len("Recorded run "):])

	out, err = execute(t, "history", id)
	if err != nil {
		t.Fatalf("history %s: %v", id, err)
	}
	for _, want := range []string{"Scenario: symmetric", "m=(1, 1, 1)", "war(0, 2)", "0.2500"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	if _, err := execute(t, "history", "no-such-run"); err == nil {
		t.Error("expected error for unknown run")
	}
}

func TestHistory_ListedIDResolves(t *testing.T) {
	isolate(t)
	if _, err := execute(t, "sweep", "-f", "testdata/batch.yaml", "--record"); err != nil {
		t.Fatalf("sweep: %v", err)
	}
	out, err := execute(t, "history", "--format", "csv")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("history lines = %d, want 3:\n%s", len(lines), out)
	}
	for _, line := range lines[1:] {
		fields := strings.Split(line, ",")
		id, scenario := fields[0], fields[1]

		out, err := execute(t, "history", id)
		if err != nil {
			t.Fatalf("history %s: %v", id, err)
		}
		if !strings.Contains(out, "Scenario: "+scenario) {
			t.Errorf("history %s shows the wrong run:\n%s", id, out)
		}
		if !strings.Contains(out, "Run:      "+id) {
			t.Errorf("full id should start with %s:\n%s", id, out)
		}
	}
}

func TestHistory_Empty(t *testing.T) {
	isolate(t)
	out, err := execute(t, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "No recorded runs") {
		t.Errorf("output:\n%s", out)
	}
}

func TestConfig_InvalidParallel(t *testing.T) {
	isolate(t)
	t.Setenv("MEDIATOR_SWEEP_PARALLEL", "0")
	if _, err := execute(t, "history"); err == nil {
		t.Error("expected config validation error")
	}
}
