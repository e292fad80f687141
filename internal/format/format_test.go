package format_test

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"mediator/internal/format"
)

func TestASCII_BasicTable(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Header("Outcome", "Coalition", "P0")
	tb.Row("war(0, 1, 2)", "General war", 0.95)
	tb.Row("peace", "Peace", 0.88)
	out := tb.String()

	// ASCII mode uses StyleLight which has box-drawing chars
	if !strings.Contains(out, "OUTCOME") && !strings.Contains(out, "Outcome") {
		t.Errorf("expected header 'Outcome' in output:\n%s", out)
	}
	if !strings.Contains(out, "General war") {
		t.Errorf("expected 'General war' in output:\n%s", out)
	}
	if !strings.Contains(out, "0.95") {
		t.Errorf("expected '0.95' in output:\n%s", out)
	}
	// Should NOT contain markdown pipe-only syntax (no leading/trailing |)
	// ASCII uses box-drawing characters from StyleLight
	if strings.Contains(out, "───") == false {
		t.Errorf("expected box-drawing characters in ASCII output:\n%s", out)
	}
}

func TestMarkdown_BasicTable(t *testing.T) {
	tb := format.NewTable(format.Markdown)
	tb.Header("Profile", "Fighters", "Outcome")
	tb.Row("accept accept accept", "()", "peace")
	tb.Row("accept 1,0 2,0", "(0, 1, 2)", "war(0, 1, 2)")
	out := tb.String()

	// Markdown tables have | delimiters and --- separator
	if !strings.Contains(out, "| Profile") {
		t.Errorf("expected markdown header with '| Profile':\n%s", out)
	}
	if !strings.Contains(out, "---") {
		t.Errorf("expected markdown separator '---':\n%s", out)
	}
	if !strings.Contains(out, "war(0, 1, 2)") {
		t.Errorf("expected 'war(0, 1, 2)' in output:\n%s", out)
	}
}

func TestMarkdown_WithFooter(t *testing.T) {
	tb := format.NewTable(format.Markdown)
	tb.Header("Coalition", "Leaves")
	tb.Row("Dyadic", 9)
	tb.Row("General war", 17)
	tb.Footer("TOTAL", 26)
	out := tb.String()

	if !strings.Contains(out, "TOTAL") {
		t.Errorf("expected footer 'TOTAL' in output:\n%s", out)
	}
	if !strings.Contains(out, "26") {
		t.Errorf("expected footer value '26' in output:\n%s", out)
	}
}

func TestColumns_RightAlign(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Header("Party", "Payoff")
	tb.Row("P0", "0.6667")
	tb.Columns(format.ColumnConfig{Number: 2, Align: format.AlignRight})
	out := tb.String()

	if !strings.Contains(out, "0.6667") {
		t.Errorf("expected '0.6667' in output:\n%s", out)
	}
}

func TestCSV_BasicTable(t *testing.T) {
	tb := format.NewTable(format.CSV)
	tb.Header("Outcome", "P0", "P1", "P2")
	tb.Row("peace", "0.5000", "0.5000", "0.5000")
	out := tb.String()

	if !strings.Contains(out, "Outcome,P0,P1,P2") {
		t.Errorf("expected CSV header line:\n%s", out)
	}
	if !strings.Contains(out, "peace,0.5000,0.5000,0.5000") {
		t.Errorf("expected CSV data line:\n%s", out)
	}
}

func TestParseMode(t *testing.T) {
	tests := map[string]format.Mode{
		"":         format.ASCII,
		"ascii":    format.ASCII,
		"Markdown": format.Markdown,
		"md":       format.Markdown,
		"csv":      format.CSV,
	}
	for in, want := range tests {
		got, err := format.ParseMode(in)
		if err != nil {
			t.Errorf("ParseMode(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseMode(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := format.ParseMode("html"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestSameData_DualFormat(t *testing.T) {
	build := func(m format.Mode) string {
		tb := format.NewTable(m)
		tb.Header("A", "B")
		tb.Row("x", "y")
		return tb.String()
	}

	ascii := build(format.ASCII)
	md := build(format.Markdown)

	if ascii == md {
		t.Error("ASCII and Markdown output should differ")
	}
	// Both should contain the data
	for _, out := range []string{ascii, md} {
		if !strings.Contains(out, "x") || !strings.Contains(out, "y") {
			t.Errorf("expected data in output:\n%s", out)
		}
	}
}

// --- Helper tests ---

func TestFmtPayoff(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.5, "0.5000"},
		{2.0 / 3.0, "0.6667"},
		{-0.125, "-0.1250"},
		{1, "1.0000"},
	}
	for _, tc := range tests {
		if got := format.FmtPayoff(tc.in); got != tc.want {
			t.Errorf("FmtPayoff(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFmtVector(t *testing.T) {
	if got := format.FmtVector([]float64{1, 0.5, 2}); got != "(1, 0.5, 2)" {
		t.Errorf("FmtVector = %q", got)
	}
	if got := format.FmtVector(nil); got != "()" {
		t.Errorf("FmtVector(nil) = %q", got)
	}
}

func TestFmtDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0ms"},
		{250 * time.Millisecond, "250ms"},
		{30 * time.Second, "30s"},
		{59 * time.Second, "59s"},
		{60 * time.Second, "1m 0s"},
		{90 * time.Second, "1m 30s"},
		{5*time.Minute + 15*time.Second, "5m 15s"},
	}
	for _, tc := range tests {
		got := format.FmtDuration(tc.in)
		if got != tc.want {
			t.Errorf("FmtDuration(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 8, "hello..."},
		{"ab", 3, "ab"},
		{"abcdef", 3, "abc"},
		{"abc", 0, ""},
		{"mediator proposal x₃ ≤ 1", 21, "mediator proposal ..."},
		{"x₃ ≤ x₁", 6, "x₃ ..."},
		{"≤≤≤≤", 2, "≤≤"},
		{"≤≤≤≤", 4, "≤≤≤≤"},
	}
	for _, tc := range tests {
		got := format.Truncate(tc.in, tc.maxLen)
		if got != tc.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tc.in, tc.maxLen, got, tc.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("Truncate(%q, %d) split a rune: %q", tc.in, tc.maxLen, got)
		}
	}
}

func TestBoolMark(t *testing.T) {
	if format.BoolMark(true) != "✓" {
		t.Error("BoolMark(true) should be ✓")
	}
	if format.BoolMark(false) != "✗" {
		t.Error("BoolMark(false) should be ✗")
	}
}
