package sweep

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mediator/internal/bargain"
	"mediator/internal/efg"
	"mediator/internal/params"
)

func scenario(name string, m0 float64) params.Scenario {
	return params.Scenario{
		Name: name,
		Params: bargain.Params{
			M:        []float64{m0, 1, 1},
			C:        []float64{0.1, 0.1, 0.1},
			X:        []float64{0, 0.5, 1},
			Mediator: 0.5,
		},
	}
}

func testBatch() *params.Batch {
	return &params.Batch{Scenarios: []params.Scenario{
		scenario("even", 1),
		scenario("strong", 3),
		scenario("weak", 0.5),
		scenario("dominant", 10),
	}}
}

func TestRun_WritesOneDirPerScenario(t *testing.T) {
	out := t.TempDir()
	results, err := Run(context.Background(), testBatch(), Options{Parallel: 2, OutDir: out})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if Failed(results) != 0 {
		t.Fatalf("failed = %d", Failed(results))
	}

	var names []string
	for _, r := range results {
		names = append(names, r.Scenario.Name)
		want := filepath.Join(out, r.Scenario.Name, "Mediator_bargaining_n=3.efg")
		if r.Path != want {
			t.Errorf("%s path = %q, want %q", r.Scenario.Name, r.Path, want)
		}
		if _, err := os.Stat(r.Path); err != nil {
			t.Errorf("%s: %v", r.Scenario.Name, err)
		}
		if n := len(r.Model.Leaves()); n != 27 {
			t.Errorf("%s leaves = %d", r.Scenario.Name, n)
		}
	}
	if diff := cmp.Diff([]string{"even", "strong", "weak", "dominant"}, names); diff != "" {
		t.Errorf("result order (-want +got):\n%s", diff)
	}
}

func TestRun_ParallelMatchesSerial(t *testing.T) {
	serial, err := Run(context.Background(), testBatch(), Options{Parallel: 1, OutDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	parallel, err := Run(context.Background(), testBatch(), Options{Parallel: 8, OutDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	for i := range serial {
		a, _ := os.ReadFile(serial[i].Path)
		b, _ := os.ReadFile(parallel[i].Path)
		if len(a) == 0 || string(a) != string(b) {
			t.Errorf("%s: serial and parallel output differ", serial[i].Scenario.Name)
		}
	}
}

func TestRun_SaveFailureIsPerScenario(t *testing.T) {
	out := t.TempDir()
	// A file where the "strong" directory should go.
	if err := os.WriteFile(filepath.Join(out, "strong"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	results, err := Run(context.Background(), testBatch(), Options{OutDir: out})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if Failed(results) != 1 {
		t.Fatalf("failed = %d, want 1", Failed(results))
	}
	if !errors.Is(results[1].Err, efg.ErrSerialization) {
		t.Errorf("strong err = %v, want ErrSerialization", results[1].Err)
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Errorf("unrelated scenarios failed: %v, %v", results[0].Err, results[2].Err)
	}
}

func TestRun_InvalidBatch(t *testing.T) {
	b := testBatch()
	b.Scenarios[2].M = []float64{1, -1, 1}
	if _, err := Run(context.Background(), b, Options{OutDir: t.TempDir()}); !errors.Is(err, bargain.ErrInvalidParameter) {
		t.Errorf("want ErrInvalidParameter, got %v", err)
	}
	if _, err := Run(context.Background(), &params.Batch{}, Options{}); err == nil {
		t.Error("expected error for empty batch")
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, testBatch(), Options{OutDir: t.TempDir()})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, got %v", err)
	}
}
