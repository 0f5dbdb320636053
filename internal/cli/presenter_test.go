package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/fibnum/internal/errors"
	"github.com/agbru/fibnum/internal/metrics"
	"github.com/agbru/fibnum/internal/orchestration"
)

func TestPresentComparisonTable(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	CLIResultPresenter{}.PresentComparisonTable([]orchestration.CalculationResult{
		{Name: "Fast Doubling (8-bit limbs)", Duration: 1500 * time.Microsecond},
		{Name: "native", Err: errors.New("overflow")},
	}, &buf)

	lines := strings.Split(strings.TrimSpace(stripANSI(buf.String())), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected title, header and 2 rows, got:\n%s", buf.String())
	}
	// Columns line up across rows once colors are removed.
	col := strings.Index(lines[1], "Duration")
	if strings.Index(lines[2], "1ms") != col {
		t.Errorf("duration column misaligned:\n%s\n%s", lines[1], lines[2])
	}
	if !strings.Contains(lines[3], "< 1µs") || !strings.Contains(lines[3], "Failure (overflow)") {
		t.Errorf("failure row = %q", lines[3])
	}
}

func TestPresentComparisonTableEmpty(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	CLIResultPresenter{}.PresentComparisonTable(nil, &buf)
	if buf.Len() != 0 {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestCLIResultPresenterHandleError(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if code := (CLIResultPresenter{}).HandleError(context.DeadlineExceeded, time.Second, &buf); code != apperrors.ExitErrorTimeout {
		t.Errorf("exit code = %d", code)
	}
	if !strings.Contains(buf.String(), "Timeout") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestDisplayMemoryStats(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayMemoryStats(metrics.MemorySnapshot{HeapAlloc: 3 << 20, TotalAlloc: 1 << 30, NumGC: 4, PauseTotalNs: 2_500_000}, &buf)
	out := buf.String()
	for _, want := range []string{"3.0 MiB", "1.0 GiB", "GC cycles:       4", "2.50ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
