package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	m := New()
	m.Selected()
	m.Selected()
	m.Settled("rendered")
	m.Settled("failed")
	m.Settled("rendered")
	m.Dropped()
	m.ObserveDecode(20 * time.Millisecond)

	if got := testutil.ToFloat64(m.Selections); got != 2 {
		t.Fatalf("selections = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Outcomes.WithLabelValues("rendered")); got != 2 {
		t.Fatalf("rendered = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Outcomes.WithLabelValues("failed")); got != 1 {
		t.Fatalf("failed = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Superseded); got != 1 {
		t.Fatalf("superseded = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(m.DecodeDuration); n != 1 {
		t.Fatalf("decode histogram series = %d, want 1", n)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.Selected()
	m.Settled("empty")
	m.Dropped()
	m.ObserveDecode(time.Second)
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.Selected()
	if got := testutil.ToFloat64(b.Selections); got != 0 {
		t.Fatalf("second registry saw %v selections", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.Selected()
	path := filepath.Join(t.TempDir(), "wavepeek.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(b), "wavepeek_selections_total 1") {
		t.Fatalf("textfile missing counter:\n%s", b)
	}
}
