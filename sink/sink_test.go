package sink

import (
	"bytes"
	"strings"
	"testing"

	mcmc "github.com/Shilin036/root-simple-mcmc"
)

func TestMemoryPointsPreservesOrderIncludingRejections(t *testing.T) {
	m := &Memory{}
	m.Emit(mcmc.Record{Point: []float64{1}, Accepted: true})
	m.Emit(mcmc.Record{Point: []float64{1}, Accepted: false}) // rejected: repeats previous point
	m.Emit(mcmc.Record{Point: []float64{2}, Accepted: true})

	pts := m.Points()
	want := [][]float64{{1}, {1}, {2}}
	if len(pts) != len(want) {
		t.Fatalf("len(Points()) = %d, want %d", len(pts), len(want))
	}
	for i := range want {
		if pts[i][0] != want[i][0] {
			t.Errorf("Points()[%d] = %v, want %v", i, pts[i], want[i])
		}
	}
}

func TestChannelEmitDelivers(t *testing.T) {
	c := NewChannel(1)
	c.Emit(mcmc.Record{LogDensity: 1.5})
	r := <-c.Records
	if r.LogDensity != 1.5 {
		t.Fatalf("received LogDensity = %v, want 1.5", r.LogDensity)
	}
}

func TestChannelCloseStopsFurtherReceives(t *testing.T) {
	c := NewChannel(1)
	c.Emit(mcmc.Record{LogDensity: 1})
	<-c.Records
	c.Close()
	_, ok := <-c.Records
	if ok {
		t.Fatal("expected the channel to be closed and drained")
	}
}

func TestCSVWritesHeaderOnceThenOneRowPerRecord(t *testing.T) {
	var buf bytes.Buffer
	c := NewCSV(&buf, 2)
	c.Emit(mcmc.Record{LogDensity: 1, Point: []float64{0, 0}, TrialStep: []float64{0, 0}, Accepted: true})
	c.Emit(mcmc.Record{LogDensity: 2, Point: []float64{1, 1}, TrialStep: []float64{1, 1}, Accepted: false})
	c.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (header + 2 rows): %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "logDensity,accepted,x0,x1,step0,step1") {
		t.Errorf("unexpected header: %q", lines[0])
	}
}

func TestCSVPanicsOnDimensionMismatch(t *testing.T) {
	var buf bytes.Buffer
	c := NewCSV(&buf, 2)
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic on dimension mismatch")
		}
	}()
	c.Emit(mcmc.Record{Point: []float64{1}, TrialStep: []float64{1}})
}
