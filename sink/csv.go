package sink

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/Shilin036/root-simple-mcmc"
)

// CSV is an mcmc.Sink that writes one row per Record to an
// encoding/csv.Writer: log-density, accepted flag, then the point's
// components, then the trial step's components. It plays the role
// TSimpleMCMC's TTree branches played in the source macro, without a
// dependency on ROOT's file format.
type CSV struct {
	w     *csv.Writer
	dim   int
	wrote bool
}

// NewCSV returns a CSV sink writing to w, with a header sized for dim
// dimensions. It does not close the underlying writer.
func NewCSV(w io.Writer, dim int) *CSV {
	return &CSV{w: csv.NewWriter(w), dim: dim}
}

// Emit implements mcmc.Sink. It panics if a Record's Point or
// TrialStep does not have the dimensionality CSV was constructed with.
func (c *CSV) Emit(r mcmc.Record) {
	if len(r.Point) != c.dim || len(r.TrialStep) != c.dim {
		panic("sink: record dimensionality mismatch")
	}
	if !c.wrote {
		c.writeHeader()
		c.wrote = true
	}
	row := make([]string, 0, 2+2*c.dim)
	row = append(row, fmt.Sprintf("%v", r.LogDensity), fmt.Sprintf("%v", r.Accepted))
	for _, v := range r.Point {
		row = append(row, fmt.Sprintf("%v", v))
	}
	for _, v := range r.TrialStep {
		row = append(row, fmt.Sprintf("%v", v))
	}
	if err := c.w.Write(row); err != nil {
		panic(fmt.Sprintf("sink: csv write failed: %v", err))
	}
}

func (c *CSV) writeHeader() {
	header := make([]string, 0, 2+2*c.dim)
	header = append(header, "logDensity", "accepted")
	for i := 0; i < c.dim; i++ {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	for i := 0; i < c.dim; i++ {
		header = append(header, fmt.Sprintf("step%d", i))
	}
	if err := c.w.Write(header); err != nil {
		panic(fmt.Sprintf("sink: csv header write failed: %v", err))
	}
}

// Flush flushes any buffered data to the underlying writer.
func (c *CSV) Flush() {
	c.w.Flush()
}
