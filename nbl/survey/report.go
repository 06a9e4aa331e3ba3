package survey

import (
	"fmt"
	"io"

	"golang.org/x/exp/slices"

	"github.com/smol-graphs/cospec/nbl/switches"
)

// Report is the record produced for one filtered switch: the graph, the
// configuration, its invariant battery, and the spectral verdict.
type Report struct {
	Graph6     string
	Switched6  string
	Config     switches.Config
	Invariants switches.Invariants
	Cospectral bool
	// DivergedAt is the first trace index separating the spectra
	// (0 when the verdict came from a corpus hash comparison).
	DivergedAt int
}

// OrderTally aggregates results for a single graph order.
type OrderTally struct {
	Graphs          int64
	Switches        int64
	Cospectral      int64
	Counterexamples int64
}

// Tally aggregates a survey run.  Counterexamples are retained up to a cap
// for diagnostics; the totals are exact.
type Tally struct {
	Graphs          int64 // graphs analyzed (post min-degree filter)
	Skipped         int64 // graphs dropped by the min-degree filter
	Malformed       int64 // input encodings that failed to decode
	Inconclusive    int64 // graphs abandoned by the per-graph timeout
	Switches        int64 // filtered switch configurations verified
	Cospectral      int64
	Counterexamples int64

	ByOrder  map[int]*OrderTally
	Examples []Report // retained counterexamples, oldest first
}

func newTally() *Tally {
	return &Tally{ByOrder: make(map[int]*OrderTally)}
}

func (t *Tally) orderTally(n int) *OrderTally {
	ot := t.ByOrder[n]
	if ot == nil {
		ot = &OrderTally{}
		t.ByOrder[n] = ot
	}
	return ot
}

// WriteSummary writes a per-order breakdown and the totals.
func (t *Tally) WriteSummary(out io.Writer) {
	orders := make([]int, 0, len(t.ByOrder))
	for n := range t.ByOrder {
		orders = append(orders, n)
	}
	slices.Sort(orders)

	for _, n := range orders {
		ot := t.ByOrder[n]
		fmt.Fprintf(out, "n=%d: %d graphs, %d switches, %d cospectral, %d counterexamples\n",
			n, ot.Graphs, ot.Switches, ot.Cospectral, ot.Counterexamples)
	}
	fmt.Fprintf(out, "TOTAL: %d graphs (%d skipped, %d malformed, %d inconclusive), %d switches, %d cospectral, %d counterexamples\n",
		t.Graphs, t.Skipped, t.Malformed, t.Inconclusive, t.Switches, t.Cospectral, t.Counterexamples)

	for _, r := range t.Examples {
		fmt.Fprintf(out, "  counterexample %s -> %s, switch (%d,%d,%d,%d), diverged at k=%d\n",
			r.Graph6, r.Switched6, r.Config.V1, r.Config.W1, r.Config.V2, r.Config.W2, r.DivergedAt)
	}
}
