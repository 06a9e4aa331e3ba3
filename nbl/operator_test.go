package nbl_test

import (
	"math"
	"testing"

	"github.com/smol-graphs/cospec/nbl"
)

func TestOperatorStructure(t *testing.T) {
	K4 := makeComplete(t, 4)
	defer K4.Reclaim()
	op := nbl.NewOperator(K4)

	if op.Dim() != 12 {
		t.Fatalf("dim %d", op.Dim())
	}
	for i, e := range op.Edges() {
		if j, ok := op.StateIndex(e); !ok || j != i {
			t.Fatalf("state index for %v", e)
		}
		// Every vertex has degree 3, so each row holds two 1/2 entries.
		if s := op.RowSum(i); !nbl.IsClose(s, 1, nbl.DefaultTol) {
			t.Fatalf("row %d sums to %v", i, s)
		}
		if rev, ok := op.StateIndex(e.Reversed()); !ok {
			t.Fatal("missing reversed state")
		} else if op.At(i, rev) != 0 {
			t.Fatalf("backtracking entry (%d,%d)", i, rev)
		}
	}
}

func TestOperatorDeadEndRows(t *testing.T) {
	// Path 0-1-2: both endpoints are degree 1, so any state arriving at
	// an endpoint has nowhere to go and its row is zero.
	P3 := makeGraph(t, 3, [2]int{0, 1}, [2]int{1, 2})
	defer P3.Reclaim()
	op := nbl.NewOperator(P3)

	if op.Dim() != 4 {
		t.Fatalf("dim %d", op.Dim())
	}
	for i, e := range op.Edges() {
		wantSum := 1.0
		if P3.Degree(e.To) <= 1 {
			wantSum = 0
		}
		if s := op.RowSum(i); !nbl.IsClose(s, wantSum, nbl.DefaultTol) {
			t.Fatalf("row for %v sums to %v, want %v", e, s, wantSum)
		}
	}
}

func TestOperatorCycleTraces(t *testing.T) {
	// On a cycle the operator is a permutation: the walk is forced around
	// clockwise or counterclockwise in two disjoint n-cycles, so
	// tr(T^k) = 2n exactly when n divides k and 0 otherwise.
	C4 := makeCycle(t, 4)
	defer C4.Reclaim()
	op := nbl.NewOperator(C4)

	traces := op.Traces(8)
	want := []float64{0, 0, 0, 8, 0, 0, 0, 8}
	for k, tr := range traces {
		if !nbl.IsClose(tr, want[k], nbl.DefaultTol) {
			t.Fatalf("tr(T^%d) = %v, want %v", k+1, tr, want[k])
		}
	}

	// Extending the cached sequence must agree with a fresh computation.
	more := op.Traces(12)
	fresh := nbl.NewOperator(C4).Traces(12)
	for k := range more {
		if !nbl.IsClose(more[k], fresh[k], nbl.DefaultTol) {
			t.Fatalf("cached extension diverges at k=%d", k+1)
		}
	}
}

func TestOperatorK5Traces(t *testing.T) {
	// K5: 20 directed edge states.  No closed non-backtracking walk of
	// length 1 or 2 exists in a simple graph, and each of K5's 60 closed
	// directed 3-walks contributes weight (1/3)^3, so tr(T^3) = 60/27.
	K5 := makeComplete(t, 5)
	defer K5.Reclaim()
	op := nbl.NewOperator(K5)

	if op.Dim() != 20 {
		t.Fatalf("dim %d", op.Dim())
	}
	traces := op.Traces(3)
	if !nbl.IsClose(traces[0], 0, nbl.DefaultTol) {
		t.Fatalf("tr(T) = %v", traces[0])
	}
	if !nbl.IsClose(traces[1], 0, nbl.DefaultTol) {
		t.Fatalf("tr(T^2) = %v", traces[1])
	}
	if want := 20.0 / 9.0; math.Abs(traces[2]-want) > 1e-9 {
		t.Fatalf("tr(T^3) = %v, want %v", traces[2], want)
	}
}

func TestOperatorEdgeless(t *testing.T) {
	X, err := nbl.NewGraph(3)
	if err != nil {
		t.Fatal(err)
	}
	defer X.Reclaim()
	op := nbl.NewOperator(X)

	if op.Dim() != 0 {
		t.Fatalf("dim %d", op.Dim())
	}
	TX := op.Traces(5)
	if len(TX) != 5 {
		t.Fatalf("trace count %d", len(TX))
	}
	for _, tr := range TX {
		if tr != 0 {
			t.Fatal("0x0 operator traces")
		}
	}
}
