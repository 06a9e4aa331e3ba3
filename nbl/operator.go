package nbl

import (
	"gonum.org/v1/gonum/mat"
)

// Operator is the non-backtracking (Hashimoto) transition operator of a
// graph: a square matrix indexed by directed edge states, with
//
//	T[(u,v),(v,w)] = 1/(deg(v)-1)  when w is a neighbor of v and w != u.
//
// Rows for states (u,v) with deg(v) <= 1 are identically zero: the walk has
// nowhere non-backtracking to go, and by convention that degeneracy is
// represented rather than erroring (callers filter by MinDegree when they
// need a fully stochastic operator).  All other rows sum to 1.
type Operator struct {
	edges []DirEdge
	index map[DirEdge]int
	dense *mat.Dense

	// trace power state, extended on demand
	traces Traces
	power  *mat.Dense
}

// NewOperator constructs the 2m x 2m operator of X.
// The edgeless graph yields a 0x0 operator.
func NewOperator(X *Graph) *Operator {
	n := X.NumVerts()
	edges := make([]DirEdge, 0, 2*X.NumEdges())
	for u := 0; u < n; u++ {
		X.Neighbors(u).ForEach(func(v int) {
			edges = append(edges, DirEdge{From: u, To: v})
		})
	}

	op := &Operator{
		edges: edges,
		index: make(map[DirEdge]int, len(edges)),
	}
	for i, e := range edges {
		op.index[e] = i
	}

	dim := len(edges)
	if dim == 0 {
		return op
	}
	op.dense = mat.NewDense(dim, dim, nil)

	for i, e := range edges {
		degTo := X.Degree(e.To)
		if degTo <= 1 {
			continue // dead end: row stays zero
		}
		w := 1.0 / float64(degTo-1)
		X.Neighbors(e.To).ForEach(func(next int) {
			if next != e.From {
				op.dense.Set(i, op.index[DirEdge{From: e.To, To: next}], w)
			}
		})
	}
	return op
}

// Dim returns the operator dimension (twice the graph's edge count).
func (op *Operator) Dim() int { return len(op.edges) }

// Edges returns the directed edge states indexing the operator, in
// (From asc, To asc) order.  The slice is read-only.
func (op *Operator) Edges() []DirEdge { return op.edges }

// StateIndex returns the row/column index of a directed edge state.
func (op *Operator) StateIndex(e DirEdge) (int, bool) {
	i, ok := op.index[e]
	return i, ok
}

// At returns the entry for the state pair (i, j).
func (op *Operator) At(i, j int) float64 {
	return op.dense.At(i, j)
}

// Dense returns the underlying matrix.  Callers must not mutate it.
func (op *Operator) Dense() *mat.Dense { return op.dense }

// RowSum returns the sum of row i, which is 1 for a state (u,v) with
// deg(v) > 1 and 0 otherwise.
func (op *Operator) RowSum(i int) float64 {
	sum := 0.0
	for j := 0; j < op.Dim(); j++ {
		sum += op.dense.At(i, j)
	}
	return sum
}

// Traces returns the power-trace sequence tr(T^k) for k = 1..numTraces.
// If numTraces <= 0 the length defaults to the operator dimension, the
// count needed for a rigorous Newton's-identity spectrum check.
// Results are cached and extended incrementally across calls.
func (op *Operator) Traces(numTraces int) Traces {
	Nc := numTraces
	if Nc <= 0 {
		Nc = op.Dim()
	}
	if len(op.traces) < Nc {
		op.calcTracesTo(Nc)
	}
	return op.traces[:Nc]
}

func (op *Operator) calcTracesTo(Nc int) {
	if op.Dim() == 0 {
		// tr of the 0x0 operator is 0 at every power
		op.traces.SetLen(Nc)
		return
	}
	if op.power == nil {
		op.power = mat.DenseCopyOf(op.dense)
	}
	for len(op.traces) < Nc {
		op.traces = append(op.traces, mat.Trace(op.power))
		op.power.Mul(op.power, op.dense)
	}
}
