package nbl

import (
	"context"
)

const (
	// MaxVtx is the max number of vertices a Graph can hold.
	// Vertex IDs are zero-based indexes, so valid IDs are 0..MaxVtx-1.
	MaxVtx = 32

	// MaxEdges is the number of edges in the complete graph on MaxVtx vertices.
	MaxEdges = MaxVtx * (MaxVtx - 1) / 2

	// MaxEdgeStates is the max dimension of a non-backtracking operator:
	// every undirected edge contributes two directed edge states.
	MaxEdgeStates = 2 * MaxEdges
)

// Edge is an undirected edge {U,V} with U < V.
type Edge struct {
	U, V int
}

// DirEdge is a directed edge state (From, To) of the non-backtracking operator.
type DirEdge struct {
	From, To int
}

// Reversed returns the opposing directed edge state.
func (e DirEdge) Reversed() DirEdge {
	return DirEdge{From: e.To, To: e.From}
}

// Traces is a sequence of power traces tr(T^k), k = 1..len.
type Traces []float64

// TracesLSM is a canonical binary encoding of a Traces, quantized so that
// encodings are stable db keys (see Traces.AppendTracesLSM).
type TracesLSM []byte

// SpectralHash is a fixed-width digest of an operator's eigenvalue multiset.
type SpectralHash string

// GenOpts selects what an external generator should produce.
type GenOpts struct {
	NumVerts      int  // graph order n
	ConnectedOnly bool // restrict to connected graphs
}

// Generator supplies a finite, duplicate-free stream of graphs of a given
// order, one per isomorphism class satisfying the filter. The engine never
// generates graphs itself; a geng-style canonical generator does (see
// GengGenerator), or a pre-made encoding list (see ReaderGenerator).
type Generator interface {
	GenerateGraphs(ctx context.Context, opts GenOpts) *GraphStream
}

// GraphAdder accepts graphs pulled off a stream, e.g. a catalog.
// If TryAddGraph returns true, X was not yet present and was added.
type GraphAdder interface {
	TryAddGraph(X *Graph) bool
}
