package nbl

import "errors"

// Errors
var (
	ErrBadEncoding   = errors.New("bad graph6 encoding")
	ErrBadVtxCount   = errors.New("bad graph vertex count")
	ErrBadVtxID      = errors.New("bad graph vertex ID")
	ErrBadEdge       = errors.New("bad graph edge")
	ErrMissingEdge   = errors.New("edge not present in graph")
	ErrEdgeExists    = errors.New("edge already present in graph")
	ErrNilGraph      = errors.New("nil graph")
	ErrUnmarshal     = errors.New("unmarshal failed")
	ErrGeneratorExec = errors.New("graph generator failed")
)
