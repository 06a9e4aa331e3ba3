package nbl

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
)

// GraphStream is a channel-backed pipeline stage.  Each combinator spawns a
// goroutine that consumes this stream and returns the next one; ownership of
// each Graph travels with it, and stages that drop a graph Reclaim it.
type GraphStream struct {
	Outlet chan *Graph

	// Malformed counts input encodings dropped by the producing stage
	// (survey batches tolerate per-item decode failures).
	Malformed atomic.Int64

	ctx context.Context

	errMu sync.Mutex
	err   error
}

func NewGraphStream() *GraphStream {
	return &GraphStream{
		Outlet: make(chan *Graph, 1),
		ctx:    context.Background(),
	}
}

// WithContext binds ctx to this stream and the stages piped off it: once ctx
// is canceled, stages reclaim instead of sending, so an abandoned consumer
// cannot strand pipeline goroutines.
func (stream *GraphStream) WithContext(ctx context.Context) *GraphStream {
	stream.ctx = ctx
	return stream
}

// send delivers X downstream, reclaiming it if the stream's context wins.
func (stream *GraphStream) send(X *Graph) bool {
	select {
	case stream.Outlet <- X:
		return true
	case <-stream.ctx.Done():
		X.Reclaim()
		return false
	}
}

// StreamGraph wraps a single graph as a stream.
func StreamGraph(X *Graph) *GraphStream {
	next := NewGraphStream()
	go func() {
		next.send(X.MakeCopy())
		next.Close()
	}()
	return next
}

// StreamGraphs wraps a fixed set of graphs as a stream.
func StreamGraphs(Xs ...*Graph) *GraphStream {
	next := NewGraphStream()
	go func() {
		for _, X := range Xs {
			next.send(X.MakeCopy())
		}
		next.Close()
	}()
	return next
}

func (stream *GraphStream) Close() {
	if stream.Outlet != nil {
		close(stream.Outlet)
	}
}

// Fail records a fatal producer error, retrievable via Err after the stream drains.
func (stream *GraphStream) Fail(err error) {
	if err == nil {
		return
	}
	stream.errMu.Lock()
	if stream.err == nil {
		stream.err = err
	}
	stream.errMu.Unlock()
}

// Err returns the fatal producer error, if any.  Valid once Outlet is closed.
func (stream *GraphStream) Err() error {
	stream.errMu.Lock()
	defer stream.errMu.Unlock()
	return stream.err
}

func (stream *GraphStream) PushGraph(X *Graph) {
	stream.send(X.MakeCopy())
}

func (stream *GraphStream) PullGraph() *Graph {
	return <-stream.Outlet
}

// PullAll drains the stream, reclaiming every graph, and returns the count.
func (stream *GraphStream) PullAll() int {
	count := 0
	for X := range stream.Outlet {
		count++
		X.Reclaim()
	}
	return count
}

func (stream *GraphStream) pipe(fn func(X *Graph, next *GraphStream)) *GraphStream {
	next := NewGraphStream().WithContext(stream.ctx)
	go func() {
		for X := range stream.Outlet {
			if next.ctx.Err() != nil {
				X.Reclaim()
				continue
			}
			fn(X, next)
		}
		next.Fail(stream.Err())
		next.Malformed.Add(stream.Malformed.Load())
		next.Close()
	}()
	return next
}

// MinDegree keeps graphs whose minimum degree is at least minDeg.
// The standard pre-filter for the operator domain: a degree <= 1 vertex
// makes operator rows structurally zero.
func (stream *GraphStream) MinDegree(minDeg int) *GraphStream {
	return stream.pipe(func(X *Graph, next *GraphStream) {
		if X.MinDegree() >= minDeg {
			next.send(X)
		} else {
			X.Reclaim()
		}
	})
}

// Filter keeps graphs satisfying keep.
func (stream *GraphStream) Filter(keep func(X *Graph) bool) *GraphStream {
	return stream.pipe(func(X *Graph, next *GraphStream) {
		if keep(X) {
			next.send(X)
		} else {
			X.Reclaim()
		}
	})
}

// AddTo feeds each graph to target, passing through only graphs that were
// newly added (e.g. a catalog dedupe stage).
func (stream *GraphStream) AddTo(target GraphAdder) *GraphStream {
	return stream.pipe(func(X *Graph, next *GraphStream) {
		if target.TryAddGraph(X) {
			next.send(X)
		} else {
			X.Reclaim()
		}
	})
}

// Print writes each graph as a line to out while passing it through.
func (stream *GraphStream) Print(out io.Writer, label string) *GraphStream {
	return stream.pipe(func(X *Graph, next *GraphStream) {
		if label != "" {
			io.WriteString(out, label)
			io.WriteString(out, ",")
		}
		X.WriteAsString(out)
		io.WriteString(out, "\n")
		next.send(X)
	})
}
