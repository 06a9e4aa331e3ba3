package nbl_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/smol-graphs/cospec/nbl"
)

func TestStreamCombinators(t *testing.T) {
	C4 := makeCycle(t, 4)
	P3 := makeGraph(t, 3, [2]int{0, 1}, [2]int{1, 2})
	K4 := makeComplete(t, 4)
	defer C4.Reclaim()
	defer P3.Reclaim()
	defer K4.Reclaim()

	// P3 has a degree-1 endpoint and gets dropped.
	count := nbl.StreamGraphs(C4, P3, K4).
		MinDegree(2).
		PullAll()
	if count != 2 {
		t.Fatalf("MinDegree passed %d graphs", count)
	}

	count = nbl.StreamGraphs(C4, P3, K4).
		Filter(func(X *nbl.Graph) bool { return X.NumEdges() >= 4 }).
		PullAll()
	if count != 2 {
		t.Fatalf("Filter passed %d graphs", count)
	}
}

func TestStreamSingleGraph(t *testing.T) {
	K4 := makeComplete(t, 4)
	defer K4.Reclaim()

	stream := nbl.StreamGraph(K4)
	X := stream.PullGraph()
	if X == nil || X.Graph6() != K4.Graph6() {
		t.Fatalf("pulled %v", X)
	}
	X.Reclaim()
	if stream.PullGraph() != nil {
		t.Fatal("single-graph stream not exhausted")
	}
}

func TestStreamPushPull(t *testing.T) {
	C4 := makeCycle(t, 4)
	defer C4.Reclaim()

	stream := nbl.NewGraphStream()
	go func() {
		stream.PushGraph(C4)
		stream.Close()
	}()
	if count := stream.MinDegree(2).PullAll(); count != 1 {
		t.Fatalf("passed %d graphs", count)
	}
}

// Canceling the generator context must unwind every piped stage, even when
// the consumer has stopped pulling.
func TestStreamCancelUnblocksStages(t *testing.T) {
	var input strings.Builder
	for i := 0; i < 512; i++ {
		input.WriteString("Cl\n")
	}
	ctx, cancel := context.WithCancel(context.Background())
	gen := &nbl.ReaderGenerator{R: strings.NewReader(input.String())}
	stream := gen.GenerateGraphs(ctx, nbl.GenOpts{}).
		Filter(func(X *nbl.Graph) bool { return true })

	X := stream.PullGraph()
	if X == nil {
		t.Fatal("no graph before cancel")
	}
	X.Reclaim()
	cancel()

	done := make(chan struct{})
	go func() {
		stream.PullAll()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("stages did not unwind after cancel")
	}
}

type sinkAdder struct {
	seen map[string]bool
}

func (sink *sinkAdder) TryAddGraph(X *nbl.Graph) bool {
	g6 := X.Graph6()
	if sink.seen[g6] {
		return false
	}
	sink.seen[g6] = true
	return true
}

func TestStreamAddTo(t *testing.T) {
	C4 := makeCycle(t, 4)
	defer C4.Reclaim()
	sink := &sinkAdder{seen: map[string]bool{}}

	// The duplicate must be absorbed by the adder stage.
	count := nbl.StreamGraphs(C4, C4).
		AddTo(sink).
		PullAll()
	if count != 1 || len(sink.seen) != 1 {
		t.Fatalf("AddTo passed %d graphs, recorded %d", count, len(sink.seen))
	}
}

func TestReaderGenerator(t *testing.T) {
	input := strings.Join([]string{
		"Cl",        // C4
		"C~",        // K4
		"not-a-g6!", // malformed, counted and skipped
		"",          // blank lines ignored
		"D~{",       // K5: filtered out by NumVerts
	}, "\n")

	gen := &nbl.ReaderGenerator{R: strings.NewReader(input)}
	stream := gen.GenerateGraphs(context.Background(), nbl.GenOpts{NumVerts: 4})

	var got []string
	for X := range stream.Outlet {
		got = append(got, X.Graph6())
		X.Reclaim()
	}
	if err := stream.Err(); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "Cl" || got[1] != "C~" {
		t.Fatalf("decoded %v", got)
	}
	if n := stream.Malformed.Load(); n != 1 {
		t.Fatalf("malformed count %d", n)
	}
}

func TestReaderGeneratorConnectedOnly(t *testing.T) {
	// 2K3 is disconnected and must be filtered.
	twoK3 := makeGraph(t, 6,
		[2]int{0, 1}, [2]int{1, 2}, [2]int{0, 2},
		[2]int{3, 4}, [2]int{4, 5}, [2]int{3, 5})
	C6 := makeCycle(t, 6)
	input := twoK3.Graph6() + "\n" + C6.Graph6() + "\n"
	twoK3.Reclaim()
	wantC6 := C6.Graph6()
	C6.Reclaim()

	gen := &nbl.ReaderGenerator{R: strings.NewReader(input)}
	stream := gen.GenerateGraphs(context.Background(), nbl.GenOpts{ConnectedOnly: true})

	var got []string
	for X := range stream.Outlet {
		got = append(got, X.Graph6())
		X.Reclaim()
	}
	if len(got) != 1 || got[0] != wantC6 {
		t.Fatalf("decoded %v", got)
	}
}
