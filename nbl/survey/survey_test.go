package survey_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smol-graphs/cospec/nbl"
	"github.com/smol-graphs/cospec/nbl/catalog"
	"github.com/smol-graphs/cospec/nbl/survey"
)

func makeGraph(t *testing.T, numVerts int, edges ...[2]int) *nbl.Graph {
	t.Helper()
	X, err := nbl.NewGraph(numVerts)
	require.NoError(t, err)
	for _, e := range edges {
		require.NoError(t, X.AddEdge(e[0], e[1]))
	}
	return X
}

// surveyCorpus is a small survey input on 6 vertices: the 6-cycle, the
// triangular prism, a 5-cycle with a pendant tail (skipped by the degree
// filter), and a junk line (counted malformed).
func surveyCorpus(t *testing.T) string {
	t.Helper()
	C6 := makeGraph(t, 6,
		[2]int{0, 1}, [2]int{1, 2}, [2]int{2, 3},
		[2]int{3, 4}, [2]int{4, 5}, [2]int{0, 5})
	prism := makeGraph(t, 6,
		[2]int{0, 1}, [2]int{1, 2}, [2]int{0, 2},
		[2]int{3, 4}, [2]int{4, 5}, [2]int{3, 5},
		[2]int{0, 3}, [2]int{1, 4}, [2]int{2, 5})
	pendant := makeGraph(t, 6,
		[2]int{0, 1}, [2]int{1, 2}, [2]int{2, 3},
		[2]int{3, 4}, [2]int{0, 4}, [2]int{4, 5})

	lines := strings.Join([]string{
		C6.Graph6(),
		prism.Graph6(),
		pendant.Graph6(),
		"not-a-graph!",
	}, "\n")
	C6.Reclaim()
	prism.Reclaim()
	pendant.Reclaim()
	return lines
}

func TestSurveyRun(t *testing.T) {
	gen := &nbl.ReaderGenerator{R: strings.NewReader(surveyCorpus(t))}

	tally, err := survey.Run(context.Background(), gen, survey.Params{
		Orders:   []int{6},
		CondExpr: "c1 & c2 & cross & tri",
		Workers:  2,
	})
	require.NoError(t, err)

	require.EqualValues(t, 2, tally.Graphs, "C6 and the prism survive the filter")
	require.EqualValues(t, 1, tally.Skipped, "the pendant graph is skipped")
	require.EqualValues(t, 1, tally.Malformed)
	require.Zero(t, tally.Inconclusive)
	require.Zero(t, tally.Counterexamples, "%+v", tally.Examples)
	require.Equal(t, tally.Switches, tally.Cospectral)

	ot := tally.ByOrder[6]
	require.NotNil(t, ot)
	require.EqualValues(t, 2, ot.Graphs)
	require.Equal(t, tally.Switches, ot.Switches)
}

func TestSurveyBadCondition(t *testing.T) {
	gen := &nbl.ReaderGenerator{R: strings.NewReader(surveyCorpus(t))}
	_, err := survey.Run(context.Background(), gen, survey.Params{
		Orders:   []int{6},
		CondExpr: "c1 & nosuch",
	})
	require.Error(t, err)
}

func TestSurveyUnfilteredCountsAllSwitches(t *testing.T) {
	gen := &nbl.ReaderGenerator{R: strings.NewReader(surveyCorpus(t))}

	// An empty condition verifies every enumerated switch.
	tally, err := survey.Run(context.Background(), gen, survey.Params{
		Orders: []int{6},
	})
	require.NoError(t, err)
	require.EqualValues(t, 2, tally.Graphs)
	require.NotZero(t, tally.Switches)
	require.EqualValues(t, tally.Switches, tally.Cospectral+tally.Counterexamples)
	require.LessOrEqual(t, len(tally.Examples), 10)
	for _, r := range tally.Examples {
		require.NotEmpty(t, r.Graph6)
		require.NotEmpty(t, r.Switched6)
		require.NotZero(t, r.DivergedAt)
	}
}

func TestSurveyWithCorpus(t *testing.T) {
	catCtx := catalog.NewContext()
	defer catCtx.Close()
	cat, err := catalog.OpenCatalog(catCtx, catalog.Opts{})
	require.NoError(t, err)
	defer cat.Close()

	run := func() *survey.Tally {
		gen := &nbl.ReaderGenerator{R: strings.NewReader(surveyCorpus(t))}
		tally, err := survey.Run(context.Background(), gen, survey.Params{
			Orders:   []int{6},
			CondExpr: "c1 & c2 & cross & tri",
			Corpus:   cat,
		})
		require.NoError(t, err)
		return tally
	}

	first := run()
	require.NotZero(t, cat.NumEntries(6), "survey must populate the corpus")

	// A second pass is served from corpus hashes and must agree.
	second := run()
	require.Equal(t, first.Cospectral, second.Cospectral)
	require.Equal(t, first.Counterexamples, second.Counterexamples)
}

func TestWriteSummary(t *testing.T) {
	gen := &nbl.ReaderGenerator{R: strings.NewReader(surveyCorpus(t))}
	tally, err := survey.Run(context.Background(), gen, survey.Params{Orders: []int{6}})
	require.NoError(t, err)

	var b strings.Builder
	tally.WriteSummary(&b)
	out := b.String()
	require.Contains(t, out, "n=6")
	require.Contains(t, out, "switches")
}
