package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/smol-graphs/cospec/nbl"
	"github.com/smol-graphs/cospec/nbl/catalog"
	"github.com/smol-graphs/cospec/nbl/survey"
)

func newSurveyCmd() *cobra.Command {
	var (
		orders    []int
		connected bool
		minDeg    int
		condExpr  string
		workers   int
		timeout   time.Duration
		corpusDb  string
		gengPath  string
		fromFile  string
		examples  int
	)

	cmd := &cobra.Command{
		Use:   "survey",
		Short: "Enumerate switches over generated graphs and verify cospectrality",
		RunE: func(cmd *cobra.Command, args []string) error {
			var gen nbl.Generator
			if fromFile != "" {
				f, err := os.Open(fromFile)
				if err != nil {
					return err
				}
				defer f.Close()
				gen = &nbl.ReaderGenerator{R: f}
			} else {
				gen = &nbl.GengGenerator{Path: gengPath}
			}

			p := survey.Params{
				Orders:          orders,
				ConnectedOnly:   connected,
				MinDegree:       minDeg,
				CondExpr:        condExpr,
				Tol:             viper.GetFloat64("tol"),
				NumTraces:       viper.GetInt("traces"),
				Workers:         workers,
				PerGraphTimeout: timeout,
				MaxExamples:     examples,
			}

			if corpusDb != "" {
				catCtx := catalog.NewContext()
				defer catCtx.Close()
				cat, err := catalog.OpenCatalog(catCtx, catalog.Opts{DbPathName: corpusDb})
				if err != nil {
					return err
				}
				p.Corpus = cat
			}

			tally, err := survey.Run(cmd.Context(), gen, p)
			if tally != nil {
				tally.WriteSummary(cmd.OutOrStdout())
			}
			return err
		},
	}

	cmd.Flags().IntSliceVarP(&orders, "orders", "n", []int{4, 5, 6}, "graph orders to survey")
	cmd.Flags().BoolVarP(&connected, "connected", "c", true, "connected graphs only")
	cmd.Flags().IntVar(&minDeg, "min-degree", 2, "skip graphs below this minimum degree")
	cmd.Flags().StringVar(&condExpr, "cond", "", "condition expression filtering switches, e.g. \"c1 & c2 & cross & tri\"")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "parallel graph workers (0 = GOMAXPROCS)")
	cmd.Flags().DurationVar(&timeout, "graph-timeout", 0, "per-graph timeout (0 = none)")
	cmd.Flags().StringVar(&corpusDb, "corpus", "", "spectral corpus db path (consulted and extended)")
	cmd.Flags().StringVar(&gengPath, "geng", "", "geng binary path")
	cmd.Flags().StringVar(&fromFile, "from", "", "read graph6 lines from a file instead of running geng")
	cmd.Flags().IntVar(&examples, "examples", 10, "counterexample reports retained in the summary")
	return cmd
}
