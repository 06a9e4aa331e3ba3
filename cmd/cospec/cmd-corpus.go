package main

import (
	"fmt"
	"os"

	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"

	"github.com/smol-graphs/cospec/nbl"
	"github.com/smol-graphs/cospec/nbl/catalog"
)

func newCorpusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Build and inspect a spectral corpus db",
	}
	cmd.AddCommand(newCorpusBuildCmd())
	cmd.AddCommand(newCorpusStatsCmd())
	return cmd
}

func newCorpusBuildCmd() *cobra.Command {
	var (
		dbPath    string
		orders    []int
		connected bool
		minDeg    int
		gengPath  string
		fromFile  string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Precompute spectral records for every graph of the given orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			catCtx := catalog.NewContext()
			defer catCtx.Close()
			cat, err := catalog.OpenCatalog(catCtx, catalog.Opts{DbPathName: dbPath})
			if err != nil {
				return err
			}

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

			for _, n := range orders {
				stream := gen.GenerateGraphs(cmd.Context(), nbl.GenOpts{
					NumVerts:      n,
					ConnectedOnly: connected,
				})
				added := stream.
					MinDegree(minDeg).
					AddTo(cat).
					PullAll()
				if err := stream.Err(); err != nil {
					return err
				}
				klog.Infof("n=%d: %d graphs cataloged (%d total on record)", n, added, cat.NumEntries(byte(n)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "cospec.corpus", "corpus db path")
	cmd.Flags().IntSliceVarP(&orders, "orders", "n", []int{4, 5, 6}, "graph orders to catalog")
	cmd.Flags().BoolVarP(&connected, "connected", "c", true, "connected graphs only")
	cmd.Flags().IntVar(&minDeg, "min-degree", 2, "skip graphs below this minimum degree")
	cmd.Flags().StringVar(&gengPath, "geng", "", "geng binary path")
	cmd.Flags().StringVar(&fromFile, "from", "", "read graph6 lines from a file instead of running geng")
	return cmd
}

func newCorpusStatsCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print per-order record counts of a corpus db",
		RunE: func(cmd *cobra.Command, args []string) error {
			catCtx := catalog.NewContext()
			defer catCtx.Close()
			cat, err := catalog.OpenCatalog(catCtx, catalog.Opts{
				DbPathName: dbPath,
				ReadOnly:   true,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			total := int64(0)
			for n := 1; n <= nbl.MaxVtx; n++ {
				count := cat.NumEntries(byte(n))
				if count > 0 {
					fmt.Fprintf(out, "n=%-2d %12d\n", n, count)
					total += count
				}
			}
			fmt.Fprintf(out, "total %11d\n", total)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "cospec.corpus", "corpus db path")
	return cmd
}
