package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/smol-graphs/cospec/nbl"
)

func newGenCmd() *cobra.Command {
	var (
		connected bool
		minDeg    int
		gengPath  string
	)

	cmd := &cobra.Command{
		Use:   "gen <order>",
		Short: "Generate graphs of one order and print them with their edge lists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}

			gen := &nbl.GengGenerator{Path: gengPath}
			stream := gen.GenerateGraphs(cmd.Context(), nbl.GenOpts{
				NumVerts:      order,
				ConnectedOnly: connected,
			})
			stream.
				MinDegree(minDeg).
				Print(cmd.OutOrStdout(), "").
				PullAll()
			return stream.Err()
		},
	}

	cmd.Flags().BoolVarP(&connected, "connected", "c", true, "connected graphs only")
	cmd.Flags().IntVar(&minDeg, "min-degree", 0, "skip graphs below this minimum degree")
	cmd.Flags().StringVar(&gengPath, "geng", "", "geng binary path")
	return cmd
}
