package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smol-graphs/cospec/nbl"
	"github.com/smol-graphs/cospec/nbl/switches"
)

func newSwitchesCmd() *cobra.Command {
	var (
		condExpr string
		verify   bool
	)

	cmd := &cobra.Command{
		Use:   "switches <graph6>",
		Short: "Enumerate the 2-edge switches of a graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			G, err := nbl.NewGraphFromGraph6(args[0])
			if err != nil {
				return err
			}
			defer G.Reclaim()

			cond, err := switches.ParseCondition(condExpr)
			if err != nil {
				return err
			}

			found := switches.Enumerate(G)
			defer switches.Reclaim(found)

			out := cmd.OutOrStdout()
			var opG *nbl.Operator
			matched := 0
			for _, sw := range found {
				inv := switches.Measure(G, sw)
				if !cond(&inv) {
					continue
				}
				matched++

				fmt.Fprintf(out, "(%d,%d)(%d,%d) -> %s",
					sw.Config.V1, sw.Config.W1, sw.Config.V2, sw.Config.W2,
					sw.Switched.Graph6())
				if verify {
					if opG == nil {
						opG = nbl.NewOperator(G)
					}
					verdict := nbl.CompareSpectra(opG, nbl.NewOperator(sw.Switched), compareOpts())
					if verdict.Cospectral {
						fmt.Fprint(out, "  cospectral")
					} else {
						fmt.Fprintf(out, "  diverged@%d", verdict.DivergedAt)
					}
				}
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "%d of %d switches matched\n", matched, len(found))
			return nil
		},
	}

	cmd.Flags().StringVar(&condExpr, "cond", "", "condition expression filtering switches")
	cmd.Flags().BoolVarP(&verify, "verify", "V", false, "verify cospectrality of each matched switch")
	return cmd
}
