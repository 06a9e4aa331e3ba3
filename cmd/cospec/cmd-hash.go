package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smol-graphs/cospec/nbl"
)

func newHashCmd() *cobra.Command {
	var showEigs bool

	cmd := &cobra.Command{
		Use:   "hash <graph6> [<graph6> ...]",
		Short: "Print the non-backtracking spectral hash of each graph",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, g6 := range args {
				X, err := nbl.NewGraphFromGraph6(g6)
				if err != nil {
					return err
				}
				op := nbl.NewOperator(X)
				hash, err := op.SpectralHash()
				if err != nil {
					X.Reclaim()
					return err
				}
				fmt.Fprintf(out, "%s  %s  dim %d\n", hash, g6, op.Dim())
				if showEigs {
					eigs, err := op.Eigenvalues()
					if err != nil {
						X.Reclaim()
						return err
					}
					for _, ev := range eigs {
						fmt.Fprintf(out, "    %+.8f%+.8fi\n", real(ev), imag(ev))
					}
				}
				X.Reclaim()
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showEigs, "eigenvalues", "e", false, "also print the sorted eigenvalues")
	return cmd
}
