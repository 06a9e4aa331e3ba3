package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/smol-graphs/cospec/nbl"
	"github.com/smol-graphs/cospec/nbl/switches"
)

var rootCmd = &cobra.Command{
	Use:   "cospec",
	Short: "Non-backtracking cospectrality toolkit for 2-edge switches",
	Long: `cospec builds the non-backtracking transition operator of small simple
graphs, compares spectra via trace powers, and surveys 2-edge switch
families for cospectral pairs and counterexamples.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().Float64("tol", nbl.DefaultTol, "trace comparison tolerance")
	rootCmd.PersistentFlags().Int("traces", 0, "trace powers compared (0 = operator dimension)")

	viper.SetEnvPrefix("COSPEC")
	viper.AutomaticEnv()
	viper.BindPFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newGenCmd())
	rootCmd.AddCommand(newSurveyCmd())
	rootCmd.AddCommand(newVerifyCmd())
	rootCmd.AddCommand(newSwitchesCmd())
	rootCmd.AddCommand(newHashCmd())
	rootCmd.AddCommand(newCorpusCmd())
	rootCmd.AddCommand(newConditionsCmd())
}

func newConditionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "conditions",
		Short: "List the registered switch condition names",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range switches.ConditionNames() {
				cond, _ := switches.LookupCondition(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", name, cond.Help)
			}
		},
	}
}

func compareOpts() nbl.CompareOpts {
	return nbl.CompareOpts{
		Tol:       viper.GetFloat64("tol"),
		NumTraces: viper.GetInt("traces"),
	}
}
