package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ivlev/solar2video/internal/orbit"
)

var periodsCmd = &cobra.Command{
	Use:   "periods",
	Short: "Show orbital and synodic periods, or write the built-in table to YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table := orbit.DefaultTable()
		if path := viper.GetString("periods_file"); path != "" {
			t, err := orbit.ReadTable(path)
			if err != nil {
				return fmt.Errorf("periods file %s: %w", path, err)
			}
			table = t
		}

		if out, _ := cmd.Flags().GetString("write"); out != "" {
			if err := orbit.WriteTable(table, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[+++] Table written to %s\n", out)
			return nil
		}

		return printPeriods(cmd.OutOrStdout(), table)
	},
}

func init() {
	periodsCmd.Flags().String("write", "", "write the table to this YAML file instead of printing it")
	rootCmd.AddCommand(periodsCmd)
}

func printPeriods(w io.Writer, table *orbit.Table) error {
	st, err := orbit.NewSynodicTable(table)
	if err != nil {
		return err
	}

	ref := table.Reference()
	fmt.Fprintf(w, "Reference: %s (%.3f days)\n\n", ref.Planet, ref.Days)
	fmt.Fprintf(w, "%-10s %12s %12s\n", "Planet", "Orbit (d)", "Synodic (d)")
	for _, group := range []struct {
		title string
		list  []orbit.Synodic
	}{
		{"inner", st.Inner()},
		{"outer", st.Outer()},
	} {
		fmt.Fprintf(w, "-- %s\n", group.title)
		for _, s := range group.list {
			var period float64
			for _, b := range table.Bodies() {
				if b.Planet == s.Planet {
					period = b.Days
				}
			}
			fmt.Fprintf(w, "%-10s %12.3f %12.3f\n", s.Planet, period, s.Days)
		}
	}
	return nil
}
