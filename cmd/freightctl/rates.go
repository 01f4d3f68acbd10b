package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ecolog/freightquote/internal/domain"
)

func newRatesCmd(root *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Show the rate table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := root.rateTable()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, ratesOutput(table))
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "VEHICLE\tCONSUMPTION\tMAINTENANCE\tDRIVER")
			for _, class := range domain.VehicleClasses() {
				rates := table.Vehicle(class)
				fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\n",
					class, rates.ConsumptionRate, rates.MaintenanceRate, rates.DriverRate)
			}
			fmt.Fprintln(w, "\t\t\t")
			fmt.Fprintln(w, "URGENCY\tFACTOR\t\t")
			for _, level := range domain.UrgencyLevels() {
				fmt.Fprintf(w, "%s\t%.2f\t\t\n", level, table.UrgencyFactor(level))
			}
			fmt.Fprintf(w, "insurance\t%.2f\t\t\n", domain.InsuranceRate)
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the table as JSON")
	return cmd
}

type ratesJSON struct {
	Vehicles      map[string]domain.VehicleRates `json:"vehicles"`
	Urgency       map[string]float64             `json:"urgency"`
	InsuranceRate float64                        `json:"insurance_rate"`
}

func ratesOutput(table domain.RateTable) ratesJSON {
	out := ratesJSON{
		Vehicles:      make(map[string]domain.VehicleRates),
		Urgency:       make(map[string]float64),
		InsuranceRate: domain.InsuranceRate,
	}
	for class, rates := range table.Vehicles() {
		out.Vehicles[class.String()] = rates
	}
	for level, factor := range table.UrgencyFactors() {
		out.Urgency[level.String()] = factor
	}
	return out
}
