package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ecolog/freightquote/internal/domain"
)

type estimateOptions struct {
	*rootOptions

	distance   string
	fuelPrice  string
	toll       string
	vehicle    string
	urgency    string
	escortCost string
	asJSON     bool
}

func newEstimateCmd(root *rootOptions) *cobra.Command {
	opts := &estimateOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the cost of a trip",
		Long: `Estimate prints the itemized cost breakdown of a trip.

Amounts accept either a decimal point or a decimal comma ("6,19").
Passing --escort-cost adds a flat escort fee to the total.`,
		Example: `  freightctl estimate --distance 500 --fuel-price 6.00 --toll 0.10 --vehicle truck --urgency medium
  freightctl estimate --distance 320 --fuel-price 5,89 --toll 0 --vehicle Van --urgency Alta --escort-cost 450 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.distance, "distance", "", "trip distance")
	flags.StringVar(&opts.fuelPrice, "fuel-price", "", "price per unit of fuel")
	flags.StringVar(&opts.toll, "toll", "0", "toll cost per distance unit")
	flags.StringVar(&opts.vehicle, "vehicle", "", "vehicle class: truck, pickup_truck or van")
	flags.StringVar(&opts.urgency, "urgency", "low", "urgency level: low, medium or high")
	flags.StringVar(&opts.escortCost, "escort-cost", "", "flat escort fee; enables escort when set")
	flags.BoolVar(&opts.asJSON, "json", false, "print the breakdown as JSON")

	_ = cmd.MarkFlagRequired("distance")
	_ = cmd.MarkFlagRequired("fuel-price")
	_ = cmd.MarkFlagRequired("vehicle")

	return cmd
}

func (o *estimateOptions) run(cmd *cobra.Command) error {
	input, err := domain.ParseTripInput(domain.RawTripInput{
		Distance:            o.distance,
		FuelUnitPrice:       o.fuelPrice,
		TollPerDistanceUnit: o.toll,
		VehicleClass:        o.vehicle,
		Urgency:             o.urgency,
		HasEscort:           cmd.Flags().Changed("escort-cost"),
		EscortCost:          o.escortCost,
	})
	if err != nil {
		return err
	}

	table, err := o.rateTable()
	if err != nil {
		return err
	}

	breakdown, err := domain.NewFreightEstimator(table).Estimate(input)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if o.asJSON {
		return writeJSON(out, estimateOutput{Input: input, Breakdown: breakdown})
	}
	return writeBreakdown(out, input, breakdown)
}

type estimateOutput struct {
	Input     domain.TripInput     `json:"input"`
	Breakdown domain.CostBreakdown `json:"breakdown"`
}

func writeJSON(out io.Writer, v interface{}) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeBreakdown(out io.Writer, input domain.TripInput, b domain.CostBreakdown) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintf(w, "Vehicle\t%s\t\n", input.VehicleClass)
	fmt.Fprintf(w, "Urgency\t%s\t\n", input.Urgency)
	fmt.Fprintf(w, "Distance\t%.2f\t\n", input.Distance)
	fmt.Fprintf(w, "Fuel consumption\t%.2f\t\n", b.FuelConsumption)
	fmt.Fprintln(w, "\t\t")
	fmt.Fprintf(w, "Fuel\t%.2f\t\n", b.FuelCost)
	fmt.Fprintf(w, "Tolls\t%.2f\t\n", b.TollCost)
	fmt.Fprintf(w, "Maintenance\t%.2f\t\n", b.MaintenanceCost)
	fmt.Fprintf(w, "Driver\t%.2f\t\n", b.DriverCost)
	fmt.Fprintf(w, "Base freight\t%.2f\t\n", b.BaseFreight)
	fmt.Fprintf(w, "Insurance\t%.2f\t\n", b.InsuranceCost)
	fmt.Fprintf(w, "Subtotal\t%.2f\t\n", b.Subtotal)
	fmt.Fprintf(w, "Urgency surcharge\t%.2f\t\n", b.UrgencySurcharge)
	fmt.Fprintf(w, "Escort\t%.2f\t\n", b.EscortCost)
	fmt.Fprintln(w, "\t\t")
	fmt.Fprintf(w, "Total\t%.2f\t\n", b.Total)
	fmt.Fprintf(w, "Cost per distance unit\t%.4f\t\n", b.CostPerDistanceUnit)

	return w.Flush()
}
