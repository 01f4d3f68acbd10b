// Command freightctl prices trips from the terminal using the same estimator
// and rate files as the HTTP service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ecolog/freightquote/internal/domain"
	"github.com/ecolog/freightquote/internal/rates"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	ratesFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "freightctl",
		Short: "Estimate road freight costs",
		Long: `freightctl computes itemized freight quotations for a trip.

Rates default to the built-in table. Use --rates-file to price with a YAML
rate file in the same format the server reads from RATES_FILE.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.ratesFile, "rates-file", "", "YAML rate file overriding the default table")

	rootCmd.AddCommand(newEstimateCmd(opts), newRatesCmd(opts))
	return rootCmd
}

func (o *rootOptions) rateTable() (domain.RateTable, error) {
	if o.ratesFile == "" {
		return domain.DefaultRateTable(), nil
	}
	table, err := rates.LoadFile(o.ratesFile)
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("failed to load rates: %w", err)
	}
	return table, nil
}
