package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func conditionsCmd() *cobra.Command {
	var location, date string

	cmd := &cobra.Command{
		Use:   "conditions",
		Short: "Print photography conditions for a location",
		Long:  `Geocode a location and print its forecast, sun times and golden/blue hour windows as JSON.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			conditions, closeCache, err := newAggregator(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer closeCache()

			result, err := conditions.GetPhotographyConditions(cmd.Context(), location, date)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVarP(&location, "location", "l", "", "place name to geocode")
	cmd.Flags().StringVarP(&date, "date", "d", "", "date in YYYY-MM-DD format (default: today)")
	_ = cmd.MarkFlagRequired("location")

	return cmd
}
