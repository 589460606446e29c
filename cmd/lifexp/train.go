package main

import (
	"github.com/spf13/cobra"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Fit the model on the train table and store it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		_, err = a.Train(cmd.Context())
		return flush(a, err)
	},
}

func init() {
	rootCmd.AddCommand(trainCmd)
}
