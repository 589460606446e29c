package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var output string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Train on the train table and predict the test table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		path, err := a.Run(cmd.Context(), output)
		if err == nil {
			log.Info().Str("result", path).Msg("done")
		}
		return flush(a, err)
	},
}

func init() {
	runCmd.Flags().StringVar(&output, "output", "", "result file, instead of the next one in the results directory")
	rootCmd.AddCommand(runCmd)
}
