package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict the test table with the stored model",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Paths.Models == "" {
			return fmt.Errorf("no models directory configured")
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		fitted, err := a.LoadModel()
		if err != nil {
			return flush(a, err)
		}
		path, err := a.Predict(cmd.Context(), fitted, output)
		if err == nil {
			log.Info().Str("result", path).Str("model", fitted.ID).Msg("done")
		}
		return flush(a, err)
	},
}

func init() {
	predictCmd.Flags().StringVar(&output, "output", "", "result file, instead of the next one in the results directory")
	rootCmd.AddCommand(predictCmd)
}
