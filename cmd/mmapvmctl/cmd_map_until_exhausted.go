package main

import (
	"github.com/spf13/cobra"
)

func newMapUntilExhaustedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map-until-exhausted",
		Short: "Repeatedly map chunks-per-step chunks until the reservation is fully mapped",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openManagerFromFlags(cmd)
			if err != nil {
				return err
			}
			defer m.Close()

			chunksPerStep, _ := cmd.Flags().GetUint64("chunks-per-step")

			steps, err := m.MapNextUntilExhausted(chunksPerStep)
			if err != nil {
				opsLogger.OperationFailed("map-until-exhausted", m.Path(), err)
				return err
			}

			cmd.Printf("ran %d step(s)\n", steps)
			printStatus(cmd, m)
			return nil
		},
	}
	addManagerFlags(cmd)
	cmd.Flags().Uint64("chunks-per-step", 64, "chunks to request per MapNext step")
	return cmd
}
