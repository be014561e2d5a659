package main

import (
	"github.com/spf13/cobra"
)

func newMappedChunksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mapped-chunks",
		Short: "Print the number of chunks currently mapped",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openManagerFromFlags(cmd)
			if err != nil {
				return err
			}
			defer m.Close()

			cmd.Println(m.MappedChunks())
			return nil
		},
	}
	addManagerFlags(cmd)
	return cmd
}
