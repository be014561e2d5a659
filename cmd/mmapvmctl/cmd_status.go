package main

import (
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print a manager's reserved/mapped size and liveness",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openManagerFromFlags(cmd)
			if err != nil {
				return err
			}
			defer m.Close()

			printStatus(cmd, m)
			return nil
		},
	}
	addManagerFlags(cmd)
	return cmd
}
