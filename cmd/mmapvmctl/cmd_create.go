package main

import (
	"github.com/spf13/cobra"
)

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create (or open) a manager against a backing file and print its status",
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
