package main

import (
	"github.com/spf13/cobra"
)

func newMapFullCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map-full",
		Short: "Map whatever suffix of the backing file is not yet mapped",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openManagerFromFlags(cmd)
			if err != nil {
				return err
			}
			defer m.Close()

			res, err := m.MapFull()
			if err != nil {
				opsLogger.OperationFailed("map-full", m.Path(), err)
				return err
			}

			opsLogger.MappedNext(m.Path(), m.MappedSize(), m.ReservedSize(), res.MappingWasMoved, res.FileExtensionSize)
			printStatus(cmd, m)
			return nil
		},
	}
	addManagerFlags(cmd)
	return cmd
}
