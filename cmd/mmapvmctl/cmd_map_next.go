package main

import (
	"github.com/spf13/cobra"

	"github.com/nrawrx3/mmap-exp/pkg/mmapvm"
)

func newMapNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map-next",
		Short: "Map the next N chunks of the backing file, growing the file and/or reservation as needed",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openManagerFromFlags(cmd)
			if err != nil {
				return err
			}
			defer m.Close()

			chunks, _ := cmd.Flags().GetUint64("chunks")
			extraReserve, _ := cmd.Flags().GetUint64("extra-chunks-to-reserve-on-grow")
			dontGrow, _ := cmd.Flags().GetBool("dont-grow-if-fully-mapped")

			res, err := m.MapNext(mmapvm.MapNextOptions{
				DontGrowIfFullyMapped:      dontGrow,
				ExtraChunksToReserveOnGrow: extraReserve,
				ChunksToMapNext:            chunks,
			})
			if err != nil {
				opsLogger.OperationFailed("map-next", m.Path(), err)
				return err
			}

			opsLogger.MappedNext(m.Path(), m.MappedSize(), m.ReservedSize(), res.MappingWasMoved, res.FileExtensionSize)
			printStatus(cmd, m)
			return nil
		},
	}
	addManagerFlags(cmd)
	cmd.Flags().Uint64("chunks", 1, "number of chunks to map")
	cmd.Flags().Uint64("extra-chunks-to-reserve-on-grow", 0, "extra chunks to add to the reservation when it must grow")
	cmd.Flags().Bool("dont-grow-if-fully-mapped", false, "fail instead of growing if already fully mapped")
	return cmd
}
