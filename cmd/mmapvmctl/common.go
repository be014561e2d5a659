package main

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nrawrx3/mmap-exp/pkg/mmapvm"
)

// addManagerFlags attaches the flags common to every subcommand that opens
// a manager against a backing file.
func addManagerFlags(cmd *cobra.Command) {
	cmd.Flags().String("file", "", "path to the backing file (created if missing)")
	cmd.Flags().Uint64("initial-reserved-size", 0, "address space to reserve up front, in bytes")
	cmd.Flags().Bool("reserve-existing-file-size", false, "reserve however much the file already occupies instead of initial-reserved-size, if larger")
	cmd.MarkFlagRequired("file")
}

// openManagerFromFlags opens (or creates) the manager named by a command's
// --file flag, logging the outcome through the shared opsLogger.
func openManagerFromFlags(cmd *cobra.Command) (*mmapvm.Manager, error) {
	if err := bindConfig(cmd); err != nil {
		return nil, err
	}

	path, err := cmd.Flags().GetString("file")
	if err != nil {
		return nil, err
	}
	initialReservedSize, err := cmd.Flags().GetUint64("initial-reserved-size")
	if err != nil {
		return nil, err
	}
	reserveExisting, err := cmd.Flags().GetBool("reserve-existing-file-size")
	if err != nil {
		return nil, err
	}

	m, err := mmapvm.Create(mmapvm.CreateOptions{
		BackingFile:             path,
		InitialReservedSize:     initialReservedSize,
		ReserveExistingFileSize: reserveExisting,
	})
	if err != nil {
		opsLogger.OperationFailed("create", path, err)
		return nil, err
	}

	opsLogger.Created(path, m.ReservedSize())
	return m, nil
}

// printStatus writes a human-readable summary of a manager's current state.
func printStatus(cmd *cobra.Command, m *mmapvm.Manager) {
	cmd.Printf("path:      %s\n", m.Path())
	cmd.Printf("alive:     %v\n", m.IsAlive())
	cmd.Printf("full:      %v\n", m.Full())
	cmd.Printf("reserved:  %s (%d chunks)\n", humanize.IBytes(m.ReservedSize()), m.ReservedChunks())
	cmd.Printf("mapped:    %s (%d chunks)\n", humanize.IBytes(m.MappedSize()), m.MappedChunks())
	cmd.Printf("chunk:     %s\n", humanize.IBytes(m.ChunkSize()))
}
