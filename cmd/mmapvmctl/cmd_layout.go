package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nrawrx3/mmap-exp/internal/abi"
	"github.com/nrawrx3/mmap-exp/pkg/mmapvm"
)

func newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the memory layout of the option and result structs",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, v := range []any{
				mmapvm.CreateOptions{},
				mmapvm.MapNextOptions{},
				mmapvm.MapNextResult{},
			} {
				fmt.Fprint(cmd.OutOrStdout(), abi.Analyze(v).String())
			}
			return nil
		},
	}
	return cmd
}
