package main

import (
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"

	"github.com/spf13/cobra"

	"github.com/nrawrx3/mmap-exp/pkg/opslog"
)

var (
	logDevelopment bool
	debugAddr      string

	opsLogger *opslog.Logger
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mmapvmctl",
		Short: "Drive a file-backed growable virtual-memory manager from the command line",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := opslog.New(opslog.Config{Development: logDevelopment})
			if err != nil {
				return fmt.Errorf("building logger: %w", err)
			}
			opsLogger = l

			if debugAddr != "" {
				go func() {
					log.Println(http.ListenAndServe(debugAddr, nil))
				}()
			}
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&logDevelopment, "log-dev", false, "use human-readable console logging instead of JSON")
	root.PersistentFlags().StringVar(&debugAddr, "debug-addr", "", "if set, serve net/http/pprof profiles on this address")

	root.AddCommand(
		newCreateCmd(),
		newMapNextCmd(),
		newMapFullCmd(),
		newMapUntilExhaustedCmd(),
		newMappedChunksCmd(),
		newStatusCmd(),
		newLayoutCmd(),
	)

	return root
}
