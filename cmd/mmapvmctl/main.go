// Command mmapvmctl exercises a file-backed growable virtual-memory
// manager from the command line: create one against a backing file, then
// drive it through growth steps and inspect its state.
package main

import (
	"fmt"
	"os"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
