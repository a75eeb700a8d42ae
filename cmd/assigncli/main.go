// Command assigncli is a demonstration harness for pkg/assign: it reads
// an affinities file and an endpoint roster from JSON, runs Assign, and
// prints the resulting per-endpoint partition lists. It is not part of
// the core — spec.md §6 explicitly keeps file formats, CLIs, and wire
// protocols out of the assignment engine itself.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "assigncli",
		Short:         "Run the spark-vector partition-to-endpoint assignment engine",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().String("config", "assigncli", "config file name (without extension), searched under ./configs and /etc/sparkvector")
	root.AddCommand(newRunCmd())
	return root
}
