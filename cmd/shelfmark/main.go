// shelfmark: call-number formatting from the system clipboard.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "shelfmark",
		Short: "Reformat library call numbers from the clipboard",
		Long: `shelfmark watches the system clipboard and rewrites library call numbers
into their canonical form. Copy text containing (1)23456 anywhere and the
clipboard is replaced with 00123456, ready to paste into the catalogue.

Run "shelfmark watch" to start the watcher. Use "shelfmark format" to apply
the same rule to arguments or stdin, and "shelfmark status" / "shelfmark reset"
to inspect or zero a running watcher's session counter.

Config file search order (first found wins):
  /etc/shelfmark/shelfmark.toml
  $HOME/.config/shelfmark/shelfmark.toml
  path supplied via --config

All flags can be set via SHELFMARK_<FLAG> env vars or config-file keys.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newWatchCmd(),
		newFormatCmd(),
		newStatusCmd(),
		newResetCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("shelfmark %s\n", Version)
		},
	}
}
