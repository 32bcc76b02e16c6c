package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"go.klb.dev/shelfmark/internal/message"
)

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Zero the running watcher's session counter",
		Long: `Tells the running watcher to zero its session counter and return its
display to the initial placeholder.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error { return runReset() },
	}
}

func runReset() error {
	resp, err := controlRequest(message.TypeReset)
	if err != nil {
		return err
	}
	fmt.Printf("%s (count %d)\n", color.GreenString("session counter reset"), resp.Count)
	return nil
}
