package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/shelfmark/internal/message"
)

func newStatusCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the running watcher's session state",
		Long: `Queries the watcher over the local control socket: how many call numbers
were formatted since start or last reset, and the most recent one.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runStatus(v) },
	}

	f := cmd.Flags()
	f.Bool("json", false, "output raw JSON")
	addConfigFlag(cmd)

	return cmd
}

func runStatus(v *viper.Viper) error {
	resp, err := controlRequest(message.TypeStatus)
	if err != nil {
		return err
	}

	if v.GetBool("json") {
		enc, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Println(string(enc))
		return nil
	}

	printStatus(resp)
	return nil
}

func printStatus(resp *message.Message) {
	bold := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	w := tabwriter.NewWriter(os.Stdout, 1, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Source:\t%s\n", resp.Source)
	fmt.Fprintf(w, "Instance:\t%s\n", faint(resp.Instance))
	fmt.Fprintf(w, "Backend:\t%s\n", resp.Backend)
	fmt.Fprintf(w, "Started:\t%s (%s)\n", resp.StartedAt.UTC().Format(time.RFC3339), tsAge(resp.StartedAt))
	fmt.Fprintf(w, "Formatted:\t%s\n", bold(fmt.Sprintf("%d", resp.Count)))
	if resp.LastValue != "" {
		fmt.Fprintf(w, "Last:\t%s (%s)\n", green(resp.LastValue), tsAge(resp.LastMatch))
	} else {
		fmt.Fprintf(w, "Last:\t%s\n", faint("none this session"))
	}
	_ = w.Flush()
}
