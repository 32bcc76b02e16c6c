package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/shelfmark/internal/callnum"
)

func newFormatCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "format [text...]",
		Short: "Apply the call-number rule once, without a watcher",
		Long: `Prints the canonical form of the first call number found in the input:
(group)digits becomes 00-prefixed digits.

Reads stdin when no arguments are given, so it composes with other tools:

  xsel -o | shelfmark format
  shelfmark format "Some text (99)8877 trailing"

Exits 1 when the input contains no call number.`,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, args []string) error { return runFormat(v, args) },
	}

	f := cmd.Flags()
	f.Bool("copy", false, "also place the result on the system clipboard")
	addConfigFlag(cmd)

	return cmd
}

func runFormat(v *viper.Viper, args []string) error {
	var input string
	if len(args) > 0 {
		input = strings.Join(args, " ")
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		input = string(data)
	}

	formatted, ok := callnum.TryFormat(input)
	if !ok {
		return errors.New("no call number found")
	}

	fmt.Println(formatted)

	if v.GetBool("copy") {
		if err := clipboard.WriteAll(formatted); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
	}
	return nil
}
