package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/wistia/wistia"
)

// detectCmd finds Wistia links in text
var detectCmd = &cobra.Command{
	Use:   "detect [text...]",
	Short: "Print the Wistia links found in the arguments or stdin",
	Long: `Print every Wistia or wi.st link found in the arguments, one per line.
Without arguments the text is read from stdin.`,
	Annotations: map[string]string{skipInit: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		if len(args) == 0 {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			text = string(data)
		}

		urls := wistia.DetectURLs(text)
		logger.Debug().Int("count", len(urls)).Msg("Detected links")

		for _, u := range urls {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), u); err != nil {
				return err
			}
		}
		return nil
	},
}
