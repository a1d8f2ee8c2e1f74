package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tessro/trackseek/internal/styles"
)

var parseCmd = &cobra.Command{
	Use:   "parse [title • artists]",
	Short: "Show how a display string is parsed",
	Long:  `Parse a now-playing display string and print its title and artists.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		track, err := resolveTrack(ctx, args, cmd.InOrStdin())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if JSONOutput() {
			return writeJSON(out, track)
		}

		fmt.Fprintf(out, "%s %s\n", styles.Label.Render("Title:  "), styles.Title.Render(track.Title))
		for i, a := range track.Artists {
			label := "Artist: "
			if i > 0 {
				label = strings.Repeat(" ", len(label))
			}
			fmt.Fprintf(out, "%s %s\n", styles.Label.Render(label), a)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
