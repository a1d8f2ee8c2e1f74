package cli

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	// Set via ldflags at build time
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		if JSONOutput() {
			info := map[string]string{
				"version":    Version,
				"commit":     Commit,
				"build_date": BuildDate,
				"go_version": runtime.Version(),
				"os":         runtime.GOOS,
				"arch":       runtime.GOARCH,
			}
			out, _ := json.MarshalIndent(info, "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return
		}

		fmt.Fprintf(cmd.OutOrStdout(), "trackseek %s\n", Version)
		if Verbose() {
			fmt.Fprintf(cmd.OutOrStdout(), "  commit:     %s\n", Commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:      %s\n", BuildDate)
			fmt.Fprintf(cmd.OutOrStdout(), "  go version: %s\n", runtime.Version())
			fmt.Fprintf(cmd.OutOrStdout(), "  platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
