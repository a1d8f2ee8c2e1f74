package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tessro/trackseek/internal/browser"
	"github.com/tessro/trackseek/internal/buttons"
	"github.com/tessro/trackseek/internal/source"
	"github.com/tessro/trackseek/internal/watch"
)

var (
	watchCommand   string
	watchNoEmoji   bool
	watchTimestamp bool
	watchFormat    string
	watchInterval  time.Duration
	watchOpen      bool
	watchNoURLs    bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the playing track and print search URLs",
	Long: `Poll the configured source and print search URLs for every new track.

Format templates can use .Type, .Emoji, .Time, .Title, .Artist, .Artists and
.URLs (each with .Button and .URL).`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchCommand, "command", "", "source command (overrides source.command)")
	watchCmd.Flags().BoolVar(&watchNoEmoji, "no-emoji", false, "disable emoji output")
	watchCmd.Flags().BoolVarP(&watchTimestamp, "timestamp", "t", false, "show timestamps")
	watchCmd.Flags().StringVarP(&watchFormat, "format", "f", "", "custom format template")
	watchCmd.Flags().DurationVarP(&watchInterval, "interval", "i", 0, "poll interval (default: watch.interval)")
	watchCmd.Flags().BoolVarP(&watchOpen, "open", "o", false, "open the first button's URL for each new track")
	watchCmd.Flags().BoolVar(&watchNoURLs, "no-urls", false, "print track changes only")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	srcCfg := cfg.Source
	if watchCommand != "" {
		srcCfg.Command = watchCommand
		srcCfg.File = ""
	}
	src, err := source.FromConfig(srcCfg)
	if err != nil {
		return err
	}

	list := defaultFirst(loadButtons().Buttons, cfg.Buttons.Default)

	interval := watchInterval
	if interval == 0 {
		interval = time.Duration(cfg.Watch.Interval) * time.Millisecond
	}

	formatter := watch.NewFormatter(
		watch.WithEmoji(!watchNoEmoji && !cfg.Watch.NoEmoji),
		watch.WithTimestamp(watchTimestamp),
		watch.WithTemplate(watchFormat),
		watch.WithURLs(!watchNoURLs),
	)

	// Handle Ctrl+C gracefully
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	watcher := watch.NewWatcher(src, list, interval, logger)
	opener := browser.New(cfg.Browser.Command)

	errCh := make(chan error, 1)
	go func() {
		errCh <- watcher.Start(ctx)
	}()

	out := cmd.OutOrStdout()
	for {
		select {
		case event, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			fmt.Fprintln(out, formatter.Format(event))
			if watchOpen && event.Type == watch.EventTrackChange && len(event.Results) > 0 {
				if err := opener.Open(ctx, event.Results[0].URL); err != nil {
					logger.Warn("open failed", "url", event.Results[0].URL, "error", err)
				}
			}

		case err := <-errCh:
			if err == context.Canceled {
				return nil
			}
			return err
		}
	}
}

// defaultFirst moves the default button to the front so --open uses it.
func defaultFirst(list []buttons.Button, defaultName string) []buttons.Button {
	for i, b := range list {
		if !strings.EqualFold(b.Text, defaultName) {
			continue
		}
		if i > 0 {
			out := make([]buttons.Button, 0, len(list))
			out = append(out, b)
			out = append(out, list[:i]...)
			return append(out, list[i+1:]...)
		}
		break
	}
	return list
}
