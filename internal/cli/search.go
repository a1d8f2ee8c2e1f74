package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/tessro/trackseek/internal/browser"
	"github.com/tessro/trackseek/internal/buttons"
	"github.com/tessro/trackseek/internal/core"
	seekerrors "github.com/tessro/trackseek/internal/errors"
	"github.com/tessro/trackseek/internal/search"
	"github.com/tessro/trackseek/internal/source"
	"github.com/tessro/trackseek/internal/styles"
)

var (
	searchButtons []string
	searchAll     bool
	searchPick    bool
	searchOpen    bool
	searchPrint   bool
	searchCopy    bool
)

var searchCmd = &cobra.Command{
	Use:   "search [title • artists]",
	Short: "Build search URLs for the playing track",
	Long: `Build a search URL for the playing track with one or more buttons and open it.

The track comes from the argument, from stdin when the argument is "-", or from
the configured source command or file.

Examples:
  trackseek search "Windowlicker • Aphex Twin"
  trackseek search -b Discogs -b MB "Song • Artist A, Artist B"
  playerctl metadata --format '{{title}} • {{artist}}' | trackseek search --all -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringArrayVarP(&searchButtons, "button", "b", nil, "button to use (repeatable)")
	searchCmd.Flags().BoolVarP(&searchAll, "all", "a", false, "use every configured button")
	searchCmd.Flags().BoolVar(&searchPick, "pick", false, "choose a button interactively")
	searchCmd.Flags().BoolVarP(&searchOpen, "open", "o", false, "open URLs in the browser")
	searchCmd.Flags().BoolVarP(&searchPrint, "print", "p", false, "only print URLs, never open them")
	searchCmd.Flags().BoolVar(&searchCopy, "copy", false, "copy URLs to the clipboard")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	track, err := resolveTrack(ctx, args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	list := loadButtons().Buttons
	selected, err := selectButtons(list, searchButtons, searchAll, cfg.Buttons.Default)
	if err != nil {
		return err
	}
	if searchPick && len(searchButtons) == 0 && !searchAll && IsTerminal() {
		picked, err := pickButton(list)
		if err != nil {
			return err
		}
		selected = []buttons.Button{picked}
	}

	results := search.BuildAll(selected, *track)
	for _, r := range results {
		logger.Debug("search url built", "button", r.Button, "url", r.URL)
	}

	if JSONOutput() {
		if err := writeJSON(cmd.OutOrStdout(), results); err != nil {
			return err
		}
	} else {
		printResults(cmd.OutOrStdout(), results)
	}

	if searchCopy {
		if err := clipboard.WriteAll(joinURLs(results)); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
	}

	open := cfg.Browser.ShouldOpen()
	if cmd.Flags().Changed("open") {
		open = searchOpen
	}
	if searchPrint {
		open = false
	}
	if !open {
		return nil
	}

	var opened seekerrors.PartialResult[int]
	opener := browser.New(cfg.Browser.Command)
	for _, r := range results {
		if err := opener.Open(ctx, r.URL); err != nil {
			opened.AddError(fmt.Errorf("%s: %w", r.Button, err))
			continue
		}
		opened.Data++
	}
	if opened.HasErrors() {
		return fmt.Errorf("%w: %s", seekerrors.ErrOpenFailed, opened.ErrorSummary())
	}
	return nil
}

// resolveTrack reads the display string from args, stdin or the configured
// source and parses it.
func resolveTrack(ctx context.Context, args []string, stdin io.Reader) (*core.Track, error) {
	var src source.Source
	switch {
	case len(args) == 1 && args[0] == "-":
		src = source.NewReader(stdin)
	case len(args) == 1:
		src = source.Static(args[0])
	default:
		var err error
		src, err = source.FromConfig(cfg.Source)
		if err != nil {
			return nil, err
		}
	}

	display, err := src.Current(ctx)
	if err != nil {
		return nil, err
	}

	track := core.ParseTrack(display)
	if track == nil {
		logger.Debug("no track in display string", "display", display)
		return nil, seekerrors.ErrNoTrack
	}
	return track, nil
}

// selectButtons picks the buttons to use: all of them, the named ones in the
// given order, the configured default, or the first button.
func selectButtons(list []buttons.Button, names []string, all bool, defaultName string) ([]buttons.Button, error) {
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: no buttons configured", seekerrors.ErrButtonNotFound)
	}
	if all {
		return list, nil
	}

	if len(names) > 0 {
		selected := make([]buttons.Button, 0, len(names))
		for _, name := range names {
			b, ok := buttons.Find(list, name)
			if !ok {
				return nil, fmt.Errorf("%w: %s", seekerrors.ErrButtonNotFound, name)
			}
			selected = append(selected, b)
		}
		return selected, nil
	}

	if defaultName != "" {
		b, ok := buttons.Find(list, defaultName)
		if !ok {
			return nil, fmt.Errorf("%w: %s (buttons.default)", seekerrors.ErrButtonNotFound, defaultName)
		}
		return []buttons.Button{b}, nil
	}

	return list[:1], nil
}

func pickButton(list []buttons.Button) (buttons.Button, error) {
	options := make([]huh.Option[int], 0, len(list))
	for i, b := range list {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", b.Text, b.URL), i))
	}

	var selected int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Search with").
				Options(options...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return buttons.Button{}, fmt.Errorf("selection cancelled: %w", err)
	}
	return list[selected], nil
}

func printResults(out io.Writer, results []search.Result) {
	if len(results) == 1 {
		fmt.Fprintln(out, results[0].URL)
		return
	}
	t := NewTableWriter(out)
	for _, r := range results {
		t.Row(styles.Highlight.Render(r.Button), styles.Link.Render(r.URL))
	}
	t.Flush()
}

func joinURLs(results []search.Result) string {
	urls := make([]string, len(results))
	for i, r := range results {
		urls[i] = r.URL
	}
	return strings.Join(urls, "\n")
}
