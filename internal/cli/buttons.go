package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/tessro/trackseek/internal/buttons"
	seekerrors "github.com/tessro/trackseek/internal/errors"
	"github.com/tessro/trackseek/internal/styles"
)

var validateStrict bool

var buttonsCmd = &cobra.Command{
	Use:   "buttons",
	Short: "Manage search buttons",
	Long: `Commands for viewing and editing the search button configuration.

Buttons are stored as a JSON array. Each button has a "text" label and a base
"url", plus either parameter fields (artistParam, artistsParam with artistsMode
"join" or "repeat", artistsSeparator, titleParam) or a queryTemplate rendered into
queryParam (with titleFormat, artistFormat and artistsJoin). "extraParams" is
merged into every URL.`,
}

var buttonsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured buttons",
	RunE:  runButtonsList,
}

var buttonsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective button document",
	Long:  `Print the buttons in use, with defaults filled in, as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeJSON(cmd.OutOrStdout(), loadButtons().Buttons)
	},
}

var buttonsValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a button document",
	Long:  `Validate the stored button document, or the given file ("-" for stdin).`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runButtonsValidate,
}

var buttonsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default button document",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := buttonStore()
		if err := store.Init(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created buttons file: %s\n", store.Path())
		return nil
	},
}

var buttonsEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit buttons in your editor",
	Long: `Open the button document in your default editor. The edited document is
validated before it is saved; an invalid document never replaces the stored one.`,
	RunE: runButtonsEdit,
}

var buttonsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the button document path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), cfg.Buttons.File)
	},
}

func init() {
	buttonsValidateCmd.Flags().BoolVar(&validateStrict, "strict", false, "treat ignored fields as errors")

	buttonsCmd.AddCommand(buttonsListCmd)
	buttonsCmd.AddCommand(buttonsShowCmd)
	buttonsCmd.AddCommand(buttonsValidateCmd)
	buttonsCmd.AddCommand(buttonsInitCmd)
	buttonsCmd.AddCommand(buttonsEditCmd)
	buttonsCmd.AddCommand(buttonsPathCmd)
	rootCmd.AddCommand(buttonsCmd)
}

func runButtonsList(cmd *cobra.Command, args []string) error {
	res := loadButtons()
	out := cmd.OutOrStdout()

	if JSONOutput() {
		type item struct {
			Index int    `json:"index"`
			Text  string `json:"text"`
			Mode  string `json:"mode"`
			URL   string `json:"url"`
		}
		items := make([]item, 0, len(res.Buttons))
		for i, b := range res.Buttons {
			items = append(items, item{Index: i + 1, Text: b.Text, Mode: b.Mode(), URL: b.URL})
		}
		return writeJSON(out, items)
	}

	fmt.Fprintln(out, describeSource(res))
	fmt.Fprintln(out)

	t := NewTableWriter(out, "#", "TEXT", "MODE", "URL")
	for i, b := range res.Buttons {
		t.Row(fmt.Sprint(i+1), b.Text, styles.ModeBadge(b.Mode()), TruncateString(b.URL, 60))
	}
	t.Flush()
	return nil
}

// describeSource says where the listed buttons came from.
func describeSource(res *buttons.LoadResult) string {
	path := cfg.Buttons.File
	switch {
	case res.Fallback && errors.Is(res.Err, seekerrors.ErrConfigNotFound):
		return styles.Muted.Render(fmt.Sprintf("Default buttons (%s does not exist)", path))
	case res.Fallback:
		return styles.Warn.Render(fmt.Sprintf("Default buttons (%s is invalid: %v)", path, res.Err))
	default:
		return styles.Muted.Render(fmt.Sprintf("%s, %s, modified %s",
			path, humanize.Bytes(uint64(res.Size)), humanize.Time(res.ModTime)))
	}
}

func runButtonsValidate(cmd *cobra.Command, args []string) error {
	var (
		raw  []byte
		name string
		err  error
	)
	switch {
	case len(args) == 1 && args[0] == "-":
		name = "stdin"
		raw, err = io.ReadAll(cmd.InOrStdin())
	case len(args) == 1:
		name = args[0]
		raw, err = os.ReadFile(args[0])
	default:
		name = cfg.Buttons.File
		raw, err = os.ReadFile(cfg.Buttons.File)
		if errors.Is(err, os.ErrNotExist) {
			err = fmt.Errorf("%w: %s", seekerrors.ErrConfigNotFound, cfg.Buttons.File)
		}
	}
	if err != nil {
		return err
	}

	list, err := buttons.Parse(raw)
	if err != nil {
		return err
	}

	warnings := ignoredWarnings(list)
	out := cmd.OutOrStdout()

	if JSONOutput() {
		if err := writeJSON(out, map[string]any{
			"valid":    !(validateStrict && len(warnings) > 0),
			"buttons":  len(list),
			"warnings": warnings,
		}); err != nil {
			return err
		}
	} else {
		for _, w := range warnings {
			fmt.Fprintln(out, styles.Warn.Render("warning: "+w))
		}
	}

	if validateStrict && len(warnings) > 0 {
		return fmt.Errorf("%w: %d ignored field warning(s)", seekerrors.ErrInvalidConfig, len(warnings))
	}
	if !JSONOutput() {
		fmt.Fprintf(out, "%s %s: %d button(s) valid\n", styles.StatusIcon(true), name, len(list))
	}
	return nil
}

func ignoredWarnings(list []buttons.Button) []string {
	warnings := []string{}
	for i, b := range list {
		if len(b.Ignored) == 0 {
			continue
		}
		warnings = append(warnings, fmt.Sprintf("Button %d: %s ignored in %s mode",
			i+1, strings.Join(b.Ignored, ", "), b.Mode()))
	}
	return warnings
}

func runButtonsEdit(cmd *cobra.Command, args []string) error {
	store := buttonStore()

	raw, err := store.Raw()
	if err != nil {
		return err
	}

	editor := findEditor()
	if editor == "" {
		return fmt.Errorf("no editor found. Set EDITOR environment variable")
	}

	tmp, err := os.CreateTemp("", "trackseek-buttons-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	_ = tmp.Close()

	for {
		editorCmd := exec.Command(editor, tmp.Name())
		editorCmd.Stdin = os.Stdin
		editorCmd.Stdout = os.Stdout
		editorCmd.Stderr = os.Stderr
		if err := editorCmd.Run(); err != nil {
			return fmt.Errorf("editor failed: %w", err)
		}

		edited, err := os.ReadFile(tmp.Name())
		if err != nil {
			return fmt.Errorf("failed to read edited file: %w", err)
		}

		saveErr := store.Save(edited)
		if saveErr == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", filepath.Clean(store.Path()))
			return nil
		}

		var cerr *buttons.ConfigError
		if !errors.As(saveErr, &cerr) || !IsTerminal() {
			return saveErr
		}

		fmt.Fprintln(os.Stderr, styles.Bad.Render(cerr.Error()))
		retry := true
		confirm := huh.NewConfirm().
			Title("The buttons were not saved. Edit again?").
			Affirmative("Edit").
			Negative("Discard").
			Value(&retry)
		if err := confirm.Run(); err != nil || !retry {
			return saveErr
		}
	}
}

func findEditor() string {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"nano", "vim", "vi", "notepad"} {
			if _, err := exec.LookPath(e); err == nil {
				return e
			}
		}
	}
	return editor
}
