package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tessro/trackseek/internal/buttons"
	"github.com/tessro/trackseek/internal/config"
	seekerrors "github.com/tessro/trackseek/internal/errors"
	"github.com/tessro/trackseek/internal/logging"
	"github.com/tessro/trackseek/internal/styles"
)

var (
	cfgFile string
	jsonOut bool
	verbose bool

	cfg      *config.Config
	logger   *slog.Logger
	closeLog = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "trackseek",
	Short: "Search the playing track on external sites",
	Long: `Trackseek takes the now-playing track ("Title • Artist, Artist") and builds
search URLs for it from a list of configurable buttons, then opens them in your browser.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLog()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.trackseekrc)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initConfig() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, closeLog, err = logging.New(cfg.Log, verbose)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	logger.Debug("config loaded", "buttons", cfg.Buttons.File)

	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if seekerrors.IsNotice(err) {
			fmt.Fprintln(os.Stderr, styles.Warn.Render(err.Error()))
		} else {
			fmt.Fprintln(os.Stderr, styles.Bad.Render(seekerrors.Format(err)))
		}
		os.Exit(1)
	}
}

// Config returns the loaded configuration.
func Config() *config.Config {
	return cfg
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}

// buttonStore returns the store for the configured button document.
func buttonStore() *buttons.Store {
	return buttons.NewStore(cfg.Buttons.File, logger)
}

// loadButtons loads the configured buttons, falling back to the defaults.
func loadButtons() *buttons.LoadResult {
	res := buttonStore().Load()
	if res.Fallback && Verbose() {
		fmt.Fprintf(os.Stderr, "Using default buttons: %v\n", res.Err)
	}
	return res
}
