package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/tessro/trackseek/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and editing trackseek configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration values.`,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  `Create a new configuration file with default values.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), getConfigPath())
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Supported keys:
  buttons.file       Path of the JSON button document
  buttons.default    Button used when none is named
  source.command     Command printing "Title • Artist, Artist"
  source.file        File whose first line is the display string
  browser.command    Command used to open URLs
  browser.open       Open URLs after searching (true/false)
  watch.interval     Poll interval in milliseconds
  log.level          debug, info, warn or error

Examples:
  trackseek config set source.command "playerctl metadata --format '{{title}} • {{artist}}'"
  trackseek config set buttons.default Discogs`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if JSONOutput() {
		return writeJSON(cmd.OutOrStdout(), cfg)
	}

	// Pretty print as TOML
	encoder := toml.NewEncoder(cmd.OutOrStdout())
	encoder.Indent = "  "
	return encoder.Encode(cfg)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists at %s", configPath)
	}

	if err := writeConfigFile(configPath, config.Default()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return writeJSON(out, map[string]string{
			"status": "created",
			"path":   configPath,
		})
	}

	fmt.Fprintf(out, "Created config file: %s\n", configPath)
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  1. Set source.command to a command that prints the playing track")
	fmt.Fprintln(out, "  2. Run 'trackseek buttons init' and add your own search buttons")
	return nil
}

func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.Path()
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	configPath := getConfigPath()

	// Read the current config file as raw TOML, if any
	rawConfig := make(map[string]interface{})
	if data, err := os.ReadFile(configPath); err == nil {
		if _, err := toml.Decode(string(data), &rawConfig); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read config: %w", err)
	}

	if err := setRawValue(rawConfig, key, value); err != nil {
		return err
	}

	if err := writeConfigFile(configPath, rawConfig); err != nil {
		return err
	}

	if JSONOutput() {
		return writeJSON(cmd.OutOrStdout(), map[string]string{
			"status": "updated",
			"key":    key,
			"value":  value,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	return nil
}

// setRawValue sets section.field in a decoded TOML document, converting
// value to the field's type.
func setRawValue(rawConfig map[string]interface{}, key, value string) error {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return fmt.Errorf("invalid key format. Use 'section.key' (e.g., buttons.default)")
	}
	section, field := parts[0], parts[1]

	var typedValue interface{}
	switch key {
	case "watch.interval", "source.timeout":
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("value must be an integer for %s", key)
		}
		typedValue = i
	case "browser.open", "watch.no_emoji":
		typedValue = value == "true" || value == "1" || value == "yes"
	case "buttons.file", "buttons.default", "source.command", "source.file",
		"browser.command", "log.level", "log.file", "log.format":
		typedValue = value
	default:
		return fmt.Errorf("unknown key %q", key)
	}

	sectionMap, ok := rawConfig[section].(map[string]interface{})
	if !ok {
		sectionMap = make(map[string]interface{})
		rawConfig[section] = sectionMap
	}
	sectionMap[field] = typedValue
	return nil
}

func writeConfigFile(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	// Write header comment
	_, _ = fmt.Fprintln(f, "# trackseek configuration")
	_, _ = fmt.Fprintln(f, "")

	encoder := toml.NewEncoder(f)
	encoder.Indent = "  "
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
