package config

// Config is the root configuration structure.
type Config struct {
	Buttons ButtonsConfig `toml:"buttons"`
	Source  SourceConfig  `toml:"source"`
	Browser BrowserConfig `toml:"browser"`
	Watch   WatchConfig   `toml:"watch"`
	Log     LogConfig     `toml:"log"`
}

// ButtonsConfig locates the button document.
type ButtonsConfig struct {
	File    string `toml:"file"`
	Default string `toml:"default"`
}

// SourceConfig describes where the now-playing display string comes from.
type SourceConfig struct {
	Command string `toml:"command"`
	File    string `toml:"file"`
	Timeout int    `toml:"timeout"`
}

// BrowserConfig controls how URLs are opened.
type BrowserConfig struct {
	Command string `toml:"command"`
	Open    *bool  `toml:"open"`
}

// WatchConfig holds settings for watch mode.
type WatchConfig struct {
	Interval int  `toml:"interval"`
	NoEmoji  bool `toml:"no_emoji"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level"`
	File   string `toml:"file"`
	Format string `toml:"format"`
}

// ShouldOpen reports whether search results are opened in the browser.
func (c BrowserConfig) ShouldOpen() bool {
	return c.Open == nil || *c.Open
}
